package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kovertlabs/deepcover/internal/gameconfig"
	"github.com/kovertlabs/deepcover/internal/handler"
	"github.com/kovertlabs/deepcover/internal/repository"
)

// SyncGameConfig loads, validates, and syncs the game definition files to the
// database. It handles the complete lifecycle: load JSON → validate → sync to
// DB → log results. Content-hash change detection skips the write when the
// files are unchanged.
func SyncGameConfig(ctx context.Context, repo repository.GameConfig, configDir string) error {
	slog.Info(LogMsgSyncingGameConfig, "dir", configDir)
	loader := gameconfig.NewLoader()

	cfg, err := loader.Load(configDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadGameConfig, err)
	}

	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidGameConfig, err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, repo)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncGameConfig, err)
	}

	if result.Updated {
		slog.Info(LogMsgGameConfigSynced, "version", result.Version)
	} else {
		slog.Info(LogMsgGameConfigUnchanged, "version", result.Version)
	}

	return nil
}

// MakeReloadFunc builds the admin reload closure: re-read the definition
// files, sync them to the database, and swap the provider's active snapshot.
func MakeReloadFunc(repo repository.GameConfig, provider *gameconfig.Provider, configDir string) handler.ReloadFunc {
	loader := gameconfig.NewLoader()
	return func(ctx context.Context) (*gameconfig.SyncResult, error) {
		cfg, err := loader.Load(configDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadGameConfig, err)
		}
		if err := loader.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgInvalidGameConfig, err)
		}
		result, err := loader.SyncToDatabase(ctx, cfg, repo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncGameConfig, err)
		}
		if _, err := provider.Reload(ctx); err != nil {
			return nil, err
		}
		return result, nil
	}
}
