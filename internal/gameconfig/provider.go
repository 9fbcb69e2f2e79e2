package gameconfig

import (
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/logger"
	"github.com/kovertlabs/deepcover/internal/repository"
)

// Provider serves immutable GameConfig snapshots. The current snapshot is
// swapped atomically on reload; recent versions stay resolvable through a
// bounded cache so admin tooling can inspect what a given version contained.
type Provider struct {
	repo     repository.GameConfig
	current  atomic.Pointer[domain.GameConfig]
	versions *lru.Cache[int64, *domain.GameConfig]
}

// NewProvider creates a provider backed by the config repository.
func NewProvider(repo repository.GameConfig) (*Provider, error) {
	versions, err := lru.New[int64, *domain.GameConfig](SnapshotCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot cache: %w", err)
	}
	return &Provider{repo: repo, versions: versions}, nil
}

// Snapshot returns the current config snapshot, loading it from the
// database on first use. Callers must treat the result as read-only.
func (p *Provider) Snapshot(ctx context.Context) (*domain.GameConfig, error) {
	if cfg := p.current.Load(); cfg != nil {
		return cfg, nil
	}
	return p.Reload(ctx)
}

// Reload fetches the stored config and makes it the current snapshot.
// In-flight requests keep the snapshot they already captured.
func (p *Provider) Reload(ctx context.Context) (*domain.GameConfig, error) {
	cfg, err := p.repo.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	p.current.Store(cfg)
	p.versions.Add(cfg.Version, cfg)

	logger.FromContext(ctx).Info("Game config snapshot loaded", "version", cfg.Version)
	return cfg, nil
}

// ByVersion resolves a recently served config version from the cache.
func (p *Provider) ByVersion(version int64) (*domain.GameConfig, error) {
	if cfg, ok := p.versions.Get(version); ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("%w: config version %d", domain.ErrConfigNotFound, version)
}

// CurrentVersion returns the active snapshot version, 0 if none was loaded.
func (p *Provider) CurrentVersion() int64 {
	if cfg := p.current.Load(); cfg != nil {
		return cfg.Version
	}
	return 0
}
