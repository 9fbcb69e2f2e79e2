package gameconfig

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/repository"
	"github.com/kovertlabs/deepcover/internal/utils"
	"github.com/kovertlabs/deepcover/internal/validation"
)

// Loader reads the game definition files, validates them as a unit, and
// syncs the result into the database singleton.
type Loader struct {
	schemas validation.SchemaValidator
}

// NewLoader creates a config loader
func NewLoader() *Loader {
	return &Loader{schemas: validation.NewSchemaValidator()}
}

// SyncResult reports what a sync pass did.
type SyncResult struct {
	Updated bool
	Version int64
}

// Load assembles a GameConfig from the definition files in dir.
func (l *Loader) Load(dir string) (*domain.GameConfig, error) {
	cfg := &domain.GameConfig{}

	parts := []struct {
		file   string
		target interface{}
	}{
		{FileUpgrades, &cfg.Upgrades},
		{FileDailyTasks, &cfg.DailyTasks},
		{FileSpecialTasks, &cfg.SpecialTasks},
		{FileBoosts, &cfg.Boosts},
		{FileLootboxes, &cfg.Lootboxes},
		{FileLeagues, &cfg.Leagues},
		{FileGlitches, &cfg.Glitches},
	}
	for _, part := range parts {
		path := filepath.Join(dir, part.file)
		if schemaPath, ok := schemaFor(dir, part.file); ok {
			if err := l.schemas.ValidateFile(path, schemaPath); err != nil {
				return nil, fmt.Errorf("%s does not match its schema: %w", part.file, err)
			}
		}
		if err := utils.LoadJSON(path, part.target); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", part.file, err)
		}
	}
	return cfg, nil
}

// schemaFor reports the schema path for a definition file, if one ships.
func schemaFor(dir, file string) (string, bool) {
	name := strings.TrimSuffix(file, ".json") + ".schema.json"
	path := filepath.Join(dir, SchemaDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Validate checks cross-file consistency: unique ids, sane curves, and
// ascending league thresholds. A config that fails validation is never
// synced, so a broken deploy keeps the previous version serving.
func (l *Loader) Validate(cfg *domain.GameConfig) error {
	seen := make(map[string]struct{})
	unique := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		key := kind + ":" + id
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}

	for i := range cfg.Upgrades {
		u := &cfg.Upgrades[i]
		if err := unique("upgrade", u.ID); err != nil {
			return err
		}
		if u.BasePrice <= 0 {
			return fmt.Errorf("upgrade %q: base price must be positive", u.ID)
		}
		if u.BaseProfitPerHour < 0 {
			return fmt.Errorf("upgrade %q: base profit must not be negative", u.ID)
		}
		switch u.Category {
		case domain.CategoryDocuments, domain.CategoryLegal, domain.CategoryLifestyle, domain.CategorySpecial:
		default:
			return fmt.Errorf("upgrade %q: unknown category %q", u.ID, u.Category)
		}
	}

	for i := range cfg.DailyTasks {
		t := &cfg.DailyTasks[i]
		if err := unique("daily task", t.ID); err != nil {
			return err
		}
		if t.Type == domain.TaskTypeTaps && t.RequiredTaps <= 0 {
			return fmt.Errorf("daily task %q: taps task needs a positive threshold", t.ID)
		}
		if t.Type == domain.TaskTypeVideoCode && t.SecretCode == "" {
			return fmt.Errorf("daily task %q: video_code task needs a secret code", t.ID)
		}
	}

	for i := range cfg.SpecialTasks {
		t := &cfg.SpecialTasks[i]
		if err := unique("special task", t.ID); err != nil {
			return err
		}
		if t.PriceStars < 0 {
			return fmt.Errorf("special task %q: price must not be negative", t.ID)
		}
		if t.Type == domain.TaskTypeVideoCode && t.SecretCode == "" {
			return fmt.Errorf("special task %q: video_code task needs a secret code", t.ID)
		}
	}

	for i := range cfg.Boosts {
		b := &cfg.Boosts[i]
		if err := unique("boost", b.ID); err != nil {
			return err
		}
		if b.BaseCost < 0 {
			return fmt.Errorf("boost %q: cost must not be negative", b.ID)
		}
		if b.Permanent && b.CostGrowth < 1 {
			return fmt.Errorf("boost %q: permanent boost needs a growth factor >= 1", b.ID)
		}
		if b.ID == domain.BoostTapMultiplier && (b.Multiplier < 2 || b.DurationSec <= 0) {
			return fmt.Errorf("boost %q: multiplier and duration are required", b.ID)
		}
	}

	for i := range cfg.Lootboxes {
		box := &cfg.Lootboxes[i]
		if err := unique("lootbox", box.ID); err != nil {
			return err
		}
		if len(box.Pool) == 0 {
			return fmt.Errorf("lootbox %q: pool is empty", box.ID)
		}
	}

	for i := range cfg.Leagues {
		lg := &cfg.Leagues[i]
		if err := unique("league", lg.ID); err != nil {
			return err
		}
		if i > 0 && lg.MinBalance <= cfg.Leagues[i-1].MinBalance {
			return fmt.Errorf("league %q: thresholds must be strictly ascending", lg.ID)
		}
	}

	for i := range cfg.Glitches {
		g := &cfg.Glitches[i]
		if err := unique("glitch", g.Code); err != nil {
			return err
		}
		switch g.Trigger.Type {
		case domain.GlitchTriggerLoginAtTime:
			if g.Trigger.Hour < 0 || g.Trigger.Hour > 23 || g.Trigger.Minute < 0 || g.Trigger.Minute > 59 {
				return fmt.Errorf("glitch %q: invalid trigger time", g.Code)
			}
		case domain.GlitchTriggerBalanceEquals:
			if g.Trigger.Balance <= 0 {
				return fmt.Errorf("glitch %q: balance threshold must be positive", g.Code)
			}
		case domain.GlitchTriggerUpgradePurchased:
			if cfg.UpgradeByID(g.Trigger.UpgradeID) == nil {
				return fmt.Errorf("glitch %q: unknown upgrade %q", g.Code, g.Trigger.UpgradeID)
			}
		case domain.GlitchTriggerMetaTap:
			if g.Trigger.Taps <= 0 {
				return fmt.Errorf("glitch %q: tap threshold must be positive", g.Code)
			}
		default:
			return fmt.Errorf("glitch %q: unknown trigger type %q", g.Code, g.Trigger.Type)
		}
	}

	return nil
}

// SyncToDatabase stores the config when its content differs from what the
// database holds, using a content hash so unchanged deploys skip the write.
func (l *Loader) SyncToDatabase(ctx context.Context, cfg *domain.GameConfig, repo repository.GameConfig) (*SyncResult, error) {
	stored, err := repo.GetConfig(ctx)
	switch {
	case err == nil:
		same, err := sameContent(stored, cfg)
		if err != nil {
			return nil, err
		}
		if same {
			return &SyncResult{Updated: false, Version: stored.Version}, nil
		}
		cfg.Version = stored.Version + 1

	case errors.Is(err, domain.ErrConfigNotFound):
		cfg.Version = 1

	default:
		return nil, fmt.Errorf("failed to load stored config: %w", err)
	}

	if err := repo.SaveConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return &SyncResult{Updated: true, Version: cfg.Version}, nil
}

func sameContent(a, b *domain.GameConfig) (bool, error) {
	ha, err := contentHash(a)
	if err != nil {
		return false, err
	}
	hb, err := contentHash(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// contentHash hashes everything except the version counter.
func contentHash(cfg *domain.GameConfig) (string, error) {
	copied := *cfg
	copied.Version = 0
	raw, err := json.Marshal(&copied)
	if err != nil {
		return "", fmt.Errorf("failed to hash config: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
