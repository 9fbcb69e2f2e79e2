package league

import (
	"context"
	"fmt"

	"github.com/kovertlabs/deepcover/internal/domain"
	"github.com/kovertlabs/deepcover/internal/i18n"
	"github.com/kovertlabs/deepcover/internal/repository"
)

// ConfigProvider supplies the current immutable game config snapshot.
type ConfigProvider interface {
	Snapshot(ctx context.Context) (*domain.GameConfig, error)
}

// Classify returns the league for a balance: the highest threshold not
// exceeding the balance, falling back to the lowest league. Leagues are
// ordered by ascending MinBalance in config. Returns nil when no leagues
// are configured.
func Classify(leagues []domain.League, balance float64) *domain.League {
	if len(leagues) == 0 {
		return nil
	}
	current := &leagues[0]
	for i := range leagues {
		if leagues[i].MinBalance <= balance {
			current = &leagues[i]
		}
	}
	return current
}

// LeagueView is a league tier annotated with membership.
type LeagueView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	MinBalance float64 `json:"min_balance"`
	Current    bool    `json:"current"`
}

// Service classifies players into balance leagues and serves the
// leaderboard.
type Service interface {
	// PlayerLeague returns the player's current league.
	PlayerLeague(ctx context.Context, playerID int64) (*LeagueView, error)

	// ListForPlayer returns all tiers with the player's league marked.
	ListForPlayer(ctx context.Context, playerID int64) ([]LeagueView, error)

	// Leaderboard returns the top balances annotated with each entry's league.
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	repo   repository.Player
	config ConfigProvider
}

// NewService creates a new league service
func NewService(repo repository.Player, config ConfigProvider) Service {
	return &service{repo: repo, config: config}
}

func (s *service) PlayerLeague(ctx context.Context, playerID int64) (*LeagueView, error) {
	cfg, p, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}
	l := Classify(cfg.Leagues, p.Balance)
	if l == nil {
		return nil, fmt.Errorf("%w: no leagues configured", domain.ErrConfigNotFound)
	}
	return &LeagueView{
		ID:         l.ID,
		Name:       i18n.Pick(l.Name, p.Locale),
		MinBalance: l.MinBalance,
		Current:    true,
	}, nil
}

func (s *service) ListForPlayer(ctx context.Context, playerID int64) ([]LeagueView, error) {
	cfg, p, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}
	current := Classify(cfg.Leagues, p.Balance)

	views := make([]LeagueView, 0, len(cfg.Leagues))
	for i := range cfg.Leagues {
		l := &cfg.Leagues[i]
		views = append(views, LeagueView{
			ID:         l.ID,
			Name:       i18n.Pick(l.Name, p.Locale),
			MinBalance: l.MinBalance,
			Current:    current != nil && current.ID == l.ID,
		})
	}
	return views, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > MaxLeaderboardSize {
		limit = DefaultLeaderboardSize
	}

	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	entries, err := s.repo.TopBalances(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	for i := range entries {
		if l := Classify(cfg.Leagues, entries[i].Balance); l != nil {
			entries[i].League = l.ID
		}
	}
	return entries, nil
}

func (s *service) load(ctx context.Context, playerID int64) (*domain.GameConfig, *domain.PlayerState, error) {
	cfg, err := s.config.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load game config: %w", err)
	}
	p, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player: %w", err)
	}
	return cfg, p, nil
}
