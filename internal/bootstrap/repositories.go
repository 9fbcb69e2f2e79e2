package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kovertlabs/deepcover/internal/database/postgres"
	"github.com/kovertlabs/deepcover/internal/eventlog"
	"github.com/kovertlabs/deepcover/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Player   repository.Player
	Config   repository.GameConfig
	Cell     repository.Cell
	EventLog eventlog.Repository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Player:   postgres.NewPlayerRepository(dbPool),
		Config:   postgres.NewConfigRepository(dbPool),
		Cell:     postgres.NewCellRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
