package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kovertlabs/deepcover/internal/boost"
	"github.com/kovertlabs/deepcover/internal/bootstrap"
	"github.com/kovertlabs/deepcover/internal/cell"
	"github.com/kovertlabs/deepcover/internal/config"
	"github.com/kovertlabs/deepcover/internal/daily"
	"github.com/kovertlabs/deepcover/internal/database"
	"github.com/kovertlabs/deepcover/internal/economy"
	"github.com/kovertlabs/deepcover/internal/eventlog"
	"github.com/kovertlabs/deepcover/internal/gameconfig"
	"github.com/kovertlabs/deepcover/internal/glitch"
	"github.com/kovertlabs/deepcover/internal/handler"
	"github.com/kovertlabs/deepcover/internal/league"
	"github.com/kovertlabs/deepcover/internal/lootbox"
	"github.com/kovertlabs/deepcover/internal/player"
	"github.com/kovertlabs/deepcover/internal/scheduler"
	"github.com/kovertlabs/deepcover/internal/server"
	"github.com/kovertlabs/deepcover/internal/task"
	"github.com/kovertlabs/deepcover/internal/worker"
)

const (
	workerPoolSize  = 4
	workerQueueSize = 64

	eventLogCleanupInterval = 24 * time.Hour

	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)

	ctx := context.Background()
	if err := bootstrap.SyncGameConfig(ctx, repos.Config, cfg.ConfigDir); err != nil {
		slog.Error("Failed to sync game config", "error", err)
		os.Exit(1)
	}

	configProvider, err := gameconfig.NewProvider(repos.Config)
	if err != nil {
		slog.Error("Failed to initialize config provider", "error", err)
		os.Exit(1)
	}
	if _, err := configProvider.Reload(ctx); err != nil {
		slog.Error("Failed to load initial config snapshot", "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem()
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	playerService := player.NewService(repos.Player, configProvider, publisher)
	economyService := economy.NewService(repos.Player, configProvider, publisher)
	dailyService := daily.NewService(repos.Player, repos.Config, configProvider, publisher)
	taskService := task.NewService(repos.Player, configProvider, publisher)
	lootboxService := lootbox.NewService(repos.Player, configProvider, publisher)
	boostService := boost.NewService(repos.Player, configProvider, publisher)
	glitchService := glitch.NewService(repos.Player, configProvider, publisher)
	cellService := cell.NewService(repos.Cell, repos.Player, publisher)
	leagueService := league.NewService(repos.Player, configProvider)
	eventLogService := eventlog.NewService(repos.EventLog)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		GlitchService:   glitchService,
		EventLogService: eventLogService,
	}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool, server.Services{
		Player:  playerService,
		Economy: economyService,
		Daily:   dailyService,
		Task:    taskService,
		Lootbox: lootboxService,
		Boost:   boostService,
		Glitch:  glitchService,
		Cell:    cellService,
		League:  leagueService,
		Reload:  bootstrap.MakeReloadFunc(repos.Config, configProvider, cfg.ConfigDir),
		IsAdmin: cfg.IsAdmin,
	})

	rotationWorker := worker.NewDailyRotationWorker(dailyService)
	rotationWorker.Start()

	pool := worker.NewPool(workerPoolSize, workerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.BattleRoundInterval, cell.NewBattleRoundJob(cellService))
	sched.Schedule(eventLogCleanupInterval, eventlog.NewCleanupJob(eventLogService, cfg.EventLogRetentionDays))
	sched.Start()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:              srv,
		DailyRotationWorker: rotationWorker,
		Scheduler:           sched,
		WorkerPool:          pool,
		ResilientPublisher:  publisher,
	})
}
