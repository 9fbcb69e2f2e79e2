package cell

import (
	"context"
	"time"

	"github.com/kovertlabs/deepcover/internal/logger"
)

// BattleRoundJob runs one battle settlement pass over every cell. It is
// enqueued by the scheduler at the configured round interval.
type BattleRoundJob struct {
	service Service
}

// NewBattleRoundJob creates a new battle round job
func NewBattleRoundJob(service Service) *BattleRoundJob {
	return &BattleRoundJob{service: service}
}

// Process executes the settlement pass
func (j *BattleRoundJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Starting battle round settlement")

	start := time.Now()
	err := j.service.SettleBattleRound(ctx)
	duration := time.Since(start)

	if err != nil {
		log.Error("Battle round settlement failed", "error", err, "duration", duration)
		return err
	}

	log.Info("Battle round settlement completed", "duration", duration)
	return nil
}
