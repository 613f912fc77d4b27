package jobs

import (
	"context"
	"log/slog"

	"shopfloor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BatchCompletionJob periodically recomputes progress for Processing batches
// and completes the ones whose orders have all reached the terminal station.
// Scan handling never completes batches inline; this poll is the only
// automatic path to Completed.
type BatchCompletionJob struct {
	handler commands.CheckBatchCompletionCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBatchCompletionJob creates a job that sweeps Processing batches every
// five seconds.
func NewBatchCompletionJob(handler commands.CheckBatchCompletionCommandHandler, logger *slog.Logger) *BatchCompletionJob {
	return &BatchCompletionJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "batch_completion_job"),
	}
}

// Start begins the completion sweep.
func (j *BatchCompletionJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCheckBatchCompletionCommand()

		results, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Batch completion check failed", "error", handleErr)
			return
		}

		for _, result := range results {
			if result.Completed {
				j.logger.InfoContext(ctx, "Batch completed",
					"batchId", result.BatchID,
					"orders", result.TotalOrders)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch completion job started (running every 5 seconds)")
	return nil
}

// Stop stops the completion sweep.
func (j *BatchCompletionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Batch completion job stopped")
}
