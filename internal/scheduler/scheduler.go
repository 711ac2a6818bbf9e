package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is a periodic maintenance task. Spec uses cron syntax, including
// descriptors such as "@every 5m".
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context)
}

// Start registers jobs on a cron runner and starts it. The runner stops when
// ctx is done; the returned channel closes once running jobs have finished.
func Start(ctx context.Context, logger *slog.Logger, jobs ...Job) (<-chan struct{}, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger)))

	for _, job := range jobs {
		_, err := c.AddFunc(job.Spec, func() {
			logger.DebugContext(ctx, "scheduled job started", "job", job.Name)
			job.Run(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", job.Name, err)
		}
	}

	c.Start()
	logger.Info("scheduler started", "jobs", len(jobs))

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		logger.Info("scheduler stopped")
		close(done)
	}()
	return done, nil
}
