package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/service"
)

const runTimeout = 10 * time.Minute

// Daily fires the auto-assignment batch on a fixed cron trigger in the
// configured timezone.
type Daily struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

func NewDaily(runner *service.AssignmentRunner, spec, timezone string, log *zap.SugaredLogger) (*Daily, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		summary, err := runner.Run(ctx)
		if errors.Is(err, service.ErrRunInProgress) {
			log.Warnw("scheduled auto-assignment skipped, run in progress")
			return
		}
		if err != nil {
			log.Errorw("scheduled auto-assignment failed", "error", err)
			return
		}
		log.Infow("scheduled auto-assignment completed",
			"eligible", summary.TotalEligible,
			"assigned", summary.Assigned,
			"errors", summary.Errors,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("register cron entry %q: %w", spec, err)
	}

	return &Daily{cron: c, log: log}, nil
}

func (d *Daily) Start() {
	d.cron.Start()
}

// Stop halts the trigger and waits for a running job to finish.
func (d *Daily) Stop() {
	<-d.cron.Stop().Done()
}
