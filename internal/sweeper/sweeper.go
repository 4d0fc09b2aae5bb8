// Package sweeper removes expired and consumed password-reset tokens so
// the table doesn't accumulate rows forever.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dkarimov/user-account-service/internal/metrics"
	"github.com/dkarimov/user-account-service/internal/repository"
	"github.com/robfig/cron/v3"
)

type Sweeper struct {
	tokens   repository.ResetTokenRepository
	logger   *slog.Logger
	schedule cron.Schedule
}

// New parses cronExpr (standard 5-field syntax) and returns a sweeper that
// fires on that schedule.
func New(tokens repository.ResetTokenRepository, logger *slog.Logger, cronExpr string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", cronExpr, err)
	}
	return &Sweeper{
		tokens:   tokens,
		logger:   logger.With("component", "sweeper"),
		schedule: schedule,
	}, nil
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("sweeper started", "next_run", s.schedule.Next(time.Now()))

	for {
		timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("sweeper shut down")
			return
		case <-timer.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("sweep reset tokens", "error", err)
			}
		}
	}
}

// Sweep deletes tokens that expired or were consumed before now.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	swept, err := s.tokens.DeleteStale(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("delete stale reset tokens: %w", err)
	}
	if swept > 0 {
		metrics.ResetTokensSweptTotal.Add(float64(swept))
		s.logger.Info("swept reset tokens", "count", swept)
	}
	return swept, nil
}
