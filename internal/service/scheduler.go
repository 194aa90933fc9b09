package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/domain"
)

const digestRunTimeout = 5 * time.Minute

// DigestScheduler generates the previous day's digest on a cron schedule,
// so a digest exists before the first reader asks for it.
type DigestScheduler struct {
	digests  *DigestService
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron
}

// NewDigestScheduler wires a scheduler around an existing digest service.
// A schedule of "off" (or empty) disables it.
func NewDigestScheduler(digests *DigestService, schedule string, logger *zap.Logger) *DigestScheduler {
	return &DigestScheduler{
		digests:  digests,
		schedule: schedule,
		logger:   logger,
	}
}

func (s *DigestScheduler) Start() error {
	if s.schedule == "" || s.schedule == "off" {
		s.logger.Info("digest scheduler disabled")
		return nil
	}
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("digest scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *DigestScheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *DigestScheduler) run() {
	date := timeNow().UTC().AddDate(0, 0, -1).Format(domain.DigestDateLayout)

	ctx, cancel := context.WithTimeout(context.Background(), digestRunTimeout)
	defer cancel()

	if _, err := s.digests.GenerateDigest(ctx, date, true); err != nil {
		s.logger.Error("scheduled digest run failed", zap.String("date", date), zap.Error(err))
		return
	}
	s.logger.Info("scheduled digest run complete", zap.String("date", date))
}
