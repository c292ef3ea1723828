package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/insureline/policy-admin/internal/core/ports"
)

const sweepTimeout = time.Minute

// ExpirySweeper periodically flips ACTIVE policies whose coverage window has
// ended to EXPIRED. It runs on a cron schedule (default hourly) so reads
// never have to compute expiry on the fly.
type ExpirySweeper struct {
	policies ports.UserPolicyRepository
	cron     *cron.Cron
	spec     string
	logger   zerolog.Logger
}

func NewExpirySweeper(policies ports.UserPolicyRepository, spec string, logger zerolog.Logger) *ExpirySweeper {
	if spec == "" {
		spec = "@hourly"
	}
	return &ExpirySweeper{
		policies: policies,
		cron:     cron.New(),
		spec:     spec,
		logger:   logger,
	}
}

// Start registers the sweep job and launches the scheduler. One sweep runs
// immediately so a restart never leaves overdue policies waiting a full tick.
func (s *ExpirySweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	go s.sweep()
	s.logger.Info().Str("schedule", s.spec).Msg("policy expiry sweeper started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *ExpirySweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *ExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.policies.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Msg("policy expiry sweep failed")
		return
	}
	if n > 0 {
		s.logger.Info().Int64("expired", n).Msg("policies expired")
	}
}
