package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"marketgate/api/internal/repository"
)

// Scheduler runs the expired-session sweep. Expiry is enforced at read
// time regardless; the sweep only keeps the table from accumulating
// dead rows.
type Scheduler struct {
	cron     *cron.Cron
	sessions *repository.SessionRepository
	log      zerolog.Logger
}

func NewScheduler(sessions *repository.SessionRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sessions: sessions,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.sessions == nil {
		return nil
	}

	// Daily, off-peak.
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.sweepExpiredSessions); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits briefly for a running sweep to
// finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) sweepExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("expired session sweep failed")
		return
	}
	s.log.Info().Int64("removed", removed).Msg("expired session sweep finished")
}
