package session

import (
	"context"
	"time"

	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// Sweeper removes sessions whose last activity is older than the retention
// window. Redis-backed stores expire on TTL; the sweeper is the equivalent for
// the in-memory store and is harmless to run against any Store.
type Sweeper struct {
	store     Store
	logger    *logging.Logger
	retention time.Duration
	interval  time.Duration
	now       clock
}

// NewSweeper creates a sweeper with a 7-day retention window.
func NewSweeper(store Store, logger *logging.Logger) *Sweeper {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sweeper{
		store:     store,
		logger:    logger,
		retention: 7 * 24 * time.Hour,
		interval:  1 * time.Hour,
		now:       defaultClock,
	}
}

func (s *Sweeper) WithRetention(d time.Duration) *Sweeper {
	if d > 0 {
		s.retention = d
	}
	return s
}

func (s *Sweeper) WithInterval(d time.Duration) *Sweeper {
	if d > 0 {
		s.interval = d
	}
	return s
}

func (s *Sweeper) WithClock(now clock) *Sweeper {
	if now != nil {
		s.now = now
	}
	return s
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if s.store == nil {
		return
	}
	cutoff := s.now().Add(-s.retention)
	sessions, err := s.store.Snapshot(ctx)
	if err != nil {
		s.logger.Error("session sweep snapshot failed", "error", err)
		return
	}
	removed := 0
	for _, sess := range sessions {
		if !sess.IdleSince(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, sess.UserID); err != nil {
			s.logger.Error("session sweep delete failed", "error", err, "user_id", sess.UserID)
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("session sweep completed", "removed", removed, "cutoff", cutoff)
	}
}
