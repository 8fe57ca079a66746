// Package jobs runs the periodic maintenance sweeps: stale-streak expiry
// and expired-invite cleanup. Both are idempotent, so overlapping or
// repeated runs are harmless.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/store"
	"github.com/squeakyapp/squeaky/internal/streak"
)

type Scheduler struct {
	mu       sync.RWMutex
	users    *store.UserStore
	invites  *store.InviteStore
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(users *store.UserStore, invites *store.InviteStore, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		users:    users,
		invites:  invites,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce()
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// RunOnce runs both sweeps immediately. Also invoked by the maintenance
// endpoints.
func (s *Scheduler) RunOnce() {
	s.ExpireStaleStreaks()
	s.CleanupExpiredInvites()
}

// ExpireStaleStreaks zeroes streaks for users who last cleaned before the
// start of yesterday. Longest streaks survive.
func (s *Scheduler) ExpireStaleStreaks() {
	cutoff := streak.StaleCutoff(s.clock.Now())
	n, err := s.users.ResetStaleStreaks(cutoff)
	if err != nil {
		s.logger.Error("expire stale streaks", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("expired stale streaks", "users", n)
	}
}

// CleanupExpiredInvites deletes invites whose expiry has passed.
func (s *Scheduler) CleanupExpiredInvites() {
	n, err := s.invites.DeleteExpired(s.clock.Now())
	if err != nil {
		s.logger.Error("cleanup expired invites", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("cleaned up expired invites", "invites", n)
	}
}
