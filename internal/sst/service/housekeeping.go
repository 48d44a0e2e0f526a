package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
)

// HousekeepingService periodically deletes expired refresh tokens, invites
// and two-factor challenges so those tables cannot grow without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup runs each deletion independently; one failure does not stop the rest.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	s.Logger.Debug("starting housekeeping cleanup")

	if err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx); err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	}

	if err := s.Store.TwoFactorChallenges().DeleteExpiredChallenges(ctx); err != nil {
		s.Logger.Error("failed to delete expired two-factor challenges", "error", err)
	}

	if err := s.Store.Invites().DeleteExpiredInvites(ctx); err != nil {
		s.Logger.Error("failed to delete expired invites", "error", err)
	}

	s.Logger.Debug("housekeeping cleanup completed")
}
