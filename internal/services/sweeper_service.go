package services

import (
	"context"
	"time"

	"rideboard/internal/repositories/interfaces"
	"rideboard/pkg/logger"
)

// SweeperService runs the periodic best-effort removal of expired rides. It
// is deliberately fire-and-forget: sweep outcomes are logged, never awaited
// or surfaced to callers.
type SweeperService struct {
	rideService RideService
	groupRepo   interfaces.GroupRepository
	interval    time.Duration
	logger      *logger.Logger
	stop        chan struct{}
	done        chan struct{}
}

func NewSweeperService(rideService RideService, groupRepo interfaces.GroupRepository, interval time.Duration, logger *logger.Logger) *SweeperService {
	return &SweeperService{
		rideService: rideService,
		groupRepo:   groupRepo,
		interval:    interval,
		logger:      logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *SweeperService) Start() {
	go s.run()
}

func (s *SweeperService) Stop() {
	close(s.stop)
	<-s.done
}

func (s *SweeperService) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.WithField("interval", s.interval.String()).Info("Expiry sweeper started")

	for {
		select {
		case <-s.stop:
			s.logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.SweepAll(context.Background())
		}
	}
}

// SweepAll cleans expired rides in every stored group.
func (s *SweeperService) SweepAll(ctx context.Context) {
	chatIDs, err := s.groupRepo.ListGroupIDs(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Expiry sweep: failed to list groups")
		return
	}

	now := time.Now()
	for _, chatID := range chatIDs {
		s.rideService.CleanExpiredRides(ctx, chatID, now)
	}
}
