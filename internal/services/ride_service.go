package services

import (
	"context"
	"time"

	"rideboard/internal/models"
	"rideboard/internal/repositories/interfaces"
	"rideboard/pkg/logger"
)

type RideService interface {
	// AddRide posts a ride for user in the given direction, overwriting any
	// prior ride at the same (direction, user) key. Reports whether the
	// group document changed.
	AddRide(ctx context.Context, chatID int64, user models.UserRef, rideTime time.Time, description string, direction models.Direction) (bool, error)

	// RemoveRide deletes the user's ride in the given direction. Removing a
	// ride that was never posted is a no-op, not an error.
	RemoveRide(ctx context.Context, chatID int64, userID int64, direction models.Direction) (bool, error)

	// SetRideFull flips the full flag on an existing ride. No-op when the
	// ride key is absent.
	SetRideFull(ctx context.Context, chatID int64, userID int64, direction models.Direction, state int) (bool, error)

	// CleanExpiredRides removes every ride strictly older than now in one
	// compound mutation. Best-effort: failures are logged, never surfaced.
	CleanExpiredRides(ctx context.Context, chatID int64, now time.Time)

	CreateGroup(ctx context.Context, chatID int64) error
}

type rideService struct {
	groupRepo interfaces.GroupRepository
	cache     CacheService
	logger    *logger.Logger
}

func NewRideService(groupRepo interfaces.GroupRepository, cache CacheService, logger *logger.Logger) RideService {
	return &rideService{
		groupRepo: groupRepo,
		cache:     cache,
		logger:    logger,
	}
}

func (s *rideService) CreateGroup(ctx context.Context, chatID int64) error {
	group := &models.GroupDocument{
		ChatID: chatID,
		Coming: map[string]models.Ride{},
		Going:  map[string]models.Ride{},
	}

	if err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		return err
	}

	s.logger.WithChatID(chatID).Info("Group created")
	return nil
}

func (s *rideService) AddRide(ctx context.Context, chatID int64, user models.UserRef, rideTime time.Time, description string, direction models.Direction) (bool, error) {
	ride := models.Ride{
		User:        user,
		Time:        rideTime,
		Description: description,
		Direction:   direction,
		Full:        models.RideOpen,
	}

	mutation := interfaces.NewMutation().
		SetField(interfaces.RidePath(direction, user.ID), ride)

	modified, err := s.groupRepo.ApplyMutation(ctx, chatID, mutation, true)
	if err != nil {
		return false, err
	}

	s.invalidateSchedule(ctx, chatID)
	s.logger.WithChatID(chatID).WithUserID(user.ID).WithField("direction", direction).Debug("Ride added")

	return modified, nil
}

func (s *rideService) RemoveRide(ctx context.Context, chatID int64, userID int64, direction models.Direction) (bool, error) {
	mutation := interfaces.NewMutation().
		UnsetField(interfaces.RidePath(direction, userID))

	removed, err := s.groupRepo.ApplyMutation(ctx, chatID, mutation, false)
	if err != nil {
		return false, err
	}

	if removed {
		s.invalidateSchedule(ctx, chatID)
	}
	s.logger.WithChatID(chatID).WithUserID(userID).WithField("direction", direction).Debug("Ride removed")

	return removed, nil
}

func (s *rideService) SetRideFull(ctx context.Context, chatID int64, userID int64, direction models.Direction, state int) (bool, error) {
	mutation := interfaces.NewMutation().
		SetField(interfaces.RideFullPath(direction, userID), state)

	modified, err := s.groupRepo.ApplyMutation(ctx, chatID, mutation, false)
	if err != nil {
		return false, err
	}

	if modified {
		s.invalidateSchedule(ctx, chatID)
	}

	return modified, nil
}

func (s *rideService) CleanExpiredRides(ctx context.Context, chatID int64, now time.Time) {
	log := s.logger.WithChatID(chatID)

	group, err := s.groupRepo.FetchGroupRides(ctx, chatID)
	if err != nil {
		log.WithError(err).Error("Expiry sweep: failed to fetch group")
		return
	}
	if group == nil {
		return
	}

	mutation := interfaces.NewMutation()
	expired := 0
	for _, ride := range group.AllRides() {
		// Strict comparison: a ride exactly at now is retained.
		if ride.Time.Before(now) {
			mutation.UnsetField(interfaces.RidePath(ride.Direction, ride.User.ID))
			expired++
		}
	}

	if mutation.IsEmpty() {
		return
	}

	if _, err := s.groupRepo.ApplyMutation(ctx, chatID, mutation, false); err != nil {
		log.WithError(err).Error("Expiry sweep: failed to remove expired rides")
		return
	}

	s.invalidateSchedule(ctx, chatID)
	log.WithField("expired", expired).Info("Expired rides removed")
}

// invalidateSchedule drops the cached rendered schedule after a mutation.
// Cache failures never affect the mutation outcome.
func (s *rideService) invalidateSchedule(ctx context.Context, chatID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, scheduleCacheKey(chatID)); err != nil {
		s.logger.WithChatID(chatID).WithError(err).Warn("Failed to invalidate schedule cache")
	}
}
