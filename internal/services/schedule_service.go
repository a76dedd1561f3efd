package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"rideboard/internal/models"
	"rideboard/internal/repositories/interfaces"
	"rideboard/internal/utils"
	"rideboard/pkg/logger"
)

type ScheduleService interface {
	// Render produces the group's human-readable schedule. An absent or
	// empty group renders as the empty string; nothing scheduled is a
	// valid, silent outcome.
	Render(ctx context.Context, chatID int64) (string, error)
}

type scheduleService struct {
	groupRepo interfaces.GroupRepository
	cache     CacheService
	location  *time.Location
	cacheTTL  time.Duration
	logger    *logger.Logger
}

func NewScheduleService(groupRepo interfaces.GroupRepository, cache CacheService, location *time.Location, cacheTTL time.Duration, logger *logger.Logger) ScheduleService {
	if location == nil {
		location = time.UTC
	}
	if cacheTTL <= 0 {
		cacheTTL = utils.ScheduleCacheTTL
	}
	return &scheduleService{
		groupRepo: groupRepo,
		cache:     cache,
		location:  location,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (s *scheduleService) Render(ctx context.Context, chatID int64) (string, error) {
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, scheduleCacheKey(chatID), &cached); err == nil {
			return cached, nil
		}
	}

	group, err := s.groupRepo.FetchGroupRides(ctx, chatID)
	if err != nil {
		return "", err
	}
	if group == nil {
		return "", nil
	}

	schedule := s.renderGroup(group)

	if s.cache != nil {
		if err := s.cache.Set(ctx, scheduleCacheKey(chatID), schedule, s.cacheTTL); err != nil {
			s.logger.WithChatID(chatID).WithError(err).Warn("Failed to cache schedule")
		}
	}

	return schedule, nil
}

// renderGroup sorts the group's rides by day, then direction, then time, and
// walks them once emitting day headers, direction headers and ride lines.
func (s *scheduleService) renderGroup(group *models.GroupDocument) string {
	rides := group.AllRides()
	if len(rides) == 0 {
		return ""
	}

	for i := range rides {
		rides[i].Time = rides[i].Time.In(s.location)
	}

	sort.Slice(rides, func(i, j int) bool {
		return rideLess(rides[i], rides[j])
	})

	var b strings.Builder
	var previousDate time.Time
	var previousDirection models.Direction
	first := true

	for _, ride := range rides {
		changedDate := first || !utils.SameDay(previousDate, ride.Time)

		if changedDate {
			if !first {
				b.WriteString("\n")
			}
			s.writeDayHeader(&b, ride.Time)
		}

		if changedDate || previousDirection != ride.Direction {
			b.WriteString("\n")
			if ride.Direction == models.DirectionGoing {
				b.WriteString(utils.Bold("IDA") + "\n")
			} else {
				b.WriteString(utils.Bold("VOLTA") + "\n")
			}
		}

		s.writeRideLine(&b, ride)

		previousDate = ride.Time
		previousDirection = ride.Direction
		first = false
	}

	return b.String()
}

// rideLess orders by calendar day ascending, then "going" before "coming",
// then full timestamp ascending.
func rideLess(a, b models.Ride) bool {
	dayA, dayB := utils.StartOfDay(a.Time), utils.StartOfDay(b.Time)
	if !dayA.Equal(dayB) {
		return dayA.Before(dayB)
	}
	if a.Direction != b.Direction {
		return a.Direction > b.Direction
	}
	return a.Time.Before(b.Time)
}

func (s *scheduleService) writeDayHeader(b *strings.Builder, t time.Time) {
	day := t.Day()
	month := int(t.Month())

	b.WriteString(utils.SpecialDayEmoji(day, month))
	b.WriteString(utils.Bold(utils.AddZeroPadding(day) + "/" + utils.AddZeroPadding(month) + " - " + utils.WeekdayName(t.Weekday())))
	b.WriteString(" " + utils.WeekdayEmoji(t.Weekday()) + "\n")
}

func (s *scheduleService) writeRideLine(b *strings.Builder, ride models.Ride) {
	rideInfo := " - " + utils.AddZeroPadding(ride.Time.Hour()) + ":" + utils.AddZeroPadding(ride.Time.Minute()) + " - " + ride.Description

	if ride.Full == models.RideFull {
		b.WriteString(utils.StrikeThrough(ride.User.FullName() + rideInfo))
	} else {
		b.WriteString(utils.UserEmoji(ride.User.ID) + " " + utils.UserLink(ride.User.ID, ride.User.FirstName, ride.User.LastName) + rideInfo)
	}
	b.WriteString("\n")
}
