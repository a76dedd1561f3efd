package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"rideboard/internal/models"
	"rideboard/internal/repositories/interfaces"
	"rideboard/pkg/logger"
)

// memGroupRepo is an in-memory document store double. It interprets the
// same dotted-path mutation vocabulary the Mongo adapter translates.
type memGroupRepo struct {
	groups  map[int64]*models.GroupDocument
	failure error
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{groups: make(map[int64]*models.GroupDocument)}
}

func (m *memGroupRepo) FetchGroupRides(ctx context.Context, chatID int64) (*models.GroupDocument, error) {
	if m.failure != nil {
		return nil, m.failure
	}
	return m.groups[chatID], nil
}

func (m *memGroupRepo) CreateGroup(ctx context.Context, group *models.GroupDocument) error {
	if m.failure != nil {
		return m.failure
	}
	if _, exists := m.groups[group.ChatID]; exists {
		return interfaces.ErrDuplicateGroup
	}
	m.groups[group.ChatID] = group
	return nil
}

func (m *memGroupRepo) ApplyMutation(ctx context.Context, chatID int64, mutation *interfaces.Mutation, upsert bool) (bool, error) {
	if m.failure != nil {
		return false, m.failure
	}

	group, exists := m.groups[chatID]
	if !exists {
		if !upsert {
			return false, nil
		}
		group = &models.GroupDocument{
			ChatID: chatID,
			Coming: map[string]models.Ride{},
			Going:  map[string]models.Ride{},
		}
		m.groups[chatID] = group
	}

	modified := false
	for path, value := range mutation.Sets() {
		if m.applySet(group, path, value) {
			modified = true
		}
	}
	for _, path := range mutation.Unsets() {
		if m.applyUnset(group, path) {
			modified = true
		}
	}

	return modified, nil
}

func (m *memGroupRepo) ListGroupIDs(ctx context.Context) ([]int64, error) {
	if m.failure != nil {
		return nil, m.failure
	}
	ids := make([]int64, 0, len(m.groups))
	for id := range m.groups {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memGroupRepo) directionMap(group *models.GroupDocument, direction string) map[string]models.Ride {
	if direction == string(models.DirectionGoing) {
		if group.Going == nil {
			group.Going = map[string]models.Ride{}
		}
		return group.Going
	}
	if group.Coming == nil {
		group.Coming = map[string]models.Ride{}
	}
	return group.Coming
}

func (m *memGroupRepo) applySet(group *models.GroupDocument, path string, value interface{}) bool {
	parts := strings.Split(path, ".")
	rides := m.directionMap(group, parts[0])

	if len(parts) == 2 {
		rides[parts[1]] = value.(models.Ride)
		return true
	}

	// "<direction>.<userId>.full"
	ride, ok := rides[parts[1]]
	if !ok {
		return false
	}
	state := value.(int)
	if ride.Full == state {
		return false
	}
	ride.Full = state
	rides[parts[1]] = ride
	return true
}

func (m *memGroupRepo) applyUnset(group *models.GroupDocument, path string) bool {
	parts := strings.Split(path, ".")
	rides := m.directionMap(group, parts[0])
	if _, ok := rides[parts[1]]; !ok {
		return false
	}
	delete(rides, parts[1])
	return true
}

// memCache records schedule cache traffic.
type memCache struct {
	values  map[string]string
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string]string)}
}

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := c.values[key]
	if !ok {
		return errors.New("cache miss")
	}
	*dest.(*string) = value
	return nil
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, _ time.Duration) error {
	c.values[key] = value.(string)
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.deletes = append(c.deletes, key)
		delete(c.values, key)
	}
	return nil
}

func (c *memCache) Ping(ctx context.Context) error { return nil }

func quietLogger() *logger.Logger {
	l, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	l.SetOutput(io.Discard)
	return l
}
