package interfaces

import (
	"rideboard/internal/models"
)

// Mutation accumulates field-level set/unset operations addressed by dotted
// path. Store adapters translate it into their native update syntax; callers
// never hand-build update documents.
type Mutation struct {
	sets   map[string]interface{}
	unsets []string
}

func NewMutation() *Mutation {
	return &Mutation{sets: make(map[string]interface{})}
}

// SetField assigns value at path. A later set on the same path wins.
func (m *Mutation) SetField(path string, value interface{}) *Mutation {
	m.sets[path] = value
	return m
}

// UnsetField removes the field at path.
func (m *Mutation) UnsetField(path string) *Mutation {
	m.unsets = append(m.unsets, path)
	return m
}

func (m *Mutation) IsEmpty() bool {
	return len(m.sets) == 0 && len(m.unsets) == 0
}

func (m *Mutation) Sets() map[string]interface{} {
	return m.sets
}

func (m *Mutation) Unsets() []string {
	return m.unsets
}

// RidePath addresses a whole ride entry: "<direction>.<userId>".
func RidePath(direction models.Direction, userID int64) string {
	return string(direction) + "." + models.RideKey(userID)
}

// RideFullPath addresses the full flag of a ride entry.
func RideFullPath(direction models.Direction, userID int64) string {
	return RidePath(direction, userID) + ".full"
}
