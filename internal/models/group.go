package models

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Direction string

const (
	DirectionComing Direction = "coming"
	DirectionGoing  Direction = "going"
)

func (d Direction) IsValid() bool {
	return d == DirectionComing || d == DirectionGoing
}

// Ride full states. Stored as an int rather than a bool so the flag can
// grow additional states without a schema migration.
const (
	RideOpen = 0
	RideFull = 1
)

// UserRef identifies the chat user who posted a ride. Identity key is ID;
// the names are display-only.
type UserRef struct {
	ID        int64  `json:"id" bson:"id" validate:"required"`
	FirstName string `json:"first_name" bson:"first_name" validate:"required"`
	LastName  string `json:"last_name,omitempty" bson:"last_name,omitempty"`
}

// FullName joins first and last name, tolerating an absent last name.
func (u UserRef) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Ride is a single user's posted entry within a group and direction. Rides
// have no identifier of their own; the (direction, user id) pair is the
// durable key inside the parent group document.
type Ride struct {
	User        UserRef   `json:"user" bson:"user"`
	Time        time.Time `json:"time" bson:"time" validate:"required"`
	Description string    `json:"description" bson:"description"`
	Direction   Direction `json:"direction" bson:"direction" validate:"required"`
	Full        int       `json:"full" bson:"full"`
}

// GroupDocument is the sole unit of storage: one document per chat group,
// unique by ChatID, with rides nested in two direction maps keyed by the
// decimal user id.
type GroupDocument struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ChatID int64              `json:"chat_id" bson:"chatId" validate:"required"`
	Coming map[string]Ride    `json:"coming,omitempty" bson:"coming,omitempty"`
	Going  map[string]Ride    `json:"going,omitempty" bson:"going,omitempty"`
}

// AllRides merges both direction maps into one flat slice.
func (g *GroupDocument) AllRides() []Ride {
	rides := make([]Ride, 0, len(g.Coming)+len(g.Going))
	for _, ride := range g.Coming {
		rides = append(rides, ride)
	}
	for _, ride := range g.Going {
		rides = append(rides, ride)
	}
	return rides
}

// RideKey is the map key a user's ride is stored under.
func RideKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
