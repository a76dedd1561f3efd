package interfaces

import (
	"context"
	"errors"

	"rideboard/internal/models"
)

var (
	// ErrDuplicateGroup is returned when group creation collides with an
	// existing chatId. The unique index on chatId enforces this at the
	// store layer.
	ErrDuplicateGroup = errors.New("group already exists")

	// ErrStoreUnavailable is returned on transport or connection failures.
	// The core does not retry; retry policy belongs to the store client.
	ErrStoreUnavailable = errors.New("document store unavailable")
)

type GroupRepository interface {
	// FetchGroupRides returns the single document for the group, or
	// (nil, nil) when none exists. Absence is not an error.
	FetchGroupRides(ctx context.Context, chatID int64) (*models.GroupDocument, error)

	// CreateGroup inserts a new group document. Fails with
	// ErrDuplicateGroup when the chatId is already taken.
	CreateGroup(ctx context.Context, group *models.GroupDocument) error

	// ApplyMutation executes a field-level mutation against the document
	// matched by chatID, creating it first when upsert is set. Reports
	// whether any field was actually changed.
	ApplyMutation(ctx context.Context, chatID int64, mutation *Mutation, upsert bool) (bool, error)

	// ListGroupIDs returns the chat ids of every stored group.
	ListGroupIDs(ctx context.Context) ([]int64, error)
}
