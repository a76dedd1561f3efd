package mongodb

import (
	"context"
	"fmt"

	"rideboard/internal/models"
	"rideboard/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type groupRepository struct {
	collection *mongo.Collection
}

func NewGroupRepository(db *mongo.Database, collectionName string) interfaces.GroupRepository {
	return &groupRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *groupRepository) FetchGroupRides(ctx context.Context, chatID int64) (*models.GroupDocument, error) {
	var group models.GroupDocument
	err := r.collection.FindOne(ctx, bson.M{"chatId": chatID}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, classifyError("failed to fetch group", err)
	}

	return &group, nil
}

func (r *groupRepository) CreateGroup(ctx context.Context, group *models.GroupDocument) error {
	_, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("chat %d: %w", group.ChatID, interfaces.ErrDuplicateGroup)
		}
		return classifyError("failed to create group", err)
	}

	return nil
}

func (r *groupRepository) ApplyMutation(ctx context.Context, chatID int64, mutation *interfaces.Mutation, upsert bool) (bool, error) {
	update := translateMutation(mutation)
	if len(update) == 0 {
		return false, nil
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"chatId": chatID},
		update,
		options.Update().SetUpsert(upsert),
	)
	if err != nil {
		return false, classifyError("failed to apply mutation", err)
	}

	return result.ModifiedCount > 0 || result.UpsertedCount > 0, nil
}

func (r *groupRepository) ListGroupIDs(ctx context.Context) ([]int64, error) {
	values, err := r.collection.Distinct(ctx, "chatId", bson.M{})
	if err != nil {
		return nil, classifyError("failed to list groups", err)
	}

	ids := make([]int64, 0, len(values))
	for _, v := range values {
		switch id := v.(type) {
		case int64:
			ids = append(ids, id)
		case int32:
			ids = append(ids, int64(id))
		}
	}

	return ids, nil
}

// translateMutation converts the store-agnostic mutation into Mongo update
// syntax. Only $set and $unset are in the mutation vocabulary.
func translateMutation(mutation *interfaces.Mutation) bson.M {
	update := bson.M{}

	if sets := mutation.Sets(); len(sets) > 0 {
		set := bson.M{}
		for path, value := range sets {
			set[path] = value
		}
		update["$set"] = set
	}

	if unsets := mutation.Unsets(); len(unsets) > 0 {
		unset := bson.M{}
		for _, path := range unsets {
			unset[path] = ""
		}
		update["$unset"] = unset
	}

	return update
}

func classifyError(msg string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w: %v", msg, interfaces.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
