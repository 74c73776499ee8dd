package database

import (
	"context"
	"fmt"

	"github.com/yukikurage/task-assignment-api/internal/constants"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoIndex struct {
	collection string
	name       string
	keys       bson.D
	unique     bool
}

// mongoIndexes backs the email uniqueness rule and the two monthly listings.
var mongoIndexes = []mongoIndex{
	{constants.UsersCollection, "idx_users_email", bson.D{{Key: "email", Value: 1}}, true},
	{constants.UsersCollection, "idx_users_manager_id", bson.D{{Key: "managerId", Value: 1}}, false},
	{constants.TasksCollection, "idx_tasks_created_by_date", bson.D{{Key: "createdBy", Value: 1}, {Key: "date", Value: 1}}, false},
	{constants.TasksCollection, "idx_tasks_assigned_to_date", bson.D{{Key: "assignedTo", Value: 1}, {Key: "date", Value: 1}}, false},
}

// EnsureMongoIndexes creates the document store indexes. Creating an index
// that already exists with the same keys and options is a no-op.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range mongoIndexes {
		model := mongo.IndexModel{
			Keys:    idx.keys,
			Options: options.Index().SetName(idx.name).SetUnique(idx.unique),
		}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}
