package repository

import (
	"context"

	"github.com/yukikurage/task-assignment-api/internal/constants"
	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository is a MongoDB implementation of UserRepository
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a UserRepository over the users collection
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{collection: db.Collection(constants.UsersCollection)}
}

// Create inserts a new user
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = utils.NewID()
	}

	doc, err := newUserDocument(user)
	if err != nil {
		return err
	}

	_, err = r.collection.InsertOne(ctx, doc)
	return translateMongoError(err)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	return doc.toModel(), nil
}

// FindByID finds a user by ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail finds a user by email
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// ListEmployees returns id and name of users reporting to managerID or not
// linked to any manager, excluding managerID itself.
func (r *MongoUserRepository) ListEmployees(ctx context.Context, managerID string) ([]models.User, error) {
	oid, err := primitive.ObjectIDFromHex(managerID)
	if err != nil {
		return []models.User{}, nil
	}

	filter := bson.M{
		"_id": bson.M{"$ne": oid},
		"$or": bson.A{
			bson.M{"managerId": oid},
			bson.M{"managerId": bson.M{"$exists": false}},
			bson.M{"managerId": nil},
		},
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "name": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateMongoError(err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, models.User{ID: doc.ID.Hex(), Name: doc.Name})
	}
	return users, nil
}

// LinkManager sets managerId on the unlinked users among userIDs in one
// UpdateMany. Users that already have a manager are not touched.
func (r *MongoUserRepository) LinkManager(ctx context.Context, userIDs []string, managerID string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	ids, err := toObjectIDs(userIDs)
	if err != nil {
		return 0, err
	}
	mid, err := primitive.ObjectIDFromHex(managerID)
	if err != nil {
		return 0, err
	}

	filter := bson.M{
		"_id": bson.M{"$in": ids},
		"$or": bson.A{
			bson.M{"managerId": bson.M{"$exists": false}},
			bson.M{"managerId": nil},
		},
	}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"managerId": mid}})
	if err != nil {
		return 0, translateMongoError(err)
	}
	return result.ModifiedCount, nil
}
