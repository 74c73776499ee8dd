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

// MongoTaskRepository is a MongoDB implementation of TaskRepository
type MongoTaskRepository struct {
	tasks *mongo.Collection
	users *mongo.Collection
}

// NewMongoTaskRepository creates a TaskRepository over the tasks collection.
// The users collection is read to resolve assignee names.
func NewMongoTaskRepository(db *mongo.Database) TaskRepository {
	return &MongoTaskRepository{
		tasks: db.Collection(constants.TasksCollection),
		users: db.Collection(constants.UsersCollection),
	}
}

// Create inserts a new task
func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = utils.NewID()
	}

	doc, err := newTaskDocument(task)
	if err != nil {
		return err
	}

	if _, err := r.tasks.InsertOne(ctx, doc); err != nil {
		return translateMongoError(err)
	}

	*task = *doc.toModel()
	return nil
}

// FindByID finds a task by ID
func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc taskDocument
	if err := r.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	return doc.toModel(), nil
}

// FindDetails loads the task and then its assignees' names in a second
// query. Names come back in assignedTo order; unknown users are left out.
func (r *MongoTaskRepository) FindDetails(ctx context.Context, id string) (*models.TaskDetails, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc taskDocument
	if err := r.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}

	details := &models.TaskDetails{Task: *doc.toModel(), Assignees: []models.Assignee{}}
	if len(doc.AssignedTo) == 0 {
		return details, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "name": 1})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": doc.AssignedTo}}, opts)
	if err != nil {
		return nil, translateMongoError(err)
	}
	defer cursor.Close(ctx)

	var users []userDocument
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translateMongoError(err)
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for _, assignee := range doc.AssignedTo {
		if name, ok := names[assignee]; ok {
			details.Assignees = append(details.Assignees, models.Assignee{ID: assignee.Hex(), Name: name})
		}
	}

	return details, nil
}

// List retrieves tasks matching filter
func (r *MongoTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := bson.M{
		"date": bson.M{"$gte": filter.DateFrom.UTC(), "$lte": filter.DateTo.UTC()},
	}

	if filter.CreatedBy != nil {
		oid, err := primitive.ObjectIDFromHex(*filter.CreatedBy)
		if err != nil {
			return []models.Task{}, nil
		}
		query["createdBy"] = oid
	}
	if filter.AssignedTo != nil {
		oid, err := primitive.ObjectIDFromHex(*filter.AssignedTo)
		if err != nil {
			return []models.Task{}, nil
		}
		query["assignedTo"] = oid
	}

	cursor, err := r.tasks.Find(ctx, query)
	if err != nil {
		return nil, translateMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateMongoError(err)
	}

	tasks := make([]models.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, *docs[i].toModel())
	}
	return tasks, nil
}

// Update applies patch with a single $set and reports how many tasks matched.
func (r *MongoTaskRepository) Update(ctx context.Context, id string, patch TaskPatch) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Details != nil {
		set["details"] = *patch.Details
	}
	if patch.Date != nil {
		set["date"] = patch.Date.UTC()
	}
	if patch.AssignedTo != nil {
		assignedTo, err := toObjectIDs(patch.AssignedTo)
		if err != nil {
			return 0, err
		}
		set["assignedTo"] = assignedTo
	}

	if len(set) == 0 {
		count, err := r.tasks.CountDocuments(ctx, bson.M{"_id": oid})
		return count, translateMongoError(err)
	}

	result, err := r.tasks.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, translateMongoError(err)
	}
	return result.MatchedCount, nil
}

// AddAssignees merges userIDs into assignedTo with $addToSet, so concurrent
// assignments never lose each other's users.
func (r *MongoTaskRepository) AddAssignees(ctx context.Context, id string, userIDs []string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	ids, err := toObjectIDs(userIDs)
	if err != nil {
		return 0, err
	}

	update := bson.M{"$addToSet": bson.M{"assignedTo": bson.M{"$each": ids}}}
	result, err := r.tasks.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return 0, translateMongoError(err)
	}
	return result.MatchedCount, nil
}

// Delete permanently removes a task
func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.tasks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translateMongoError(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
