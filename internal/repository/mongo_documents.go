package repository

import (
	"time"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDocument struct {
	ID        primitive.ObjectID  `bson:"_id"`
	Name      string              `bson:"name"`
	Email     string              `bson:"email,omitempty"`
	Password  string              `bson:"password,omitempty"`
	Role      string              `bson:"role,omitempty"`
	ManagerID *primitive.ObjectID `bson:"managerId,omitempty"`
}

type taskDocument struct {
	ID         primitive.ObjectID   `bson:"_id"`
	Title      string               `bson:"title"`
	Details    string               `bson:"details"`
	Date       time.Time            `bson:"date"`
	CreatedBy  primitive.ObjectID   `bson:"createdBy"`
	AssignedTo []primitive.ObjectID `bson:"assignedTo"`
}

func newUserDocument(u *models.User) (*userDocument, error) {
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return nil, err
	}

	doc := &userDocument{
		ID:       id,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		Role:     string(u.Role),
	}
	if u.HasManager() {
		managerID, err := primitive.ObjectIDFromHex(*u.ManagerID)
		if err != nil {
			return nil, err
		}
		doc.ManagerID = &managerID
	}
	return doc, nil
}

func (d *userDocument) toModel() *models.User {
	user := &models.User{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		Role:     models.Role(d.Role),
	}
	if d.ManagerID != nil && !d.ManagerID.IsZero() {
		managerID := d.ManagerID.Hex()
		user.ManagerID = &managerID
	}
	return user
}

func newTaskDocument(t *models.Task) (*taskDocument, error) {
	id, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, err
	}
	createdBy, err := primitive.ObjectIDFromHex(t.CreatedBy)
	if err != nil {
		return nil, err
	}
	assignedTo, err := toObjectIDs(t.AssignedTo)
	if err != nil {
		return nil, err
	}

	return &taskDocument{
		ID:         id,
		Title:      t.Title,
		Details:    t.Details,
		Date:       t.Date.UTC(),
		CreatedBy:  createdBy,
		AssignedTo: assignedTo,
	}, nil
}

func (d *taskDocument) toModel() *models.Task {
	assignedTo := make([]string, 0, len(d.AssignedTo))
	for _, id := range d.AssignedTo {
		assignedTo = append(assignedTo, id.Hex())
	}

	return &models.Task{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Details:    d.Details,
		Date:       d.Date.UTC(),
		CreatedBy:  d.CreatedBy.Hex(),
		AssignedTo: assignedTo,
	}
}

// toObjectIDs converts hex ids, dropping duplicates. The result is never nil
// so an empty set is stored as an empty array.
func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	result := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))

	for _, hex := range ids {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}
