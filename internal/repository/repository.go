package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/task-assignment-api/internal/models"
)

var (
	// ErrNotFound is returned when a lookup by id or email matches nothing.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateKey is returned when a unique index rejects a write.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task and fills in its ID
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// FindDetails finds a task by ID with its assignees resolved to names
	FindDetails(ctx context.Context, id string) (*models.TaskDetails, error)

	// List retrieves the tasks matching filter in storage order
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update applies patch to a task and reports how many tasks matched
	Update(ctx context.Context, id string, patch TaskPatch) (int64, error)

	// AddAssignees merges userIDs into the task's assignee set
	AddAssignees(ctx context.Context, id string, userIDs []string) (int64, error)

	// Delete permanently removes a task
	Delete(ctx context.Context, id string) error
}

// TaskFilter holds filtering options for listing tasks.
// Exactly one of CreatedBy and AssignedTo is expected to be set.
// DateFrom and DateTo are both inclusive.
type TaskFilter struct {
	CreatedBy  *string
	AssignedTo *string
	DateFrom   time.Time
	DateTo     time.Time
}

// TaskPatch holds the fields to change in an update. Nil fields are left
// untouched; a non-nil AssignedTo replaces the whole assignee set.
type TaskPatch struct {
	Title      *string
	Details    *string
	Date       *time.Time
	AssignedTo []string
}

// IsEmpty reports whether the patch would not change anything.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Details == nil && p.Date == nil && p.AssignedTo == nil
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user and fills in its ID
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// ListEmployees lists users reporting to managerID or not linked to any
	// manager, excluding managerID itself
	ListEmployees(ctx context.Context, managerID string) ([]models.User, error)

	// LinkManager sets managerID on every user in userIDs that has no manager yet
	LinkManager(ctx context.Context, userIDs []string, managerID string) (int64, error)
}
