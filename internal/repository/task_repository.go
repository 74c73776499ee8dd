package repository

import (
	"context"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func orderedAssignments(db *gorm.DB) *gorm.DB {
	return db.Order("task_assignments.position ASC")
}

// fillAssignedTo copies the preloaded assignment rows into AssignedTo.
func fillAssignedTo(task *models.Task) {
	task.AssignedTo = make([]string, 0, len(task.Assignments))
	for _, a := range task.Assignments {
		task.AssignedTo = append(task.AssignedTo, a.UserID)
	}
}

func buildAssignments(taskID string, userIDs []string, offset int) []models.TaskAssignment {
	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{
			TaskID:   taskID,
			UserID:   userID,
			Position: offset + i,
		}
	}
	return assignments
}

// Create creates a new task together with its assignment rows
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = utils.NewID()
	}
	task.AssignedTo = utils.UniqueIDs(task.AssignedTo)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		if len(task.AssignedTo) == 0 {
			return nil
		}
		assignments := buildAssignments(task.ID, task.AssignedTo, 0)
		return tx.Omit(clause.Associations).Create(&assignments).Error
	})
	return translateGormError(err)
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Assignments", orderedAssignments).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, translateGormError(err)
	}

	fillAssignedTo(&task)
	return &task, nil
}

// FindDetails finds a task by ID and resolves its assignees to names.
// Assignees whose user no longer exists are left out.
func (r *GormTaskRepository) FindDetails(ctx context.Context, id string) (*models.TaskDetails, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Assignments", orderedAssignments).
		Preload("Assignments.User").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, translateGormError(err)
	}

	fillAssignedTo(&task)
	details := &models.TaskDetails{Task: task, Assignees: []models.Assignee{}}
	for _, a := range task.Assignments {
		if a.User.ID == "" {
			continue
		}
		details.Assignees = append(details.Assignees, models.Assignee{ID: a.User.ID, Name: a.User.Name})
	}
	details.Assignments = nil

	return details, nil
}

// List retrieves tasks matching filter
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	db := r.db.WithContext(ctx)

	query := db.Model(&models.Task{}).
		Where("tasks.date >= ? AND tasks.date <= ?", filter.DateFrom, filter.DateTo)

	if filter.CreatedBy != nil {
		query = query.Where("tasks.created_by = ?", *filter.CreatedBy)
	}
	if filter.AssignedTo != nil {
		assignmentSubQuery := db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.AssignedTo)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}

	if err := query.Preload("Assignments", orderedAssignments).Find(&tasks).Error; err != nil {
		return nil, translateGormError(err)
	}

	for i := range tasks {
		fillAssignedTo(&tasks[i])
		tasks[i].Assignments = nil
	}
	return tasks, nil
}

// exists reports whether a task row with id is present.
func (r *GormTaskRepository) exists(tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update applies patch to a task. The returned count is the number of tasks
// matched, which is 1 even when the values were already identical.
func (r *GormTaskRepository) Update(ctx context.Context, id string, patch TaskPatch) (int64, error) {
	var matched int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := r.exists(tx, id)
		if err != nil || !found {
			return err
		}
		matched = 1

		updates := map[string]interface{}{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Details != nil {
			updates["details"] = *patch.Details
		}
		if patch.Date != nil {
			updates["date"] = *patch.Date
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.AssignedTo == nil {
			return nil
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		assignedTo := utils.UniqueIDs(patch.AssignedTo)
		if len(assignedTo) == 0 {
			return nil
		}
		assignments := buildAssignments(id, assignedTo, 0)
		return tx.Omit(clause.Associations).Create(&assignments).Error
	})
	if err != nil {
		return 0, translateGormError(err)
	}
	return matched, nil
}

// AddAssignees adds userIDs to a task, skipping users already assigned.
func (r *GormTaskRepository) AddAssignees(ctx context.Context, id string, userIDs []string) (int64, error) {
	var matched int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := r.exists(tx, id)
		if err != nil || !found {
			return err
		}
		matched = 1

		userIDs = utils.UniqueIDs(userIDs)
		if len(userIDs) == 0 {
			return nil
		}

		var next int
		if err := tx.Model(&models.TaskAssignment{}).
			Where("task_id = ?", id).
			Select("COALESCE(MAX(position) + 1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}

		assignments := buildAssignments(id, userIDs, next)
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&assignments).Error
	})
	if err != nil {
		return 0, translateGormError(err)
	}
	return matched, nil
}

// Delete permanently removes a task and its assignment rows
func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateGormError(err)
}
