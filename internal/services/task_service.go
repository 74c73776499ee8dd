package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/repository"
	"github.com/yukikurage/task-assignment-api/internal/session"
	"github.com/yukikurage/task-assignment-api/internal/utils"
)

var (
	ErrUnauthenticated       = errors.New("user not authenticated")
	ErrTaskNotFound          = errors.New("task not found")
	ErrNotTaskCreator        = errors.New("not authorized to modify this task")
	ErrNotAuthorizedToDelete = errors.New("not authorized to delete this task")
	ErrNoTasks               = errors.New("no tasks found for the specified month")
)

// TaskDetailsCache is the read-through cache in front of FindDetails.
type TaskDetailsCache interface {
	GetTaskDetails(ctx context.Context, taskID string) (*models.TaskDetails, bool)
	SetTaskDetails(ctx context.Context, details *models.TaskDetails)
	InvalidateTask(ctx context.Context, taskID string)
}

type noopCache struct{}

func (noopCache) GetTaskDetails(context.Context, string) (*models.TaskDetails, bool) {
	return nil, false
}
func (noopCache) SetTaskDetails(context.Context, *models.TaskDetails) {}
func (noopCache) InvalidateTask(context.Context, string)              {}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	cache    TaskDetailsCache
	log      *logger.Logger
}

// NewTaskService creates a new TaskService. A nil cache disables caching.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, cache TaskDetailsCache, log *logger.Logger) *TaskService {
	if cache == nil {
		cache = noopCache{}
	}
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    cache,
		log:      log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ManagerID   string
	Title       string
	Details     string
	Date        string
	EmployeeIDs []string
}

// AssignTaskInput represents input for adding employees to a task
type AssignTaskInput struct {
	TaskID      string
	ManagerID   string
	EmployeeIDs []string
}

// UpdateTaskInput represents a partial update. Empty strings leave the field
// unchanged and a nil EmployeeIDs leaves the assignees unchanged.
type UpdateTaskInput struct {
	TaskID      string
	ManagerID   string
	Title       string
	Details     string
	Date        string
	EmployeeIDs []string

	// Malformed, when set, is the validation message for a body field of the
	// wrong type. It is reported only after the ownership check passes.
	Malformed string
}

// ListTasksInput selects one month of tasks for a manager or an employee
type ListTasksInput struct {
	SubjectID string
	Role      string
	Date      string
}

func callerID(caller *session.Identity) string {
	if caller == nil {
		return ""
	}
	return caller.UserID
}

// CreateTask creates a task owned by the manager and links every listed
// employee that has no manager yet to this manager.
func (s *TaskService) CreateTask(ctx context.Context, caller *session.Identity, input CreateTaskInput) (*models.Task, error) {
	input.ManagerID = utils.NormalizeID(input.ManagerID)
	input.EmployeeIDs = utils.NormalizeIDs(input.EmployeeIDs)

	if !utils.IsValidID(input.ManagerID) {
		return nil, invalidArgument("Invalid manager ID")
	}
	if input.Title == "" {
		return nil, invalidArgument("title is required")
	}
	if input.Details == "" {
		return nil, invalidArgument("details is required")
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, invalidArgument("Invalid date format")
	}
	if !utils.AllValidIDs(input.EmployeeIDs) {
		return nil, invalidArgument("Invalid employee IDs")
	}

	task := &models.Task{
		Title:      input.Title,
		Details:    input.Details,
		Date:       date,
		CreatedBy:  input.ManagerID,
		AssignedTo: utils.UniqueIDs(input.EmployeeIDs),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(task.AssignedTo) > 0 {
		// The task is already stored; a failed link leaves employees unlinked
		// until their next assignment.
		linked, err := s.userRepo.LinkManager(ctx, task.AssignedTo, input.ManagerID)
		if err != nil {
			s.log.Warn().Err(err).
				Str("task_id", task.ID).
				Str("manager_id", input.ManagerID).
				Msg("failed to link employees to manager")
		} else if linked > 0 {
			s.log.Debug().Int64("linked", linked).Str("manager_id", input.ManagerID).Msg("linked employees to manager")
		}
	}

	s.log.Info().Str("task_id", task.ID).Str("manager_id", input.ManagerID).Str("caller_id", callerID(caller)).Msg("task created")
	return task, nil
}

// AssignTask adds employees to a task owned by the manager. Employees that
// are already assigned are skipped.
func (s *TaskService) AssignTask(ctx context.Context, caller *session.Identity, input AssignTaskInput) (*models.Task, error) {
	input.TaskID = utils.NormalizeID(input.TaskID)
	input.ManagerID = utils.NormalizeID(input.ManagerID)
	input.EmployeeIDs = utils.NormalizeIDs(input.EmployeeIDs)

	if input.ManagerID == "" {
		return nil, ErrUnauthenticated
	}
	if !utils.IsValidID(input.TaskID) {
		return nil, invalidArgument("Invalid task ID")
	}

	task, err := s.findTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if !task.IsCreatedBy(input.ManagerID) {
		return nil, ErrNotTaskCreator
	}

	if input.EmployeeIDs == nil || !utils.AllValidIDs(input.EmployeeIDs) {
		return nil, invalidArgument("Invalid employee IDs")
	}

	matched, err := s.taskRepo.AddAssignees(ctx, input.TaskID, utils.UniqueIDs(input.EmployeeIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to assign employees: %w", err)
	}
	if matched == 0 {
		return nil, ErrTaskNotFound
	}
	s.cache.InvalidateTask(ctx, input.TaskID)

	s.log.Info().Str("task_id", input.TaskID).Str("manager_id", input.ManagerID).Str("caller_id", callerID(caller)).Msg("employees assigned to task")
	return s.findTask(ctx, input.TaskID)
}

// UpdateTask applies a partial update on behalf of the authenticated manager
// named in the input.
func (s *TaskService) UpdateTask(ctx context.Context, caller *session.Identity, input UpdateTaskInput) (*models.Task, error) {
	input.TaskID = utils.NormalizeID(input.TaskID)
	input.ManagerID = utils.NormalizeID(input.ManagerID)
	input.EmployeeIDs = utils.NormalizeIDs(input.EmployeeIDs)

	if !caller.IsManager() || caller.UserID != input.ManagerID {
		return nil, ErrUnauthenticated
	}
	if !utils.IsValidID(input.TaskID) {
		return nil, invalidArgument("Invalid task ID")
	}

	task, err := s.findTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if !task.IsCreatedBy(caller.UserID) {
		return nil, ErrNotTaskCreator
	}

	if input.Malformed != "" {
		return nil, invalidArgument(input.Malformed)
	}
	if input.EmployeeIDs != nil && !utils.AllValidIDs(input.EmployeeIDs) {
		return nil, invalidArgument("Invalid employee IDs in employeeIds array")
	}

	var patch repository.TaskPatch
	if input.Title != "" {
		patch.Title = &input.Title
	}
	if input.Details != "" {
		patch.Details = &input.Details
	}
	if input.Date != "" {
		date, err := utils.ParseDate(input.Date)
		if err != nil {
			return nil, invalidArgument("Invalid date format")
		}
		patch.Date = &date
	}
	if input.EmployeeIDs != nil && !utils.SameIDSet(task.AssignedTo, input.EmployeeIDs) {
		patch.AssignedTo = utils.UniqueIDs(input.EmployeeIDs)
	}

	if patch.IsEmpty() {
		return task, nil
	}

	matched, err := s.taskRepo.Update(ctx, input.TaskID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if matched == 0 {
		return nil, ErrTaskNotFound
	}
	s.cache.InvalidateTask(ctx, input.TaskID)

	s.log.Info().Str("task_id", input.TaskID).Str("manager_id", caller.UserID).Msg("task updated")
	return s.findTask(ctx, input.TaskID)
}

// DeleteTask permanently removes a task owned by the authenticated manager.
// A missing task and a task owned by someone else are reported the same way.
func (s *TaskService) DeleteTask(ctx context.Context, caller *session.Identity, taskID string) error {
	if !caller.IsManager() {
		return ErrUnauthenticated
	}
	taskID = utils.NormalizeID(taskID)
	if !utils.IsValidID(taskID) {
		return invalidArgument("Invalid task ID")
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAuthorizedToDelete
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	if !task.IsCreatedBy(caller.UserID) {
		return ErrNotAuthorizedToDelete
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAuthorizedToDelete
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.cache.InvalidateTask(ctx, taskID)

	s.log.Info().Str("task_id", taskID).Str("manager_id", caller.UserID).Msg("task deleted")
	return nil
}

// ListTasks returns the tasks of one UTC calendar month: those created by
// the subject for a Manager, those assigned to the subject for an Employee.
func (s *TaskService) ListTasks(ctx context.Context, caller *session.Identity, input ListTasksInput) ([]models.Task, error) {
	input.SubjectID = utils.NormalizeID(input.SubjectID)
	if !utils.IsValidID(input.SubjectID) {
		return nil, invalidArgument("Invalid ID")
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, invalidArgument("Invalid date format")
	}
	role, ok := models.ParseRole(input.Role)
	if !ok {
		return nil, invalidArgument("Invalid role")
	}

	from, to := utils.MonthRange(date)
	filter := repository.TaskFilter{DateFrom: from, DateTo: to}
	if role == models.RoleManager {
		filter.CreatedBy = &input.SubjectID
	} else {
		filter.AssignedTo = &input.SubjectID
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w for the %s", ErrNoTasks, role)
	}

	s.log.Debug().Str("subject_id", input.SubjectID).Str("role", string(role)).Str("caller_id", callerID(caller)).Int("count", len(tasks)).Msg("tasks listed")
	return tasks, nil
}

// GetTaskDetails returns a task with assignees resolved to names.
func (s *TaskService) GetTaskDetails(ctx context.Context, caller *session.Identity, taskID string) (*models.TaskDetails, error) {
	if taskID == "" {
		return nil, invalidArgument("Task ID is required")
	}
	taskID = utils.NormalizeID(taskID)
	if !utils.IsValidID(taskID) {
		return nil, invalidArgument("Invalid Task ID")
	}

	if details, ok := s.cache.GetTaskDetails(ctx, taskID); ok {
		return details, nil
	}

	details, err := s.taskRepo.FindDetails(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	s.cache.SetTaskDetails(ctx, details)

	s.log.Debug().Str("task_id", taskID).Str("caller_id", callerID(caller)).Msg("task details loaded")
	return details, nil
}

func (s *TaskService) findTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
