package dto

import (
	"time"

	"github.com/yukikurage/task-assignment-api/internal/models"
)

// CreateTaskRequest is the body of POST /api/tasks/:managerId
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Details     string   `json:"details"`
	Date        string   `json:"date"`
	EmployeeIDs []string `json:"employeeIds"`
}

// AssignTaskRequest is the body of POST /api/tasks/:taskId/:managerId/employees
type AssignTaskRequest struct {
	EmployeeIDs []string `json:"employeeIds"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/:taskId/:managerId.
// A nil EmployeeIDs means the field was absent.
type UpdateTaskRequest struct {
	Title       string   `json:"title"`
	Details     string   `json:"details"`
	Date        string   `json:"date"`
	EmployeeIDs []string `json:"employeeIds"`
}

// ListTasksRequest is the body of POST /api/tasks/:managerId/tasks
type ListTasksRequest struct {
	Role string `json:"role"`
	Date string `json:"date"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Details    string    `json:"details"`
	Date       time.Time `json:"date"`
	AssignedTo []string  `json:"assignedTo"`
	CreatedBy  string    `json:"createdBy"`
}

// AssigneeDTO is an assignee resolved to its name
type AssigneeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskDetailsDTO is a task whose assignees are expanded to {id, name}
type TaskDetailsDTO struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Details    string        `json:"details"`
	Date       time.Time     `json:"date"`
	AssignedTo []AssigneeDTO `json:"assignedTo"`
	CreatedBy  string        `json:"createdBy"`
}

// TaskResponse wraps a single task
type TaskResponse struct {
	Message string      `json:"message"`
	Task    interface{} `json:"task"`
}

// TaskListResponse wraps a month of tasks
type TaskListResponse struct {
	Message string    `json:"message"`
	Tasks   []TaskDTO `json:"tasks"`
}

// MessageResponse carries only a message
type MessageResponse struct {
	Message string `json:"message"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	assignedTo := task.AssignedTo
	if assignedTo == nil {
		assignedTo = []string{}
	}

	return TaskDTO{
		ID:         task.ID,
		Title:      task.Title,
		Details:    task.Details,
		Date:       task.Date.UTC(),
		AssignedTo: assignedTo,
		CreatedBy:  task.CreatedBy,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToTaskDetailsDTO converts TaskDetails to TaskDetailsDTO
func ToTaskDetailsDTO(details models.TaskDetails) TaskDetailsDTO {
	assignees := make([]AssigneeDTO, len(details.Assignees))
	for i, a := range details.Assignees {
		assignees[i] = AssigneeDTO{ID: a.ID, Name: a.Name}
	}

	return TaskDetailsDTO{
		ID:         details.ID,
		Title:      details.Title,
		Details:    details.Details,
		Date:       details.Date.UTC(),
		AssignedTo: assignees,
		CreatedBy:  details.CreatedBy,
	}
}
