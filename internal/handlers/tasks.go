package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-assignment-api/internal/dto"
	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/middleware"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	log         *logger.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// CreateTask creates a task owned by the manager in the path.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetail(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetIdentity(c), services.CreateTaskInput{
		ManagerID:   c.Param("id"),
		Title:       req.Title,
		Details:     req.Details,
		Date:        req.Date,
		EmployeeIDs: req.EmployeeIDs,
	})
	if err != nil {
		h.respondError(c, err, "Error creating task")
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{
		Message: "Task created successfully",
		Task:    dto.ToTaskDTO(*task),
	})
}

// AssignTask adds employees to a task.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	body, _ := bindRawBody(c)
	req := body.AssignTaskRequest()

	task, err := h.taskService.AssignTask(c.Request.Context(), middleware.GetIdentity(c), services.AssignTaskInput{
		TaskID:      c.Param("id"),
		ManagerID:   c.Param("managerId"),
		EmployeeIDs: req.EmployeeIDs,
	})
	if err != nil {
		h.respondError(c, err, "Error adding employees to task")
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Message: "Employees added to the task successfully",
		Task:    dto.ToTaskDTO(*task),
	})
}

// UpdateTask applies a partial update for the authenticated manager.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	body, ok := bindRawBody(c)
	req, malformed := body.UpdateTaskRequest()
	if !ok {
		malformed = "Invalid request body"
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetIdentity(c), services.UpdateTaskInput{
		TaskID:      c.Param("taskId"),
		ManagerID:   c.Param("managerId"),
		Title:       req.Title,
		Details:     req.Details,
		Date:        req.Date,
		EmployeeIDs: req.EmployeeIDs,
		Malformed:   malformed,
	})
	if err != nil {
		h.respondError(c, err, "Error updating task")
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Message: "Task updated successfully",
		Task:    dto.ToTaskDTO(*task),
	})
}

// DeleteTask permanently removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetIdentity(c), c.Param("taskId"))
	if err != nil {
		h.respondError(c, err, "Error deleting task")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task removed successfully"})
}

// ListTasks returns one month of tasks for a manager or an employee.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var req dto.ListTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), middleware.GetIdentity(c), services.ListTasksInput{
		SubjectID: c.Param("id"),
		Role:      req.Role,
		Date:      req.Date,
	})
	if err != nil {
		h.respondError(c, err, "Error retrieving tasks")
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Message: "Tasks retrieved successfully",
		Tasks:   dto.ToTaskDTOs(tasks),
	})
}

// GetTaskDetails returns a task with its assignees' names.
func (h *TaskHandler) GetTaskDetails(c *gin.Context) {
	details, err := h.taskService.GetTaskDetails(c.Request.Context(), middleware.GetIdentity(c), c.Param("taskId"))
	if err != nil {
		h.respondError(c, err, "Error retrieving task")
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Message: "Task retrieved successfully",
		Task:    dto.ToTaskDetailsDTO(*details),
	})
}

// bindRawBody reads a JSON object body without checking field types. An
// empty body reads as an empty object; ok is false only for a body that is
// not a JSON object at all.
func bindRawBody(c *gin.Context) (body dto.RawBody, ok bool) {
	if err := c.ShouldBindJSON(&body); err != nil {
		return dto.RawBody{}, errors.Is(err, io.EOF)
	}
	return body, true
}

func (h *TaskHandler) respondError(c *gin.Context, err error, internalMessage string) {
	apierrors.Respond(c, classify(c, h.log, err, internalMessage))
}
