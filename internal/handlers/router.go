package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/middleware"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

// RouterDeps holds everything the HTTP surface needs.
type RouterDeps struct {
	AccountService *services.AccountService
	TaskService    *services.TaskService
	Verifier       middleware.TokenVerifier
	Logger         *logger.Logger
	AppName        string
	CORSOrigin     string
	CookieSecure   bool
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(deps.CORSOrigin),
		middleware.ResolveIdentity(deps.Verifier),
	)

	userHandler := NewUserHandler(deps.AccountService, deps.CookieSecure, deps.Logger)
	taskHandler := NewTaskHandler(deps.TaskService, deps.Logger)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": deps.AppName + " is running",
		})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", userHandler.Logout)
			users.GET("/:managerId", userHandler.ListEmployees)
		}

		// POST routes share the first wildcard, so it is named :id and means
		// the manager or the task depending on the route.
		tasks := api.Group("/tasks")
		{
			tasks.POST("/:id", taskHandler.CreateTask)
			tasks.POST("/:id/tasks", taskHandler.ListTasks)
			tasks.POST("/:id/:managerId/employees", taskHandler.AssignTask)
			tasks.GET("/:taskId", taskHandler.GetTaskDetails)
			tasks.PUT("/:taskId/:managerId", middleware.RequireManager(), taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", middleware.RequireManager(), taskHandler.DeleteTask)
		}
	}

	return r
}
