package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/middleware"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

// classify maps a service error onto an API error. Unknown errors are logged
// and hidden behind a generic message.
func classify(c *gin.Context, log *logger.Logger, err error, internalMessage string) *apierrors.APIError {
	var validation *services.ValidationError

	switch {
	case errors.As(err, &validation):
		return apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, validation.Message)
	case errors.Is(err, services.ErrInvalidCredentials):
		return apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, services.ErrEmailTaken):
		return apierrors.NewAPIError(apierrors.ErrCodeAlreadyExists, "User already exists")
	case errors.Is(err, services.ErrUnauthenticated):
		return apierrors.NewAPIError(apierrors.ErrCodeUnauthorized, "User not authenticated")
	case errors.Is(err, services.ErrNotTaskCreator):
		return apierrors.NewAPIError(apierrors.ErrCodeForbidden, "Not authorized to modify this task")
	case errors.Is(err, services.ErrNotAuthorizedToDelete):
		return apierrors.NewAPIError(apierrors.ErrCodeForbidden, "Not authorized to delete this task")
	case errors.Is(err, services.ErrTaskNotFound):
		return apierrors.NewAPIError(apierrors.ErrCodeNotFound, "Task not found")
	case errors.Is(err, services.ErrNoTasks):
		message := err.Error()
		return apierrors.NewAPIError(apierrors.ErrCodeNotFound, strings.ToUpper(message[:1])+message[1:])
	case errors.Is(err, services.ErrNoEmployees):
		return apierrors.NewAPIError(apierrors.ErrCodeNotFound, "No employees found for this manager")
	default:
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.FullPath()).
			Msg(internalMessage)
		return apierrors.NewAPIError(apierrors.ErrCodeInternalError, internalMessage)
	}
}
