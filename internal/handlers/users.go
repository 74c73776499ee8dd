package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-assignment-api/internal/constants"
	"github.com/yukikurage/task-assignment-api/internal/dto"
	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

// UserHandler coordinates account-related HTTP handlers.
type UserHandler struct {
	accountService *services.AccountService
	cookieSecure   bool
	log            *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accountService *services.AccountService, cookieSecure bool, log *logger.Logger) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		cookieSecure:   cookieSecure,
		log:            log,
	}
}

// Register creates a new Employee account.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Invalid request body").WithSuccessFlag())
		return
	}

	user, err := h.accountService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AccountResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    dto.ToUserProfileDTO(*user),
	})
}

// Login verifies credentials and sets the session cookie.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Invalid request body").WithSuccessFlag())
		return
	}

	result, err := h.accountService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, constants.SessionCookieMaxAge)

	c.JSON(http.StatusOK, dto.AccountResponse{
		Success: true,
		Message: "Login successful",
		Data: dto.LoginData{
			Token: result.Token,
			User:  dto.ToUserProfileDTO(*result.User),
		},
	})
}

// Logout expires the session cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)

	c.JSON(http.StatusOK, dto.AccountResponse{
		Success: true,
		Message: "Logged Out Successfully",
	})
}

// ListEmployees returns the users a manager can assign tasks to.
func (h *UserHandler) ListEmployees(c *gin.Context) {
	users, err := h.accountService.ListEmployees(c.Request.Context(), c.Param("managerId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountResponse{
		Success: true,
		Message: "Employees fetched successfully",
		Data:    dto.ToEmployeesData(users),
	})
}

func (h *UserHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookieName, value, maxAge, "/", "", h.cookieSecure, true)
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	apierrors.Respond(c, classify(c, h.log, err, "Internal Server Error").WithSuccessFlag())
}
