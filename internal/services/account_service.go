package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/repository"
	"github.com/yukikurage/task-assignment-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNoEmployees          = errors.New("no employees found for this manager")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// TokenSigner issues session tokens.
type TokenSigner interface {
	Sign(userID string, role models.Role) (string, error)
}

// AccountService handles registration, login and the employee directory.
type AccountService struct {
	userRepo repository.UserRepository
	signer   TokenSigner
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, signer TokenSigner) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		signer:   signer,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new Employee account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	switch {
	case name == "":
		return nil, invalidArgument("name is required")
	case email == "":
		return nil, invalidArgument("email is required")
	case input.Password == "":
		return nil, invalidArgument("password is required")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleEmployee,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a verified user plus the session token issued for it.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and issues a session token carrying the
// user's effective role.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, invalidArgument("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Role = models.EffectiveRole(user.Role)
	token, err := s.signer.Sign(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// ListEmployees returns the users a manager can assign: its own reports and
// everyone not yet linked to a manager.
func (s *AccountService) ListEmployees(ctx context.Context, managerID string) ([]models.User, error) {
	managerID = utils.NormalizeID(managerID)
	if !utils.IsValidID(managerID) {
		return nil, invalidArgument("Invalid manager ID")
	}

	users, err := s.userRepo.ListEmployees(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoEmployees
	}

	return users, nil
}
