package repository

import (
	"context"

	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = utils.NewID()
	}
	return translateGormError(r.db.WithContext(ctx).Create(user).Error)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

// ListEmployees returns the id and name of every user that reports to
// managerID or has no manager yet. The manager never lists itself.
func (r *GormUserRepository) ListEmployees(ctx context.Context, managerID string) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id <> ?", managerID).
		Where("manager_id = ? OR manager_id IS NULL OR manager_id = ''", managerID).
		Find(&users).Error
	if err != nil {
		return nil, translateGormError(err)
	}
	return users, nil
}

// LinkManager sets manager_id on the unlinked users among userIDs. Users that
// already report to someone keep their manager.
func (r *GormUserRepository) LinkManager(ctx context.Context, userIDs []string, managerID string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN ?", userIDs).
		Where("manager_id IS NULL OR manager_id = ''").
		Update("manager_id", managerID)
	if result.Error != nil {
		return 0, translateGormError(result.Error)
	}
	return result.RowsAffected, nil
}
