package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-assignment-api/internal/database"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/repository"
	"github.com/yukikurage/task-assignment-api/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeCache records cache traffic in memory
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]*models.TaskDetails
	invalidated []string
	hits        int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*models.TaskDetails{}}
}

func (c *fakeCache) GetTaskDetails(_ context.Context, taskID string) (*models.TaskDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	details, ok := c.entries[taskID]
	if ok {
		c.hits++
	}
	return details, ok
}

func (c *fakeCache) SetTaskDetails(_ context.Context, details *models.TaskDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[details.ID] = details
}

func (c *fakeCache) InvalidateTask(_ context.Context, taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, taskID)
	c.invalidated = append(c.invalidated, taskID)
}

// failingLinkRepo fails every LinkManager call
type failingLinkRepo struct {
	repository.UserRepository
}

func (failingLinkRepo) LinkManager(context.Context, []string, string) (int64, error) {
	return 0, errors.New("link failed")
}

// ServiceTestSuite wires both services to GORM on in-memory SQLite
type ServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	users    repository.UserRepository
	tasks    repository.TaskRepository
	cache    *fakeCache
	issuer   *session.Issuer
	accounts *AccountService
	service  *TaskService
}

func (suite *ServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), database.GormConfig(gormlogger.Silent))
	suite.Require().NoError(err)
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.ctx = context.Background()
	suite.Require().NoError(database.Migrate(suite.ctx, suite.db))

	suite.users = repository.NewUserRepository(suite.db)
	suite.tasks = repository.NewTaskRepository(suite.db)
	suite.cache = newFakeCache()
	suite.issuer = session.NewIssuer("test-secret", time.Hour)
	suite.accounts = NewAccountService(suite.users, suite.issuer)
	suite.service = NewTaskService(suite.tasks, suite.users, suite.cache, logger.Nop())
}

func (suite *ServiceTestSuite) TearDownTest() {
	suite.Require().NoError(database.Close(suite.db))
}

func (suite *ServiceTestSuite) createUser(name string, role models.Role, managerID *string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &models.User{
		Name:      name,
		Email:     name + "@example.com",
		Password:  string(hash),
		Role:      role,
		ManagerID: managerID,
	}
	suite.Require().NoError(suite.users.Create(suite.ctx, user))
	return user
}

func (suite *ServiceTestSuite) createTask(managerID, date string, employeeIDs ...string) *models.Task {
	task, err := suite.service.CreateTask(suite.ctx, nil, CreateTaskInput{
		ManagerID:   managerID,
		Title:       "Quarterly report",
		Details:     "Collect numbers",
		Date:        date,
		EmployeeIDs: employeeIDs,
	})
	suite.Require().NoError(err)
	return task
}

func identityOf(user *models.User) *session.Identity {
	return &session.Identity{UserID: user.ID, Role: models.EffectiveRole(user.Role)}
}
