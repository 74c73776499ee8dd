package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-assignment-api/internal/constants"
	"github.com/yukikurage/task-assignment-api/internal/database"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/repository"
	"github.com/yukikurage/task-assignment-api/internal/services"
	"github.com/yukikurage/task-assignment-api/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "password123"

// HandlerTestSuite serves the full router over GORM on in-memory SQLite
type HandlerTestSuite struct {
	suite.Suite
	ctx    context.Context
	db     *gorm.DB
	users  repository.UserRepository
	issuer *session.Issuer
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), database.GormConfig(gormlogger.Silent))
	suite.Require().NoError(err)
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.ctx = context.Background()
	suite.Require().NoError(database.Migrate(suite.ctx, suite.db))

	suite.users = repository.NewUserRepository(suite.db)
	tasks := repository.NewTaskRepository(suite.db)
	suite.issuer = session.NewIssuer("test-secret", time.Hour)

	gin.SetMode(gin.TestMode)
	suite.router = NewRouter(RouterDeps{
		AccountService: services.NewAccountService(suite.users, suite.issuer),
		TaskService:    services.NewTaskService(tasks, suite.users, nil, logger.Nop()),
		Verifier:       suite.issuer,
		Logger:         logger.Nop(),
		AppName:        "Task Assignment API",
		CORSOrigin:     "http://localhost:5173",
	})
}

// TearDownTest runs after each test
func (suite *HandlerTestSuite) TearDownTest() {
	suite.Require().NoError(database.Close(suite.db))
}

// Helper function to create test data
func (suite *HandlerTestSuite) createUser(name string, role models.Role, managerID *string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
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

func (suite *HandlerTestSuite) sessionCookie(user *models.User) *http.Cookie {
	token, err := suite.issuer.Sign(user.ID, models.EffectiveRole(user.Role))
	suite.Require().NoError(err)
	return &http.Cookie{Name: constants.SessionCookieName, Value: token}
}

func (suite *HandlerTestSuite) perform(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		suite.Require().NoError(err)
	}
	return suite.performRaw(method, path, string(payload), cookie)
}

// performRaw sends body exactly as given, for requests that are not valid DTOs.
func (suite *HandlerTestSuite) performRaw(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

type errorBody struct {
	Success *bool  `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
