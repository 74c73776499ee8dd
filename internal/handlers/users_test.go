package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-assignment-api/internal/constants"
	"github.com/yukikurage/task-assignment-api/internal/dto"
	"github.com/yukikurage/task-assignment-api/internal/models"
)

// UserHandlerTestSuite covers the /api/users routes
type UserHandlerTestSuite struct {
	HandlerTestSuite
}

type profileResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    dto.UserProfileDTO `json:"data"`
}

type loginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    dto.LoginData `json:"data"`
}

type employeesResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    dto.EmployeesData `json:"data"`
}

func (suite *UserHandlerTestSuite) TestRegister() {
	w := suite.perform(http.MethodPost, "/api/users/register", dto.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: testPassword,
	}, nil)

	suite.Equal(http.StatusCreated, w.Code)
	var body profileResponse
	suite.decode(w, &body)
	suite.True(body.Success)
	suite.Equal("User registered successfully", body.Message)
	suite.Equal("alice", body.Data.Name)
	suite.Equal(models.RoleEmployee, body.Data.Role)
	suite.Len(body.Data.ID, 24)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *UserHandlerTestSuite) TestRegisterDuplicateEmail() {
	suite.createUser("alice", models.RoleEmployee, nil)

	w := suite.perform(http.MethodPost, "/api/users/register", dto.RegisterRequest{
		Name:     "alice again",
		Email:    "alice@example.com",
		Password: testPassword,
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body errorBody
	suite.decode(w, &body)
	suite.Require().NotNil(body.Success)
	suite.False(*body.Success)
	suite.Equal("ALREADY_EXISTS", body.Code)
	suite.Equal("User already exists", body.Message)
}

func (suite *UserHandlerTestSuite) TestRegisterMissingFields() {
	w := suite.perform(http.MethodPost, "/api/users/register", dto.RegisterRequest{Name: "bob"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body errorBody
	suite.decode(w, &body)
	suite.Equal("INVALID_INPUT", body.Code)
	suite.Equal("email is required", body.Message)
}

func (suite *UserHandlerTestSuite) TestRegisterInvalidBody() {
	w := suite.perform(http.MethodPost, "/api/users/register", "not an object", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body errorBody
	suite.decode(w, &body)
	suite.Equal("Invalid request body", body.Message)
	suite.Require().NotNil(body.Success)
	suite.False(*body.Success)
}

func (suite *UserHandlerTestSuite) TestLoginSetsSessionCookie() {
	manager := suite.createUser("carol", models.RoleManager, nil)

	w := suite.perform(http.MethodPost, "/api/users/login", dto.LoginRequest{
		Email:    "carol@example.com",
		Password: testPassword,
	}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var body loginResponse
	suite.decode(w, &body)
	suite.True(body.Success)
	suite.Equal("Login successful", body.Message)
	suite.Equal(manager.ID, body.Data.User.ID)
	suite.Equal(models.RoleManager, body.Data.User.Role)
	suite.NotEmpty(body.Data.Token)

	cookie := findCookie(w, constants.SessionCookieName)
	suite.Require().NotNil(cookie)
	suite.Equal(body.Data.Token, cookie.Value)
	suite.True(cookie.HttpOnly)
	suite.Equal(http.SameSiteLaxMode, cookie.SameSite)
	suite.Equal(constants.SessionCookieMaxAge, cookie.MaxAge)

	identity, err := suite.issuer.Verify(cookie.Value)
	suite.Require().NoError(err)
	suite.Equal(manager.ID, identity.UserID)
	suite.True(identity.IsManager())
}

func (suite *UserHandlerTestSuite) TestLoginUnknownRoleIsEmployee() {
	suite.createUser("dave", models.Role("Admin"), nil)

	w := suite.perform(http.MethodPost, "/api/users/login", dto.LoginRequest{
		Email:    "dave@example.com",
		Password: testPassword,
	}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var body loginResponse
	suite.decode(w, &body)
	suite.Equal(models.RoleEmployee, body.Data.User.Role)
}

func (suite *UserHandlerTestSuite) TestLoginWrongPassword() {
	suite.createUser("erin", models.RoleEmployee, nil)

	for _, req := range []dto.LoginRequest{
		{Email: "erin@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: testPassword},
	} {
		w := suite.perform(http.MethodPost, "/api/users/login", req, nil)

		suite.Equal(http.StatusBadRequest, w.Code)
		var body errorBody
		suite.decode(w, &body)
		suite.Equal("INVALID_CREDENTIALS", body.Code)
		suite.Equal("Invalid email or password", body.Message)
		suite.Nil(findCookie(w, constants.SessionCookieName))
	}
}

func (suite *UserHandlerTestSuite) TestLogoutClearsCookie() {
	w := suite.perform(http.MethodPost, "/api/users/logout", nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true,"message":"Logged Out Successfully"}`, w.Body.String())

	cookie := findCookie(w, constants.SessionCookieName)
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)
	suite.Less(cookie.MaxAge, 0)
}

func (suite *UserHandlerTestSuite) TestListEmployees() {
	manager := suite.createUser("frank", models.RoleManager, nil)
	other := suite.createUser("grace", models.RoleManager, nil)
	own := suite.createUser("heidi", models.RoleEmployee, &manager.ID)
	free := suite.createUser("ivan", models.RoleEmployee, nil)
	suite.createUser("judy", models.RoleEmployee, &other.ID)

	w := suite.perform(http.MethodGet, "/api/users/"+manager.ID, nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	var body employeesResponse
	suite.decode(w, &body)
	suite.True(body.Success)
	suite.Equal("Employees fetched successfully", body.Message)

	ids := make([]string, 0, len(body.Data.Employees))
	for _, e := range body.Data.Employees {
		ids = append(ids, e.ID)
	}
	suite.ElementsMatch([]string{own.ID, free.ID, other.ID}, ids)
	suite.NotContains(ids, manager.ID)
	suite.NotContains(w.Body.String(), "email")
}

func (suite *UserHandlerTestSuite) TestListEmployeesErrors() {
	w := suite.perform(http.MethodGet, "/api/users/not-an-id", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	manager := suite.createUser("kim", models.RoleManager, nil)
	w = suite.perform(http.MethodGet, "/api/users/"+manager.ID, nil, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	var body errorBody
	suite.decode(w, &body)
	suite.Equal("NOT_FOUND", body.Code)
	suite.Require().NotNil(body.Success)
	suite.False(*body.Success)
}

// TestUserHandlerTestSuite runs the test suite
func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
