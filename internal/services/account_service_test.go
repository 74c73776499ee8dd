package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/utils"
)

type AccountServiceTestSuite struct {
	ServiceTestSuite
}

func (suite *AccountServiceTestSuite) TestRegister() {
	user, err := suite.accounts.Register(suite.ctx, RegisterInput{
		Name:     "  Ann  ",
		Email:    " ann@example.com ",
		Password: "password123",
	})
	suite.Require().NoError(err)
	suite.True(utils.IsValidID(user.ID))
	suite.Equal("Ann", user.Name)
	suite.Equal(models.RoleEmployee, user.Role)
	suite.False(user.HasManager())

	stored, err := suite.users.FindByEmail(suite.ctx, "ann@example.com")
	suite.Require().NoError(err)
	suite.NotEqual("password123", stored.Password)
}

func (suite *AccountServiceTestSuite) TestRegister_DuplicateEmail() {
	suite.createUser("ann", models.RoleEmployee, nil)

	_, err := suite.accounts.Register(suite.ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "pw"})
	suite.ErrorIs(err, ErrEmailTaken)
}

func (suite *AccountServiceTestSuite) TestRegister_MissingFields() {
	inputs := []RegisterInput{
		{Email: "a@example.com", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@example.com"},
		{Name: "   ", Email: "a@example.com", Password: "pw"},
	}
	for _, input := range inputs {
		_, err := suite.accounts.Register(suite.ctx, input)
		suite.ErrorIs(err, ErrInvalidArgument)
	}
}

func (suite *AccountServiceTestSuite) TestLogin() {
	manager := suite.createUser("boss", models.RoleManager, nil)

	result, err := suite.accounts.Login(suite.ctx, LoginInput{Email: "boss@example.com", Password: "password123"})
	suite.Require().NoError(err)
	suite.Equal(manager.ID, result.User.ID)
	suite.Equal(models.RoleManager, result.User.Role)

	identity, err := suite.issuer.Verify(result.Token)
	suite.Require().NoError(err)
	suite.Equal(manager.ID, identity.UserID)
	suite.Equal(models.RoleManager, identity.Role)
}

func (suite *AccountServiceTestSuite) TestLogin_UnknownStoredRoleIsEmployee() {
	suite.createUser("odd", models.Role("manager"), nil)

	result, err := suite.accounts.Login(suite.ctx, LoginInput{Email: "odd@example.com", Password: "password123"})
	suite.Require().NoError(err)
	suite.Equal(models.RoleEmployee, result.User.Role)

	identity, err := suite.issuer.Verify(result.Token)
	suite.Require().NoError(err)
	suite.Equal(models.RoleEmployee, identity.Role)
}

func (suite *AccountServiceTestSuite) TestLogin_InvalidCredentials() {
	suite.createUser("ann", models.RoleEmployee, nil)

	_, err := suite.accounts.Login(suite.ctx, LoginInput{Email: "ann@example.com", Password: "wrong"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.accounts.Login(suite.ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.accounts.Login(suite.ctx, LoginInput{Email: "ann@example.com"})
	suite.ErrorIs(err, ErrInvalidArgument)
}

func (suite *AccountServiceTestSuite) TestListEmployees() {
	manager := suite.createUser("boss", models.RoleManager, nil)
	other := suite.createUser("other", models.RoleManager, nil)
	mine := suite.createUser("mine", models.RoleEmployee, &manager.ID)
	suite.createUser("theirs", models.RoleEmployee, &other.ID)

	employees, err := suite.accounts.ListEmployees(suite.ctx, manager.ID)
	suite.Require().NoError(err)

	ids := []string{}
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	suite.ElementsMatch([]string{other.ID, mine.ID}, ids)
}

func (suite *AccountServiceTestSuite) TestListEmployees_Errors() {
	_, err := suite.accounts.ListEmployees(suite.ctx, "bad-id")
	suite.ErrorIs(err, ErrInvalidArgument)

	loner := suite.createUser("loner", models.RoleManager, nil)
	_, err = suite.accounts.ListEmployees(suite.ctx, loner.ID)
	suite.ErrorIs(err, ErrNoEmployees)

	// uppercase hex still excludes the manager itself
	_, err = suite.accounts.ListEmployees(suite.ctx, strings.ToUpper(loner.ID))
	suite.ErrorIs(err, ErrNoEmployees)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
