package dto

import "github.com/yukikurage/task-assignment-api/internal/models"

// RegisterRequest is the body of POST /api/users/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse wraps every successful account endpoint response
type AccountResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// UserProfileDTO is the minimal public view of an account
type UserProfileDTO struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// LoginData is returned by a successful login
type LoginData struct {
	Token string         `json:"token"`
	User  UserProfileDTO `json:"user"`
}

// EmployeeDTO is one entry of a manager's employee list
type EmployeeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeesData wraps the employee list
type EmployeesData struct {
	Employees []EmployeeDTO `json:"employees"`
}

// ToUserProfileDTO converts a User model using its effective role
func ToUserProfileDTO(user models.User) UserProfileDTO {
	return UserProfileDTO{
		ID:   user.ID,
		Name: user.Name,
		Role: models.EffectiveRole(user.Role),
	}
}

// ToEmployeesData converts users to the employee list payload
func ToEmployeesData(users []models.User) EmployeesData {
	employees := make([]EmployeeDTO, len(users))
	for i, u := range users {
		employees[i] = EmployeeDTO{ID: u.ID, Name: u.Name}
	}
	return EmployeesData{Employees: employees}
}
