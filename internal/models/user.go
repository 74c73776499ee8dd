package models

type Role string

const (
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// EffectiveRole collapses any stored role value onto the two roles the API
// knows about. Anything that is not exactly Manager is treated as Employee.
func EffectiveRole(stored Role) Role {
	if stored == RoleManager {
		return RoleManager
	}
	return RoleEmployee
}

// ParseRole reports whether s names one of the two roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManager:
		return RoleManager, true
	case RoleEmployee:
		return RoleEmployee, true
	default:
		return "", false
	}
}

type User struct {
	ID        string  `gorm:"primarykey;type:char(24)" json:"id"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name"`
	Email     string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string  `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role    `gorm:"type:varchar(20);not null;default:'Employee'" json:"role"`
	ManagerID *string `gorm:"type:char(24);index" json:"managerId,omitempty"`
}

// HasManager reports whether the user has already been linked to a manager.
func (u *User) HasManager() bool {
	return u.ManagerID != nil && *u.ManagerID != ""
}
