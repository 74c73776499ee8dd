package models

// TaskAssignment is the SQL representation of one member of Task.AssignedTo.
// Position keeps the order in which assignees were added.
type TaskAssignment struct {
	TaskID   string `gorm:"primarykey;type:char(24)" json:"task_id"`
	UserID   string `gorm:"primarykey;type:char(24);index" json:"user_id"`
	Position int    `gorm:"not null;default:0" json:"position"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
