package models

import "time"

type Task struct {
	ID        string    `gorm:"primarykey;type:char(24)" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Details   string    `gorm:"type:text;not null" json:"details"`
	Date      time.Time `gorm:"not null;index:idx_tasks_created_by_date,priority:2" json:"date"`
	CreatedBy string    `gorm:"type:char(24);not null;index:idx_tasks_created_by_date,priority:1" json:"createdBy"`

	// AssignedTo is the assignee set in insertion order. The SQL backend
	// persists it through Assignments; the document backend stores it inline.
	AssignedTo []string `gorm:"-" json:"assignedTo"`

	// Relations
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"-"`
}

// Assignee is an assigned user resolved to its display name.
type Assignee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskDetails is a task with its assignees resolved to names.
type TaskDetails struct {
	Task
	Assignees []Assignee `json:"assignees"`
}

// IsCreatedBy reports whether userID owns the task.
func (t *Task) IsCreatedBy(userID string) bool {
	return t.CreatedBy == userID
}
