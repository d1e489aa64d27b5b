package domain

import "time"

type Project struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	Status      string
	CreatedAt   time.Time
}

// Task belongs to exactly one project. Sessions and entries that reference
// a task must reference the same project the task belongs to.
type Task struct {
	ID          string
	Name        string
	Description string
	ProjectID   string
	Status      string
	CreatedAt   time.Time
}
