package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/domain"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithRole(r domain.UserRole) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithUserStatus(s domain.UserStatus) UserOption {
	return func(u *domain.User) {
		u.Status = s
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.New().String(),
		Email:     fmt.Sprintf("%s-%d@example.com", name, testEmailCounter.Add(1)),
		Name:      name,
		Role:      domain.RoleEmployee,
		Status:    domain.UserActive,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s string) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name, createdBy string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: createdBy,
		Status:    domain.ProjectActive,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s string) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		Name:      name,
		ProjectID: projectID,
		Status:    domain.ProjectActive,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestEntry builds a manual entry covering [start, start+seconds).
func NewTestEntry(userID, projectID, taskID string, start time.Time, seconds int) *domain.TimeEntry {
	start = start.UTC()
	end := start.Add(time.Duration(seconds) * time.Second)
	return &domain.TimeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		TaskID:    taskID,
		StartTime: start,
		EndTime:   end,
		Duration:  seconds,
		EntryType: domain.EntryManual,
		Date:      domain.DateOf(start),
		CreatedAt: start,
	}
}

// NewTestSession builds an active timer session started at the given time.
func NewTestSession(userID, projectID, taskID string, start time.Time) *domain.TimerSession {
	start = start.UTC()
	return &domain.TimerSession{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProjectID:     projectID,
		TaskID:        taskID,
		StartTime:     start,
		LastHeartbeat: start,
		IsActive:      true,
		Date:          domain.DateOf(start),
	}
}
