package storage

import (
	"context"
	"errors"
	"time"

	"taskmanager/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserStore interface {
	// CreateUser inserts a new user and returns it with the
	// store-assigned ID. It returns ErrDuplicate if the email is
	// already registered.
	CreateUser(ctx context.Context, email, passwordHash string, createdAt time.Time) (*models.User, error)

	// GetUserByEmail returns ErrNotFound if no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskPatch describes a partial task update. Nil fields are left
// unchanged. ClearDescription sets the description to NULL and takes
// precedence over Description.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
}

type TaskStore interface {
	// CreateTask inserts a task and returns it with the store-assigned ID.
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)

	// ListTasksByUserID returns the user's tasks in creation order.
	// No tasks is an empty slice, not an error.
	ListTasksByUserID(ctx context.Context, userID int64) ([]*models.Task, error)

	// UpdateTask applies patch to the task identified by (taskID,
	// userID) jointly and returns the updated row. A task owned by
	// another user is reported as ErrNotFound, same as an absent one.
	UpdateTask(ctx context.Context, userID, taskID int64, patch TaskPatch, updatedAt time.Time) (*models.Task, error)

	// DeleteTask removes the task identified by (taskID, userID)
	// jointly. It returns ErrNotFound if the task is absent or owned
	// by another user.
	DeleteTask(ctx context.Context, userID, taskID int64) error
}
