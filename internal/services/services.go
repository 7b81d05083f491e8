package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskmanager/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTaskNotFound       = errors.New("task not found")
)

// ValidationError reports a field constraint violation, such as a
// task title outside the 1-200 character range.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type AuthService interface {
	// Register creates a user with the given email and password.
	//
	// The email is normalized (trimmed and lower-cased) before the
	// uniqueness check; only the argon2id hash of the password is
	// stored. It returns ErrEmailTaken if the normalized email is
	// already registered.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login authenticates the user by email and password and issues
	// a signed access token.
	//
	// An unknown email and a wrong password both return
	// ErrInvalidCredentials so the two cases cannot be told apart.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Resolve verifies an access token and returns the user it was
	// issued to. It returns ErrUnauthenticated if the token is
	// invalid or expired, or if the user no longer exists. Every
	// protected operation must pass through Resolve.
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type TaskService interface {
	// CreateTask creates a task owned by UserID. The title must be
	// 1-200 characters; the completed flag starts false.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// ListTasks returns the user's tasks in creation order. A user
	// with no tasks gets an empty slice.
	ListTasks(ctx context.Context, userID int64) ([]*models.Task, error)

	// UpdateTask applies a partial update to the task identified by
	// (TaskID, UserID) jointly and returns the new snapshot. A task
	// owned by another user is indistinguishable from an absent one:
	// both return ErrTaskNotFound.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask permanently removes the task identified by (TaskID,
	// UserID) jointly. Deleting an absent or foreign task returns
	// ErrTaskNotFound, including on a repeated delete.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type RegisterParams struct {
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID               int64
	AccessToken          string
	AccessTokenExpiresAt time.Time
}

type CreateTaskParams struct {
	UserID      int64
	Title       string
	Description *string
}

// UpdateTaskParams carries a partial update. Nil fields are left
// unchanged; ClearDescription removes the description entirely.
type UpdateTaskParams struct {
	UserID           int64
	TaskID           int64
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
}

type DeleteTaskParams struct {
	UserID int64
	TaskID int64
}
