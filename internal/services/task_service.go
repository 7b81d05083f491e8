package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"taskmanager/internal/models"
	"taskmanager/internal/storage"
)

const maxTitleLength = 200

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  storage.TaskStore
}

func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskStore,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length == 0 {
		return &ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if length > maxTitleLength {
		return &ValidationError{Field: "title", Msg: "must be at most 200 characters"}
	}
	return nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	err := validateTitle(params.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task, err := s.tasks.CreateTask(ctx, &models.Task{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID int64) ([]*models.Task, error) {
	tasks, err := s.tasks.ListTasksByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Int64("user_id", userID).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if params.Title != nil {
		err := validateTitle(*params.Title)
		if err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.UpdateTask(ctx, params.UserID, params.TaskID, storage.TaskPatch{
		Title:            params.Title,
		Description:      params.Description,
		ClearDescription: params.ClearDescription,
		Completed:        params.Completed,
	}, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", params.TaskID).
				Int64("user_id", params.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	err := s.tasks.DeleteTask(ctx, params.UserID, params.TaskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", params.TaskID).
				Int64("user_id", params.UserID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", params.TaskID).
		Int64("user_id", params.UserID).
		Msg("deleted task")
	return nil
}
