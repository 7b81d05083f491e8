package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskmanager/internal/models"
)

type taskStoreImpl struct {
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

func (s *taskStoreImpl) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	created := &models.Task{
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   description,
                   completed,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	err := s.pool.QueryRow(
		ctx,
		insertTaskQuery,
		created.UserID,
		created.Title,
		created.Description,
		created.Completed,
		created.CreatedAt,
		created.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	s.logger.Debug().
		Int64("task_id", created.ID).
		Msg("inserted task")

	return created, nil
}

func (s *taskStoreImpl) ListTasksByUserID(ctx context.Context, userID int64) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       title,
       description,
       completed,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY id
`
	rows, err := s.pool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, fmt.Errorf("failed to select tasks by user id: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("user_id", userID).
		Msg("selected tasks by user id")

	return tasks, nil
}

func (s *taskStoreImpl) UpdateTask(ctx context.Context, userID, taskID int64, patch TaskPatch, updatedAt time.Time) (*models.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	task := &models.Task{
		ID:        taskID,
		UserID:    userID,
		UpdatedAt: updatedAt,
	}

	const selectTaskForUpdateQuery = `
SELECT title,
       description,
       completed,
       created_at
FROM tasks
WHERE id = $1 AND user_id = $2
FOR UPDATE
`
	err = tx.QueryRow(
		ctx,
		selectTaskForUpdateQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to select task for update")
		return nil, fmt.Errorf("failed to select task for update: %w", err)
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.ClearDescription {
		task.Description = nil
	} else if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    completed = $3,
    updated_at = $4
WHERE id = $5 AND user_id = $6
`
	_, err = tx.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Completed,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")

	return task, nil
}

func (s *taskStoreImpl) DeleteTask(ctx context.Context, userID, taskID int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pool.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	s.logger.Debug().
		Int64("task_id", taskID).
		Msg("deleted task")

	return nil
}
