package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskmanager/internal/models"
	"taskmanager/internal/storage"
)

// In-memory stores mirroring the postgres contract, so the services
// can be exercised without a database.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, email, passwordHash string, createdAt time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return nil, storage.ErrDuplicate
	}

	s.nextID++
	user := &models.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
	s.users[email] = user

	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}

	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, email)
}

type fakeTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*models.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*models.Task)}
}

func copyTask(task *models.Task) *models.Task {
	copied := *task
	if task.Description != nil {
		desc := *task.Description
		copied.Description = &desc
	}
	return &copied
}

func (s *fakeTaskStore) CreateTask(_ context.Context, task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	created := copyTask(task)
	created.ID = s.nextID
	s.tasks[created.ID] = created

	return copyTask(created), nil
}

func (s *fakeTaskStore) ListTasksByUserID(_ context.Context, userID int64) ([]*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]*models.Task, 0)
	for _, task := range s.tasks {
		if task.UserID == userID {
			tasks = append(tasks, copyTask(task))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

func (s *fakeTaskStore) UpdateTask(_ context.Context, userID, taskID int64, patch storage.TaskPatch, updatedAt time.Time) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, storage.ErrNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.ClearDescription {
		task.Description = nil
	} else if patch.Description != nil {
		desc := *patch.Description
		task.Description = &desc
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = updatedAt

	return copyTask(task), nil
}

func (s *fakeTaskStore) DeleteTask(_ context.Context, userID, taskID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.tasks, taskID)

	return nil
}
