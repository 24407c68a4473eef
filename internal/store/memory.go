package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"todolists/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps lists and their tasks in process memory.
// Tasks are stored newest-first.
type MemoryStore struct {
	mu          sync.RWMutex
	lists       []models.List
	tasksByList map[string][]models.Task
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lists:       []models.List{},
		tasksByList: make(map[string][]models.Task),
	}
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) indexOf(id string) int {
	for i := range s.lists {
		if s.lists[i].ID == id {
			return i
		}
	}
	return -1
}

// ListLists returns a copy of all lists in insertion order.
func (s *MemoryStore) ListLists(ctx context.Context) ([]models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lists := make([]models.List, len(s.lists))
	copy(lists, s.lists)
	return lists, nil
}

// GetList returns a copy of the list with the given id.
func (s *MemoryStore) GetList(ctx context.Context, id string) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, listNotFound(id)
	}
	list := s.lists[i]
	return &list, nil
}

// AddList appends a new list with filter all and no tasks.
func (s *MemoryStore) AddList(ctx context.Context, title string) (string, error) {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	list := models.List{
		ID:        uuid.NewString(),
		Title:     title,
		Filter:    models.FilterAll,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.lists = append(s.lists, list)
	s.tasksByList[list.ID] = []models.Task{}
	return list.ID, nil
}

// RemoveList deletes the list and its tasks.
func (s *MemoryStore) RemoveList(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return listNotFound(id)
	}
	s.lists = append(s.lists[:i:i], s.lists[i+1:]...)
	delete(s.tasksByList, id)
	return nil
}

// RenameList replaces the list title.
func (s *MemoryStore) RenameList(ctx context.Context, id, title string) error {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return listNotFound(id)
	}
	s.lists[i].Title = title
	s.lists[i].UpdatedAt = time.Now()
	return nil
}

// SetFilter replaces the list filter.
func (s *MemoryStore) SetFilter(ctx context.Context, id string, filter models.Filter) error {
	if !filter.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidFilter, filter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return listNotFound(id)
	}
	s.lists[i].Filter = filter
	s.lists[i].UpdatedAt = time.Now()
	return nil
}

// ListTasks returns a copy of every task in the list, newest first.
func (s *MemoryStore) ListTasks(ctx context.Context, listID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, ok := s.tasksByList[listID]
	if !ok {
		return nil, listNotFound(listID)
	}
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out, nil
}

// VisibleTasks returns the tasks that pass the list's current filter.
func (s *MemoryStore) VisibleTasks(ctx context.Context, listID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(listID)
	if i < 0 {
		return nil, listNotFound(listID)
	}
	tasks := s.tasksByList[listID]
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return s.lists[i].Filter.Apply(out), nil
}

// AddTask prepends a new, not-done task to the list.
func (s *MemoryStore) AddTask(ctx context.Context, listID, title string) (string, error) {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, ok := s.tasksByList[listID]
	if !ok {
		return "", listNotFound(listID)
	}

	now := time.Now()
	task := models.Task{
		ID:        uuid.NewString(),
		ListID:    listID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	updated := make([]models.Task, 0, len(tasks)+1)
	updated = append(updated, task)
	updated = append(updated, tasks...)
	s.tasksByList[listID] = updated
	return task.ID, nil
}

// RemoveTask deletes the task if present.
func (s *MemoryStore) RemoveTask(ctx context.Context, listID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, ok := s.tasksByList[listID]
	if !ok {
		return listNotFound(listID)
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			s.tasksByList[listID] = append(tasks[:i:i], tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetTaskDone updates the completion flag of the task if present.
func (s *MemoryStore) SetTaskDone(ctx context.Context, listID, taskID string, isDone bool) error {
	return s.updateTask(listID, taskID, func(t *models.Task) {
		t.IsDone = isDone
	})
}

// RenameTask replaces the task title if the task is present.
func (s *MemoryStore) RenameTask(ctx context.Context, listID, taskID, title string) error {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return err
	}
	return s.updateTask(listID, taskID, func(t *models.Task) {
		t.Title = title
	})
}

func (s *MemoryStore) updateTask(listID, taskID string, fn func(*models.Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, ok := s.tasksByList[listID]
	if !ok {
		return listNotFound(listID)
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			fn(&tasks[i])
			tasks[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}
