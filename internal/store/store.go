package store

import (
	"context"
	"fmt"

	"todolists/internal/models"
)

// Store defines the task/list state operations shared by every backend.
//
// Title validation runs before any lookup, so an invalid title is always
// reported as models.ErrInvalidTitle and never mutates state. Operations
// that reference a missing list return an error wrapping
// models.ErrNotFound. RemoveTask, SetTaskDone and RenameTask are no-ops
// when the list exists but the task does not.
type Store interface {
	// List operations
	ListLists(ctx context.Context) ([]models.List, error)
	GetList(ctx context.Context, id string) (*models.List, error)
	AddList(ctx context.Context, title string) (string, error)
	RemoveList(ctx context.Context, id string) error
	RenameList(ctx context.Context, id, title string) error
	SetFilter(ctx context.Context, id string, filter models.Filter) error

	// Task operations
	ListTasks(ctx context.Context, listID string) ([]models.Task, error)
	VisibleTasks(ctx context.Context, listID string) ([]models.Task, error)
	AddTask(ctx context.Context, listID, title string) (string, error)
	RemoveTask(ctx context.Context, listID, taskID string) error
	SetTaskDone(ctx context.Context, listID, taskID string, isDone bool) error
	RenameTask(ctx context.Context, listID, taskID, title string) error

	// Lifecycle
	Close() error
}

func listNotFound(id string) error {
	return fmt.Errorf("list %s: %w", id, models.ErrNotFound)
}
