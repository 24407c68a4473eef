package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"todolists/internal/models"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath and applies pending
// migrations. Use ":memory:" for a store that lives only as long as the
// process.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serialises
	// every operation.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getList(ctx context.Context, q queryer, id string) (*models.List, error) {
	list := &models.List{}
	var filter string

	err := q.QueryRowContext(ctx, `
		SELECT id, title, filter, created_at, updated_at
		FROM lists WHERE id = ?
	`, id).Scan(
		&list.ID,
		&list.Title,
		&filter,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, listNotFound(id)
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	list.Filter = models.Filter(filter)

	return list, nil
}

// ListLists retrieves all lists in insertion order.
func (s *SQLiteStore) ListLists(ctx context.Context) ([]models.List, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, filter, created_at, updated_at
		FROM lists ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	lists := []models.List{}
	for rows.Next() {
		var list models.List
		var filter string

		if err := rows.Scan(&list.ID, &list.Title, &filter, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		list.Filter = models.Filter(filter)

		lists = append(lists, list)
	}

	return lists, rows.Err()
}

// GetList retrieves a list by ID.
func (s *SQLiteStore) GetList(ctx context.Context, id string) (*models.List, error) {
	return getList(ctx, s.db, id)
}

// AddList inserts a new list with filter all.
func (s *SQLiteStore) AddList(ctx context.Context, title string) (string, error) {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lists (id, title, filter, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, title, string(models.FilterAll), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to create list: %w", err)
	}

	return id, nil
}

// RemoveList deletes a list; its tasks are removed by cascade.
func (s *SQLiteStore) RemoveList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return requireRow(result, id)
}

// RenameList replaces the title of a list.
func (s *SQLiteStore) RenameList(ctx context.Context, id, title string) error {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE lists SET title = ?, updated_at = ? WHERE id = ?
	`, title, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to rename list: %w", err)
	}
	return requireRow(result, id)
}

// SetFilter replaces the filter of a list.
func (s *SQLiteStore) SetFilter(ctx context.Context, id string, filter models.Filter) error {
	if !filter.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidFilter, filter)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE lists SET filter = ?, updated_at = ? WHERE id = ?
	`, string(filter), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set filter: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return listNotFound(id)
	}
	return nil
}

// ListTasks retrieves every task of a list, newest first.
func (s *SQLiteStore) ListTasks(ctx context.Context, listID string) ([]models.Task, error) {
	if _, err := s.GetList(ctx, listID); err != nil {
		return nil, err
	}
	return s.queryTasks(ctx, listID, models.FilterAll)
}

// VisibleTasks retrieves the tasks of a list that pass its current filter.
func (s *SQLiteStore) VisibleTasks(ctx context.Context, listID string) ([]models.Task, error) {
	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return s.queryTasks(ctx, listID, list.Filter)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, listID string, filter models.Filter) ([]models.Task, error) {
	query := `
		SELECT id, list_id, title, is_done, created_at, updated_at
		FROM tasks WHERE list_id = ?`
	args := []any{listID}

	switch filter {
	case models.FilterActive:
		query += ` AND is_done = ?`
		args = append(args, false)
	case models.FilterCompleted:
		query += ` AND is_done = ?`
		args = append(args, true)
	}
	query += ` ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task

		err := rows.Scan(
			&task.ID,
			&task.ListID,
			&task.Title,
			&task.IsDone,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// AddTask inserts a new, not-done task at the head of the list.
func (s *SQLiteStore) AddTask(ctx context.Context, listID, title string) (string, error) {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := getList(ctx, tx, listID); err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, list_id, title, is_done, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, listID, title, false, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit task: %w", err)
	}

	return id, nil
}

// RemoveTask deletes a task. A missing task is not an error.
func (s *SQLiteStore) RemoveTask(ctx context.Context, listID, taskID string) error {
	return s.execTask(ctx, listID, `DELETE FROM tasks WHERE id = ? AND list_id = ?`, taskID, listID)
}

// SetTaskDone updates the completion flag of a task.
func (s *SQLiteStore) SetTaskDone(ctx context.Context, listID, taskID string, isDone bool) error {
	return s.execTask(ctx, listID, `
		UPDATE tasks SET is_done = ?, updated_at = ? WHERE id = ? AND list_id = ?
	`, isDone, time.Now(), taskID, listID)
}

// RenameTask replaces the title of a task.
func (s *SQLiteStore) RenameTask(ctx context.Context, listID, taskID, title string) error {
	title, err := models.NormalizeTitle(title)
	if err != nil {
		return err
	}
	return s.execTask(ctx, listID, `
		UPDATE tasks SET title = ?, updated_at = ? WHERE id = ? AND list_id = ?
	`, title, time.Now(), taskID, listID)
}

// execTask runs a single task statement after checking the list exists,
// inside one transaction.
func (s *SQLiteStore) execTask(ctx context.Context, listID, query string, args ...any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := getList(ctx, tx, listID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return tx.Commit()
}
