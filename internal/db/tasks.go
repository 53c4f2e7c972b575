package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist within the caller's
// ownership scope. Stores never distinguish "absent" from "owned by someone
// else"; every lookup is filtered by user_id.
var ErrNotFound = errors.New("record not found")

// Priority levels for tasks
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is a recognized priority level.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Status filters for listing tasks
const (
	StatusAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task is a durable task record scoped to its owner.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description sql.NullString
	Priority    string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate describes a partial task mutation. Nil fields are left
// unchanged; a Description that trims to empty clears the column.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *string
}

// TaskStore provides owner-scoped CRUD over the tasks table.
type TaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a task store backed by the given database.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskColumns = "id, user_id, title, description, priority, completed, created_at, updated_at"

func scanTask(row interface{ Scan(...any) error }) (*Task, error) {
	var t Task
	var completed int64
	var created, updated int64
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &completed, &created, &updated)
	if err != nil {
		return nil, err
	}
	t.Completed = completed != 0
	t.CreatedAt = time.Unix(created, 0).UTC()
	t.UpdatedAt = time.Unix(updated, 0).UTC()
	return &t, nil
}

// Create inserts a new task with default medium priority. Title and
// description are stored as given; validation belongs to the caller.
func (s *TaskStore) Create(ctx context.Context, ownerID, title string, description *string) (*Task, error) {
	id := uuid.New().String()
	now := time.Now().UTC().Unix()

	desc := sql.NullString{}
	if description != nil && *description != "" {
		desc = sql.NullString{String: *description, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, priority, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		id, ownerID, title, desc, PriorityMedium, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.Get(ctx, ownerID, id)
}

// Get returns a task by id within the owner's scope.
func (s *TaskStore) Get(ctx context.Context, ownerID, taskID string) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`,
		taskID, ownerID,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// List returns the owner's tasks, newest created first, optionally filtered
// by completion status (StatusAll, StatusPending, StatusCompleted).
func (s *TaskStore) List(ctx context.Context, ownerID, status string) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	switch status {
	case StatusPending:
		query += ` AND completed = 0`
	case StatusCompleted:
		query += ` AND completed = 1`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Complete marks a task as completed. Completing an already-completed task
// succeeds and leaves it completed.
func (s *TaskStore) Complete(ctx context.Context, ownerID, taskID string) (*Task, error) {
	now := time.Now().UTC().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1, updated_at = ? WHERE id = ? AND user_id = ?`,
		now, taskID, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, ownerID, taskID)
}

// Delete permanently removes a task within the owner's scope.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`,
		taskID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Update applies a partial mutation as a single UPDATE statement so a
// rejected field can never leave a task half-changed.
func (s *TaskStore) Update(ctx context.Context, ownerID, taskID string, upd TaskUpdate) (*Task, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		desc := sql.NullString{}
		if *upd.Description != "" {
			desc = sql.NullString{String: *upd.Description, Valid: true}
		}
		sets = append(sets, "description = ?")
		args = append(args, desc)
	}
	if upd.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Unix())
	args = append(args, taskID, ownerID)

	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, ownerID, taskID)
}
