package agent

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"taskchat/internal/db"
	"taskchat/internal/logging"
)

const (
	maxTitleLen       = 500
	maxDescriptionLen = 5000
)

// Dispatcher maps declared tool names to task store operations. Every
// dispatch is scoped by the acting owner's identity; arguments are validated
// in full before any mutation is applied.
type Dispatcher struct {
	tasks *db.TaskStore
}

// NewDispatcher creates a dispatcher over the given task store.
func NewDispatcher(tasks *db.TaskStore) *Dispatcher {
	return &Dispatcher{tasks: tasks}
}

// Dispatch validates and executes one tool call for ownerID. Any user_id in
// args is discarded; the authenticated identity always wins. Results are
// uniform map envelopes suitable for the tool log.
func (d *Dispatcher) Dispatch(ctx context.Context, ownerID, tool string, args map[string]any) (map[string]any, error) {
	logging.Debugf("dispatching tool %s for owner %s", tool, ownerID)

	switch tool {
	case ToolAddTask:
		var a addTaskArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return d.addTask(ctx, ownerID, a)
	case ToolListTasks:
		var a listTasksArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return d.listTasks(ctx, ownerID, a)
	case ToolCompleteTask:
		var a taskIDArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return d.completeTask(ctx, ownerID, a)
	case ToolDeleteTask:
		var a taskIDArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return d.deleteTask(ctx, ownerID, a)
	case ToolUpdateTask:
		var a updateTaskArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return d.updateTask(ctx, ownerID, a)
	default:
		return nil, fmt.Errorf("%w: unknown tool %q", ErrModelFailure, tool)
	}
}

type addTaskArgs struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type listTasksArgs struct {
	Status string `json:"status"`
}

type taskIDArgs struct {
	TaskID string `json:"task_id"`
}

type updateTaskArgs struct {
	TaskID      string  `json:"task_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
}

// decodeArgs strictly decodes a tool argument map into a typed struct.
// Unknown fields and type mismatches are rejected. The user_id key is
// dropped first: it is legitimate in the declared schema but never trusted.
func decodeArgs(args map[string]any, v any) error {
	scrubbed := make(map[string]any, len(args))
	for k, val := range args {
		if k == "user_id" {
			continue
		}
		scrubbed[k] = val
	}
	raw, err := json.Marshal(scrubbed)
	if err != nil {
		return validationErrorf("invalid tool arguments: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return validationErrorf("invalid tool arguments: %v", err)
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", validationErrorf("task title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", validationErrorf("task title must be %d characters or less", maxTitleLen)
	}
	return title, nil
}

func validateDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "", validationErrorf("task description must be %d characters or less", maxDescriptionLen)
	}
	return desc, nil
}

func (d *Dispatcher) addTask(ctx context.Context, ownerID string, a addTaskArgs) (map[string]any, error) {
	title, err := validateTitle(a.Title)
	if err != nil {
		return nil, err
	}
	var desc *string
	if a.Description != nil {
		trimmed, err := validateDescription(*a.Description)
		if err != nil {
			return nil, err
		}
		desc = &trimmed
	}

	task, err := d.tasks.Create(ctx, ownerID, title, desc)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"task_id":     task.ID,
		"title":       task.Title,
		"description": nullableString(task.Description),
		"completed":   task.Completed,
		"priority":    task.Priority,
		"created_at":  task.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (d *Dispatcher) listTasks(ctx context.Context, ownerID string, a listTasksArgs) (map[string]any, error) {
	status := a.Status
	if status == "" {
		status = db.StatusAll
	}
	if status != db.StatusAll && status != db.StatusPending && status != db.StatusCompleted {
		return nil, validationErrorf("status must be one of: all, pending, completed")
	}

	tasks, err := d.tasks.List(ctx, ownerID, status)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		items = append(items, map[string]any{
			"task_id":     t.ID,
			"title":       t.Title,
			"description": nullableString(t.Description),
			"completed":   t.Completed,
			"priority":    t.Priority,
			"created_at":  t.CreatedAt.Format(time.RFC3339),
			"updated_at":  t.UpdatedAt.Format(time.RFC3339),
		})
	}
	return map[string]any{
		"tasks":         items,
		"total":         len(items),
		"status_filter": status,
	}, nil
}

func (d *Dispatcher) completeTask(ctx context.Context, ownerID string, a taskIDArgs) (map[string]any, error) {
	if a.TaskID == "" {
		return nil, validationErrorf("task_id is required")
	}
	task, err := d.tasks.Complete(ctx, ownerID, a.TaskID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"task_id":    task.ID,
		"title":      task.Title,
		"completed":  task.Completed,
		"updated_at": task.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (d *Dispatcher) deleteTask(ctx context.Context, ownerID string, a taskIDArgs) (map[string]any, error) {
	if a.TaskID == "" {
		return nil, validationErrorf("task_id is required")
	}
	err := d.tasks.Delete(ctx, ownerID, a.TaskID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"task_id": a.TaskID,
		"deleted": true,
	}, nil
}

func (d *Dispatcher) updateTask(ctx context.Context, ownerID string, a updateTaskArgs) (map[string]any, error) {
	if a.TaskID == "" {
		return nil, validationErrorf("task_id is required")
	}
	if a.Title == nil && a.Description == nil && a.Priority == nil {
		return nil, validationErrorf("at least one field (title, description, or priority) must be provided")
	}

	// Validate everything before touching the store so a rejected field
	// never results in a partial update.
	upd := db.TaskUpdate{}
	if a.Title != nil {
		title, err := validateTitle(*a.Title)
		if err != nil {
			return nil, err
		}
		upd.Title = &title
	}
	if a.Description != nil {
		desc, err := validateDescription(*a.Description)
		if err != nil {
			return nil, err
		}
		upd.Description = &desc
	}
	if a.Priority != nil {
		if !db.ValidPriority(*a.Priority) {
			return nil, validationErrorf("priority must be one of: low, medium, high")
		}
		upd.Priority = a.Priority
	}

	task, err := d.tasks.Update(ctx, ownerID, a.TaskID, upd)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"task_id":     task.ID,
		"title":       task.Title,
		"description": nullableString(task.Description),
		"completed":   task.Completed,
		"priority":    task.Priority,
		"updated_at":  task.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func nullableString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
