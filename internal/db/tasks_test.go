package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskchat/internal/logging"
)

func TestMain(m *testing.M) {
	logging.Disable()
	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func strptr(s string) *string { return &s }

func TestTaskCreateDefaults(t *testing.T) {
	store := NewTaskStore(openTestDB(t))
	ctx := context.Background()

	task, err := store.Create(ctx, "owner-a", "buy milk", nil)
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, "owner-a", task.UserID)
	require.Equal(t, "buy milk", task.Title)
	require.False(t, task.Description.Valid)
	require.Equal(t, PriorityMedium, task.Priority)
	require.False(t, task.Completed)
	require.False(t, task.CreatedAt.IsZero())
}

func TestTaskOwnershipIsolation(t *testing.T) {
	store := NewTaskStore(openTestDB(t))
	ctx := context.Background()

	task, err := store.Create(ctx, "owner-a", "secret errand", nil)
	require.NoError(t, err)

	// Owner B cannot see, mutate, or delete A's task.
	_, err = store.Get(ctx, "owner-b", task.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Complete(ctx, "owner-b", task.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(ctx, "owner-b", task.ID, TaskUpdate{Title: strptr("hijacked")})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, "owner-b", task.ID), ErrNotFound)

	list, err := store.List(ctx, "owner-b", StatusAll)
	require.NoError(t, err)
	require.Empty(t, list)

	// And it is all still intact for owner A.
	got, err := store.Get(ctx, "owner-a", task.ID)
	require.NoError(t, err)
	require.Equal(t, "secret errand", got.Title)
	require.False(t, got.Completed)
}

func TestTaskListFilters(t *testing.T) {
	store := NewTaskStore(openTestDB(t))
	ctx := context.Background()

	first, err := store.Create(ctx, "owner-a", "first", nil)
	require.NoError(t, err)
	second, err := store.Create(ctx, "owner-a", "second", nil)
	require.NoError(t, err)

	_, err = store.Complete(ctx, "owner-a", first.ID)
	require.NoError(t, err)

	all, err := store.List(ctx, "owner-a", StatusAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest created first
	require.Equal(t, second.ID, all[0].ID)
	require.Equal(t, first.ID, all[1].ID)

	pending, err := store.List(ctx, "owner-a", StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].ID)

	completed, err := store.List(ctx, "owner-a", StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, first.ID, completed[0].ID)
}

func TestTaskCompleteIdempotent(t *testing.T) {
	store := NewTaskStore(openTestDB(t))
	ctx := context.Background()

	task, err := store.Create(ctx, "owner-a", "water plants", nil)
	require.NoError(t, err)

	done, err := store.Complete(ctx, "owner-a", task.ID)
	require.NoError(t, err)
	require.True(t, done.Completed)

	again, err := store.Complete(ctx, "owner-a", task.ID)
	require.NoError(t, err)
	require.True(t, again.Completed)
}

func TestTaskUpdatePartial(t *testing.T) {
	store := NewTaskStore(openTestDB(t))
	ctx := context.Background()

	task, err := store.Create(ctx, "owner-a", "write report", strptr("quarterly numbers"))
	require.NoError(t, err)

	// Changing only priority leaves title and description alone.
	updated, err := store.Update(ctx, "owner-a", task.ID, TaskUpdate{Priority: strptr(PriorityHigh)})
	require.NoError(t, err)
	require.Equal(t, "write report", updated.Title)
	require.True(t, updated.Description.Valid)
	require.Equal(t, "quarterly numbers", updated.Description.String)
	require.Equal(t, PriorityHigh, updated.Priority)

	// Empty description clears the column.
	updated, err = store.Update(ctx, "owner-a", task.ID, TaskUpdate{Description: strptr("")})
	require.NoError(t, err)
	require.False(t, updated.Description.Valid)
	require.Equal(t, "write report", updated.Title)
}

func TestTaskDelete(t *testing.T) {
	store := NewTaskStore(openTestDB(t))
	ctx := context.Background()

	task, err := store.Create(ctx, "owner-a", "gone soon", nil)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "owner-a", task.ID))

	_, err = store.Get(ctx, "owner-a", task.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, "owner-a", task.ID), ErrNotFound)
}
