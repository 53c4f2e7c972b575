package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversationCreateAndGet(t *testing.T) {
	store := NewConversationStore(openTestDB(t))
	ctx := context.Background()

	conv, err := store.Create(ctx, "owner-a")
	require.NoError(t, err)
	require.NotEmpty(t, conv.ID)
	require.Equal(t, "owner-a", conv.UserID)

	got, err := store.Get(ctx, conv.ID)
	require.NoError(t, err)
	require.Equal(t, conv.ID, got.ID)
	require.Equal(t, "owner-a", got.UserID)

	_, err = store.Get(ctx, "no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMessageOrderRoundTrip(t *testing.T) {
	store := NewConversationStore(openTestDB(t))
	ctx := context.Background()

	conv, err := store.Create(ctx, "owner-a")
	require.NoError(t, err)

	// Simulate N turns; all writes land within the same second, so ordering
	// must come from insertion order, not the timestamp alone.
	const turns = 5
	for i := 0; i < turns; i++ {
		_, err = store.AppendMessage(ctx, conv.ID, "owner-a", RoleUser, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
		_, err = store.AppendMessage(ctx, conv.ID, "owner-a", RoleAssistant, fmt.Sprintf("answer %d", i))
		require.NoError(t, err)
	}

	msgs, err := store.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2*turns)

	for i := 0; i < turns; i++ {
		require.Equal(t, RoleUser, msgs[2*i].Role)
		require.Equal(t, fmt.Sprintf("question %d", i), msgs[2*i].Content)
		require.Equal(t, RoleAssistant, msgs[2*i+1].Role)
		require.Equal(t, fmt.Sprintf("answer %d", i), msgs[2*i+1].Content)
	}

	count, err := store.CountMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2*turns), count)
}

func TestConversationList(t *testing.T) {
	store := NewConversationStore(openTestDB(t))
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		conv, err := store.Create(ctx, "owner-a")
		require.NoError(t, err)
		ids = append(ids, conv.ID)
	}
	other, err := store.Create(ctx, "owner-b")
	require.NoError(t, err)

	_, err = store.AppendMessage(ctx, ids[0], "owner-a", RoleUser, "hello")
	require.NoError(t, err)

	list, total, err := store.List(ctx, "owner-a", 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, list, 3)
	for _, c := range list {
		require.NotEqual(t, other.ID, c.ID)
		require.Equal(t, "owner-a", c.UserID)
	}

	counts := map[string]int64{}
	for _, c := range list {
		counts[c.ID] = c.MessageCount
	}
	require.Equal(t, int64(1), counts[ids[0]])
	require.Equal(t, int64(0), counts[ids[1]])

	// Pagination
	page, total, err := store.List(ctx, "owner-a", 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, page, 1)
}

func TestConversationTouch(t *testing.T) {
	store := NewConversationStore(openTestDB(t))
	ctx := context.Background()

	conv, err := store.Create(ctx, "owner-a")
	require.NoError(t, err)

	require.NoError(t, store.Touch(ctx, conv.ID))

	got, err := store.Get(ctx, conv.ID)
	require.NoError(t, err)
	require.False(t, got.UpdatedAt.Before(conv.UpdatedAt))
}
