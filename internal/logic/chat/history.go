package chat

import (
	"context"
	"errors"
	"fmt"

	"taskchat/internal/agent"
	"taskchat/internal/db"
)

// ErrConversationNotFound is returned when the requested conversation id
// does not exist at all.
var ErrConversationNotFound = errors.New("conversation not found")

// ErrUnauthorized is returned when a conversation exists but belongs to a
// different owner. Its message is deliberately generic so the response never
// confirms that the id exists.
var ErrUnauthorized = errors.New("unauthorized")

// ReconstructHistory rebuilds the dialogue for a conversation from storage.
// The ownership check always runs before any message is read.
func ReconstructHistory(ctx context.Context, store *db.ConversationStore, ownerID, conversationID string) ([]agent.ModelMessage, error) {
	if err := verifyOwnership(ctx, store, ownerID, conversationID); err != nil {
		return nil, err
	}

	msgs, err := store.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	history := make([]agent.ModelMessage, 0, len(msgs))
	for _, m := range msgs {
		// Only user and assistant turns are ever replayed to the model.
		if m.Role != db.RoleUser && m.Role != db.RoleAssistant {
			continue
		}
		history = append(history, agent.ModelMessage{Role: m.Role, Content: m.Content})
	}
	return history, nil
}

// verifyOwnership confirms the conversation exists and belongs to ownerID.
func verifyOwnership(ctx context.Context, store *db.ConversationStore, ownerID, conversationID string) error {
	conv, err := store.Get(ctx, conversationID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrConversationNotFound
	}
	if err != nil {
		return err
	}
	if conv.UserID != ownerID {
		return ErrUnauthorized
	}
	return nil
}
