package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is a durable chat session scoped to its owner.
type Conversation struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConversationSummary is a conversation plus its message count, as returned
// by listing.
type ConversationSummary struct {
	Conversation
	MessageCount int64
}

// Message is a single immutable turn entry in a conversation.
type Message struct {
	ID             int64
	UserID         string
	ConversationID string
	Role           string
	Content        string
	CreatedAt      time.Time
}

// ConversationStore provides owner-scoped persistence for conversations and
// their ordered messages.
type ConversationStore struct {
	db *sql.DB
}

// NewConversationStore creates a conversation store backed by the given database.
func NewConversationStore(db *sql.DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Create inserts a new conversation owned by ownerID.
func (s *ConversationStore) Create(ctx context.Context, ownerID string) (*Conversation, error) {
	id := uuid.New().String()
	now := time.Now().UTC().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, ownerID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &Conversation{
		ID:        id,
		UserID:    ownerID,
		CreatedAt: time.Unix(now, 0).UTC(),
		UpdatedAt: time.Unix(now, 0).UTC(),
	}, nil
}

// Get returns a conversation by id regardless of owner. The caller is
// responsible for the ownership check so it can distinguish a missing id
// from a cross-owner access.
func (s *ConversationStore) Get(ctx context.Context, conversationID string) (*Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM conversations WHERE id = ?`,
		conversationID,
	)
	var c Conversation
	var created, updated int64
	err := row.Scan(&c.ID, &c.UserID, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	c.CreatedAt = time.Unix(created, 0).UTC()
	c.UpdatedAt = time.Unix(updated, 0).UTC()
	return &c, nil
}

// List returns the owner's conversations ordered by most recent activity,
// with per-conversation message counts, plus the total conversation count.
func (s *ConversationStore) List(ctx context.Context, ownerID string, limit, offset int) ([]ConversationSummary, int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM conversations WHERE user_id = ?`, ownerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count conversations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.user_id, c.created_at, c.updated_at,
		        (SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id)
		 FROM conversations c
		 WHERE c.user_id = ?
		 ORDER BY c.updated_at DESC, c.rowid DESC
		 LIMIT ? OFFSET ?`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var out []ConversationSummary
	for rows.Next() {
		var c ConversationSummary
		var created, updated int64
		if err := rows.Scan(&c.ID, &c.UserID, &created, &updated, &c.MessageCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan conversation: %w", err)
		}
		c.CreatedAt = time.Unix(created, 0).UTC()
		c.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// AppendMessage writes a new message to a conversation. Messages are
// immutable once written.
func (s *ConversationStore) AppendMessage(ctx context.Context, conversationID, ownerID, role, content string) (*Message, error) {
	now := time.Now().UTC().Unix()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, conversation_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		ownerID, conversationID, role, content, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:             id,
		UserID:         ownerID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Unix(now, 0).UTC(),
	}, nil
}

// ListMessages returns every message in a conversation in creation order.
// Insertion id breaks same-second ties so replay order is always stable.
func (s *ConversationStore) ListMessages(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, conversation_id, role, content, created_at
		 FROM messages WHERE conversation_id = ?
		 ORDER BY created_at ASC, id ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var created int64
		if err := rows.Scan(&m.ID, &m.UserID, &m.ConversationID, &m.Role, &m.Content, &created); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountMessages returns the number of messages in a conversation.
func (s *ConversationStore) CountMessages(ctx context.Context, conversationID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = ?`, conversationID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}

// Touch refreshes a conversation's updated_at timestamp.
func (s *ConversationStore) Touch(ctx context.Context, conversationID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Unix(), conversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	return nil
}
