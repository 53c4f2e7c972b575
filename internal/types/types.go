package types

// ChatRequest is the inbound body for POST .../chat.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationId string `json:"conversation_id,omitempty"`
}

// ToolCall describes one tool operation performed during a turn.
type ToolCall struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
	Result    map[string]any `json:"result"`
}

// ChatResponse is the outcome of one chat turn.
type ChatResponse struct {
	ConversationId string     `json:"conversation_id"`
	Message        string     `json:"message"`
	ToolCalls      []ToolCall `json:"tool_calls"`
	Timestamp      string     `json:"timestamp"`
}

// ConversationItem is a conversation summary for listing.
type ConversationItem struct {
	Id           string `json:"id"`
	UserId       string `json:"user_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int64  `json:"message_count"`
}

// ListConversationsResponse is a paginated conversation listing.
type ListConversationsResponse struct {
	Conversations []ConversationItem `json:"conversations"`
	Total         int64              `json:"total"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
}

// ChatMessage is one stored message returned with conversation detail.
type ChatMessage struct {
	Id             int64  `json:"id"`
	ConversationId string `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

// ConversationDetailResponse is a conversation with its full message history.
type ConversationDetailResponse struct {
	ConversationItem
	Messages []ChatMessage `json:"messages"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
