package chat

import (
	"context"
	"fmt"
	"time"

	"taskchat/internal/agent"
	"taskchat/internal/db"
	"taskchat/internal/logging"
	"taskchat/internal/svc"
	"taskchat/internal/types"
)

type SendMessageLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Run one chat turn (creates a conversation if none was supplied)
func NewSendMessageLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SendMessageLogic {
	return &SendMessageLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// SendMessage handles one turn for an authenticated owner: reconstruct
// context, persist the user message, run the dialogue driver, persist the
// reply, refresh the conversation timestamp. Each step commits on its own;
// the user message is durable before the model is ever invoked, so a model
// failure never loses the user's input.
func (l *SendMessageLogic) SendMessage(ownerID string, req *types.ChatRequest) (*types.ChatResponse, error) {
	conversationID := req.ConversationId

	var history []agent.ModelMessage
	if conversationID != "" {
		var err error
		history, err = ReconstructHistory(l.ctx, l.svcCtx.Conversations, ownerID, conversationID)
		if err != nil {
			return nil, err
		}
	} else {
		conv, err := l.svcCtx.Conversations.Create(l.ctx, ownerID)
		if err != nil {
			logging.Errorf("failed to create conversation: %v", err)
			return nil, err
		}
		conversationID = conv.ID
	}

	if _, err := l.svcCtx.Conversations.AppendMessage(l.ctx, conversationID, ownerID, db.RoleUser, req.Message); err != nil {
		logging.Errorf("failed to save user message: %v", err)
		return nil, err
	}

	turn, err := l.svcCtx.Driver.RunTurn(l.ctx, ownerID, req.Message, history)
	if err != nil {
		return nil, err
	}

	if _, err := l.svcCtx.Conversations.AppendMessage(l.ctx, conversationID, ownerID, db.RoleAssistant, turn.Reply); err != nil {
		logging.Errorf("failed to save assistant message: %v", err)
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	if err := l.svcCtx.Conversations.Touch(l.ctx, conversationID); err != nil {
		// The turn already succeeded; a stale activity timestamp is not
		// worth failing the request over.
		logging.Warnf("failed to refresh conversation timestamp: %v", err)
	}

	toolCalls := make([]types.ToolCall, 0, len(turn.ToolCalls))
	for _, inv := range turn.ToolCalls {
		toolCalls = append(toolCalls, types.ToolCall{
			Tool:      inv.Tool,
			Arguments: inv.Arguments,
			Result:    inv.Result,
		})
	}

	return &types.ChatResponse{
		ConversationId: conversationID,
		Message:        turn.Reply,
		ToolCalls:      toolCalls,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}
