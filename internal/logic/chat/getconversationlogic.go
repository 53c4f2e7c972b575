package chat

import (
	"context"
	"errors"
	"time"

	"taskchat/internal/db"
	"taskchat/internal/logging"
	"taskchat/internal/svc"
	"taskchat/internal/types"
)

type GetConversationLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Get conversation details with full message history
func NewGetConversationLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetConversationLogic {
	return &GetConversationLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetConversationLogic) GetConversation(ownerID, conversationID string) (*types.ConversationDetailResponse, error) {
	conv, err := l.svcCtx.Conversations.Get(l.ctx, conversationID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		logging.Errorf("failed to get conversation: %v", err)
		return nil, err
	}
	if conv.UserID != ownerID {
		return nil, ErrUnauthorized
	}

	msgs, err := l.svcCtx.Conversations.ListMessages(l.ctx, conversationID)
	if err != nil {
		logging.Errorf("failed to load messages: %v", err)
		return nil, err
	}

	out := make([]types.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, types.ChatMessage{
			Id:             m.ID,
			ConversationId: m.ConversationID,
			Role:           m.Role,
			Content:        m.Content,
			CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		})
	}

	return &types.ConversationDetailResponse{
		ConversationItem: types.ConversationItem{
			Id:           conv.ID,
			UserId:       conv.UserID,
			CreatedAt:    conv.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    conv.UpdatedAt.Format(time.RFC3339),
			MessageCount: int64(len(out)),
		},
		Messages: out,
	}, nil
}
