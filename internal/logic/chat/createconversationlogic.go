package chat

import (
	"context"
	"time"

	"taskchat/internal/logging"
	"taskchat/internal/svc"
	"taskchat/internal/types"
)

type CreateConversationLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Explicitly start a new conversation
func NewCreateConversationLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreateConversationLogic {
	return &CreateConversationLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CreateConversationLogic) CreateConversation(ownerID string) (*types.ConversationItem, error) {
	conv, err := l.svcCtx.Conversations.Create(l.ctx, ownerID)
	if err != nil {
		logging.Errorf("failed to create conversation: %v", err)
		return nil, err
	}
	return &types.ConversationItem{
		Id:           conv.ID,
		UserId:       conv.UserID,
		CreatedAt:    conv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    conv.UpdatedAt.Format(time.RFC3339),
		MessageCount: 0,
	}, nil
}
