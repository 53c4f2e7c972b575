package chat

import (
	"context"
	"time"

	"taskchat/internal/logging"
	"taskchat/internal/svc"
	"taskchat/internal/types"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ListConversationsLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// List the owner's conversations, most recently active first
func NewListConversationsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListConversationsLogic {
	return &ListConversationsLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListConversationsLogic) ListConversations(ownerID string, limit, offset int) (*types.ListConversationsResponse, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	convs, total, err := l.svcCtx.Conversations.List(l.ctx, ownerID, limit, offset)
	if err != nil {
		logging.Errorf("failed to list conversations: %v", err)
		return nil, err
	}

	items := make([]types.ConversationItem, 0, len(convs))
	for _, c := range convs {
		items = append(items, types.ConversationItem{
			Id:           c.ID,
			UserId:       c.UserID,
			CreatedAt:    c.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
			MessageCount: c.MessageCount,
		})
	}

	return &types.ListConversationsResponse{
		Conversations: items,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	}, nil
}
