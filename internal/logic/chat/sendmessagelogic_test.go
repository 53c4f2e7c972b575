package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskchat/internal/agent"
	"taskchat/internal/config"
	"taskchat/internal/db"
	"taskchat/internal/logging"
	"taskchat/internal/svc"
	"taskchat/internal/types"
)

func TestMain(m *testing.M) {
	logging.Disable()
	os.Exit(m.Run())
}

// scriptedModel replies from a queue and records every request.
type scriptedModel struct {
	replies  []*agent.ModelReply
	err      error
	requests []*agent.ModelRequest
}

func (s *scriptedModel) Complete(_ context.Context, req *agent.ModelRequest) (*agent.ModelReply, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) == 0 {
		return &agent.ModelReply{Content: "ok"}, nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func newTestSvcCtx(t *testing.T, model agent.ModelClient) *svc.ServiceContext {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return svc.NewServiceContext(config.Config{}, database, model)
}

func TestSendMessageNewConversation(t *testing.T) {
	model := &scriptedModel{replies: []*agent.ModelReply{{
		Content: "Done! I've added 'buy milk' to your list.",
		ToolCalls: []agent.ModelToolCall{
			{ID: "call_1", Name: agent.ToolAddTask, Arguments: `{"title":"buy milk"}`},
		},
	}}}
	svcCtx := newTestSvcCtx(t, model)
	ctx := context.Background()

	resp, err := NewSendMessageLogic(ctx, svcCtx).SendMessage("owner-a", &types.ChatRequest{
		Message: "Add a task to buy milk",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ConversationId)
	require.Contains(t, resp.Message, "buy milk")
	require.Len(t, resp.ToolCalls, 1)
	require.Equal(t, agent.ToolAddTask, resp.ToolCalls[0].Tool)

	// The task exists, pending, with default priority.
	tasks, err := svcCtx.Tasks.List(ctx, "owner-a", db.StatusAll)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "buy milk", tasks[0].Title)
	require.False(t, tasks[0].Completed)
	require.Equal(t, db.PriorityMedium, tasks[0].Priority)

	// Both turn messages were persisted in order.
	msgs, err := svcCtx.Conversations.ListMessages(ctx, resp.ConversationId)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, db.RoleUser, msgs[0].Role)
	require.Equal(t, "Add a task to buy milk", msgs[0].Content)
	require.Equal(t, db.RoleAssistant, msgs[1].Role)
	require.Equal(t, resp.Message, msgs[1].Content)
}

func TestSendMessageReplaysHistory(t *testing.T) {
	model := &scriptedModel{}
	svcCtx := newTestSvcCtx(t, model)
	ctx := context.Background()

	first, err := NewSendMessageLogic(ctx, svcCtx).SendMessage("owner-a", &types.ChatRequest{
		Message: "hello there",
	})
	require.NoError(t, err)

	_, err = NewSendMessageLogic(ctx, svcCtx).SendMessage("owner-a", &types.ChatRequest{
		Message:        "and again",
		ConversationId: first.ConversationId,
	})
	require.NoError(t, err)

	require.Len(t, model.requests, 2)
	second := model.requests[1]
	// History = first turn's two messages, then the new user message.
	require.Len(t, second.Messages, 3)
	require.Equal(t, "hello there", second.Messages[0].Content)
	require.Equal(t, db.RoleAssistant, second.Messages[1].Role)
	require.Equal(t, "and again", second.Messages[2].Content)
}

func TestSendMessageRoundTrip(t *testing.T) {
	model := &scriptedModel{}
	svcCtx := newTestSvcCtx(t, model)
	ctx := context.Background()

	var conversationID string
	const turns = 4
	for i := 0; i < turns; i++ {
		resp, err := NewSendMessageLogic(ctx, svcCtx).SendMessage("owner-a", &types.ChatRequest{
			Message:        fmt.Sprintf("turn %d", i),
			ConversationId: conversationID,
		})
		require.NoError(t, err)
		conversationID = resp.ConversationId
	}

	history, err := ReconstructHistory(ctx, svcCtx.Conversations, "owner-a", conversationID)
	require.NoError(t, err)
	require.Len(t, history, 2*turns)
	for i := 0; i < turns; i++ {
		require.Equal(t, db.RoleUser, history[2*i].Role)
		require.Equal(t, fmt.Sprintf("turn %d", i), history[2*i].Content)
		require.Equal(t, db.RoleAssistant, history[2*i+1].Role)
	}
}

func TestSendMessageCrossOwnerConversation(t *testing.T) {
	model := &scriptedModel{}
	svcCtx := newTestSvcCtx(t, model)
	ctx := context.Background()

	conv, err := svcCtx.Conversations.Create(ctx, "owner-b")
	require.NoError(t, err)

	_, err = NewSendMessageLogic(ctx, svcCtx).SendMessage("owner-a", &types.ChatRequest{
		Message:        "let me in",
		ConversationId: conv.ID,
	})
	require.ErrorIs(t, err, ErrUnauthorized)

	// Nothing was persisted for the requester and the model never ran.
	count, err := svcCtx.Conversations.CountMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Zero(t, count)
	require.Empty(t, model.requests)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	svcCtx := newTestSvcCtx(t, &scriptedModel{})

	_, err := NewSendMessageLogic(context.Background(), svcCtx).SendMessage("owner-a", &types.ChatRequest{
		Message:        "anyone home?",
		ConversationId: "no-such-conversation",
	})
	require.ErrorIs(t, err, ErrConversationNotFound)
}

func TestSendMessageModelFailureKeepsUserMessage(t *testing.T) {
	model := &scriptedModel{err: errors.New("upstream down")}
	svcCtx := newTestSvcCtx(t, model)
	ctx := context.Background()

	conv, err := svcCtx.Conversations.Create(ctx, "owner-a")
	require.NoError(t, err)

	_, err = NewSendMessageLogic(ctx, svcCtx).SendMessage("owner-a", &types.ChatRequest{
		Message:        "please do not lose this",
		ConversationId: conv.ID,
	})
	require.ErrorIs(t, err, agent.ErrModelFailure)

	// The user message was stored before the model was invoked, so a retry
	// on the same conversation sees it in history.
	msgs, err := svcCtx.Conversations.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, db.RoleUser, msgs[0].Role)
	require.Equal(t, "please do not lose this", msgs[0].Content)
}
