package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"taskchat/internal/db"
	"taskchat/internal/logging"
)

// fallbackReply is used when the model performs tool calls without any
// accompanying text.
const fallbackReply = "Action completed."

// ToolInvocation records one executed tool call for display and audit. It is
// returned to the caller but never persisted.
type ToolInvocation struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
	Result    map[string]any `json:"result"`
}

// TurnResult is the outcome of one dialogue turn.
type TurnResult struct {
	Reply     string
	ToolCalls []ToolInvocation
}

// Driver runs one exchange with the language model: a single
// request/response cycle, followed by sequential execution of whatever tool
// calls the model requested.
type Driver struct {
	model        ModelClient
	dispatcher   *Dispatcher
	instructions string
}

// NewDriver creates a dialogue driver. instructions overrides the built-in
// system prompt when non-empty.
func NewDriver(model ModelClient, dispatcher *Dispatcher, instructions string) *Driver {
	if instructions == "" {
		instructions = systemInstructions
	}
	return &Driver{
		model:        model,
		dispatcher:   dispatcher,
		instructions: instructions,
	}
}

// RunTurn sends the reconstructed history plus the new user message to the
// model and executes any requested tool calls in order. The model is never
// consulted a second time within a turn; tool results go to the caller, not
// back to the model.
func (d *Driver) RunTurn(ctx context.Context, ownerID, message string, history []ModelMessage) (*TurnResult, error) {
	messages := make([]ModelMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ModelMessage{Role: db.RoleUser, Content: message})

	reply, err := d.model.Complete(ctx, &ModelRequest{
		System:   d.instructions,
		Messages: messages,
		Tools:    toolDefinitions(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFailure, err)
	}

	// Execute tool calls sequentially in the order the model requested
	// them; a later call may depend on an earlier mutation.
	var invocations []ToolInvocation
	for _, tc := range reply.ToolCalls {
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return nil, fmt.Errorf("%w: tool %s arguments are not valid JSON: %v", ErrModelFailure, tc.Name, err)
		}
		if args == nil {
			args = map[string]any{}
		}
		// The model is never trusted to supply the owner identity.
		args["user_id"] = ownerID

		result, err := d.dispatcher.Dispatch(ctx, ownerID, tc.Name, args)
		if err != nil {
			return nil, err
		}
		logging.Debugf("tool %s executed for owner %s", tc.Name, ownerID)
		invocations = append(invocations, ToolInvocation{
			Tool:      tc.Name,
			Arguments: args,
			Result:    result,
		})
	}

	text := reply.Content
	if text == "" {
		text = fallbackReply
	}
	return &TurnResult{Reply: text, ToolCalls: invocations}, nil
}
