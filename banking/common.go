package banking

import (
	"context"

	"github.com/agilbank/assistant/engine"
	"github.com/agilbank/assistant/tool"
)

// EndConversation closes the conversation. The engine latches ShouldEnd and
// the active agent still narrates a farewell afterwards.
func EndConversation() tool.Registration {
	return tool.Func(engine.ToolEndConversation,
		"End the conversation with the client.",
		func(ctx context.Context, args noArgs) (string, error) {
			return "CLOSED: Conversation ended successfully.", nil
		})
}
