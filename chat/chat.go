// Package chat provides the canonical Client interface.
//
// This package exists so the engine, tool and client packages can share one
// interface without import cycles. The [github.com/agilbank/assistant/client]
// type implements it; tests substitute scripted fakes.
package chat

import (
	"context"

	ai "github.com/agilbank/assistant"
)

// Client defines the interface for model backends.
//
// Chat is blocking: it sends a full conversation (including any system
// instructions and tool-result messages) and returns one complete response,
// which is either plain text or a batch of tool-call requests.
type Client interface {
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}
