package engine

import (
	"context"
	"fmt"
	"log/slog"

	ai "github.com/agilbank/assistant"
	"github.com/agilbank/assistant/chat"
	"github.com/agilbank/assistant/tool"
)

// FallbackMessage is shown to the user whenever a turn cannot be completed:
// model backend failure, empty model reply, or loop-cap exhaustion.
const FallbackMessage = "I apologize, but I am experiencing technical difficulties at the moment. Please try again shortly."

// SystemErrorResult is the synthesized tool result for a handler failure.
const SystemErrorResult = "SYSTEM_ERROR: An error occurred while executing this operation. Please try again."

// DefaultMaxTurns caps the internal agent/tool cycles within one Advance
// call. Exhaustion is recovered like a backend failure, not raised.
const DefaultMaxTurns = 10

// Engine drives the orchestration loop over a fixed set of agents.
// The model and each tool invocation are blocking; tool calls within a
// batch execute strictly in the order the model listed them.
type Engine struct {
	client   chat.Client
	agents   map[AgentName]*Agent
	tools    *tool.Registry
	maxTurns int
	chatOpts []ai.Option
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxTurns overrides the per-Advance iteration cap.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithChatOptions sets default options applied to every model invocation.
func WithChatOptions(opts ...ai.Option) Option {
	return func(e *Engine) {
		e.chatOpts = append(e.chatOpts, opts...)
	}
}

// New creates an engine over the given agents. The triage agent must be
// present; it is the entry route for fresh conversations. The union of all
// agents' tools, deduplicated by name, forms the execution registry.
func New(client chat.Client, agents []*Agent, opts ...Option) (*Engine, error) {
	if client == nil {
		return nil, fmt.Errorf("engine: chat client is required")
	}

	byName := make(map[AgentName]*Agent, len(agents))
	registries := make([]*tool.Registry, 0, len(agents))
	for _, a := range agents {
		if a == nil {
			continue
		}
		if _, dup := byName[a.Name]; dup {
			return nil, fmt.Errorf("engine: duplicate agent %q", a.Name)
		}
		byName[a.Name] = a
		registries = append(registries, a.Tools)
	}
	if _, ok := byName[AgentTriage]; !ok {
		return nil, fmt.Errorf("engine: triage agent is required")
	}

	e := &Engine{
		client:   client,
		agents:   byName,
		tools:    tool.Merge(registries...),
		maxTurns: DefaultMaxTurns,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tools returns the union registry of every agent's tools.
func (e *Engine) Tools() *tool.Registry {
	return e.tools
}

// Advance runs one caller-visible turn: it routes to the current agent,
// executes any requested tools, re-enters the (possibly transferred) agent,
// and returns once a plain-text assistant message has been appended.
//
// All failures below the caller level are recovered into messages; the
// returned error is reserved for context cancellation.
func (e *Engine) Advance(ctx context.Context, st State) (State, error) {
	s := st.clone()
	if _, ok := e.agents[s.CurrentAgent]; !ok {
		// Defensive default, not a normal path.
		s.CurrentAgent = AgentTriage
	}

	for i := 0; i < e.maxTurns; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		agent := e.agents[s.CurrentAgent]

		msgs := make([]ai.Message, 0, len(s.Messages)+1)
		msgs = append(msgs, ai.NewSystemMessage(agent.Instructions))
		msgs = append(msgs, s.Messages...)

		opts := append(append([]ai.Option{}, e.chatOpts...), ai.WithTools(agent.Tools.Tools()))
		resp, err := e.client.Chat(ctx, msgs, opts...)
		if err != nil {
			e.logger.Error("model invocation failed", "agent", agent.Name, "error", err)
			s.Messages = append(s.Messages, ai.NewAssistantMessage(FallbackMessage))
			return s, nil
		}

		if len(resp.ToolCalls) == 0 {
			content := resp.Content
			if content == "" {
				e.logger.Warn("model returned empty reply", "agent", agent.Name)
				content = FallbackMessage
			}
			s.Messages = append(s.Messages, ai.NewAssistantMessage(content))
			return s, nil
		}

		// Record the tool-call request turn before executing.
		s.Messages = append(s.Messages, ai.Message{
			ID:        ai.GenerateMessageID(),
			Role:      ai.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		results := e.executeTools(ctx, resp.ToolCalls, &s)
		s.Messages = append(s.Messages, ai.NewToolResultMessage(results...))
		// Loop back to whichever agent CurrentAgent now names; a transfer
		// takes effect within the same caller-visible turn.
	}

	e.logger.Error("turn exceeded iteration cap", "agent", s.CurrentAgent, "maxTurns", e.maxTurns)
	s.Messages = append(s.Messages, ai.NewAssistantMessage(FallbackMessage))
	return s, nil
}

// executeTools runs each call in order, pairing every call with exactly one
// result and applying its state delta before the next call runs.
func (e *Engine) executeTools(ctx context.Context, calls []ai.ToolCall, s *State) []ai.ToolResult {
	results := make([]ai.ToolResult, 0, len(calls))
	for _, call := range calls {
		result := e.executeCall(ctx, call)
		results = append(results, result)
		applyDelta(s, call, result.Content)
	}
	return results
}

// executeCall invokes one tool, synthesizing a result for unknown names,
// handler errors and handler panics instead of propagating.
func (e *Engine) executeCall(ctx context.Context, call ai.ToolCall) (result ai.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool handler panicked", "tool", call.Name, "panic", r)
			result = ai.ToolResult{
				ToolCallID: call.ID,
				Name:       call.Name,
				Content:    SystemErrorResult,
				IsError:    true,
			}
		}
	}()

	handler, ok := e.tools.Get(call.Name)
	if !ok {
		e.logger.Warn("unknown tool requested", "tool", call.Name)
		return ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    fmt.Sprintf("ERROR: Tool '%s' is not available.", call.Name),
			IsError:    true,
		}
	}

	content, err := handler(ctx, call)
	if err != nil {
		e.logger.Error("tool execution failed", "tool", call.Name, "error", err)
		return ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    SystemErrorResult,
			IsError:    true,
		}
	}

	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    content,
	}
}
