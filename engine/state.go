// Package engine implements the agent orchestration state machine: it
// threads a mutable conversation state through agent turns, tool executions
// and inter-agent transfers until a plain-text reply is produced.
package engine

import (
	ai "github.com/agilbank/assistant"
)

// AgentName identifies one of the fixed conversational roles.
type AgentName string

const (
	AgentTriage    AgentName = "triage"
	AgentCredit    AgentName = "credit"
	AgentInterview AgentName = "interview"
	AgentExchange  AgentName = "exchange"
)

// String returns the role identifier.
func (a AgentName) String() string { return string(a) }

// ClientData holds the attributes of an authenticated client.
// It is only ever populated from an authentication tool result; the engine
// never fabricates fields. When the result text cannot be parsed, Raw holds
// the full original text and the structured fields stay zero.
type ClientData struct {
	Name        string  `json:"name,omitempty"`
	CPF         string  `json:"cpf,omitempty"`
	CreditLimit float64 `json:"credit_limit,omitempty"`
	Score       int     `json:"score,omitempty"`
	Raw         string  `json:"raw,omitempty"`
}

// State is the conversation state threaded through every turn.
// A single State must not be advanced concurrently; callers serialize
// turns per conversation.
type State struct {
	// Messages is the ordered conversation history. Full history is
	// replayed to the model on every invocation.
	Messages []ai.Message

	// Authenticated becomes true only via a successful authentication
	// tool result and is never reset within a conversation.
	Authenticated bool

	// Client is nil until authentication succeeds.
	Client *ClientData

	// AuthAttempts counts failed authentication attempts. The cap lives
	// in agent instructions, not in the engine.
	AuthAttempts int

	// CurrentAgent determines routing. Mutated only by transfer tool
	// results, from a fixed lookup table.
	CurrentAgent AgentName

	// ShouldEnd is a latch: once true, the caller-facing loop must stop
	// offering further turns.
	ShouldEnd bool
}

// NewState returns a fresh conversation state routed to the triage agent.
func NewState() State {
	return State{
		CurrentAgent: AgentTriage,
	}
}

// AddUserMessage appends a user message to the conversation history.
func (s *State) AddUserMessage(content string) {
	s.Messages = append(s.Messages, ai.NewUserMessage(content))
}

// LastMessage returns the most recent message, or a zero Message when the
// history is empty.
func (s *State) LastMessage() ai.Message {
	if len(s.Messages) == 0 {
		return ai.Message{}
	}
	return s.Messages[len(s.Messages)-1]
}

// clone returns a copy of the state with its own message slice so that
// Advance never aliases the caller's backing array.
func (s State) clone() State {
	out := s
	out.Messages = make([]ai.Message, len(s.Messages), len(s.Messages)+4)
	copy(out.Messages, s.Messages)
	if s.Client != nil {
		c := *s.Client
		out.Client = &c
	}
	return out
}
