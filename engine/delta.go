package engine

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	ai "github.com/agilbank/assistant"
)

// Canonical tool names. Tool handlers register under these names and the
// delta decoders key on them; the textual result is the only channel for
// structured outcome signaling, shared with the model.
const (
	ToolAuthenticateClient   = "authenticate_client"
	ToolEndConversation      = "end_conversation"
	ToolQueryCreditLimit     = "query_credit_limit"
	ToolRequestLimitIncrease = "request_limit_increase"
	ToolCalculateCreditScore = "calculate_credit_score"
	ToolUpdateClientScore    = "update_client_score"
	ToolGetExchangeRate      = "get_exchange_rate"
	ToolTransferToTriage     = "transfer_to_triage"
	ToolTransferToCredit     = "transfer_to_credit"
	ToolTransferToInterview  = "transfer_to_interview"
	ToolTransferToExchange   = "transfer_to_exchange"
)

// transferTargets maps each transfer tool to the role it activates.
// A transfer always succeeds structurally, so the target is taken from
// this table regardless of the result text.
var transferTargets = map[string]AgentName{
	ToolTransferToTriage:    AgentTriage,
	ToolTransferToCredit:    AgentCredit,
	ToolTransferToInterview: AgentInterview,
	ToolTransferToExchange:  AgentExchange,
}

// deltaFunc mutates the state according to one tool's result and arguments.
type deltaFunc func(s *State, call ai.ToolCall, result string)

// deltaDecoders is the tagged-union decoder: each known tool identifier
// maps to its state-mutation rule. Unrecognized tools fall through to a
// no-op delta.
var deltaDecoders = map[string]deltaFunc{
	ToolEndConversation:      decodeEndConversation,
	ToolAuthenticateClient:   decodeAuthentication,
	ToolUpdateClientScore:    decodeScoreUpdate,
	ToolRequestLimitIncrease: decodeLimitIncrease,
	ToolTransferToTriage:     decodeTransfer,
	ToolTransferToCredit:     decodeTransfer,
	ToolTransferToInterview:  decodeTransfer,
	ToolTransferToExchange:   decodeTransfer,
}

// applyDelta applies the state-mutation rule for one executed tool call.
// Later calls in the same batch may overwrite earlier deltas to the same
// field (last-write-wins within a turn).
func applyDelta(s *State, call ai.ToolCall, result string) {
	if decode, ok := deltaDecoders[call.Name]; ok {
		decode(s, call, result)
	}
}

func decodeEndConversation(s *State, _ ai.ToolCall, _ string) {
	s.ShouldEnd = true
}

func decodeTransfer(s *State, call ai.ToolCall, _ string) {
	if target, ok := transferTargets[call.Name]; ok {
		s.CurrentAgent = target
	}
}

// decodeAuthentication handles the authentication result:
// SUCCESS marks the conversation authenticated and parses the client
// attributes out of the text, FAILURE increments the attempt counter, and
// any other prefix (system error) changes nothing.
func decodeAuthentication(s *State, _ ai.ToolCall, result string) {
	switch {
	case strings.HasPrefix(result, "SUCCESS"):
		s.Authenticated = true
		s.Client = parseClientData(result)
	case strings.HasPrefix(result, "FAILURE"):
		s.AuthAttempts++
	}
}

// parseClientData extracts name, CPF, credit limit and score from a
// successful authentication result. Any parse failure falls back to the
// raw text; fields are never guessed.
func parseClientData(result string) *ClientData {
	client := &ClientData{}
	for _, part := range strings.Split(result, ", ") {
		switch {
		case strings.Contains(part, "Name:"):
			client.Name = strings.TrimSpace(afterMarker(part, "Name:"))
		case strings.Contains(part, "CPF:"):
			client.CPF = strings.TrimSpace(afterMarker(part, "CPF:"))
		case strings.Contains(part, "Credit limit:"):
			val := strings.TrimSpace(afterMarker(part, "R$"))
			limit, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return &ClientData{Raw: result}
			}
			client.CreditLimit = limit
		case strings.Contains(part, "Score:"):
			val := strings.TrimSpace(afterMarker(part, "Score:"))
			score, err := strconv.Atoi(val)
			if err != nil {
				return &ClientData{Raw: result}
			}
			client.Score = score
		}
	}
	return client
}

func afterMarker(s, marker string) string {
	if idx := strings.Index(s, marker); idx >= 0 {
		return s[idx+len(marker):]
	}
	return ""
}

var newScoreRe = regexp.MustCompile(`\bto (\d+)`)

// decodeScoreUpdate overwrites only the score field when the update was
// confirmed and client data is present. Parse failure makes no change.
func decodeScoreUpdate(s *State, _ ai.ToolCall, result string) {
	if !strings.HasPrefix(result, "UPDATED") || s.Client == nil {
		return
	}
	matches := newScoreRe.FindAllStringSubmatch(result, -1)
	if len(matches) == 0 {
		return
	}
	score, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return
	}
	c := *s.Client
	c.Score = score
	s.Client = &c
}

// decodeLimitIncrease overwrites only the credit-limit field on approval,
// using the originally requested argument rather than reparsing the text.
// Missing or malformed arguments make no change.
func decodeLimitIncrease(s *State, call ai.ToolCall, result string) {
	if !strings.HasPrefix(result, "APPROVED") || s.Client == nil {
		return
	}
	var args struct {
		NewLimit *float64 `json:"new_limit"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil || args.NewLimit == nil {
		return
	}
	c := *s.Client
	c.CreditLimit = *args.NewLimit
	s.Client = &c
}
