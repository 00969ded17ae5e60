package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMessageID(t *testing.T) {
	id1 := GenerateMessageID()
	id2 := GenerateMessageID()

	assert.True(t, strings.HasPrefix(id1, "msg-"))
	assert.NotEqual(t, id1, id2)
}

func TestMessageConstructors(t *testing.T) {
	t.Run("user message", func(t *testing.T) {
		m := NewUserMessage("I would like to check my credit limit")
		assert.Equal(t, RoleUser, m.Role)
		assert.Equal(t, "I would like to check my credit limit", m.Content)
		assert.NotEmpty(t, m.ID)
	})

	t.Run("assistant message", func(t *testing.T) {
		m := NewAssistantMessage("Of course, may I have your CPF?")
		assert.Equal(t, RoleAssistant, m.Role)
		assert.NotEmpty(t, m.ID)
	})

	t.Run("system message has no ID", func(t *testing.T) {
		m := NewSystemMessage("You are the virtual assistant of Banco Ágil.")
		assert.Equal(t, RoleSystem, m.Role)
		assert.Empty(t, m.ID)
	})
}

func TestMessageIsFinal(t *testing.T) {
	assert.True(t, NewAssistantMessage("All set.").IsFinal())
	assert.False(t, NewUserMessage("hello").IsFinal())
	assert.False(t, Message{Role: RoleAssistant}.IsFinal())
	assert.False(t, Message{
		Role:      RoleAssistant,
		Content:   "checking",
		ToolCalls: []ToolCall{{ID: "call_1", Name: "query_credit_limit"}},
	}.IsFinal())
}

func TestNewToolResultMessage(t *testing.T) {
	m := NewToolResultMessage(
		ToolResult{ToolCallID: "call_1", Name: "authenticate_client", Content: "SUCCESS"},
		ToolResult{ToolCallID: "call_2", Name: "bogus", Content: "ERROR", IsError: true},
	)

	assert.Equal(t, RoleTool, m.Role)
	assert.Len(t, m.ToolResults, 2)
	assert.True(t, m.ToolResults[1].IsError)
}
