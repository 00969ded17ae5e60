package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/agilbank/assistant"
	"github.com/agilbank/assistant/tool"
)

type quoteArgs struct {
	CurrencyCode string `json:"currency_code" desc:"Currency code" required:"true"`
}

func testRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	return tool.NewRegistry().Add(
		tool.Func("get_exchange_rate", "Query a currency quote",
			func(ctx context.Context, args quoteArgs) (string, error) {
				if args.CurrencyCode == "XXX" {
					return "", errors.New("quote service unavailable")
				}
				return "QUOTE: " + args.CurrencyCode, nil
			}),
		tool.Func("end_conversation", "End the conversation",
			func(ctx context.Context, args struct{}) (string, error) {
				return "CLOSED: Conversation ended successfully.", nil
			}),
	)
}

func TestToMCPTool(t *testing.T) {
	schema := json.RawMessage(`{"type":"object","properties":{"cpf":{"type":"string"}}}`)
	src := ai.Tool{
		Name:        "query_credit_limit",
		Description: "Query the client's credit limit",
		Parameters:  schema,
	}

	converted := ToMCPTool(src)

	assert.Equal(t, "query_credit_limit", converted.Name)
	assert.Equal(t, "Query the client's credit limit", converted.Description)
	assert.Equal(t, schema, converted.RawInputSchema)
}

func TestNewServer(t *testing.T) {
	s := NewServer(testRegistry(t), WithName("test-bank"), WithVersion("0.1.0"))
	require.NotNil(t, s)
}

func TestMCPHandler(t *testing.T) {
	registry := testRegistry(t)

	t.Run("forwards arguments and returns text", func(t *testing.T) {
		handler, ok := registry.Get("get_exchange_rate")
		require.True(t, ok)

		wrapped := mcpHandler("get_exchange_rate", handler)
		result, err := wrapped(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_exchange_rate",
				Arguments: map[string]any{"currency_code": "USD"},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsError)

		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "QUOTE: USD", text.Text)
	})

	t.Run("nil arguments become an empty object", func(t *testing.T) {
		handler, ok := registry.Get("end_conversation")
		require.True(t, ok)

		wrapped := mcpHandler("end_conversation", handler)
		result, err := wrapped(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "end_conversation"},
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
	})

	t.Run("handler error becomes an MCP error result", func(t *testing.T) {
		handler, ok := registry.Get("get_exchange_rate")
		require.True(t, ok)

		wrapped := mcpHandler("get_exchange_rate", handler)
		result, err := wrapped(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_exchange_rate",
				Arguments: map[string]any{"currency_code": "XXX"},
			},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}
