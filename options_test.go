package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	tools := []Tool{{Name: "authenticate_client", Description: "Authenticate a client"}}

	o := ApplyOptions(
		WithModel("gemini-2.5-flash"),
		WithMaxTokens(1024),
		WithTemperature(0.3),
		WithTools(tools),
		WithToolChoice(ToolChoiceAuto),
	)

	assert.Equal(t, "gemini-2.5-flash", o.Model)
	assert.Equal(t, 1024, o.MaxTokens)
	require.NotNil(t, o.Temperature)
	assert.InDelta(t, 0.3, *o.Temperature, 1e-9)
	assert.Equal(t, tools, o.Tools)
	assert.Equal(t, ToolChoiceAuto, o.ToolChoice)
}

func TestApplyOptionsDefaults(t *testing.T) {
	o := ApplyOptions()

	assert.Empty(t, o.Model)
	assert.Zero(t, o.MaxTokens)
	assert.Nil(t, o.Temperature)
	assert.Empty(t, o.Tools)
	assert.Empty(t, o.ToolChoice)
}
