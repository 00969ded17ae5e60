package engine

import (
	"github.com/agilbank/assistant/tool"
)

// Agent pairs a conversational role with its system instructions and the
// subset of tools the model may call while that role is active.
type Agent struct {
	Name         AgentName
	Instructions string
	Tools        *tool.Registry
}
