// Package agents defines the bank's four virtual assistant roles: triage,
// credit, interview and exchange. Each agent pairs system instructions with
// the subset of banking tools it may call; the orchestration engine routes
// the conversation between them.
package agents

import (
	"github.com/agilbank/assistant/banking"
	"github.com/agilbank/assistant/engine"
)

// All builds the full agent roster over a banking service.
func All(svc *banking.Service) []*engine.Agent {
	return []*engine.Agent{
		Triage(svc),
		Credit(svc),
		Interview(svc),
		Exchange(svc),
	}
}
