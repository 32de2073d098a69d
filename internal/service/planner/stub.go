package planner

import (
	"context"
	"fmt"

	"atelier/internal/domain/services"
)

// StubPlanner is a deterministic planner for dev and test environments.
// It echoes the intake into a fixed plan shape so the full lifecycle can
// run without an API key or network access.
type StubPlanner struct{}

// NewStubPlanner creates a new stub planner
func NewStubPlanner() *StubPlanner {
	return &StubPlanner{}
}

// Name returns the provider name
func (p *StubPlanner) Name() string {
	return "stub"
}

// Invoke produces a deterministic plan from the intake payload
func (p *StubPlanner) Invoke(ctx context.Context, intake map[string]interface{}) (*services.PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	goal := "unspecified"
	if g, ok := intake["goal"].(string); ok && g != "" {
		goal = g
	}

	return &services.PlanResult{
		Plan: map[string]interface{}{
			"phases": []interface{}{
				map[string]interface{}{"name": "discovery", "goal": goal},
				map[string]interface{}{"name": "build", "goal": goal},
				map[string]interface{}{"name": "handoff", "goal": goal},
			},
		},
		Architecture: map[string]interface{}{
			"style":      "modular monolith",
			"components": []interface{}{"api", "worker", "store"},
		},
		Summary: fmt.Sprintf("Three-phase delivery plan for: %s", goal),
	}, nil
}
