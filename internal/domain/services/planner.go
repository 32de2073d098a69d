package services

import (
	"context"
)

// PlanResult is the structured output of one planning invocation.
// Plan and Architecture are opaque documents persisted onto the project;
// Summary is a short human-readable digest.
type PlanResult struct {
	Plan         map[string]interface{} `json:"plan"`
	Architecture map[string]interface{} `json:"architecture"`
	Summary      string                 `json:"summary"`
}

// Planner is the planning workflow invoker: an opaque capability that turns
// a project's intake payload into a plan. It is injected into the lifecycle
// engine so tests can substitute a deterministic stub. The engine treats a
// call as a single blocking operation; cancellation rides on ctx.
type Planner interface {
	// Name identifies the provider for logging and conversation records
	Name() string

	// Invoke produces a plan from the intake payload
	Invoke(ctx context.Context, intake map[string]interface{}) (*PlanResult, error)
}
