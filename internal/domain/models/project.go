package models

import (
	"time"
)

// Project is a client engagement tracked through the status lifecycle.
// The intake, plan and architecture payloads are opaque structured
// documents owned exclusively by the project.
type Project struct {
	ID           string                 `json:"id" db:"id"`
	ClientID     string                 `json:"client_id" db:"client_id"`
	UserID       string                 `json:"user_id" db:"user_id"`
	Slug         string                 `json:"slug" db:"slug"`
	Name         string                 `json:"name" db:"name"`
	Status       ProjectStatus          `json:"status" db:"status"`
	Intake       map[string]interface{} `json:"intake,omitempty" db:"intake"`
	Plan         map[string]interface{} `json:"plan,omitempty" db:"plan"`
	Architecture map[string]interface{} `json:"architecture,omitempty" db:"architecture"`
	Summary      *string                `json:"summary,omitempty" db:"summary"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at" db:"updated_at"`
	ArchivedAt   *time.Time             `json:"archived_at,omitempty" db:"archived_at"`
}

// Archived reports whether the project is in the terminal archived state.
// Invariant: ArchivedAt is non-nil iff Status is FINISHED.
func (p *Project) Archived() bool {
	return p.Status == ProjectStatusFinished
}

// StatusChange is one immutable audit record of a project status
// transition. Exactly one row is appended per applied transition.
type StatusChange struct {
	ID        string        `json:"id" db:"id"`
	ProjectID string        `json:"project_id" db:"project_id"`
	OldStatus ProjectStatus `json:"old_status" db:"old_status"`
	NewStatus ProjectStatus `json:"new_status" db:"new_status"`
	ChangedBy string        `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time     `json:"changed_at" db:"changed_at"`
}
