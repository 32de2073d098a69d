package models

import "time"

// Sprint is a time-boxed execution unit belonging to exactly one project.
// Sequence is unique within the project and immutable after creation.
// StartedAt/CompletedAt are set and cleared only by status transitions.
type Sprint struct {
	ID            string       `json:"id" db:"id"`
	ProjectID     string       `json:"project_id" db:"project_id"`
	Sequence      int          `json:"sequence" db:"sequence"`
	Status        SprintStatus `json:"status" db:"status"`
	Goal          string       `json:"goal,omitempty" db:"goal"`
	StartedAt     *time.Time   `json:"started_at,omitempty" db:"started_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	ReviewSummary *string      `json:"review_summary,omitempty" db:"review_summary"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}
