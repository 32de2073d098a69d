package models

import "time"

// Conversation is one append-only audit record of an input/output exchange
// with the planning workflow. Conversations are never edited; reset deletes
// them wholesale for the project.
type Conversation struct {
	ID              string                 `json:"id" db:"id"`
	ProjectID       string                 `json:"project_id" db:"project_id"`
	Role            string                 `json:"role" db:"role"`
	InteractionType string                 `json:"interaction_type" db:"interaction_type"`
	Input           map[string]interface{} `json:"input,omitempty" db:"input"`
	Output          map[string]interface{} `json:"output,omitempty" db:"output"`
	CreatedAt       time.Time              `json:"created_at" db:"created_at"`
}
