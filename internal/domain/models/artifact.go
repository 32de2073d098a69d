package models

import "time"

// ArtifactType is the closed set of document kinds produced during planning
// and execution. The type partitions retention policy under reset: plan
// artifacts survive, implementation artifacts are disposable.
type ArtifactType string

const (
	ArtifactTypeBacklog      ArtifactType = "BACKLOG"
	ArtifactTypeArchitecture ArtifactType = "ARCHITECTURE"
	ArtifactTypeSprintStatus ArtifactType = "SPRINT_STATUS"
	ArtifactTypeHandoff      ArtifactType = "HANDOFF"
	ArtifactTypeHandoffCTO   ArtifactType = "HANDOFF_CTO_TO_IMPLEMENTER"
)

// RetainedArtifactTypes are the long-lived plan artifacts kept by reset.
var RetainedArtifactTypes = []ArtifactType{
	ArtifactTypeBacklog,
	ArtifactTypeArchitecture,
}

// DisposableArtifactTypes are the implementation artifacts deleted by reset.
var DisposableArtifactTypes = []ArtifactType{
	ArtifactTypeSprintStatus,
	ArtifactTypeHandoff,
	ArtifactTypeHandoffCTO,
}

// Disposable reports whether an artifact of this type is deleted by reset.
func (t ArtifactType) Disposable() bool {
	for _, kept := range RetainedArtifactTypes {
		if t == kept {
			return false
		}
	}
	return true
}

// ValidArtifactType reports whether t is a member of the closed enum.
func ValidArtifactType(t ArtifactType) bool {
	switch t {
	case ArtifactTypeBacklog, ArtifactTypeArchitecture, ArtifactTypeSprintStatus,
		ArtifactTypeHandoff, ArtifactTypeHandoffCTO:
		return true
	}
	return false
}

// Artifact is a persisted document belonging to exactly one project.
type Artifact struct {
	ID        string                 `json:"id" db:"id"`
	ProjectID string                 `json:"project_id" db:"project_id"`
	Type      ArtifactType           `json:"type" db:"type"`
	Title     string                 `json:"title" db:"title"`
	Content   map[string]interface{} `json:"content,omitempty" db:"content"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}
