package models

// ProjectStatus is the canonical project lifecycle vocabulary.
// The pipeline is linear; restore and rollback are exceptional backward
// edges, not part of normal flow.
type ProjectStatus string

const (
	ProjectStatusIntake     ProjectStatus = "INTAKE"
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusReview     ProjectStatus = "REVIEW"
	ProjectStatusApproved   ProjectStatus = "APPROVED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusComplete   ProjectStatus = "COMPLETE"
	ProjectStatusFinished   ProjectStatus = "FINISHED"
)

// projectPipeline defines the forward successor for each status.
// FINISHED is terminal and has no forward edge.
var projectPipeline = map[ProjectStatus]ProjectStatus{
	ProjectStatusIntake:     ProjectStatusPlanning,
	ProjectStatusPlanning:   ProjectStatusReview,
	ProjectStatusReview:     ProjectStatusApproved,
	ProjectStatusApproved:   ProjectStatusInProgress,
	ProjectStatusInProgress: ProjectStatusComplete,
	ProjectStatusComplete:   ProjectStatusFinished,
}

// projectExceptions enumerates the allowed backward edges:
// restore (FINISHED -> IN_PROGRESS), rollback on planning failure
// (PLANNING -> INTAKE), and early archive (APPROVED -> FINISHED).
var projectExceptions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusFinished: {ProjectStatusInProgress},
	ProjectStatusPlanning: {ProjectStatusIntake},
	ProjectStatusApproved: {ProjectStatusFinished},
}

// ValidProjectStatus reports whether s is a member of the canonical enum.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusIntake, ProjectStatusPlanning, ProjectStatusReview,
		ProjectStatusApproved, ProjectStatusInProgress, ProjectStatusComplete,
		ProjectStatusFinished:
		return true
	}
	return false
}

// CanTransitionProject reports whether the edge from -> to is legal:
// either the defined pipeline successor or an enumerated exception.
func CanTransitionProject(from, to ProjectStatus) bool {
	if projectPipeline[from] == to {
		return true
	}
	for _, allowed := range projectExceptions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SprintStatus is the sprint execution vocabulary.
type SprintStatus string

const (
	SprintStatusPlanned    SprintStatus = "PLANNED"
	SprintStatusInProgress SprintStatus = "IN_PROGRESS"
	SprintStatusReview     SprintStatus = "REVIEW"
	SprintStatusDone       SprintStatus = "DONE"
)

var sprintPipeline = map[SprintStatus]SprintStatus{
	SprintStatusPlanned:    SprintStatusInProgress,
	SprintStatusInProgress: SprintStatusReview,
	SprintStatusReview:     SprintStatusDone,
}

// ValidSprintStatus reports whether s is a member of the sprint enum.
func ValidSprintStatus(s SprintStatus) bool {
	switch s {
	case SprintStatusPlanned, SprintStatusInProgress, SprintStatusReview, SprintStatusDone:
		return true
	}
	return false
}

// CanTransitionSprint reports whether the edge from -> to is legal.
// Sprints have no exceptional edges; reset bypasses the table entirely
// because it is a bulk force-to-PLANNED, not a requested transition.
func CanTransitionSprint(from, to SprintStatus) bool {
	return sprintPipeline[from] == to
}
