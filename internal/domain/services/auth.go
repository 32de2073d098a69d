package services

import "context"

// Authorizer decides whether a caller may touch a resource.
// Implementations return ErrForbidden-wrapped errors on denial; callers
// treat denial and absence identically at the HTTP boundary.
type Authorizer interface {
	// CanAccessProject checks the caller owns the project
	CanAccessProject(ctx context.Context, userID, projectID string) error

	// CanAccessSprint checks the caller owns the sprint's project
	CanAccessSprint(ctx context.Context, userID, sprintID string) error
}
