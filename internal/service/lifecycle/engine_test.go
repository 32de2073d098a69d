package lifecycle

import (
	"context"
	"errors"
	"testing"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
)

const testUser = "user-1"

func TestChangeStatusAppliesLegalTransition(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusIntake)

	got, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, models.ProjectStatusPlanning)
	if err != nil {
		t.Fatalf("ChangeStatus returned error: %v", err)
	}
	if got.Status != models.ProjectStatusPlanning {
		t.Errorf("returned status = %s, want %s", got.Status, models.ProjectStatusPlanning)
	}

	stored := e.storedProject(p.ID)
	if stored.Status != models.ProjectStatusPlanning {
		t.Errorf("stored status = %s, want %s", stored.Status, models.ProjectStatusPlanning)
	}

	changes := e.changesFor(p.ID)
	if len(changes) != 1 {
		t.Fatalf("history rows = %d, want 1", len(changes))
	}
	c := changes[0]
	if c.OldStatus != models.ProjectStatusIntake || c.NewStatus != models.ProjectStatusPlanning {
		t.Errorf("history row = %s -> %s, want %s -> %s",
			c.OldStatus, c.NewStatus, models.ProjectStatusIntake, models.ProjectStatusPlanning)
	}
	if c.ChangedBy != testUser {
		t.Errorf("changed_by = %s, want %s", c.ChangedBy, testUser)
	}
}

func TestChangeStatusRejectsIllegalEdgeWithoutWrites(t *testing.T) {
	tests := []struct {
		name      string
		from      models.ProjectStatus
		requested models.ProjectStatus
	}{
		{"skip forward", models.ProjectStatusIntake, models.ProjectStatusApproved},
		{"backward without exception", models.ProjectStatusComplete, models.ProjectStatusReview},
		{"self transition", models.ProjectStatusReview, models.ProjectStatusReview},
		{"restore from non-finished", models.ProjectStatusComplete, models.ProjectStatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			p := e.addProject(testUser, tt.from)
			before := e.store.writeCount()

			_, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, tt.requested)

			var invalid *domain.InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("error = %v, want InvalidTransitionError", err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Error("InvalidTransitionError should match ErrValidation")
			}
			if e.store.writeCount() != before {
				t.Errorf("writes = %d, want %d (rejection must not touch the store)",
					e.store.writeCount(), before)
			}
			if got := e.storedProject(p.ID).Status; got != tt.from {
				t.Errorf("stored status = %s, want unchanged %s", got, tt.from)
			}
			if len(e.changesFor(p.ID)) != 0 {
				t.Error("rejected transition must not append a history row")
			}
		})
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusIntake)
	before := e.store.writeCount()

	_, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, "ACTIVE")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if e.store.writeCount() != before {
		t.Error("unknown status must not touch the store")
	}
}

func TestChangeStatusForeignProjectIsNotFound(t *testing.T) {
	e := newEnv()
	p := e.addProject("someone-else", models.ProjectStatusIntake)
	before := e.store.writeCount()

	_, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, models.ProjectStatusPlanning)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if e.store.writeCount() != before {
		t.Error("foreign project must not be written")
	}
	if got := e.storedProject(p.ID).Status; got != models.ProjectStatusIntake {
		t.Errorf("stored status = %s, want unchanged INTAKE", got)
	}
}

func TestChangeStatusExactlyOneHistoryRowPerTransition(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusIntake)

	path := []models.ProjectStatus{
		models.ProjectStatusPlanning,
		models.ProjectStatusReview,
		models.ProjectStatusApproved,
		models.ProjectStatusInProgress,
		models.ProjectStatusComplete,
		models.ProjectStatusFinished,
	}
	for _, next := range path {
		if _, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, next); err != nil {
			t.Fatalf("ChangeStatus(%s): %v", next, err)
		}
	}

	changes := e.changesFor(p.ID)
	if len(changes) != len(path) {
		t.Fatalf("history rows = %d, want %d", len(changes), len(path))
	}
	expectedFrom := models.ProjectStatusIntake
	for i, c := range changes {
		if c.OldStatus != expectedFrom || c.NewStatus != path[i] {
			t.Errorf("row %d = %s -> %s, want %s -> %s",
				i, c.OldStatus, c.NewStatus, expectedFrom, path[i])
		}
		expectedFrom = path[i]
	}
}

func TestArchiveStampsArchivedAt(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusComplete)

	got, err := e.svc.Archive(context.Background(), testUser, p.ID)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	if got.Status != models.ProjectStatusFinished {
		t.Errorf("status = %s, want FINISHED", got.Status)
	}
	if got.ArchivedAt == nil {
		t.Fatal("ArchivedAt = nil, want stamped")
	}

	stored := e.storedProject(p.ID)
	if stored.ArchivedAt == nil {
		t.Error("stored ArchivedAt = nil, want stamped")
	}
}

func TestArchiveFromApprovedEarlyExit(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusApproved)

	got, err := e.svc.Archive(context.Background(), testUser, p.ID)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	if got.Status != models.ProjectStatusFinished || got.ArchivedAt == nil {
		t.Errorf("early archive: status = %s, archived_at nil = %v", got.Status, got.ArchivedAt == nil)
	}
}

func TestRestoreClearsArchivedAt(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusFinished)

	got, err := e.svc.Restore(context.Background(), testUser, p.ID)
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if got.Status != models.ProjectStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", got.Status)
	}
	if got.ArchivedAt != nil {
		t.Error("ArchivedAt should be cleared on restore")
	}

	stored := e.storedProject(p.ID)
	if stored.ArchivedAt != nil {
		t.Error("stored ArchivedAt should be cleared on restore")
	}
}

func TestRestoreOfActiveProjectRejected(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusInProgress)
	before := e.store.writeCount()

	_, err := e.svc.Restore(context.Background(), testUser, p.ID)
	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
	if e.store.writeCount() != before {
		t.Error("rejected restore must not touch the store")
	}
}

// Archiving, restoring and archiving again must stamp a fresh archived_at
// each cycle and append one history row per step.
func TestArchiveRestoreRoundTrip(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusComplete)

	first, err := e.svc.Archive(context.Background(), testUser, p.ID)
	if err != nil {
		t.Fatalf("first archive: %v", err)
	}
	firstStamp := *first.ArchivedAt

	if _, err := e.svc.Restore(context.Background(), testUser, p.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if e.storedProject(p.ID).ArchivedAt != nil {
		t.Fatal("archived_at not cleared after restore")
	}

	// Walk back to COMPLETE, then archive again
	if _, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, models.ProjectStatusComplete); err != nil {
		t.Fatalf("in_progress -> complete: %v", err)
	}
	second, err := e.svc.Archive(context.Background(), testUser, p.ID)
	if err != nil {
		t.Fatalf("second archive: %v", err)
	}
	if second.ArchivedAt.Before(firstStamp) {
		t.Error("second archive stamp predates the first; expected a fresh timestamp")
	}

	changes := e.changesFor(p.ID)
	if len(changes) != 4 {
		t.Errorf("history rows = %d, want 4 (archive, restore, complete, archive)", len(changes))
	}
}

func TestHistoryRequiresOwnership(t *testing.T) {
	e := newEnv()
	p := e.addProject("someone-else", models.ProjectStatusIntake)

	_, err := e.svc.History(context.Background(), testUser, p.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestHistoryReturnsTrailOldestFirst(t *testing.T) {
	e := newEnv()
	p := e.addProject(testUser, models.ProjectStatusIntake)

	for _, next := range []models.ProjectStatus{models.ProjectStatusPlanning, models.ProjectStatusReview} {
		if _, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, next); err != nil {
			t.Fatalf("ChangeStatus(%s): %v", next, err)
		}
	}

	trail, err := e.svc.History(context.Background(), testUser, p.ID)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("trail length = %d, want 2", len(trail))
	}
	if trail[0].NewStatus != models.ProjectStatusPlanning || trail[1].NewStatus != models.ProjectStatusReview {
		t.Errorf("trail order wrong: %s then %s", trail[0].NewStatus, trail[1].NewStatus)
	}
}

func TestChangeStatusSurfacesCommitFailure(t *testing.T) {
	e := newEnv()
	e.tx.failOn = 1
	e.tx.err = errors.New("commit failed")
	p := e.addProject(testUser, models.ProjectStatusComplete)

	_, err := e.svc.ChangeStatus(context.Background(), testUser, p.ID, models.ProjectStatusFinished)
	if !errors.Is(err, e.tx.err) {
		t.Fatalf("error = %v, want the commit failure", err)
	}
}
