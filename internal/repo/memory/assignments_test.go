package memory_test

import (
	"errors"
	"testing"

	"github.com/studymatehq/studymate/internal/domain/assignment"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

func seedAssignments(repo *memory.AssignmentsRepo) {
	repo.Put(assignment.Assignment{ID: "a1", CourseID: "c1", Title: "Quiz 1", Status: assignment.StatusPending})
	repo.Put(assignment.Assignment{ID: "a2", CourseID: "c1", Title: "Quiz 2", Status: assignment.StatusPending})
	repo.Put(assignment.Assignment{ID: "a3", CourseID: "c2", Title: "Essay", Status: assignment.StatusPending})
}

func TestAssignmentsListFilter(t *testing.T) {
	repo := memory.NewAssignmentsRepo()
	seedAssignments(repo)

	if got := len(repo.List("")); got != 3 {
		t.Errorf("unfiltered: got %d, want 3", got)
	}

	if got := len(repo.List("c1")); got != 2 {
		t.Errorf("c1: got %d, want 2", got)
	}

	if got := len(repo.List("nope")); got != 0 {
		t.Errorf("unknown course: got %d, want 0", got)
	}
}

func TestAssignmentsSubmit(t *testing.T) {
	repo := memory.NewAssignmentsRepo()
	seedAssignments(repo)

	a, err := repo.Submit("a1")

	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if a.Status != assignment.StatusSubmitted {
		t.Errorf("got status %q, want SUBMITTED", a.Status)
	}

	if a.SubmittedAt == "" {
		t.Error("submittedAt not stamped")
	}

	// the stored copy was updated too
	stored, err := repo.GetByID("a1")

	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if stored.Status != assignment.StatusSubmitted {
		t.Errorf("stored status %q, want SUBMITTED", stored.Status)
	}
}

func TestAssignmentsSubmitMissing(t *testing.T) {
	repo := memory.NewAssignmentsRepo()

	if _, err := repo.Submit("ghost"); !errors.Is(err, memory.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
