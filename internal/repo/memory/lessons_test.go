package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/studymatehq/studymate/internal/domain/course"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

func TestLessonsListSorted(t *testing.T) {
	repo := memory.NewLessonsRepo()

	repo.Put("c1", []course.Lesson{
		{ID: "l3", CourseID: "c1", Title: "Third", Order: 3},
		{ID: "l1", CourseID: "c1", Title: "First", Order: 1},
		{ID: "l2", CourseID: "c1", Title: "Second", Order: 2},
	})

	lessons := repo.ListByCourse("c1")

	if len(lessons) != 3 {
		t.Fatalf("got %d lessons, want 3", len(lessons))
	}

	for i, want := range []string{"l1", "l2", "l3"} {
		if lessons[i].ID != want {
			t.Errorf("position %d: got %q, want %q", i, lessons[i].ID, want)
		}
	}
}

func TestLessonsUnknownCourse(t *testing.T) {
	repo := memory.NewLessonsRepo()

	lessons := repo.ListByCourse("ghost")

	if lessons == nil || len(lessons) != 0 {
		t.Errorf("got %v, want empty non-nil slice", lessons)
	}
}

func TestLessonsComplete(t *testing.T) {
	repo := memory.NewLessonsRepo()

	repo.Put("c1", []course.Lesson{
		{ID: "l1", CourseID: "c1", Order: 1},
	})

	if err := repo.Complete("c1", "l1"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if got := repo.ListByCourse("c1"); !got[0].IsCompleted {
		t.Error("lesson not marked completed")
	}

	if err := repo.Complete("c1", "ghost"); !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("missing lesson: got %v, want ErrNotFound", err)
	}

	if err := repo.Complete("ghost", "l1"); !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("missing course: got %v, want ErrNotFound", err)
	}
}

func TestSeedPopulatesStores(t *testing.T) {
	stores := memory.NewStores()
	stores.Seed(memory.SampleCourses(time.Now().UTC()))

	if got := len(stores.Assignments.List("")); got == 0 {
		t.Error("seed left assignments empty")
	}

	if got := len(stores.StudyPlans.List()); got == 0 {
		t.Error("seed left study plans empty")
	}

	if got := len(stores.Discussions.List("")); got == 0 {
		t.Error("seed left discussions empty")
	}

	if got := len(stores.TutorSessions.List()); got == 0 {
		t.Error("seed left tutor sessions empty")
	}
}

func TestSampleCourseIDsStable(t *testing.T) {
	now := time.Now().UTC()

	first := memory.SampleCourses(now)
	second := memory.SampleCourses(now.Add(time.Hour))

	if len(first) == 0 {
		t.Fatal("no sample courses")
	}

	// ids must survive restarts so re-seeded lessons and assignments stay
	// joined to the courses already in the database
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("course %d: id changed across builds: %q vs %q", i, first[i].ID, second[i].ID)
		}

		if first[i].ID == "" {
			t.Errorf("course %d: empty id", i)
		}
	}
}

func TestSeedKeysRecordsToCourses(t *testing.T) {
	courses := memory.SampleCourses(time.Now().UTC())

	stores := memory.NewStores()
	stores.Seed(courses)

	known := make(map[string]bool, len(courses))

	for _, c := range courses {
		known[c.ID] = true

		if got := stores.Lessons.ListByCourse(c.ID); len(got) == 0 {
			t.Errorf("course %s has no lessons", c.ID)
		}

		if got := stores.Assignments.List(c.ID); len(got) != 1 {
			t.Errorf("course %s: got %d assignments, want 1", c.ID, len(got))
		}
	}

	for _, p := range stores.StudyPlans.List() {
		for _, id := range p.Courses {
			if !known[id] {
				t.Errorf("study plan references unknown course %s", id)
			}
		}
	}
}
