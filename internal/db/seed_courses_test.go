package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studymatehq/studymate/internal/db"
	"github.com/studymatehq/studymate/internal/domain/course"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

type fakeCourseSeedStore struct {
	countFn func(ctx context.Context, category string) (int, error)

	created []course.Course
}

func (f *fakeCourseSeedStore) Count(ctx context.Context, category string) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx, category)
	}

	return len(f.created), nil
}

func (f *fakeCourseSeedStore) Create(ctx context.Context, c course.Course) (course.Course, error) {
	f.created = append(f.created, c)

	return c, nil
}

func TestEnsureSampleCoursesSeedsEmptyStore(t *testing.T) {
	store := &fakeCourseSeedStore{
		countFn: func(ctx context.Context, category string) (int, error) {
			return 0, nil
		},
	}

	sample := memory.SampleCourses(time.Now().UTC())

	if err := db.EnsureSampleCourses(context.Background(), store, sample); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if len(store.created) != len(sample) {
		t.Fatalf("got %d courses created, want %d", len(store.created), len(sample))
	}

	for i := range sample {
		if store.created[i].ID != sample[i].ID {
			t.Errorf("course %d: got id %q, want %q", i, store.created[i].ID, sample[i].ID)
		}
	}
}

func TestEnsureSampleCoursesSkipsPopulatedStore(t *testing.T) {
	store := &fakeCourseSeedStore{
		countFn: func(ctx context.Context, category string) (int, error) {
			return 12, nil
		},
	}

	sample := memory.SampleCourses(time.Now().UTC())

	if err := db.EnsureSampleCourses(context.Background(), store, sample); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if len(store.created) != 0 {
		t.Errorf("got %d courses created, want 0 (table already populated)", len(store.created))
	}
}

func TestEnsureSampleCoursesCountError(t *testing.T) {
	store := &fakeCourseSeedStore{
		countFn: func(ctx context.Context, category string) (int, error) {
			return 0, errors.New("db down")
		},
	}

	err := db.EnsureSampleCourses(context.Background(), store, memory.SampleCourses(time.Now().UTC()))

	if err == nil {
		t.Fatal("expected error when count fails")
	}
}
