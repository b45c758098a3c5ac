package db

import (
	"context"
	"fmt"

	"github.com/studymatehq/studymate/internal/domain/course"
)

type CourseSeedStore interface {
	Count(ctx context.Context, category string) (int, error)
	Create(ctx context.Context, c course.Course) (course.Course, error)
}

// EnsureSampleCourses inserts the demo catalog on first boot. A non-empty
// courses table is left untouched, so real deployments can replace the demo
// data without it coming back.

func EnsureSampleCourses(ctx context.Context, store CourseSeedStore, courses []course.Course) error {
	total, err := store.Count(ctx, "")

	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}

	if total > 0 {
		return nil
	}

	for _, c := range courses {
		if _, err := store.Create(ctx, c); err != nil {
			return fmt.Errorf("seed course %s: %w", c.ID, err)
		}
	}

	return nil
}
