package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studymatehq/studymate/internal/domain/course"
)

var ErrPDFNotFound = errors.New("course pdf not found")

type CoursePDFsRepo struct {
	pool *pgxpool.Pool
}

func NewCoursePDFsRepo(pool *pgxpool.Pool) *CoursePDFsRepo {
	return &CoursePDFsRepo{pool: pool}
}

// Upsert stores the blob and touches the course's updated_at in the same
// transaction so a half-written upload is never visible.

func (r *CoursePDFsRepo) Upsert(ctx context.Context, p course.PDF) error {
	tx, err := r.pool.Begin(ctx)

	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO course_pdfs (course_id, file_name, content_type, data, uploaded_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (course_id) DO UPDATE
		 SET file_name = EXCLUDED.file_name,
		     content_type = EXCLUDED.content_type,
		     data = EXCLUDED.data,
		     uploaded_at = EXCLUDED.uploaded_at`,
		p.CourseID, p.FileName, p.ContentType, p.Data, p.UploadedAt,
	)

	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE courses SET updated_at = $2 WHERE id = $1`,
		p.CourseID, time.Now().UTC(),
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return tx.Commit(ctx)
}

func (r *CoursePDFsRepo) GetByCourseID(ctx context.Context, courseID string) (course.PDF, error) {
	var p course.PDF

	err := r.pool.QueryRow(ctx,
		`SELECT course_id, file_name, content_type, data, uploaded_at
		 FROM course_pdfs WHERE course_id = $1`,
		courseID,
	).Scan(&p.CourseID, &p.FileName, &p.ContentType, &p.Data, &p.UploadedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.PDF{}, ErrPDFNotFound
		}

		return course.PDF{}, err
	}

	return p, nil
}
