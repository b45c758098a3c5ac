package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studymatehq/studymate/internal/domain/course"
)

var ErrCourseNotFound = errors.New("course not found")

type CoursesRepo struct {
	pool *pgxpool.Pool
}

// constructor function

func NewCoursesRepo(pool *pgxpool.Pool) *CoursesRepo {
	return &CoursesRepo{
		pool: pool,
	}
}

const courseColumns = `id, title, description, instructor, category, difficulty, duration, enrolled_students, rating, thumbnail, created_at, updated_at`

// List returns every course matching the optional category filter, newest
// first. Pagination is a naive in-memory slice at the handler; the catalog
// is small enough that fetch-all keeps the query simple.

func (r *CoursesRepo) List(ctx context.Context, category string) ([]course.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`

	var args []interface{}

	if strings.TrimSpace(category) != "" {
		query += ` WHERE LOWER(category) = LOWER($1)`
		args = append(args, category)
	}

	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]course.Course, 0)

	for rows.Next() {
		var c course.Course

		err = rows.Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.Category, &c.Difficulty,
			&c.Duration, &c.EnrolledStudents, &c.Rating, &c.Thumbnail, &c.CreatedAt, &c.UpdatedAt)

		if err != nil {
			return nil, err
		}

		output = append(output, c)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *CoursesRepo) Count(ctx context.Context, category string) (int, error) {
	query := `SELECT COUNT(*) FROM courses`

	var args []interface{}

	if strings.TrimSpace(category) != "" {
		query += ` WHERE LOWER(category) = LOWER($1)`
		args = append(args, category)
	}

	var total int

	err := r.pool.QueryRow(ctx, query, args...).Scan(&total)

	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *CoursesRepo) GetByID(ctx context.Context, id string) (course.Course, error) {
	var c course.Course

	err := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.Category, &c.Difficulty,
		&c.Duration, &c.EnrolledStudents, &c.Rating, &c.Thumbnail, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, ErrCourseNotFound
		}

		return course.Course{}, err
	}

	return c, nil
}

func (r *CoursesRepo) Create(ctx context.Context, c course.Course) (course.Course, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO courses (`+courseColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		c.ID, c.Title, c.Description, c.Instructor, c.Category, c.Difficulty,
		c.Duration, c.EnrolledStudents, c.Rating, c.Thumbnail, c.CreatedAt, c.UpdatedAt,
	)

	if err != nil {
		return course.Course{}, fmt.Errorf("insert course: %w", err)
	}

	return c, nil
}
