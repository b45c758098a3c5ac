package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studymatehq/studymate/internal/domain/user"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already in use")
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

const userColumns = `id, email, username, full_name, profile_picture, password_hash, role, is_active, created_at, last_login`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FullName,
		&u.ProfilePicture,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.LastLogin,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// Emails are stored and matched exactly as given (case-sensitive), the same
// policy the uniqueness check uses.

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
}

func (r *UsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)

	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, username, full_name, profile_picture, password_hash, role, is_active, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		u.ID, u.Email, u.Username, u.FullName, u.ProfilePicture, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError

		// 23505 = unique_violation on the email index
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, ErrEmailAlreadyUsed
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) UpdateProfile(ctx context.Context, u user.User) (user.User, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $2, full_name = $3, profile_picture = $4 WHERE id = $1`,
		u.ID, u.Username, u.FullName, u.ProfilePicture,
	)

	if err != nil {
		return user.User{}, err
	}

	if tag.RowsAffected() == 0 {
		return user.User{}, ErrUserNotFound
	}

	return u, nil
}

func (r *UsersRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`,
		id, at,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
