package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/domain/user"
	"github.com/studymatehq/studymate/internal/security"
)

func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword, cfg.BcryptCost)

	if err != nil {
		return err
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		Username:     cfg.AdminName,
		FullName:     cfg.AdminName,
		PasswordHash: hash,
		Role:         cfg.AdminRole,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, username, full_name, password_hash, role, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
		u.ID, u.Email, u.Username, u.FullName, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt,
	)

	return err
}
