package repository

import (
	"context"
	"errors"
	"time"

	"petbooking/internal/domain/user"
	"petbooking/internal/infra"
	"petbooking/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	pool db.DBTX
}

func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var (
		id           int64
		passwordHash string
		role         string
		createdAt    time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, password_hash, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&id, &passwordHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by username", err)
	}

	return user.Reconstruct(id, username, passwordHash, user.Role(role), createdAt), nil
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`,
		u.Username(), u.PasswordHash(), u.Role().String(),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("username already taken", err, infra.KindDuplicateKey)
		}
		return 0, infra.WrapRepoErr("failed to insert user", err)
	}
	return id, nil
}
