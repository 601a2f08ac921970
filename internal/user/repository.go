package user

import (
	"context"
	"database/sql"

	"github.com/ParsifalKing/Menu-project/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u User) (User, error) {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, email, phone, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, username, email, phone, password, role, created_at, updated_at`,
		u.ID, u.Username, u.Email, u.Phone, u.Password, u.Role,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, phone, password, role, created_at, updated_at
		FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}

	return u, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, phone, password, role, created_at, updated_at
		FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}

	return u, err
}
