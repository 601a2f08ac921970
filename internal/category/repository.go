package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	Create(ctx context.Context, name, description string) (Category, error)
	Update(ctx context.Context, c Category) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error
	UnlinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, name, description string) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, description, created_at, updated_at`,
		uuid.New(), name, description,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *repository) Update(ctx context.Context, c Category) (Category, error) {
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, created_at, updated_at`,
		c.ID, c.Name, c.Description,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) LinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dish_categories (id, category_id, dish_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (category_id, dish_id) DO NOTHING`,
		uuid.New(), categoryID, dishID)
	return err
}

func (r *repository) UnlinkDish(ctx context.Context, categoryID, dishID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM dish_categories WHERE category_id = $1 AND dish_id = $2`,
		categoryID, dishID)
	return err
}
