package ingredient

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Ingredient, error)
	GetByID(ctx context.Context, id uuid.UUID) (Ingredient, error)
	Create(ctx context.Context, in CreateInput) (Ingredient, error)
	Update(ctx context.Context, in UpdateInput) (Ingredient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const ingredientColumns = `id, name, description, count, price, is_in_reserve, path_photo, created_at, updated_at`

func scanIngredient(row interface{ Scan(...any) error }) (Ingredient, error) {
	var i Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Count, &i.Price,
		&i.IsInReserve, &i.PathPhoto, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func (r *repository) GetAll(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, i)
	}

	return ingredients, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Ingredient, error) {
	i, err := scanIngredient(r.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return i, ErrNotFound
	}
	return i, err
}

// Create inserts a new ingredient. The reserved flag is derived from the
// on-hand count, never taken from input.
func (r *repository) Create(ctx context.Context, in CreateInput) (Ingredient, error) {
	return scanIngredient(r.db.QueryRowContext(ctx, `
		INSERT INTO ingredients (id, name, description, count, price, is_in_reserve, path_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $4 <= $6, $7, NOW(), NOW())
		RETURNING `+ingredientColumns,
		uuid.New(), in.Name, in.Description, in.Count, in.Price, float64(LowStockThreshold), in.PathPhoto))
}

func (r *repository) Update(ctx context.Context, in UpdateInput) (Ingredient, error) {
	i, err := scanIngredient(r.db.QueryRowContext(ctx, `
		UPDATE ingredients
		SET name = $2, description = $3, count = $4, price = $5,
		    is_in_reserve = $4 <= $6, path_photo = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+ingredientColumns,
		in.ID, in.Name, in.Description, in.Count, in.Price, float64(LowStockThreshold), in.PathPhoto))
	if err == sql.ErrNoRows {
		return i, ErrNotFound
	}
	return i, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
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
