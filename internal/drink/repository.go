package drink

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Drink, error)
	GetByID(ctx context.Context, id uuid.UUID) (Drink, error)
	Create(ctx context.Context, in CreateInput) (Drink, error)
	Update(ctx context.Context, in UpdateInput) (Drink, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error)
	RemoveIngredient(ctx context.Context, drinkID, ingredientID uuid.UUID) error
	GetIngredients(ctx context.Context, drinkID uuid.UUID) ([]RecipeLink, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const drinkColumns = `id, name, description, price, cooking_time_in_minutes, are_all_ingredients, path_photo, created_at, updated_at`

func scanDrink(row interface{ Scan(...any) error }) (Drink, error) {
	var d Drink
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Price,
		&d.CookingTimeInMinutes, &d.AreAllIngredients, &d.PathPhoto, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *repository) GetAll(ctx context.Context) ([]Drink, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+drinkColumns+` FROM drinks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drinks []Drink
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, d)
	}

	return drinks, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Drink, error) {
	d, err := scanDrink(r.db.QueryRowContext(ctx,
		`SELECT `+drinkColumns+` FROM drinks WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	if err != nil {
		return d, err
	}

	d.Ingredients, err = r.GetIngredients(ctx, id)
	return d, err
}

func (r *repository) Create(ctx context.Context, in CreateInput) (Drink, error) {
	return scanDrink(r.db.QueryRowContext(ctx, `
		INSERT INTO drinks (id, name, description, price, cooking_time_in_minutes, are_all_ingredients, path_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, NOW(), NOW())
		RETURNING `+drinkColumns,
		uuid.New(), in.Name, in.Description, in.Price, in.CookingTimeInMinutes, in.PathPhoto))
}

func (r *repository) Update(ctx context.Context, in UpdateInput) (Drink, error) {
	d, err := scanDrink(r.db.QueryRowContext(ctx, `
		UPDATE drinks
		SET name = $2, description = $3, price = $4,
		    cooking_time_in_minutes = $5, path_photo = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING `+drinkColumns,
		in.ID, in.Name, in.Description, in.Price, in.CookingTimeInMinutes, in.PathPhoto))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drinks WHERE id = $1`, id)
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

func (r *repository) AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error) {
	var link RecipeLink
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO drink_ingredients (id, drink_id, ingredient_id, quantity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, drink_id, ingredient_id, quantity, description, created_at, updated_at`,
		uuid.New(), in.DrinkID, in.IngredientID, in.Quantity, in.Description,
	).Scan(&link.ID, &link.DrinkID, &link.IngredientID, &link.Quantity,
		&link.Description, &link.CreatedAt, &link.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "drink_ingredients_drink_id_ingredient_id_key") {
		return link, ErrDuplicateLink
	}

	return link, err
}

func (r *repository) RemoveIngredient(ctx context.Context, drinkID, ingredientID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM drink_ingredients WHERE drink_id = $1 AND ingredient_id = $2`,
		drinkID, ingredientID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (r *repository) GetIngredients(ctx context.Context, drinkID uuid.UUID) ([]RecipeLink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT di.id, di.drink_id, di.ingredient_id, i.name, di.quantity, di.description, di.created_at, di.updated_at
		FROM drink_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.drink_id = $1
		ORDER BY i.name`,
		drinkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []RecipeLink
	for rows.Next() {
		var link RecipeLink
		if err := rows.Scan(&link.ID, &link.DrinkID, &link.IngredientID, &link.IngredientName,
			&link.Quantity, &link.Description, &link.CreatedAt, &link.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}
