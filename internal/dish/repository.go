package dish

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Dish, error)
	GetByID(ctx context.Context, id uuid.UUID) (Dish, error)
	Create(ctx context.Context, in CreateInput) (Dish, error)
	Update(ctx context.Context, in UpdateInput) (Dish, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddIngredient(ctx context.Context, in LinkInput) (RecipeLink, error)
	RemoveIngredient(ctx context.Context, dishID, ingredientID uuid.UUID) error
	GetIngredients(ctx context.Context, dishID uuid.UUID) ([]RecipeLink, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const dishColumns = `id, name, description, price, calorie, cooking_time_in_minutes, are_all_ingredients, path_photo, created_at, updated_at`

func scanDish(row interface{ Scan(...any) error }) (Dish, error) {
	var d Dish
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.Calorie,
		&d.CookingTimeInMinutes, &d.AreAllIngredients, &d.PathPhoto, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *repository) GetAll(ctx context.Context) ([]Dish, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+dishColumns+` FROM dishes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}

	return dishes, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Dish, error) {
	d, err := scanDish(r.db.QueryRowContext(ctx,
		`SELECT `+dishColumns+` FROM dishes WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	if err != nil {
		return d, err
	}

	d.Ingredients, err = r.GetIngredients(ctx, id)
	return d, err
}

func (r *repository) Create(ctx context.Context, in CreateInput) (Dish, error) {
	return scanDish(r.db.QueryRowContext(ctx, `
		INSERT INTO dishes (id, name, description, price, calorie, cooking_time_in_minutes, are_all_ingredients, path_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, NOW(), NOW())
		RETURNING `+dishColumns,
		uuid.New(), in.Name, in.Description, in.Price, in.Calorie, in.CookingTimeInMinutes, in.PathPhoto))
}

func (r *repository) Update(ctx context.Context, in UpdateInput) (Dish, error) {
	d, err := scanDish(r.db.QueryRowContext(ctx, `
		UPDATE dishes
		SET name = $2, description = $3, price = $4, calorie = $5,
		    cooking_time_in_minutes = $6, path_photo = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+dishColumns,
		in.ID, in.Name, in.Description, in.Price, in.Calorie, in.CookingTimeInMinutes, in.PathPhoto))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = $1`, id)
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
		INSERT INTO dish_ingredients (id, dish_id, ingredient_id, quantity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, dish_id, ingredient_id, quantity, description, created_at, updated_at`,
		uuid.New(), in.DishID, in.IngredientID, in.Quantity, in.Description,
	).Scan(&link.ID, &link.DishID, &link.IngredientID, &link.Quantity,
		&link.Description, &link.CreatedAt, &link.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "dish_ingredients_dish_id_ingredient_id_key") {
		return link, ErrDuplicateLink
	}

	return link, err
}

func (r *repository) RemoveIngredient(ctx context.Context, dishID, ingredientID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM dish_ingredients WHERE dish_id = $1 AND ingredient_id = $2`,
		dishID, ingredientID)
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

func (r *repository) GetIngredients(ctx context.Context, dishID uuid.UUID) ([]RecipeLink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT di.id, di.dish_id, di.ingredient_id, i.name, di.quantity, di.description, di.created_at, di.updated_at
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.dish_id = $1
		ORDER BY i.name`,
		dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []RecipeLink
	for rows.Next() {
		var link RecipeLink
		if err := rows.Scan(&link.ID, &link.DishID, &link.IngredientID, &link.IngredientName,
			&link.Quantity, &link.Description, &link.CreatedAt, &link.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}
