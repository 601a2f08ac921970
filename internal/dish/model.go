package dish

import (
	"time"

	"github.com/google/uuid"
)

type Dish struct {
	ID                   uuid.UUID
	Name                 string
	Description          string
	Price                float64
	Calorie              float64
	CookingTimeInMinutes int
	AreAllIngredients    bool
	PathPhoto            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Ingredients []RecipeLink
}

// RecipeLink ties a dish to one ingredient with the quantity consumed per
// cooked unit. At most one link may exist per (dish, ingredient) pair.
type RecipeLink struct {
	ID             uuid.UUID
	DishID         uuid.UUID
	IngredientID   uuid.UUID
	IngredientName string
	Quantity       float64
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateInput struct {
	Name                 string
	Description          string
	Price                float64
	Calorie              float64
	CookingTimeInMinutes int
	PathPhoto            *string
}

type UpdateInput struct {
	ID                   uuid.UUID
	Name                 string
	Description          string
	Price                float64
	Calorie              float64
	CookingTimeInMinutes int
	PathPhoto            *string
}

type LinkInput struct {
	DishID       uuid.UUID
	IngredientID uuid.UUID
	Quantity     float64
	Description  string
}
