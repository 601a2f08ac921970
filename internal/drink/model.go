package drink

import (
	"time"

	"github.com/google/uuid"
)

type Drink struct {
	ID                   uuid.UUID
	Name                 string
	Description          string
	Price                float64
	CookingTimeInMinutes int
	AreAllIngredients    bool
	PathPhoto            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Ingredients []RecipeLink
}

// RecipeLink ties a drink to one ingredient with the quantity consumed per
// prepared unit. At most one link may exist per (drink, ingredient) pair.
type RecipeLink struct {
	ID             uuid.UUID
	DrinkID        uuid.UUID
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
	CookingTimeInMinutes int
	PathPhoto            *string
}

type UpdateInput struct {
	ID                   uuid.UUID
	Name                 string
	Description          string
	Price                float64
	CookingTimeInMinutes int
	PathPhoto            *string
}

type LinkInput struct {
	DrinkID      uuid.UUID
	IngredientID uuid.UUID
	Quantity     float64
	Description  string
}
