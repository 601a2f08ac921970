package ingredient

import (
	"time"

	"github.com/google/uuid"
)

// LowStockThreshold is the on-hand quantity at or below which an ingredient
// counts as reserved. Dishes and drinks are only fully available while all
// their ingredients stay above it.
const LowStockThreshold = 2

type Ingredient struct {
	ID          uuid.UUID
	Name        string
	Description string
	Count       float64
	Price       float64
	IsInReserve bool
	PathPhoto   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateInput struct {
	Name        string
	Description string
	Count       float64
	Price       float64
	PathPhoto   *string
}

type UpdateInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	Count       float64
	Price       float64
	PathPhoto   *string
}
