package order

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotConfirmed Status = "NOT_CONFIRMED"
	StatusConfirmed    Status = "CONFIRMED"
	StatusInProgress   Status = "IN_PROGRESS"
	StatusReady        Status = "READY"
	StatusCompleted    Status = "COMPLETED"
	StatusCancelled    Status = "CANCELLED"
)

// validTransitions describes the order lifecycle. Completed and Cancelled are
// terminal.
var validTransitions = map[Status][]Status{
	StatusNotConfirmed: {StatusConfirmed, StatusInProgress, StatusCancelled},
	StatusConfirmed:    {StatusInProgress, StatusReady, StatusCompleted, StatusCancelled},
	StatusInProgress:   {StatusReady, StatusCompleted, StatusCancelled},
	StatusReady:        {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusNotConfirmed, StatusConfirmed, StatusInProgress, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// fixedOverheadMinutes models plating and dispatch time added to every order.
const fixedOverheadMinutes = 5

// preparationWindowDays bounds how far ahead an order may be scheduled.
const preparationWindowDays = 15

type Order struct {
	ID                   uuid.UUID
	OrderInfo            string
	UserID               uuid.UUID
	Status               Status
	TotalAmount          float64
	OrderTimeInMinutes   int
	DateOfPreparingOrder time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Details []Detail
}

// Detail is one order line. Exactly one of DishID and DrinkID is set, and
// UnitPrice is a snapshot taken at creation time: later catalog price edits
// never change what this order cost.
type Detail struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	DishID    *uuid.UUID
	DrinkID   *uuid.UUID
	Quantity  int
	UnitPrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LineInput struct {
	DishID   *uuid.UUID
	DrinkID  *uuid.UUID
	Quantity int
}

type CreateInput struct {
	OrderInfo            string
	UserID               uuid.UUID
	DateOfPreparingOrder time.Time
	Lines                []LineInput
}

type Filter struct {
	UserID *uuid.UUID
	Status *Status
}
