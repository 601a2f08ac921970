package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	UserID    uuid.UUID
	SendDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
