package blockcontrol

import "time"

// BlockOrderControl is the single admission switch for the whole system.
// Exactly one row exists; while IsBlocked is true no new order is accepted.
type BlockOrderControl struct {
	ID        int
	IsBlocked bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// singletonID is the fixed primary key of the one control row.
const singletonID = 1
