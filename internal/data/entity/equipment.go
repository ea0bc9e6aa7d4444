package entity

import (
	"time"
)

// Equipment is one catalog item with a finite pool shared across bookings.
type Equipment struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	Category      string    `db:"category"`
	TotalQuantity int       `db:"total_quantity"`
	Condition     string    `db:"condition"`
	CreatedAt     time.Time `db:"created_at"`
}
