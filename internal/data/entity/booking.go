package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusReturned  BookingStatus = "returned"
)

// IsActive reports whether the booking still counts against the pool.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// IsTerminal reports whether the status permits no further transition.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusReturned
}

type Booking struct {
	ID             string        `db:"id"` // human-readable token, e.g. B007
	EquipmentID    int64         `db:"equipment_id"`
	Requester      string        `db:"requester"`
	Contact        string        `db:"contact"`
	Quantity       int           `db:"quantity"`
	StartTime      time.Time     `db:"start_time"`
	EndTime        time.Time     `db:"end_time"`
	Status         BookingStatus `db:"status"`
	IdempotencyKey string        `db:"idempotency_key"`
	ReturnedAt     *time.Time    `db:"returned_at"`
	Timestamps
}

// EffectiveEnd is when the booking stops holding stock. A returned booking
// frees its quantity at the recorded return time; the booked end itself is
// never rewritten, the original window stays in the ledger for audit.
func (b *Booking) EffectiveEnd() time.Time {
	if b.Status == BookingStatusReturned && b.ReturnedAt != nil && b.ReturnedAt.Before(b.EndTime) {
		return *b.ReturnedAt
	}
	return b.EndTime
}

// Overlaps reports whether the booking holds stock anywhere inside
// [start, end). Cancelled bookings never hold stock.
func (b *Booking) Overlaps(start, end time.Time) bool {
	if b.Status == BookingStatusCancelled {
		return false
	}
	return b.StartTime.Before(end) && b.EffectiveEnd().After(start)
}
