package store

import (
	"context"
	"errors"
	"time"

	"equipment-booking/internal/data/entity"
)

// ErrDuplicateIdempotencyKey is returned by InsertBooking when another
// booking already carries the same (requester, idempotency key) pair.
var ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

// BookingFilter narrows LoadBookings. The zero value loads every booking.
type BookingFilter struct {
	ID             string                 // exact booking id, "" = any
	EquipmentID    int64                  // 0 = any equipment
	Requester      string                 // case-insensitive exact match, "" = anyone
	Statuses       []entity.BookingStatus // nil = any status
	IdempotencyKey string                 // "" = ignore
	OverlapsStart  *time.Time             // both bounds set = raw-window overlap filter
	OverlapsEnd    *time.Time             //   (existing.start < end AND existing.end > start)
}

// Store is the persistence boundary the booking engine works against.
//
// UpdateBookingStatus is compare-and-set: the write applies only while the
// booking is still pending or confirmed, and reports false when it was
// already settled by someone else. That guard is what keeps cancel/return
// races harmless without any engine-side locking.
type Store interface {
	LoadEquipment(ctx context.Context) ([]entity.Equipment, error)
	LoadBookings(ctx context.Context, filter BookingFilter) ([]entity.Booking, error)
	InsertBooking(ctx context.Context, booking *entity.Booking) (string, error)
	UpdateBookingStatus(ctx context.Context, id string, status entity.BookingStatus, returnedAt *time.Time) (bool, error)
}
