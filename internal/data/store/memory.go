package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"equipment-booking/internal/data/entity"
)

// MemoryStore keeps the catalog and ledger in process memory. It backs tests
// and the no-database development mode; filter and compare-and-set semantics
// match the Postgres store.
type MemoryStore struct {
	mu        sync.RWMutex
	equipment []entity.Equipment
	bookings  map[string]*entity.Booking
	nextID    int64
}

func NewMemoryStore(catalog []entity.Equipment) *MemoryStore {
	m := &MemoryStore{
		bookings: make(map[string]*entity.Booking),
	}

	now := time.Now().UTC()
	for i, item := range catalog {
		item.ID = int64(i + 1)
		if item.Condition == "" {
			item.Condition = "good"
		}
		item.CreatedAt = now
		m.equipment = append(m.equipment, item)
	}
	sort.Slice(m.equipment, func(i, j int) bool {
		return m.equipment[i].Name < m.equipment[j].Name
	})

	return m
}

func (m *MemoryStore) LoadEquipment(ctx context.Context) ([]entity.Equipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]entity.Equipment, len(m.equipment))
	copy(items, m.equipment)
	return items, nil
}

func (m *MemoryStore) LoadBookings(ctx context.Context, filter BookingFilter) ([]entity.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var bookings []entity.Booking
	for _, b := range m.bookings {
		if matches(b, filter) {
			bookings = append(bookings, *b)
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartTime.Equal(bookings[j].StartTime) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})

	return bookings, nil
}

func (m *MemoryStore) InsertBooking(ctx context.Context, booking *entity.Booking) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if booking.IdempotencyKey != "" {
		for _, existing := range m.bookings {
			if existing.IdempotencyKey == booking.IdempotencyKey &&
				strings.EqualFold(existing.Requester, booking.Requester) {
				return "", ErrDuplicateIdempotencyKey
			}
		}
	}

	m.nextID++
	id := fmt.Sprintf("B%03d", m.nextID)

	stored := *booking
	stored.ID = id
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
		stored.UpdatedAt = stored.CreatedAt
	}
	m.bookings[id] = &stored

	booking.ID = id
	return id, nil
}

func (m *MemoryStore) UpdateBookingStatus(ctx context.Context, id string, status entity.BookingStatus, returnedAt *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok || !booking.Status.IsActive() {
		return false, nil
	}

	booking.Status = status
	if returnedAt != nil {
		t := *returnedAt
		booking.ReturnedAt = &t
	}
	booking.UpdatedAt = time.Now().UTC()
	return true, nil
}

func matches(b *entity.Booking, filter BookingFilter) bool {
	if filter.ID != "" && b.ID != filter.ID {
		return false
	}
	if filter.EquipmentID != 0 && b.EquipmentID != filter.EquipmentID {
		return false
	}
	if filter.Requester != "" && !strings.EqualFold(b.Requester, filter.Requester) {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, st := range filter.Statuses {
			if b.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.IdempotencyKey != "" && b.IdempotencyKey != filter.IdempotencyKey {
		return false
	}
	if filter.OverlapsStart != nil && filter.OverlapsEnd != nil {
		// Raw-window overlap, same as the SQL filter; the engine refines
		// returned bookings by their effective end on top of this.
		if !b.StartTime.Before(*filter.OverlapsEnd) || !b.EndTime.After(*filter.OverlapsStart) {
			return false
		}
	}
	return true
}
