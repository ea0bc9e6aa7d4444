package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"equipment-booking/internal/data/entity"
	"equipment-booking/pkg/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type PostgresStore struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgresStore(db database.PgxIface, log *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:  db,
		log: log.With(zap.String("store", "postgres")),
	}
}

const bookingColumns = `id, equipment_id, requester, contact, quantity, start_time, end_time, status, idempotency_key, returned_at, created_at, updated_at`

func (s *PostgresStore) LoadEquipment(ctx context.Context) ([]entity.Equipment, error) {
	query := `
		SELECT id, name, category, total_quantity, condition, created_at
		FROM equipment
		ORDER BY name
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		s.log.Error("Failed to load equipment", zap.Error(err))
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	defer rows.Close()

	var items []entity.Equipment
	for rows.Next() {
		var item entity.Equipment
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.TotalQuantity,
			&item.Condition,
			&item.CreatedAt,
		)
		if err != nil {
			s.log.Error("Failed to scan equipment row", zap.Error(err))
			return nil, fmt.Errorf("scan equipment row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *PostgresStore) LoadBookings(ctx context.Context, filter BookingFilter) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ID != "" {
		conds = append(conds, "id = "+arg(filter.ID))
	}
	if filter.EquipmentID != 0 {
		conds = append(conds, "equipment_id = "+arg(filter.EquipmentID))
	}
	if filter.Requester != "" {
		conds = append(conds, "lower(requester) = lower("+arg(filter.Requester)+")")
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		conds = append(conds, "status = ANY("+arg(statuses)+")")
	}
	if filter.IdempotencyKey != "" {
		conds = append(conds, "idempotency_key = "+arg(filter.IdempotencyKey))
	}
	if filter.OverlapsStart != nil && filter.OverlapsEnd != nil {
		conds = append(conds, "start_time < "+arg(*filter.OverlapsEnd))
		conds = append(conds, "end_time > "+arg(*filter.OverlapsStart))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY start_time, id"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.EquipmentID,
			&booking.Requester,
			&booking.Contact,
			&booking.Quantity,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.IdempotencyKey,
			&booking.ReturnedAt,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			s.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (s *PostgresStore) InsertBooking(ctx context.Context, booking *entity.Booking) (string, error) {
	// Sequence-backed so ids never collide, even for unrelated equipment.
	var seq int64
	if err := s.db.QueryRow(ctx, `SELECT nextval('booking_id_seq')`).Scan(&seq); err != nil {
		s.log.Error("Failed to fetch next booking id", zap.Error(err))
		return "", fmt.Errorf("next booking id: %w", err)
	}
	id := fmt.Sprintf("B%03d", seq)

	query := `
		INSERT INTO bookings (id, equipment_id, requester, contact, quantity, start_time, end_time, status, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.Exec(ctx, query,
		id,
		booking.EquipmentID,
		booking.Requester,
		booking.Contact,
		booking.Quantity,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.IdempotencyKey,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		// The only unique index besides the primary key guards
		// (requester, idempotency_key), so a unique violation here means
		// a concurrent retry of the same create already won.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", ErrDuplicateIdempotencyKey
		}
		s.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_id", id),
			zap.String("requester", booking.Requester),
		)
		return "", fmt.Errorf("insert booking %s: %w", id, err)
	}

	booking.ID = id
	return id, nil
}

func (s *PostgresStore) UpdateBookingStatus(ctx context.Context, id string, status entity.BookingStatus, returnedAt *time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, returned_at = COALESCE($3, returned_at), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := s.db.Exec(ctx, query, id, status, returnedAt)
	if err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id, string(status), err)
	}

	return result.RowsAffected() > 0, nil
}

// EnsureCatalog inserts catalog items that are not present yet. Existing rows
// are left untouched so operator adjustments survive restarts.
func (s *PostgresStore) EnsureCatalog(ctx context.Context, items []entity.Equipment) error {
	query := `
		INSERT INTO equipment (name, category, total_quantity, condition)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`

	for _, item := range items {
		_, err := s.db.Exec(ctx, query, item.Name, item.Category, item.TotalQuantity, item.Condition)
		if err != nil {
			s.log.Error("Failed to seed equipment",
				zap.Error(err),
				zap.String("name", item.Name),
			)
			return fmt.Errorf("seed equipment %s: %w", item.Name, err)
		}
	}

	s.log.Info("Equipment catalog ensured", zap.Int("items", len(items)))
	return nil
}
