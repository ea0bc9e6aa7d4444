package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"equipment-booking/internal/data/entity"
	"equipment-booking/internal/data/store"
	"equipment-booking/internal/dto/request"
	"equipment-booking/internal/dto/response"
	"equipment-booking/internal/metrics"
	"equipment-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	CheckAvailability(ctx context.Context, equipmentID int64, start, end time.Time) (*response.AvailabilityResponse, error)
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, requester string, force bool) (*response.BookingResponse, error)
	ReturnEquipment(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, requester string, includeHistory bool) ([]response.BookingResponse, error)
}

type bookingService struct {
	store store.Store
	locks *equipmentLocks
	log   *zap.Logger
}

func NewBookingService(st store.Store, log *zap.Logger) BookingService {
	return &bookingService{
		store: st,
		locks: newEquipmentLocks(),
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CheckAvailability(ctx context.Context, equipmentID int64, start, end time.Time) (*response.AvailabilityResponse, error) {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return nil, newError(KindInvalidWindow, "end time must be after start time")
	}

	eq, err := findEquipmentByID(ctx, s.store, equipmentID)
	if err != nil {
		return nil, err
	}

	reserved, overlapping, err := s.reservedQuantity(ctx, eq.ID, start, end)
	if err != nil {
		return nil, err
	}

	available := eq.TotalQuantity - reserved
	if available < 0 {
		available = 0
	}

	resp := &response.AvailabilityResponse{
		EquipmentID:       eq.ID,
		EquipmentName:     eq.Name,
		StartTime:         start,
		EndTime:           end,
		TotalQuantity:     eq.TotalQuantity,
		ReservedQuantity:  reserved,
		AvailableQuantity: available,
	}

	for i := range overlapping {
		resp.Conflicts = append(resp.Conflicts, response.BookingToResponse(&overlapping[i], eq.Name))
	}
	if available == 0 && len(overlapping) > 0 {
		next := latestEffectiveEnd(overlapping)
		resp.NextAvailableAt = &next
	}

	return resp, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, newError(KindInvalidInput, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, newError(KindInvalidInput, "invalid start time %q, expected RFC3339", req.StartTime)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, newError(KindInvalidInput, "invalid end time %q, expected RFC3339", req.EndTime)
	}
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return nil, newError(KindInvalidWindow, "end time must be after start time")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	requester := strings.TrimSpace(req.Requester)

	eq, err := findEquipmentByID(ctx, s.store, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	if quantity > eq.TotalQuantity {
		return nil, conflictError(eq.TotalQuantity,
			"requested %d x %s but only %d owned in total", quantity, eq.Name, eq.TotalQuantity)
	}

	// Replay of a keyed create returns the original booking instead of
	// allocating twice.
	if req.IdempotencyKey != "" {
		existing, err := s.findByIdempotencyKey(ctx, requester, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.log.Info("Booking create replayed",
				zap.String("booking_id", existing.ID),
				zap.String("requester", requester),
			)
			return s.toBookingResponse(existing, eq.Name), nil
		}
	}

	// Check-then-insert must be atomic per equipment id; two overlapping
	// requests for the same item are serialized here.
	lock := s.locks.get(eq.ID)
	lock.Lock()
	defer lock.Unlock()

	reserved, _, err := s.reservedQuantity(ctx, eq.ID, start, end)
	if err != nil {
		return nil, err
	}

	available := eq.TotalQuantity - reserved
	if available < 0 {
		available = 0
	}
	if available < quantity {
		metrics.RecordBookingConflict()
		s.log.Warn("Booking conflict",
			zap.String("equipment", eq.Name),
			zap.String("requester", requester),
			zap.Int("requested", quantity),
			zap.Int("available", available),
		)
		return nil, conflictError(available,
			"only %d x %s available between %s and %s",
			available, eq.Name, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		EquipmentID:    eq.ID,
		Requester:      requester,
		Contact:        strings.TrimSpace(req.Contact),
		Quantity:       quantity,
		StartTime:      start,
		EndTime:        end,
		Status:         entity.BookingStatusConfirmed,
		IdempotencyKey: req.IdempotencyKey,
		Timestamps: entity.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	id, err := s.store.InsertBooking(ctx, booking)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateIdempotencyKey) {
			// Lost a race against a concurrent retry carrying the same key.
			existing, lookupErr := s.findByIdempotencyKey(ctx, requester, req.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return s.toBookingResponse(existing, eq.Name), nil
			}
		}
		s.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("equipment", eq.Name),
			zap.String("requester", requester),
		)
		return nil, unavailableError("create booking", err)
	}

	metrics.RecordBookingCreated(eq.Name)
	s.log.Info("Booking created",
		zap.String("booking_id", id),
		zap.String("equipment", eq.Name),
		zap.String("requester", requester),
		zap.Int("quantity", quantity),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	return s.toBookingResponse(booking, eq.Name), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, requester string, force bool) (*response.BookingResponse, error) {
	id := normalizeBookingID(bookingID)

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !force && !strings.EqualFold(booking.Requester, strings.TrimSpace(requester)) {
		return nil, newError(KindForbidden, "booking %s was made by a different requester", id)
	}
	if booking.Status.IsTerminal() {
		return nil, newError(KindInvalidState, "booking %s is already %s", id, booking.Status)
	}

	ok, err := s.store.UpdateBookingStatus(ctx, id, entity.BookingStatusCancelled, nil)
	if err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", id))
		return nil, unavailableError("cancel booking", err)
	}
	if !ok {
		// Someone else settled the booking between our read and write.
		return nil, newError(KindInvalidState, "booking %s was already settled", id)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = time.Now().UTC()

	metrics.RecordBookingCancellation()
	s.log.Info("Booking cancelled",
		zap.String("booking_id", id),
		zap.String("requester", booking.Requester),
		zap.Bool("forced", force),
	)

	return s.toBookingResponse(booking, s.equipmentName(ctx, booking.EquipmentID)), nil
}

func (s *bookingService) ReturnEquipment(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id := normalizeBookingID(bookingID)

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return nil, newError(KindInvalidState, "booking %s is %s, only confirmed bookings can be returned", id, booking.Status)
	}

	now := time.Now().UTC()
	if now.Before(booking.StartTime) {
		return nil, newError(KindInvalidState, "booking %s has not started yet, nothing to return", id)
	}

	returnedAt := now
	ok, err := s.store.UpdateBookingStatus(ctx, id, entity.BookingStatusReturned, &returnedAt)
	if err != nil {
		s.log.Error("Failed to return booking", zap.Error(err), zap.String("booking_id", id))
		return nil, unavailableError("return equipment", err)
	}
	if !ok {
		return nil, newError(KindInvalidState, "booking %s was already settled", id)
	}

	booking.Status = entity.BookingStatusReturned
	booking.ReturnedAt = &returnedAt
	booking.UpdatedAt = now

	metrics.RecordEquipmentReturn()
	s.log.Info("Equipment returned",
		zap.String("booking_id", id),
		zap.String("requester", booking.Requester),
		zap.Time("returned_at", returnedAt),
	)

	return s.toBookingResponse(booking, s.equipmentName(ctx, booking.EquipmentID)), nil
}

func (s *bookingService) ListBookings(ctx context.Context, requester string, includeHistory bool) ([]response.BookingResponse, error) {
	filter := store.BookingFilter{Requester: strings.TrimSpace(requester)}
	if !includeHistory {
		filter.Statuses = []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed}
	}

	bookings, err := s.store.LoadBookings(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, unavailableError("list bookings", err)
	}

	names, err := s.equipmentNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, response.BookingToResponse(&bookings[i], names[bookings[i].EquipmentID]))
	}

	s.log.Info("Bookings listed",
		zap.String("requester", requester),
		zap.Bool("include_history", includeHistory),
		zap.Int("count", len(out)),
	)

	return out, nil
}

// ==================== HELPER METHODS ====================

// reservedQuantity sums quantities of bookings that hold stock anywhere in
// [start, end). Pending and confirmed bookings hold their full window;
// returned ones hold only up to their return time; cancelled never count.
func (s *bookingService) reservedQuantity(ctx context.Context, equipmentID int64, start, end time.Time) (int, []entity.Booking, error) {
	bookings, err := s.store.LoadBookings(ctx, store.BookingFilter{
		EquipmentID: equipmentID,
		Statuses: []entity.BookingStatus{
			entity.BookingStatusPending,
			entity.BookingStatusConfirmed,
			entity.BookingStatusReturned,
		},
		OverlapsStart: &start,
		OverlapsEnd:   &end,
	})
	if err != nil {
		s.log.Error("Failed to load overlapping bookings", zap.Error(err), zap.Int64("equipment_id", equipmentID))
		return 0, nil, unavailableError("check availability", err)
	}

	reserved := 0
	var overlapping []entity.Booking
	for i := range bookings {
		if !bookings[i].Overlaps(start, end) {
			continue
		}
		reserved += bookings[i].Quantity
		overlapping = append(overlapping, bookings[i])
	}

	return reserved, overlapping, nil
}

func (s *bookingService) findBooking(ctx context.Context, id string) (*entity.Booking, error) {
	bookings, err := s.store.LoadBookings(ctx, store.BookingFilter{ID: id})
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id))
		return nil, unavailableError("find booking", err)
	}
	if len(bookings) == 0 {
		return nil, newError(KindNotFound, "booking %s not found", id)
	}
	return &bookings[0], nil
}

func (s *bookingService) findByIdempotencyKey(ctx context.Context, requester, key string) (*entity.Booking, error) {
	bookings, err := s.store.LoadBookings(ctx, store.BookingFilter{
		Requester:      requester,
		IdempotencyKey: key,
	})
	if err != nil {
		s.log.Error("Failed to look up idempotency key", zap.Error(err), zap.String("requester", requester))
		return nil, unavailableError("create booking", err)
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return &bookings[0], nil
}

// equipmentName is best effort; responses stay usable without it.
func (s *bookingService) equipmentName(ctx context.Context, equipmentID int64) string {
	eq, err := findEquipmentByID(ctx, s.store, equipmentID)
	if err != nil {
		return ""
	}
	return eq.Name
}

func (s *bookingService) equipmentNames(ctx context.Context) (map[int64]string, error) {
	items, err := s.store.LoadEquipment(ctx)
	if err != nil {
		return nil, unavailableError("load equipment", err)
	}

	names := make(map[int64]string, len(items))
	for i := range items {
		names[items[i].ID] = items[i].Name
	}
	return names, nil
}

func (s *bookingService) toBookingResponse(booking *entity.Booking, equipmentName string) *response.BookingResponse {
	resp := response.BookingToResponse(booking, equipmentName)
	return &resp
}

func normalizeBookingID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func latestEffectiveEnd(bookings []entity.Booking) time.Time {
	latest := bookings[0].EffectiveEnd()
	for i := range bookings[1:] {
		if end := bookings[i+1].EffectiveEnd(); end.After(latest) {
			latest = end
		}
	}
	return latest
}
