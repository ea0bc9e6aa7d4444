package usecase

import (
	"context"
	"strings"

	"equipment-booking/internal/data/entity"
	"equipment-booking/internal/data/store"
	"equipment-booking/internal/dto/response"

	"go.uber.org/zap"
)

type EquipmentService interface {
	List(ctx context.Context) ([]response.EquipmentResponse, error)
	GetByID(ctx context.Context, id int64) (*response.EquipmentResponse, error)
	GetByName(ctx context.Context, name string) (*response.EquipmentResponse, error)
}

type equipmentService struct {
	store store.Store
	log   *zap.Logger
}

func NewEquipmentService(st store.Store, log *zap.Logger) EquipmentService {
	return &equipmentService{
		store: st,
		log:   log.With(zap.String("service", "equipment")),
	}
}

func (s *equipmentService) List(ctx context.Context) ([]response.EquipmentResponse, error) {
	items, err := s.store.LoadEquipment(ctx)
	if err != nil {
		s.log.Error("Failed to list equipment", zap.Error(err))
		return nil, unavailableError("list equipment", err)
	}

	out := make([]response.EquipmentResponse, 0, len(items))
	for i := range items {
		out = append(out, response.EquipmentToResponse(&items[i]))
	}
	return out, nil
}

func (s *equipmentService) GetByID(ctx context.Context, id int64) (*response.EquipmentResponse, error) {
	item, err := findEquipmentByID(ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	resp := response.EquipmentToResponse(item)
	return &resp, nil
}

// GetByName resolves a catalog item case-insensitively, so chat callers can
// say "projector" instead of a numeric id.
func (s *equipmentService) GetByName(ctx context.Context, name string) (*response.EquipmentResponse, error) {
	items, err := s.store.LoadEquipment(ctx)
	if err != nil {
		s.log.Error("Failed to load equipment", zap.Error(err))
		return nil, unavailableError("load equipment", err)
	}

	name = strings.TrimSpace(name)
	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			resp := response.EquipmentToResponse(&items[i])
			return &resp, nil
		}
	}

	return nil, newError(KindNotFound, "equipment %q not found", name)
}

// findEquipmentByID is shared with the booking service; both need catalog
// resolution with the same error semantics.
func findEquipmentByID(ctx context.Context, st store.Store, id int64) (*entity.Equipment, error) {
	items, err := st.LoadEquipment(ctx)
	if err != nil {
		return nil, unavailableError("load equipment", err)
	}

	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	return nil, newError(KindNotFound, "equipment %d not found", id)
}
