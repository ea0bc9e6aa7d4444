package usecase

import (
	"equipment-booking/internal/data/store"

	"go.uber.org/zap"
)

type Service struct {
	Equipment EquipmentService
	Booking   BookingService
}

func NewService(st store.Store, log *zap.Logger) *Service {
	return &Service{
		Equipment: NewEquipmentService(st, log),
		Booking:   NewBookingService(st, log),
	}
}
