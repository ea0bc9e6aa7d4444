package adaptor

import (
	"equipment-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Equipment *EquipmentHandler
	Booking   *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Equipment: NewEquipmentHandler(service.Equipment, service.Booking, log),
		Booking:   NewBookingHandler(service.Booking, log),
	}
}
