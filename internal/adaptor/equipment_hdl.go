package adaptor

import (
	"net/http"
	"strconv"
	"time"

	"equipment-booking/internal/usecase"
	"equipment-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EquipmentHandler struct {
	service  usecase.EquipmentService
	bookings usecase.BookingService
	log      *zap.Logger
}

func NewEquipmentHandler(service usecase.EquipmentService, bookings usecase.BookingService, log *zap.Logger) *EquipmentHandler {
	return &EquipmentHandler{
		service:  service,
		bookings: bookings,
		log:      log.With(zap.String("handler", "equipment")),
	}
}

// GetEquipment handles GET /api/equipment (public)
func (h *EquipmentHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get equipment")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// GetEquipmentByID handles GET /api/equipment/{id} (public)
func (h *EquipmentHandler) GetEquipmentByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid equipment ID", nil)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get equipment by ID")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// GetAvailability handles GET /api/equipment/{id}/availability?start=&end= (public)
func (h *EquipmentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid equipment ID", nil)
		return
	}

	query := r.URL.Query()
	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid or missing start, expected RFC3339", nil)
		return
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid or missing end, expected RFC3339", nil)
		return
	}

	availability, err := h.bookings.CheckAvailability(r.Context(), id, start, end)
	if err != nil {
		h.handleServiceError(w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// handleServiceError handles errors untuk equipment operations
func (h *EquipmentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch usecase.KindOf(err) {
	case usecase.KindNotFound:
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case usecase.KindInvalidInput, usecase.KindInvalidWindow:
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case usecase.KindUnavailable:
		h.log.Error(operation+" failed - storage unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnavailable(w, "Booking storage unavailable, try again later")

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
