package wire

import (
	"equipment-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEquipment(r chi.Router, equipmentHandler *adaptor.EquipmentHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/equipment - List the full catalog
	r.Get("/api/equipment", equipmentHandler.GetEquipment)

	// GET /api/equipment/{id} - Single catalog item
	r.Get("/api/equipment/{id}", equipmentHandler.GetEquipmentByID)

	// GET /api/equipment/{id}/availability - Remaining stock for a window
	r.Get("/api/equipment/{id}/availability", equipmentHandler.GetAvailability)
}
