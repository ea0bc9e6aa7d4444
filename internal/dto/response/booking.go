package response

import (
	"time"

	"equipment-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	EquipmentID   int64                `json:"equipment_id"`
	EquipmentName string               `json:"equipment_name,omitempty"`
	Requester     string               `json:"requester"`
	Contact       string               `json:"contact,omitempty"`
	Quantity      int                  `json:"quantity"`
	StartTime     time.Time            `json:"start_time"`
	EndTime       time.Time            `json:"end_time"`
	Status        entity.BookingStatus `json:"status"`
	ReturnedAt    *time.Time           `json:"returned_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type AvailabilityResponse struct {
	EquipmentID       int64             `json:"equipment_id"`
	EquipmentName     string            `json:"equipment_name"`
	StartTime         time.Time         `json:"start_time"`
	EndTime           time.Time         `json:"end_time"`
	TotalQuantity     int               `json:"total_quantity"`
	ReservedQuantity  int               `json:"reserved_quantity"`
	AvailableQuantity int               `json:"available_quantity"`
	Conflicts         []BookingResponse `json:"conflicts,omitempty"`
	NextAvailableAt   *time.Time        `json:"next_available_at,omitempty"`
}

// Helper converters

func BookingToResponse(booking *entity.Booking, equipmentName string) BookingResponse {
	return BookingResponse{
		ID:            booking.ID,
		EquipmentID:   booking.EquipmentID,
		EquipmentName: equipmentName,
		Requester:     booking.Requester,
		Contact:       booking.Contact,
		Quantity:      booking.Quantity,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		Status:        booking.Status,
		ReturnedAt:    booking.ReturnedAt,
		CreatedAt:     booking.CreatedAt,
	}
}
