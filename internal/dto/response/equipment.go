package response

import (
	"equipment-booking/internal/data/entity"
)

type EquipmentResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	TotalQuantity int    `json:"total_quantity"`
	Condition     string `json:"condition"`
}

func EquipmentToResponse(item *entity.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		TotalQuantity: item.TotalQuantity,
		Condition:     item.Condition,
	}
}
