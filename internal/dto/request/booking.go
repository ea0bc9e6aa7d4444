package request

type CreateBookingRequest struct {
	EquipmentID    int64  `json:"equipment_id" validate:"required,min=1"`
	Requester      string `json:"requester" validate:"required,min=2,max=120"`
	Contact        string `json:"contact" validate:"omitempty,max=120"`
	StartTime      string `json:"start_time" validate:"required"`
	EndTime        string `json:"end_time" validate:"required"`
	Quantity       int    `json:"quantity" validate:"omitempty,min=1"`
	IdempotencyKey string `json:"idempotency_key" validate:"omitempty,max=64"`
}

type CancelBookingRequest struct {
	Requester string `json:"requester" validate:"required,min=2,max=120"`
}
