package dto

type CheckInRequest struct {
	Latitude  float64 `form:"latitude" validate:"latitude"`
	Longitude float64 `form:"longitude" validate:"longitude"`
	Notes     string  `form:"notes"`
}

type CheckOutRequest struct {
	CheckInRequest
	PaymentCollected bool   `form:"paymentCollected"`
	PaymentAmount    string `form:"paymentAmount"`
	PaymentNotes     string `form:"paymentNotes"`
}

type LocationRequest struct {
	Lat     float64 `json:"lat" validate:"latitude"`
	Lng     float64 `json:"lng" validate:"longitude"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
}

type CreateTaskRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description"`
	AssigneeIDs []uint           `json:"assignee_ids"`
	Status      string           `json:"status" validate:"omitempty,oneof=PREPARING READY IN_PROGRESS ON_HOLD COMPLETED"`
	Location    *LocationRequest `json:"location"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=PREPARING READY IN_PROGRESS ON_HOLD COMPLETED"`
	Version     uint   `json:"version" validate:"required"`
}

type CommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}
