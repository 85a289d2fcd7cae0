package ticket

type CreateTicketRequest struct {
	Subject     string  `json:"subject" binding:"required,max=200"`
	Description string  `json:"description" binding:"required,max=5000"`
	BookingID   *string `json:"booking_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
