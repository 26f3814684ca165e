package entities

type BookingRequest struct {
	Product   string `json:"product" validate:"required"`
	Date      string `json:"date" validate:"required,calendar_date"`
	StartHour string `json:"startHour" validate:"required,clock"`
	EndHour   string `json:"endHour" validate:"required,clock"`
	Attendees int    `json:"attendees" validate:"gte=1"`
}

type BookingResponse struct {
	ID        int64  `json:"id"`
	Product   string `json:"product"`
	Date      string `json:"date"`
	StartHour string `json:"startHour"`
	EndHour   string `json:"endHour"`
	Attendees int    `json:"attendees"`
}

type BookingCreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
