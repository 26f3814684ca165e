package entities

import "time"

type MailboxItemResponse struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	PDFURL    string    `json:"pdfUrl,omitempty"`
}

// MailboxDeliveryRequest is sent by the front desk when post arrives for a tenant.
type MailboxDeliveryRequest struct {
	UserID  int64  `json:"userId" validate:"required,gt=0"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
	PDFURL  string `json:"pdfUrl" validate:"omitempty,url"`
}
