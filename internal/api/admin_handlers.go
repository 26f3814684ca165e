package api

import (
	"net/http"

	"beworking/internal/entities"
	"beworking/internal/service"

	"go.uber.org/zap"
)

type AdminHandler struct {
	Service *service.AdminService
	log     *zap.Logger
}

func NewAdminHandler(svc *service.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: svc, log: log}
}

// ListBookings serves GET /admin/bookings?date=YYYY-MM-DD.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListBookings(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *AdminHandler) DeliverMail(w http.ResponseWriter, r *http.Request) {
	var req entities.MailboxDeliveryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	item, err := h.Service.RecordDelivery(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}
