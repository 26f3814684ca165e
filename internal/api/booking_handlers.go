package api

import (
	"net/http"
	"strconv"

	"beworking/internal/entities"
	httperrors "beworking/internal/errors"
	"beworking/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Service service.BookingService
	log     *zap.Logger
}

func NewBookingHandler(svc service.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, log: log}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrReject(w, r)
	if !ok {
		return
	}
	bookings, err := h.Service.List(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Availability serves GET /api/bookings/availability?date=YYYY-MM-DD&product=...
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.Service.Availability(r.Context(), q.Get("date"), q.Get("product"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrReject(w, r)
	if !ok {
		return
	}
	var req entities.BookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp, err := h.Service.Create(r.Context(), session.UserID, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrReject(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, h.log, httperrors.ErrBadRequest("Invalid booking id"))
		return
	}

	if err := h.Service.Delete(r.Context(), session.UserID, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
