package api

import (
	"net/http"

	"beworking/internal/entities"
	"beworking/internal/service"

	"go.uber.org/zap"
)

type UserHandler struct {
	Service service.UserService
	log     *zap.Logger
}

func NewUserHandler(svc service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, log: log}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrReject(w, r)
	if !ok {
		return
	}
	profile, err := h.Service.Profile(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrReject(w, r)
	if !ok {
		return
	}
	var req entities.ProfileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	profile, err := h.Service.UpdateProfile(r.Context(), session.UserID, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
