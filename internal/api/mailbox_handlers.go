package api

import (
	"net/http"

	"beworking/internal/service"

	"go.uber.org/zap"
)

type MailboxHandler struct {
	Service service.MailboxService
	log     *zap.Logger
}

func NewMailboxHandler(svc service.MailboxService, log *zap.Logger) *MailboxHandler {
	return &MailboxHandler{Service: svc, log: log}
}

func (h *MailboxHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrReject(w, r)
	if !ok {
		return
	}
	items, err := h.Service.List(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
