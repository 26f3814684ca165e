package api

import (
	"io"
	"net/http"

	"beworking/internal/service"

	"go.uber.org/zap"
)

const maxWebhookBody = int64(65536)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *zap.Logger
}

func NewSubscriptionHandler(svc service.SubscriptionService, log *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{service: svc, log: log}
}

func (h *SubscriptionHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOrReject(w, r)
	if !ok {
		return
	}
	resp, err := h.service.CreateCheckout(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SubscriptionHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Warn("stripe webhook: error reading body", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Webhook processed successfully"})
}
