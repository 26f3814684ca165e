package api

import (
	"encoding/json"
	"net/http"

	"beworking/internal/auth"
	httperrors "beworking/internal/errors"

	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError answers with the status carried by err. Anything that is not an HTTPError
// is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := httperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Error: httperrors.PublicMessage(err)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return httperrors.ErrBadRequest("Invalid request body")
	}
	return nil
}

// sessionOrReject writes a 401 when the request carries no tenant session.
func sessionOrReject(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	s, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	}
	return s, ok
}
