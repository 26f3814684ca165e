package api

import (
	"context"
	"net/http"
	"time"

	"beworking/internal/auth"

	"github.com/gorilla/mux"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Booking      *BookingHandler
	Mailbox      *MailboxHandler
	Subscription *SubscriptionHandler
	Admin        *AdminHandler
	DB           Pinger
}

// NewRouter wires every endpoint. Tenant routes require a login token and /admin routes
// require the static admin key.
func NewRouter(h Handlers, tokens *auth.TokenManager, adminAPIKey string) *mux.Router {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/health", health(h.DB)).Methods("GET")
	r.HandleFunc("/api/auth/register", h.Auth.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/api/subscription/webhook", h.Subscription.HandleWebhook).Methods("POST")

	// Tenant endpoints
	tenant := r.PathPrefix("/api").Subrouter()
	tenant.Use(auth.UserAuthMiddleware(tokens))
	tenant.HandleFunc("/user/me", h.User.Me).Methods("GET")
	tenant.HandleFunc("/user/profile", h.User.UpdateProfile).Methods("PUT")
	tenant.HandleFunc("/bookings", h.Booking.List).Methods("GET")
	tenant.HandleFunc("/bookings", h.Booking.Create).Methods("POST")
	tenant.HandleFunc("/bookings/availability", h.Booking.Availability).Methods("GET")
	tenant.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.Delete).Methods("DELETE")
	tenant.HandleFunc("/mailbox", h.Mailbox.List).Methods("GET")
	tenant.HandleFunc("/subscription/create-checkout", h.Subscription.CreateCheckout).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(adminAPIKey))
	admin.HandleFunc("/bookings", h.Admin.ListBookings).Methods("GET")
	admin.HandleFunc("/mailbox", h.Admin.DeliverMail).Methods("POST")

	return r
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
