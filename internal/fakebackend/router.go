// Package fakebackend serves the booking API from memory for local runs and
// integration tests.
package fakebackend

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the booking endpoints to store and returns an http.Handler.
func NewRouter(store *Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{store: store, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodGet)
	r.HandleFunc("/user", h.user).Methods(http.MethodGet)
	r.HandleFunc("/route", h.route).Methods(http.MethodGet)
	r.HandleFunc("/flights", h.flights).Methods(http.MethodPost)
	r.HandleFunc("/reservation", h.reserve).Methods(http.MethodPost)
	r.HandleFunc("/reservation", h.cancelReservation).Methods(http.MethodDelete)
	r.HandleFunc("/cart", h.cart).Methods(http.MethodGet)
	r.HandleFunc("/ticket", h.purchase).Methods(http.MethodPost)
	r.HandleFunc("/ticket", h.cancelTicket).Methods(http.MethodDelete)
	r.HandleFunc("/tickets", h.tickets).Methods(http.MethodGet)

	return loggingMiddleware(logger)(r)
}
