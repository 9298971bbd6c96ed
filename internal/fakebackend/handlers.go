package fakebackend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"vendepass-client/internal/domain"
)

// envelope is the shape of every response body.
type envelope struct {
	Error string `json:"Error"`
	Data  any    `json:"Data"`
}

type loginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type flightsRequest struct {
	FlightIds []string `json:"FlightIds"`
}

type reservationRequest struct {
	ReservationId string `json:"ReservationId"`
}

type ticketRequest struct {
	TicketId string `json:"TicketId"`
}

var success = map[string]string{"msg": "success"}

type handler struct {
	store  *Store
	logger *slog.Logger
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

// reply writes data on success or the failure reason otherwise. Domain
// failures are still HTTP 200, as the booking API reports them in-band.
func (h *handler) reply(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err == nil {
		h.writeJSON(w, r, http.StatusOK, envelope{Data: data})
		return
	}

	var reason Reason
	if errors.As(err, &reason) {
		h.writeJSON(w, r, http.StatusOK, envelope{Error: reason.Error()})
		return
	}

	h.logger.Error("handler failed", "path", r.URL.Path, "err", err)
	h.writeJSON(w, r, http.StatusInternalServerError, envelope{Error: "internal server error"})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, envelope{Error: "invalid request body"})
		return false
	}
	return true
}

func token(r *http.Request) string {
	return r.Header.Get("Authorization")
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r, map[string]string{"status": "ok"}, nil)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	tok, err := h.store.Login(req.Username, req.Password)
	h.reply(w, r, map[string]string{"token": tok}, err)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r, success, h.store.Logout(token(r)))
}

func (h *handler) user(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.User(token(r))
	h.reply(w, r, map[string]domain.User{"user": u}, err)
}

func (h *handler) route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path, err := h.store.Route(token(r), q.Get("src"), q.Get("dest"))
	h.reply(w, r, map[string]domain.Path{"path": path}, err)
}

func (h *handler) flights(w http.ResponseWriter, r *http.Request) {
	var req flightsRequest
	if !h.decode(w, r, &req) {
		return
	}
	flights, err := h.store.Flights(token(r), req.FlightIds)
	h.reply(w, r, map[string][]domain.Flight{"Flights": flights}, err)
}

func (h *handler) reserve(w http.ResponseWriter, r *http.Request) {
	var req flightsRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.reply(w, r, success, h.store.Reserve(token(r), req.FlightIds))
}

func (h *handler) cart(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Cart(token(r))
	h.reply(w, r, map[string][]domain.Reservation{"Reservations": items}, err)
}

func (h *handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.reply(w, r, success, h.store.CancelReservation(token(r), req.ReservationId))
}

func (h *handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.reply(w, r, success, h.store.Purchase(token(r), req.ReservationId))
}

func (h *handler) tickets(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Tickets(token(r))
	h.reply(w, r, map[string][]domain.Ticket{"Tickets": items}, err)
}

func (h *handler) cancelTicket(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.reply(w, r, success, h.store.CancelTicket(token(r), req.TicketId))
}
