package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/commands"
	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/qr"
	"restaurant-panel/internal/sse"
	"restaurant-panel/internal/store"
	"restaurant-panel/internal/utils"
	"restaurant-panel/internal/view"
)

type Handler struct {
	Logger   *logger.Logger
	Sessions *auth.Registry
	Resolver *auth.Resolver
	Commands *commands.Service
	Store    *store.Store
	QR       *qr.QRGenerator

	WebAPIKey  string
	HTTPClient *http.Client

	Orders       *sse.Broadcaster
	Reservations *sse.Broadcaster
	Users        *sse.Broadcaster

	mu      sync.Mutex
	routers map[string]*view.Router
}

// Routes assembles the dashboard API. Everything except login and health sits
// behind token verification plus the admin gate.
func (h *Handler) Routes(projectID string) chi.Router {
	if h.routers == nil {
		h.routers = make(map[string]*view.Router)
	}

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, utils.SuccessResponse("ok", nil))
	})
	r.Post("/api/v1/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(projectID))
		r.Use(auth.RequireAdmin(h.Resolver))

		r.Post("/api/v1/auth/logout", h.Logout)

		r.Get("/api/v1/pedidos/stream", h.StreamOrders)
		r.Get("/api/v1/reservas/stream", h.StreamReservations)
		r.Get("/api/v1/users/stream", h.StreamUsers)

		r.Post("/api/v1/pedidos/{id}/complete", h.CompleteOrder)
		r.Post("/api/v1/reservas/{id}/complete", h.CompleteReservation)
		r.Get("/api/v1/reservas/{id}/qr", h.ReservationQR)

		r.Get("/api/v1/session/view", h.GetView)
		r.Post("/api/v1/session/view", h.PostView)
	})

	return r
}

// router returns the navigation state machine for the session of uid,
// creating it fresh (at home) when none exists.
func (h *Handler) router(uid string) *view.Router {
	h.mu.Lock()
	defer h.mu.Unlock()
	router, ok := h.routers[uid]
	if !ok {
		router = view.NewRouter()
		h.routers[uid] = router
	}
	return router
}

func (h *Handler) dropRouter(uid string) {
	h.mu.Lock()
	delete(h.routers, uid)
	h.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the taxonomy onto HTTP statuses: auth errors stay on the
// form (401), permission errors block (403), missing records 404, everything
// else is a transient upstream failure (503).
func writeError(w http.ResponseWriter, message string, err error) {
	status := http.StatusServiceUnavailable
	if kind, ok := errs.KindOf(err); ok {
		switch kind {
		case errs.KindAuth:
			status = http.StatusUnauthorized
		case errs.KindPermission:
			status = http.StatusForbidden
		case errs.KindNotFound:
			status = http.StatusNotFound
		}
	}
	writeJSON(w, status, utils.ErrorResponse(message, err.Error()))
}
