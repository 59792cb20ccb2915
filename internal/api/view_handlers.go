package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/utils"
	"restaurant-panel/internal/view"
)

type viewActionRequest struct {
	Action string `json:"action"`
	Screen string `json:"screen,omitempty"`
	ID     string `json:"id,omitempty"`
}

// viewPayload is the session/view response body: the raw navigation state
// plus the strings the detail screens render verbatim, and the staff profile
// resolved by the permission check.
type viewPayload struct {
	view.State
	OrderDisplay       *orderDisplay       `json:"order_display,omitempty"`
	ReservationDisplay *reservationDisplay `json:"reservation_display,omitempty"`
	Staff              *models.UserProfile `json:"staff,omitempty"`
}

type orderDisplay struct {
	Subtotal     string `json:"subtotal"`
	DeliveryCost string `json:"delivery_cost,omitempty"`
	Total        string `json:"total"`
	Telefone     string `json:"telefone,omitempty"`
}

type reservationDisplay struct {
	Data     string `json:"data"`
	Telefone string `json:"telefone,omitempty"`
}

// presentView pre-formats the monetary, phone and date values for the active
// detail screen, so every client renders them the same way.
func presentView(ctx context.Context, state view.State) viewPayload {
	payload := viewPayload{State: state}

	if o := state.SelectedOrder; o != nil {
		display := &orderDisplay{
			Subtotal: utils.FormatCurrencyBRL(o.EffectiveSubtotal()),
			Total:    utils.FormatCurrencyBRL(o.EffectiveTotal()),
		}
		if o.DeliveryCost > 0 {
			display.DeliveryCost = utils.FormatCurrencyBRL(o.DeliveryCost)
		}
		if o.Cliente != nil {
			display.Telefone = utils.FormatPhoneBR(o.Cliente.Telefone)
		}
		payload.OrderDisplay = display
	}

	if res := state.SelectedReservation; res != nil {
		display := &reservationDisplay{Data: utils.FormatDateBR(res.Data)}
		if res.Cliente != nil {
			display.Telefone = utils.FormatPhoneBR(res.Cliente.Telefone)
		}
		payload.ReservationDisplay = display
	}

	if decision, ok := auth.DecisionFrom(ctx); ok {
		payload.Staff = decision.Profile
	}
	return payload
}

// GetView reports the session's current navigation state.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	router := h.router(auth.UserID(r.Context()))
	writeJSON(w, http.StatusOK, utils.SuccessResponse("Current view", presentView(r.Context(), router.Current())))
}

// PostView applies one navigation action to the session's state machine.
// Selecting a record re-reads it so the detail view reflects the stored
// document, with the owning profile attached best effort.
func (h *Handler) PostView(w http.ResponseWriter, r *http.Request) {
	var req viewActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	uid := auth.UserID(r.Context())
	router := h.router(uid)

	switch req.Action {
	case "navigate":
		if err := router.Navigate(view.Screen(req.Screen)); err != nil {
			writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Navigation failed", err.Error()))
			return
		}

	case "select-order":
		order, err := h.Store.GetOrder(r.Context(), req.ID)
		if err != nil {
			writeError(w, "Failed to load order", err)
			return
		}
		if profile, perr := h.Store.GetUser(r.Context(), order.UID); perr == nil {
			order.Cliente = profile
		} else {
			h.Logger.Warn("API", fmt.Sprintf("Owner lookup failed for order %s: %v", order.ID, perr))
		}
		if err := router.SelectOrder(*order); err != nil {
			writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Selection failed", err.Error()))
			return
		}

	case "select-reservation":
		reservation, err := h.Store.GetReservation(r.Context(), req.ID)
		if err != nil {
			writeError(w, "Failed to load reservation", err)
			return
		}
		if profile, perr := h.Store.GetUser(r.Context(), reservation.UID); perr == nil {
			reservation.Cliente = profile
		} else {
			h.Logger.Warn("API", fmt.Sprintf("Owner lookup failed for reservation %s: %v", reservation.ID, perr))
		}
		if err := router.SelectReservation(*reservation); err != nil {
			writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Selection failed", err.Error()))
			return
		}

	case "back":
		router.Back()

	case "reset":
		router.Reset()

	default:
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Unknown action", fmt.Sprintf("unsupported view action %q", req.Action)))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("View updated", presentView(r.Context(), router.Current())))
}
