// Package view holds the in-memory navigation state machine for one
// dashboard session. Nothing here is persisted; a session restart lands on
// home with cleared selections.
package view

import (
	"fmt"
	"sync"

	"restaurant-panel/internal/models"
)

// Screen is a navigable top-level screen.
type Screen string

const (
	ScreenHome         Screen = "home"
	ScreenOrders       Screen = "pedidos"
	ScreenReservations Screen = "reservas"
	ScreenUsers        Screen = "usuarios"
)

// States reported by State. The two detail states are list screens with a
// record selected.
const (
	StateHome              = "home"
	StateOrdersList        = "orders-list"
	StateOrderDetail       = "order-detail"
	StateReservationsList  = "reservations-list"
	StateReservationDetail = "reservation-detail"
	StateUsersList         = "users-list"
)

// Router is the per-session navigation state machine.
type Router struct {
	mu                  sync.Mutex
	screen              Screen
	selectedOrder       *models.Order
	selectedReservation *models.Reservation
}

func NewRouter() *Router {
	return &Router{screen: ScreenHome}
}

// Navigate moves to a top-level screen and clears both selections, so coming
// back to a list never resurrects a stale detail view.
func (r *Router) Navigate(screen Screen) error {
	switch screen {
	case ScreenHome, ScreenOrders, ScreenReservations, ScreenUsers:
	default:
		return fmt.Errorf("unknown screen %q", screen)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen = screen
	r.selectedOrder = nil
	r.selectedReservation = nil
	return nil
}

// SelectOrder transitions orders-list -> order-detail.
func (r *Router) SelectOrder(order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.screen != ScreenOrders {
		return fmt.Errorf("cannot select an order from screen %q", r.screen)
	}
	r.selectedOrder = &order
	return nil
}

// SelectReservation transitions reservations-list -> reservation detail.
func (r *Router) SelectReservation(reservation models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.screen != ScreenReservations {
		return fmt.Errorf("cannot select a reservation from screen %q", r.screen)
	}
	r.selectedReservation = &reservation
	return nil
}

// Back clears an active selection first; with nothing selected it returns to
// home.
func (r *Router) Back() {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.selectedOrder != nil:
		r.selectedOrder = nil
	case r.selectedReservation != nil:
		r.selectedReservation = nil
	default:
		r.screen = ScreenHome
	}
}

// Reset returns to the initial state. Used on sign-out.
func (r *Router) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen = ScreenHome
	r.selectedOrder = nil
	r.selectedReservation = nil
}

// State names the current machine state.
func (r *Router) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.screen {
	case ScreenOrders:
		if r.selectedOrder != nil {
			return StateOrderDetail
		}
		return StateOrdersList
	case ScreenReservations:
		if r.selectedReservation != nil {
			return StateReservationDetail
		}
		return StateReservationsList
	case ScreenUsers:
		return StateUsersList
	default:
		return StateHome
	}
}

// Snapshot of the router for the session/view endpoint.
type State struct {
	State               string              `json:"state"`
	Screen              Screen              `json:"screen"`
	SelectedOrder       *models.Order       `json:"selected_order,omitempty"`
	SelectedReservation *models.Reservation `json:"selected_reservation,omitempty"`
}

func (r *Router) Current() State {
	state := r.State()
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		State:               state,
		Screen:              r.screen,
		SelectedOrder:       r.selectedOrder,
		SelectedReservation: r.selectedReservation,
	}
}
