package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/utils"
)

// CompleteOrder marks one order as delivered on behalf of the signed-in
// staff member. Failures go straight back to the client; there is no retry
// and nothing to roll back.
func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("order id is required", ""))
		return
	}

	if err := h.Commands.CompleteOrder(r.Context(), id, auth.UserID(r.Context())); err != nil {
		h.Logger.Error("API", fmt.Sprintf("complete order %s failed: %v", id, err))
		writeError(w, "failed to complete order", err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("order completed", nil))
}

// CompleteReservation marks one reservation as completed.
func (h *Handler) CompleteReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("reservation id is required", ""))
		return
	}

	if err := h.Commands.CompleteReservation(r.Context(), id, auth.UserID(r.Context())); err != nil {
		h.Logger.Error("API", fmt.Sprintf("complete reservation %s failed: %v", id, err))
		writeError(w, "failed to complete reservation", err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("reservation completed", nil))
}

// ReservationQR returns the encrypted check-in QR for one reservation.
func (h *Handler) ReservationQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("reservation id is required", ""))
		return
	}

	reservation, err := h.Store.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, "failed to load reservation", err)
		return
	}

	png, err := h.QR.GenerateEncryptedQR(*reservation)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("failed to generate QR", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
