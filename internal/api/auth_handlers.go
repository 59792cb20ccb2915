package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/utils"
)

// Login exchanges credentials for identity tokens and, before handing them
// out, runs the admin permission check. A signed-in but non-authorized
// account is already force-signed-out by the resolver when the 403 goes out.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid login payload", err.Error()))
		return
	}

	result, err := auth.SignInWithPassword(h.HTTPClient, h.WebAPIKey, creds)
	if err != nil {
		h.Logger.LogAuth("LOGIN_FAILED", fmt.Sprintf("sign-in for %s rejected: %v", creds.Email, err))
		writeError(w, "login failed", err)
		return
	}

	identity := auth.Identity{UID: result.UID, Email: result.Email}
	h.Sessions.Establish(identity)

	decision := h.Resolver.Resolve(r.Context(), &identity)
	if !decision.Authorized {
		h.dropRouter(identity.UID)
		writeJSON(w, http.StatusForbidden, utils.ErrorResponse("access denied", decision.Reason))
		return
	}

	h.Logger.LogAuth("LOGIN", fmt.Sprintf("admin %s signed in", identity.UID))
	writeJSON(w, http.StatusOK, utils.SuccessResponse("signed in", result))
}

// Logout ends the caller's session and resets its navigation state.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	h.dropRouter(uid)

	if err := h.Sessions.Terminate(r.Context(), uid); err != nil {
		writeError(w, "logout failed", err)
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("signed out", nil))
}
