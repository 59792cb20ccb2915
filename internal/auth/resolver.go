package auth

import (
	"context"
	"fmt"

	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
)

// Reasons surfaced to the access-denied screen.
const (
	ReasonNotFound     = "not found among authorized accounts"
	ReasonNotAdmin     = "insufficient privilege"
	ReasonCheckFailure = "could not verify permissions, try again"
)

type ProfileGetter interface {
	GetUser(ctx context.Context, uid string) (*models.UserProfile, error)
}

// SessionTerminator force-ends the session of a uid. Every non-authorized
// resolve outcome for a present identity goes through it, so the caller's
// next auth-state observation flips to signed-out on its own.
type SessionTerminator interface {
	Terminate(ctx context.Context, uid string) error
}

type Decision struct {
	Authorized bool
	Reason     string
	Profile    *models.UserProfile
}

// Resolver decides whether a signed-in identity may use the dashboard.
type Resolver struct {
	Profiles ProfileGetter
	Sessions SessionTerminator
	Logger   *logger.Logger
}

func NewResolver(profiles ProfileGetter, sessions SessionTerminator, log *logger.Logger) *Resolver {
	return &Resolver{Profiles: profiles, Sessions: sessions, Logger: log}
}

// Resolve implements the admin gate. A nil identity is the pre-login state
// and denies silently. Any other non-authorized outcome terminates the
// session exactly once before returning.
func (r *Resolver) Resolve(ctx context.Context, identity *Identity) Decision {
	if identity == nil {
		return Decision{}
	}

	profile, err := r.Profiles.GetUser(ctx, identity.UID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			r.Logger.LogSecurity("ACCESS_DENIED", fmt.Sprintf("uid %s has no profile document", identity.UID))
			r.terminate(ctx, identity.UID)
			return Decision{Reason: ReasonNotFound}
		}

		r.Logger.Error("AUTH", fmt.Sprintf("permission check for %s failed: %v", identity.UID, err))
		r.terminate(ctx, identity.UID)
		return Decision{Reason: ReasonCheckFailure}
	}

	if !profile.IsAdministrator() {
		r.Logger.LogSecurity("ACCESS_DENIED", fmt.Sprintf("uid %s lacks the admin marker", identity.UID))
		r.terminate(ctx, identity.UID)
		return Decision{Reason: ReasonNotAdmin}
	}

	return Decision{Authorized: true, Profile: profile}
}

func (r *Resolver) terminate(ctx context.Context, uid string) {
	if r.Sessions == nil {
		return
	}
	if err := r.Sessions.Terminate(ctx, uid); err != nil {
		r.Logger.Error("AUTH", fmt.Sprintf("forced sign-out of %s failed: %v", uid, err))
	}
}
