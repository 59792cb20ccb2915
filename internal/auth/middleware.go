package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	decisionKey contextKey = "decision"
)

// Middleware verifies the bearer identity token against the session
// provider's OIDC issuer and puts the identity into the request context.
func Middleware(projectID string) func(http.Handler) http.Handler {
	if projectID == "" {
		panic("project ID not set for auth middleware")
	}
	issuer := "https://securetoken.google.com/" + projectID

	provider, err := oidc.NewProvider(context.Background(), issuer)
	if err != nil {
		panic(fmt.Sprintf("Failed to create OIDC provider: %v", err))
	}

	// Verifier (SkipClientIDCheck → audience enforced by the issuer match)
	verifier := provider.Verifier(&oidc.Config{
		SkipClientIDCheck: true,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			idToken, err := verifier.Verify(r.Context(), rawToken)
			if err != nil {
				http.Error(w, fmt.Sprintf("invalid token: %v", err), http.StatusUnauthorized)
				return
			}

			var claims struct {
				Sub   string `json:"sub"`
				Email string `json:"email"`
			}
			if err := idToken.Claims(&claims); err != nil {
				http.Error(w, "failed to parse claims", http.StatusUnauthorized)
				return
			}

			identity := &Identity{UID: claims.Sub, Email: claims.Email}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route group on the permission resolver. Non-authorized
// requests get 403 with the resolver's reason; the resolver itself has
// already forced the sign-out by the time the response is written.
func RequireAdmin(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFrom(r.Context())
			decision := resolver.Resolve(r.Context(), identity)
			if !decision.Authorized {
				reason := decision.Reason
				if reason == "" {
					reason = "not signed in"
				}
				http.Error(w, reason, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithDecision(r.Context(), decision)))
		})
	}
}

// IdentityFrom returns the verified identity stored by Middleware, or nil.
func IdentityFrom(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}

// WithDecision stores a permission decision in the context for DecisionFrom.
func WithDecision(ctx context.Context, decision Decision) context.Context {
	return context.WithValue(ctx, decisionKey, decision)
}

// DecisionFrom returns the permission decision stored by RequireAdmin.
func DecisionFrom(ctx context.Context) (Decision, bool) {
	decision, ok := ctx.Value(decisionKey).(Decision)
	return decision, ok
}

// UserID is a convenience for handlers that only need the uid.
func UserID(ctx context.Context) string {
	if identity := IdentityFrom(ctx); identity != nil {
		return identity.UID
	}
	return ""
}
