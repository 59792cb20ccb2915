package auth

import (
	"context"
	"sync"

	"restaurant-panel/internal/logger"
)

// Registry tracks the live dashboard sessions by uid. It implements
// SessionTerminator so the Resolver can force a sign-out without knowing how
// sessions are stored.
type Registry struct {
	Revoker TokenRevoker
	Logger  *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(revoker TokenRevoker, log *logger.Logger) *Registry {
	return &Registry{
		Revoker:  revoker,
		Logger:   log,
		sessions: make(map[string]*Session),
	}
}

// Establish records a fresh sign-in for identity, replacing any previous
// session of the same uid.
func (r *Registry) Establish(identity Identity) *Session {
	r.mu.Lock()
	session, ok := r.sessions[identity.UID]
	if !ok {
		session = NewSession(r.Revoker, r.Logger)
		r.sessions[identity.UID] = session
	}
	r.mu.Unlock()

	session.SignIn(identity)
	return session
}

// Get returns the live session for uid, or nil.
func (r *Registry) Get(uid string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[uid]
}

// Terminate ends the session for uid. Revocation still runs when no local
// session exists, since the identity token may outlive a server restart.
func (r *Registry) Terminate(ctx context.Context, uid string) error {
	r.mu.Lock()
	session := r.sessions[uid]
	delete(r.sessions, uid)
	r.mu.Unlock()

	if session != nil {
		return session.SignOut(ctx)
	}
	if r.Revoker != nil {
		return r.Revoker.RevokeRefreshTokens(ctx, uid)
	}
	return nil
}
