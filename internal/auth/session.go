package auth

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"restaurant-panel/internal/config"
	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
)

// Identity is the opaque signed-in user reference handed out by the session
// provider.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// TokenRevoker invalidates every refresh token of one account, which is how a
// forced sign-out propagates to the client.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Session owns the authenticated state of one dashboard client. It is the
// single writer of that state; everything else observes it through Watch.
type Session struct {
	Revoker TokenRevoker
	Logger  *logger.Logger

	mu       sync.RWMutex
	identity *Identity
	watchers map[string]chan *Identity
}

func NewSession(revoker TokenRevoker, log *logger.Logger) *Session {
	return &Session{
		Revoker:  revoker,
		Logger:   log,
		watchers: make(map[string]chan *Identity),
	}
}

// Current returns the signed-in identity, or nil before login and after
// sign-out.
func (s *Session) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// SignIn records a successful authentication and notifies watchers.
func (s *Session) SignIn(identity Identity) {
	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	s.Logger.LogAuth("SIGN_IN", fmt.Sprintf("session established for %s", identity.UID))
	s.notify(&identity)
}

// SignOut revokes the account's refresh tokens and clears the session.
// Watchers observe the signed-out state even when revocation fails.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	identity := s.identity
	s.identity = nil
	s.mu.Unlock()

	s.notify(nil)

	if identity == nil {
		return nil
	}

	s.Logger.LogAuth("SIGN_OUT", fmt.Sprintf("session ended for %s", identity.UID))
	if s.Revoker != nil {
		if err := s.Revoker.RevokeRefreshTokens(ctx, identity.UID); err != nil {
			return errs.Wrap(errs.KindTransient, "failed to revoke session tokens", err)
		}
	}
	return nil
}

// Watch emits the identity on every auth-state change until ctx is done. The
// channel is buffered and sends are non-blocking so a stuck observer cannot
// stall the session writer.
func (s *Session) Watch(ctx context.Context) <-chan *Identity {
	watcher := make(chan *Identity, 4)
	id := uuid.NewString()

	s.mu.Lock()
	s.watchers[id] = watcher
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
		close(watcher)
	}()

	return watcher
}

func (s *Session) notify(identity *Identity) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, watcher := range s.watchers {
		select {
		case watcher <- identity:
		default:
		}
	}
}

// NewFirebaseAuth builds the auth service client used for token revocation
// and account lookups.
func NewFirebaseAuth(ctx context.Context, cfg config.FirebaseConfig) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth app: %w", err)
	}
	return app.Auth(ctx)
}
