package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
)

type stubProfiles struct {
	profile *models.UserProfile
	err     error
}

func (s *stubProfiles) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	return s.profile, s.err
}

type stubTerminator struct {
	mock.Mock
}

func (s *stubTerminator) Terminate(ctx context.Context, uid string) error {
	args := s.Called(ctx, uid)
	return args.Error(0)
}

func requestWithIdentity(identity *Identity) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos/stream", nil)
	if identity != nil {
		req = req.WithContext(context.WithValue(req.Context(), identityKey, identity))
	}
	return req
}

func TestRequireAdminPassesDecisionThrough(t *testing.T) {
	profiles := &stubProfiles{profile: &models.UserProfile{UID: "admin-uid", Role: "admin", Name: "Dona Maria"}}
	sessions := new(stubTerminator)
	resolver := NewResolver(profiles, sessions, logger.NewLogger())

	var seen Decision
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, ok := DecisionFrom(r.Context())
		require.True(t, ok)
		seen = decision
		w.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	RequireAdmin(resolver)(next).ServeHTTP(recorder, requestWithIdentity(&Identity{UID: "admin-uid"}))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, seen.Authorized)
	require.NotNil(t, seen.Profile)
	assert.Equal(t, "Dona Maria", seen.Profile.Name)
}

func TestRequireAdminBlocksNonAdmin(t *testing.T) {
	profiles := &stubProfiles{profile: &models.UserProfile{UID: "staff-uid", Role: "cliente"}}
	sessions := new(stubTerminator)
	sessions.On("Terminate", mock.Anything, "staff-uid").Return(nil)
	resolver := NewResolver(profiles, sessions, logger.NewLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a non-admin")
	})

	recorder := httptest.NewRecorder()
	RequireAdmin(resolver)(next).ServeHTTP(recorder, requestWithIdentity(&Identity{UID: "staff-uid"}))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ReasonNotAdmin)
	sessions.AssertNumberOfCalls(t, "Terminate", 1)
}

func TestRequireAdminBlocksMissingProfile(t *testing.T) {
	profiles := &stubProfiles{err: errs.NotFound("user ghost not found among authorized accounts")}
	sessions := new(stubTerminator)
	sessions.On("Terminate", mock.Anything, "ghost").Return(nil)
	resolver := NewResolver(profiles, sessions, logger.NewLogger())

	recorder := httptest.NewRecorder()
	RequireAdmin(resolver)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	})).ServeHTTP(recorder, requestWithIdentity(&Identity{UID: "ghost"}))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ReasonNotFound)
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	resolver := NewResolver(&stubProfiles{}, new(stubTerminator), logger.NewLogger())

	recorder := httptest.NewRecorder()
	RequireAdmin(resolver)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	})).ServeHTTP(recorder, requestWithIdentity(nil))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "not signed in")
}
