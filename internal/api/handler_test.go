package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/commands"
	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/utils"
	"restaurant-panel/internal/view"
)

type MockCommandStore struct {
	mock.Mock
}

func (m *MockCommandStore) CompleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommandStore) CompleteReservation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestHandler(store commands.Store) *Handler {
	log := logger.NewLogger()
	return &Handler{
		Logger:   log,
		Commands: commands.NewService(store, nil, log),
		routers:  make(map[string]*view.Router),
	}
}

// withURLParam injects a chi route parameter the way the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var response utils.APIResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return response
}

func TestCompleteOrderHandler(t *testing.T) {
	store := new(MockCommandStore)
	store.On("CompleteOrder", mock.Anything, "order-1").Return(nil)
	handler := newTestHandler(store)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/v1/pedidos/order-1/complete", nil), "id", "order-1")
	recorder := httptest.NewRecorder()
	handler.CompleteOrder(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, decodeResponse(t, recorder).Success)
	store.AssertExpectations(t)
}

func TestCompleteOrderHandlerMissingID(t *testing.T) {
	handler := newTestHandler(new(MockCommandStore))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pedidos//complete", nil)
	recorder := httptest.NewRecorder()
	handler.CompleteOrder(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCompleteReservationHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", errs.NotFound("reservation res-1 not found"), http.StatusNotFound},
		{"permission denied", errs.Permission("missing or insufficient permissions"), http.StatusForbidden},
		{"transient", errs.Transient("store unavailable"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockCommandStore)
			store.On("CompleteReservation", mock.Anything, "res-1").Return(tt.err)
			handler := newTestHandler(store)

			req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/v1/reservas/res-1/complete", nil), "id", "res-1")
			recorder := httptest.NewRecorder()
			handler.CompleteReservation(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.False(t, decodeResponse(t, recorder).Success)
		})
	}
}

func TestViewNavigation(t *testing.T) {
	handler := newTestHandler(new(MockCommandStore))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session/view", bytes.NewBufferString(body))
		recorder := httptest.NewRecorder()
		handler.PostView(recorder, req)
		return recorder
	}

	recorder := post(`{"action":"navigate","screen":"pedidos"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var state struct {
		Data view.State `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&state))
	assert.Equal(t, view.StateOrdersList, state.Data.State)

	recorder = post(`{"action":"back"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/session/view", nil)
	getRecorder := httptest.NewRecorder()
	handler.GetView(getRecorder, getReq)
	require.NoError(t, json.NewDecoder(getRecorder.Body).Decode(&state))
	assert.Equal(t, view.StateHome, state.Data.State)
}

func TestPresentViewFormatsOrderDetail(t *testing.T) {
	state := view.State{
		State:  view.StateOrderDetail,
		Screen: view.ScreenOrders,
		SelectedOrder: &models.Order{
			ID:           "order-1",
			Subtotal:     1250,
			DeliveryCost: 12.5,
			Total:        1262.5,
			Cliente:      &models.UserProfile{Name: "Ana", Telefone: "11987654321"},
		},
	}

	payload := presentView(context.Background(), state)
	require.NotNil(t, payload.OrderDisplay)
	assert.Equal(t, "R$ 1.250,00", payload.OrderDisplay.Subtotal)
	assert.Equal(t, "R$ 12,50", payload.OrderDisplay.DeliveryCost)
	assert.Equal(t, "R$ 1.262,50", payload.OrderDisplay.Total)
	assert.Equal(t, "(11) 98765-4321", payload.OrderDisplay.Telefone)
	assert.Nil(t, payload.ReservationDisplay)
}

func TestPresentViewFormatsReservationDetail(t *testing.T) {
	state := view.State{
		State:  view.StateReservationDetail,
		Screen: view.ScreenReservations,
		SelectedReservation: &models.Reservation{
			ID:      "res-1",
			Data:    "8/13/2025",
			Cliente: &models.UserProfile{Telefone: "1132654987"},
		},
	}

	payload := presentView(context.Background(), state)
	require.NotNil(t, payload.ReservationDisplay)
	assert.Equal(t, "13/08/2025", payload.ReservationDisplay.Data)
	assert.Equal(t, "(11) 3265-4987", payload.ReservationDisplay.Telefone)
	assert.Nil(t, payload.OrderDisplay)
}

func TestGetViewIncludesResolvedStaffProfile(t *testing.T) {
	handler := newTestHandler(new(MockCommandStore))

	staff := &models.UserProfile{UID: "admin-1", Name: "Marcos", Role: "admin"}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/view", nil)
	req = req.WithContext(auth.WithDecision(req.Context(), auth.Decision{Authorized: true, Profile: staff}))

	recorder := httptest.NewRecorder()
	handler.GetView(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data viewPayload `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	require.NotNil(t, body.Data.Staff)
	assert.Equal(t, "Marcos", body.Data.Staff.Name)
}

func TestViewRejectsUnknownAction(t *testing.T) {
	handler := newTestHandler(new(MockCommandStore))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/view", bytes.NewBufferString(`{"action":"teleport"}`))
	recorder := httptest.NewRecorder()
	handler.PostView(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestViewRejectsUnknownScreen(t *testing.T) {
	handler := newTestHandler(new(MockCommandStore))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/view", bytes.NewBufferString(`{"action":"navigate","screen":"configuracoes"}`))
	recorder := httptest.NewRecorder()
	handler.PostView(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
