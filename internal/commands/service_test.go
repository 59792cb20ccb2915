package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restaurant-panel/internal/commands"
	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CompleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CompleteReservation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCompleted(id, completedBy string) error {
	args := m.Called(id, completedBy)
	return args.Error(0)
}

func (m *MockPublisher) PublishReservationCompleted(id, completedBy string) error {
	args := m.Called(id, completedBy)
	return args.Error(0)
}

func TestCompleteOrderPublishesEvent(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	service := commands.NewService(store, events, logger.NewLogger())

	store.On("CompleteOrder", mock.Anything, "order-1").Return(nil)
	events.On("PublishOrderCompleted", "order-1", "admin-uid").Return(nil)

	require.NoError(t, service.CompleteOrder(context.Background(), "order-1", "admin-uid"))
	store.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCompleteOrderStoreFailureIsNotRetried(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	service := commands.NewService(store, events, logger.NewLogger())

	store.On("CompleteOrder", mock.Anything, "order-1").Return(errs.Transient("write failed"))

	err := service.CompleteOrder(context.Background(), "order-1", "admin-uid")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTransient))
	store.AssertNumberOfCalls(t, "CompleteOrder", 1)
	events.AssertNotCalled(t, "PublishOrderCompleted", mock.Anything, mock.Anything)
}

func TestCompleteOrderPublishFailureDoesNotFailCommand(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	service := commands.NewService(store, events, logger.NewLogger())

	store.On("CompleteOrder", mock.Anything, "order-1").Return(nil)
	events.On("PublishOrderCompleted", "order-1", "admin-uid").Return(errs.Transient("broker down"))

	assert.NoError(t, service.CompleteOrder(context.Background(), "order-1", "admin-uid"))
}

func TestCompleteReservationWithoutPublisher(t *testing.T) {
	store := new(MockStore)
	service := commands.NewService(store, nil, logger.NewLogger())

	store.On("CompleteReservation", mock.Anything, "res-1").Return(nil)

	assert.NoError(t, service.CompleteReservation(context.Background(), "res-1", "admin-uid"))
}

func TestAutoCompleterUsesEmptyActor(t *testing.T) {
	store := new(MockStore)
	events := new(MockPublisher)
	service := commands.NewService(store, events, logger.NewLogger())

	store.On("CompleteReservation", mock.Anything, "res-1").Return(nil)
	events.On("PublishReservationCompleted", "res-1", "").Return(nil)

	require.NoError(t, service.AutoCompleter().CompleteReservation(context.Background(), "res-1"))
	events.AssertExpectations(t)
}
