// Package commands implements the two mutation commands the dashboard can
// issue: completing an order and completing a reservation.
package commands

import (
	"context"
	"fmt"

	"restaurant-panel/internal/logger"
)

type Store interface {
	CompleteOrder(ctx context.Context, id string) error
	CompleteReservation(ctx context.Context, id string) error
}

// Publisher streams completion events for downstream consumers. Optional; a
// nil publisher disables eventing without touching the command path.
type Publisher interface {
	PublishOrderCompleted(id, completedBy string) error
	PublishReservationCompleted(id, completedBy string) error
}

type Service struct {
	Store  Store
	Events Publisher
	Logger *logger.Logger
}

func NewService(store Store, events Publisher, log *logger.Logger) *Service {
	return &Service{Store: store, Events: events, Logger: log}
}

// CompleteOrder marks one order delivered. Store failures go back to the
// caller untouched and are never retried; a failed event publish is logged
// but does not fail the command.
func (s *Service) CompleteOrder(ctx context.Context, id, actor string) error {
	if err := s.Store.CompleteOrder(ctx, id); err != nil {
		return err
	}

	if s.Events != nil {
		if err := s.Events.PublishOrderCompleted(id, actor); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("order-completed event for %s failed: %v", id, err))
		}
	}
	return nil
}

// CompleteReservation marks one reservation completed, with the same failure
// policy as CompleteOrder. actor is empty when invoked by auto-completion.
func (s *Service) CompleteReservation(ctx context.Context, id, actor string) error {
	if err := s.Store.CompleteReservation(ctx, id); err != nil {
		return err
	}

	if s.Events != nil {
		if err := s.Events.PublishReservationCompleted(id, actor); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("reservation-completed event for %s failed: %v", id, err))
		}
	}
	return nil
}

// AutoCompleter adapts the service to the synchronizer's completion hook.
func (s *Service) AutoCompleter() *AutoCompleter {
	return &AutoCompleter{service: s}
}

type AutoCompleter struct {
	service *Service
}

func (a *AutoCompleter) CompleteReservation(ctx context.Context, id string) error {
	return a.service.CompleteReservation(ctx, id, "")
}
