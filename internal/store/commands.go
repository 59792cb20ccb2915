package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"restaurant-panel/internal/models"
)

// CompleteOrder marks one order as delivered. Setting the fields when they
// are already set is a no-op in effect, so the command is idempotent.
func (s *Store) CompleteOrder(ctx context.Context, id string) error {
	_, err := s.Client.Collection(CollectionOrders).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: models.StatusEntregue},
		{Path: "concluido", Value: true},
	})
	if err != nil {
		return ClassifyError(CollectionOrders, err)
	}

	s.Logger.LogStore("UPDATE", CollectionOrders, "order "+id+" marked delivered")
	return nil
}

// CompleteReservation marks one reservation as completed with a
// server-assigned completion timestamp. Idempotent for the same reason as
// CompleteOrder.
func (s *Store) CompleteReservation(ctx context.Context, id string) error {
	_, err := s.Client.Collection(CollectionReservations).Doc(id).Update(ctx, []firestore.Update{
		{Path: "concluido", Value: true},
		{Path: "concluido_em", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return ClassifyError(CollectionReservations, err)
	}

	s.Logger.LogStore("UPDATE", CollectionReservations, "reservation "+id+" marked completed")
	return nil
}
