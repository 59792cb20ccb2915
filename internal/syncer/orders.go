package syncer

import (
	"context"
	"sort"

	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/store"
)

// OrderSynchronizer streams the "pedidos" collection: each snapshot is
// materialized, joined to owner profiles and sorted newest-first before being
// delivered as a whole replacement list.
type OrderSynchronizer struct {
	Watcher  Watcher
	Profiles ProfileLookup
	Logger   *logger.Logger
}

func NewOrderSynchronizer(watcher Watcher, profiles ProfileLookup, log *logger.Logger) *OrderSynchronizer {
	return &OrderSynchronizer{Watcher: watcher, Profiles: profiles, Logger: log}
}

func (s *OrderSynchronizer) Subscribe(onUpdate func([]models.Order), onError func(error)) (unsubscribe func()) {
	return subscribe(s.Watcher, store.CollectionOrders, func(ctx context.Context, snap store.Snapshot) bool {
		orders := s.process(ctx, snap)
		if ctx.Err() != nil {
			return false
		}
		onUpdate(orders)
		return true
	}, onError, s.Logger)
}

func (s *OrderSynchronizer) process(ctx context.Context, snap store.Snapshot) []models.Order {
	orders := make([]models.Order, len(snap.Docs))
	uids := make([]string, len(snap.Docs))
	for i, doc := range snap.Docs {
		orders[i] = models.OrderFromDoc(doc.ID, doc.Data)
		uids[i] = orders[i].UID
	}

	enrich(ctx, uids, s.Profiles, func(i int, profile *models.UserProfile) {
		orders[i].Cliente = profile
	}, s.Logger)

	sortOrders(orders)
	return orders
}

// sortOrders is newest-first by the stored order timestamp. Missing or
// unparseable timestamps normalized to the zero time sink to the end; ties
// keep snapshot order.
func sortOrders(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Data.After(orders[j].Data)
	})
}
