package syncer

import (
	"context"
	"sort"
	"strings"

	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/store"
)

// UserSynchronizer streams the "users" collection. No owner join here; the
// records are the profiles themselves. Because this stream sees every profile
// write, it also drops stale cache entries so the owner join on the other
// streams never serves an outdated profile for a full TTL.
type UserSynchronizer struct {
	Watcher Watcher
	Cache   ProfileInvalidator
	Logger  *logger.Logger
}

func NewUserSynchronizer(watcher Watcher, cache ProfileInvalidator, log *logger.Logger) *UserSynchronizer {
	return &UserSynchronizer{Watcher: watcher, Cache: cache, Logger: log}
}

func (s *UserSynchronizer) Subscribe(onUpdate func([]models.UserProfile), onError func(error)) (unsubscribe func()) {
	// Profiles from the previous snapshot, keyed by UID. The loop goroutine is
	// the only reader and writer.
	prev := map[string]models.UserProfile{}

	return subscribe(s.Watcher, store.CollectionUsers, func(ctx context.Context, snap store.Snapshot) bool {
		users := make([]models.UserProfile, len(snap.Docs))
		for i, doc := range snap.Docs {
			users[i] = models.UserProfileFromDoc(doc.ID, doc.Data)
		}
		s.invalidateChanged(ctx, users, prev)
		sortUsers(users)

		if ctx.Err() != nil {
			return false
		}
		onUpdate(users)
		return true
	}, onError, s.Logger)
}

// invalidateChanged evicts cached profiles whose document changed or vanished
// since the previous snapshot, then replaces prev in place. The first snapshot
// evicts nothing: the cache cannot be staler than what it holds.
func (s *UserSynchronizer) invalidateChanged(ctx context.Context, users []models.UserProfile, prev map[string]models.UserProfile) {
	current := make(map[string]models.UserProfile, len(users))
	for _, u := range users {
		current[u.UID] = u
	}
	if s.Cache != nil && len(prev) > 0 {
		for uid, u := range current {
			if before, ok := prev[uid]; ok && before != u {
				s.Cache.Invalidate(ctx, uid)
			}
		}
		for uid := range prev {
			if _, ok := current[uid]; !ok {
				s.Cache.Invalidate(ctx, uid)
			}
		}
	}
	for uid := range prev {
		delete(prev, uid)
	}
	for uid, u := range current {
		prev[uid] = u
	}
}

// sortUsers is case-insensitive by name, ascending; ties keep snapshot order.
func sortUsers(users []models.UserProfile) {
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})
}
