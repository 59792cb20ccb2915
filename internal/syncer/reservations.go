package syncer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/store"
)

// ReservationSynchronizer streams the "reservas" collection. Beyond the
// materialize/enrich/sort pipeline it auto-completes reservations whose
// moment is more than Grace in the past. That write-on-read behavior is gated
// by AutoComplete so it can be turned off without touching the read path.
type ReservationSynchronizer struct {
	Watcher   Watcher
	Profiles  ProfileLookup
	Completer ReservationCompleter

	AutoComplete bool
	Grace        time.Duration
	Now          func() time.Time

	Logger *logger.Logger
}

func NewReservationSynchronizer(
	watcher Watcher,
	profiles ProfileLookup,
	completer ReservationCompleter,
	autoComplete bool,
	grace time.Duration,
	log *logger.Logger,
) *ReservationSynchronizer {
	if grace <= 0 {
		grace = 30 * time.Minute
	}
	return &ReservationSynchronizer{
		Watcher:      watcher,
		Profiles:     profiles,
		Completer:    completer,
		AutoComplete: autoComplete,
		Grace:        grace,
		Now:          time.Now,
		Logger:       log,
	}
}

func (s *ReservationSynchronizer) Subscribe(onUpdate func([]models.Reservation), onError func(error)) (unsubscribe func()) {
	return subscribe(s.Watcher, store.CollectionReservations, func(ctx context.Context, snap store.Snapshot) bool {
		reservations := s.process(ctx, snap)
		if ctx.Err() != nil {
			return false
		}
		onUpdate(reservations)
		return true
	}, onError, s.Logger)
}

func (s *ReservationSynchronizer) process(ctx context.Context, snap store.Snapshot) []models.Reservation {
	reservations := make([]models.Reservation, len(snap.Docs))
	uids := make([]string, len(snap.Docs))
	for i, doc := range snap.Docs {
		reservations[i] = models.ReservationFromDoc(doc.ID, doc.Data)
		uids[i] = reservations[i].UID
	}

	enrich(ctx, uids, s.Profiles, func(i int, profile *models.UserProfile) {
		reservations[i].Cliente = profile
	}, s.Logger)

	if s.AutoComplete {
		s.autoComplete(ctx, reservations)
	}

	sortReservations(reservations)
	return reservations
}

// autoComplete issues one completion write per stale reservation and flips
// the local record optimistically, independent of the write outcome. A failed
// write leaves an inconsistency window that the next snapshot retries.
func (s *ReservationSynchronizer) autoComplete(ctx context.Context, reservations []models.Reservation) {
	now := s.Now()
	for i := range reservations {
		if !reservations[i].IsStale(now, s.Grace) {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		id := reservations[i].ID
		if err := s.Completer.CompleteReservation(ctx, id); err != nil {
			s.Logger.Error("SYNC", fmt.Sprintf("auto-completion write for reservation %s failed: %v", id, err))
		} else {
			s.Logger.LogSync(store.CollectionReservations, "reservation "+id+" auto-completed")
		}
		reservations[i].Concluido = true
	}
}

// sortReservations is newest-first by creation timestamp, zero-time fallback,
// ties keep snapshot order.
func sortReservations(reservations []models.Reservation) {
	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].ReservadoEm.After(reservations[j].ReservadoEm)
	})
}
