// Package syncer implements the authorization-gated realtime synchronizers:
// one per collection, each turning raw store snapshots into enriched, sorted
// whole-list replacements.
package syncer

import (
	"context"
	"fmt"
	"sync"

	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/store"
)

// Watcher opens a push-based subscription on one collection.
type Watcher interface {
	Watch(ctx context.Context, collection string) (<-chan store.Snapshot, <-chan error)
}

// ProfileLookup is the point read used to join records to their owner.
type ProfileLookup interface {
	GetUser(ctx context.Context, uid string) (*models.UserProfile, error)
}

// ProfileInvalidator drops a cached owner profile after its document changes.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, uid string)
}

// ReservationCompleter issues the completion write used by auto-completion.
type ReservationCompleter interface {
	CompleteReservation(ctx context.Context, id string) error
}

// subscription runs the shared listen loop: every snapshot is processed into
// a full replacement list before delivery, a listener error is delivered once
// and ends the subscription, and unsubscribe blocks until nothing can be
// delivered anymore.
func subscribe(
	watcher Watcher,
	collection string,
	process func(ctx context.Context, snap store.Snapshot) bool,
	onError func(error),
	log *logger.Logger,
) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(context.Background())
	snapshots, errors := watcher.Watch(ctx, collection)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return

			case err := <-errors:
				if err != nil && ctx.Err() == nil {
					onError(err)
				}
				return

			case snap, ok := <-snapshots:
				if !ok {
					// Watcher ended; deliver a pending error if one raced in.
					if err := <-errors; err != nil && ctx.Err() == nil {
						onError(err)
					}
					return
				}
				log.LogSync(collection, fmt.Sprintf("snapshot received: %d documents", len(snap.Docs)))
				if !process(ctx, snap) {
					return
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// enrich attaches each record's owner profile. Lookups run concurrently
// across the snapshot; attach is called once per settled lookup with the
// record index. A failed lookup degrades that one record's owner to absent,
// it never fails the batch.
func enrich(
	ctx context.Context,
	uids []string,
	lookup ProfileLookup,
	attach func(i int, profile *models.UserProfile),
	log *logger.Logger,
) {
	var wg sync.WaitGroup
	for i, uid := range uids {
		if uid == "" {
			continue
		}
		wg.Add(1)
		go func(i int, uid string) {
			defer wg.Done()
			profile, err := lookup.GetUser(ctx, uid)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn("SYNC", fmt.Sprintf("owner lookup for %s failed: %v", uid, err))
				}
				return
			}
			attach(i, profile)
		}(i, uid)
	}
	wg.Wait()
}
