package sse

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"restaurant-panel/internal/logger"
)

// Event is one message on a collection stream: either a whole-list snapshot
// or a terminal subscription error.
type Event struct {
	Kind string      `json:"kind"` // "snapshot" or "error"
	Data interface{} `json:"data"`
}

// StartFunc opens the underlying synchronizer subscription. emit receives
// whole replacement lists, fail the single classified subscription error.
type StartFunc func(emit func(interface{}), fail func(error)) (unsubscribe func())

// Broadcaster fans one collection's snapshots out to the connected dashboard
// clients. The synchronizer subscription is started by the first client and
// torn down when the last one leaves or the listener errors; a later client
// re-establishes it, which is also the manual retry path after an error.
type Broadcaster struct {
	Collection string
	Start      StartFunc
	Logger     *logger.Logger

	mu          sync.Mutex
	clients     map[string]chan Event
	unsubscribe func()
	latest      *Event
}

func NewBroadcaster(collection string, start StartFunc, log *logger.Logger) *Broadcaster {
	return &Broadcaster{
		Collection: collection,
		Start:      start,
		Logger:     log,
		clients:    make(map[string]chan Event),
	}
}

// Subscribe registers a client until ctx is done. The latest snapshot, if
// any, is replayed immediately so a fresh screen does not wait for the next
// change.
func (b *Broadcaster) Subscribe(ctx context.Context) <-chan Event {
	clientChan := make(chan Event, 10)
	id := uuid.NewString()

	b.mu.Lock()
	b.clients[id] = clientChan
	if b.latest != nil {
		clientChan <- *b.latest
	}
	if b.unsubscribe == nil {
		b.unsubscribe = b.Start(b.emitSnapshot, b.emitError)
		b.Logger.LogSync(b.Collection, "listener started for first stream client")
	}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.removeClient(id)
	}()

	return clientChan
}

func (b *Broadcaster) emitSnapshot(list interface{}) {
	event := Event{Kind: "snapshot", Data: list}

	b.mu.Lock()
	b.latest = &event
	b.broadcastLocked(event)
	b.mu.Unlock()
}

func (b *Broadcaster) emitError(err error) {
	b.Logger.Error("SSE", fmt.Sprintf("stream for %q ended: %v", b.Collection, err))
	event := Event{Kind: "error", Data: err.Error()}

	b.mu.Lock()
	b.latest = nil
	b.broadcastLocked(event)
	// The subscription is already ending; release it off this goroutine so
	// the synchronizer's teardown handshake cannot deadlock.
	if unsub := b.unsubscribe; unsub != nil {
		b.unsubscribe = nil
		go unsub()
	}
	b.mu.Unlock()
}

func (b *Broadcaster) broadcastLocked(event Event) {
	for _, clientChan := range b.clients {
		// Non-blocking send so one slow client cannot stall the rest
		select {
		case clientChan <- event:
		default:
		}
	}
}

func (b *Broadcaster) removeClient(id string) {
	b.mu.Lock()
	clientChan, ok := b.clients[id]
	if ok {
		delete(b.clients, id)
		close(clientChan)
	}
	var unsub func()
	if len(b.clients) == 0 && b.unsubscribe != nil {
		unsub = b.unsubscribe
		b.unsubscribe = nil
		b.latest = nil
	}
	b.mu.Unlock()

	if unsub != nil {
		b.Logger.LogSync(b.Collection, "last stream client left, stopping listener")
		unsub()
	}
}

// ClientCount returns the number of connected stream clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
