package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"restaurant-panel/internal/config"
	"restaurant-panel/internal/errs"
	"restaurant-panel/internal/logger"
	"restaurant-panel/internal/models"
)

// Collection names are part of the wire contract shared with the customer
// apps and must not be renamed.
const (
	CollectionUsers        = "users"
	CollectionOrders       = "pedidos"
	CollectionReservations = "reservas"
)

// Document is one materialized document of a snapshot: the collection-assigned
// ID plus the raw field map.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Snapshot is a complete replacement view of a collection's current documents.
type Snapshot struct {
	Docs []Document
}

// Store wraps the hosted document database client. All reads, realtime
// listeners and field updates go through here.
type Store struct {
	Client *firestore.Client
	Logger *logger.Logger
}

func New(ctx context.Context, cfg config.FirebaseConfig, log *logger.Logger) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is not set")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store client: %w", err)
	}

	log.LogStore("CONNECT", cfg.ProjectID, "document store client ready")
	return &Store{Client: client, Logger: log}, nil
}

func (s *Store) Close() error {
	return s.Client.Close()
}

// GetUser performs a point read of the owning profile document for uid.
func (s *Store) GetUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	doc, err := s.Client.Collection(CollectionUsers).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.Wrap(errs.KindNotFound, fmt.Sprintf("user %s not found among authorized accounts", uid), err)
		}
		return nil, ClassifyError(CollectionUsers, err)
	}

	profile := models.UserProfileFromDoc(doc.Ref.ID, doc.Data())
	return &profile, nil
}

// GetOrder performs a point read of one order document.
func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	doc, err := s.Client.Collection(CollectionOrders).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.Wrap(errs.KindNotFound, fmt.Sprintf("order %s not found", id), err)
		}
		return nil, ClassifyError(CollectionOrders, err)
	}

	order := models.OrderFromDoc(doc.Ref.ID, doc.Data())
	return &order, nil
}

// GetReservation performs a point read of one reservation document.
func (s *Store) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	doc, err := s.Client.Collection(CollectionReservations).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.Wrap(errs.KindNotFound, fmt.Sprintf("reservation %s not found", id), err)
		}
		return nil, ClassifyError(CollectionReservations, err)
	}

	reservation := models.ReservationFromDoc(doc.Ref.ID, doc.Data())
	return &reservation, nil
}

// Watch opens a realtime listener on collection and emits a whole Snapshot
// for the initial state and for every subsequent change. The listener stops
// when ctx is cancelled. A listener failure is classified and delivered once
// on the error channel, after which both channels are closed; the store never
// retries on the caller's behalf.
func (s *Store) Watch(ctx context.Context, collection string) (<-chan Snapshot, <-chan error) {
	snapshots := make(chan Snapshot)
	errors := make(chan error, 1)

	go func() {
		defer close(snapshots)
		defer close(errors)

		iter := s.Client.Collection(collection).Snapshots(ctx)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.Logger.Error("STORE", fmt.Sprintf("listener on %q failed: %v", collection, err))
				errors <- ClassifyError(collection, err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				errors <- ClassifyError(collection, err)
				return
			}

			out := Snapshot{Docs: make([]Document, 0, len(docs))}
			for _, doc := range docs {
				out.Docs = append(out.Docs, Document{ID: doc.Ref.ID, Data: doc.Data()})
			}

			select {
			case snapshots <- out:
			case <-ctx.Done():
				return
			}
		}
	}()

	return snapshots, errors
}

// ClassifyError maps a store-level failure into the dashboard's error
// taxonomy with a message staff can act on.
func ClassifyError(collection string, err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied:
		return errs.Wrap(errs.KindPermission,
			fmt.Sprintf("permission denied reading %q, check the store security rules", collection), err)
	case codes.FailedPrecondition:
		return errs.Wrap(errs.KindTransient,
			fmt.Sprintf("collection %q may not exist or is missing required indexes", collection), err)
	default:
		return errs.Wrap(errs.KindTransient,
			fmt.Sprintf("store error on %q", collection), err)
	}
}
