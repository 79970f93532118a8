// Package firestore implements store.Store on a Cloud Firestore collection.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hayato-coosy/kouseian/internal/store"
)

// ErrProjectIDMissing indicates no Google Cloud project id was configured.
var ErrProjectIDMissing = errors.New("firestore project id is not configured")

// Config configures a Store. When FIRESTORE_EMULATOR_HOST is set the client
// talks to the emulator and credentials are ignored.
type Config struct {
	ProjectID       string
	CredentialsJSON string // optional service account JSON
	Collection      string // defaults to store.DefaultTable
}

// Store keeps one document per record, keyed by record id. The result is
// stored as a JSON string so it reads back byte for byte.
type Store struct {
	client     *firestore.Client
	collection string
}

type document struct {
	ID        string    `firestore:"id"`
	Data      string    `firestore:"data"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// New creates a Firestore client for cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, ErrProjectIDMissing
	}
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = store.DefaultTable
	}
	log.Debug().Str("project_id", cfg.ProjectID).Str("collection", collection).Msg("Firestore store ready")
	return &Store{client: client, collection: collection}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Put implements store.Store. Create fails with AlreadyExists for a taken id.
func (s *Store) Put(ctx context.Context, rec store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	doc := document{ID: rec.ID, Data: string(rec.Data), CreatedAt: time.Now().UTC()}
	_, err := s.client.Collection(s.collection).Doc(rec.ID).Create(ctx, doc)
	if status.Code(err) == codes.AlreadyExists {
		return store.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to save to Firestore: %w", err)
	}
	return nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, id string) (store.Record, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to read from Firestore: %w", err)
	}
	var doc document
	if err := snap.DataTo(&doc); err != nil {
		return store.Record{}, fmt.Errorf("failed to decode Firestore document: %w", err)
	}
	if doc.Data == "" {
		return store.Record{}, store.ErrNotFound
	}
	return store.Record{ID: id, Data: []byte(doc.Data)}, nil
}

// Exists implements store.Store.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read from Firestore: %w", err)
	}
	return true, nil
}
