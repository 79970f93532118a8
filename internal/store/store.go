// Package store defines the write-once record store used for shared briefs.
package store

import (
	"context"
	"encoding/json"
)

// DefaultTable is the table or collection records are kept in.
const DefaultTable = "design-brief"

// Record is one persisted brief. Data is opaque to the store.
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Validate reports ErrInvalidRecord for an empty id or empty data.
func (r Record) Validate() error {
	if r.ID == "" || len(r.Data) == 0 {
		return ErrInvalidRecord
	}
	return nil
}

// Store is a key-value record store. There is no update, delete or list:
// a record is written once and read any number of times.
type Store interface {
	// Put writes rec. It returns ErrAlreadyExists if rec.ID is taken.
	Put(ctx context.Context, rec Record) error
	// Get returns the record for id or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)
	// Exists reports whether a record for id has been written.
	Exists(ctx context.Context, id string) (bool, error)
}

// Driver names.
const (
	DriverSupabase  = "supabase"
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)
