package store

import (
	"bytes"
	"context"
	"sync"
)

// Memory is an in-process Store for tests and local development. Records
// are lost when the process exits.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; ok {
		return ErrAlreadyExists
	}
	m.records[rec.ID] = bytes.Clone(rec.Data)
	return nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, Data: bytes.Clone(data)}, nil
}

// Exists implements Store.
func (m *Memory) Exists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[id]
	return ok, nil
}
