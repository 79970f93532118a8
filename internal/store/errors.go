package store

import "errors"

// Sentinel errors shared by every Store implementation.

// ErrNotFound indicates no record exists for the requested id.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a record with the same id was already written.
// Records are write-once, so callers pick a new id instead of retrying.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidRecord indicates a record with an empty id or empty data.
var ErrInvalidRecord = errors.New("record must have an id and data")

// ErrUnknownDriver indicates the configured store driver is not supported.
var ErrUnknownDriver = errors.New("unknown store driver")
