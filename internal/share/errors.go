package share

import "errors"

// Sentinel errors for share links.

// ErrNotFound indicates a share id that does not resolve to a brief. Store
// failures are reported the same way so callers cannot tell them apart.
var ErrNotFound = errors.New("shared brief not found")

// ErrIDExhausted indicates every generated id collided with an existing record.
var ErrIDExhausted = errors.New("could not allocate a free share id")

// ErrStoreNil indicates the service was built without a store.
var ErrStoreNil = errors.New("share store cannot be nil")
