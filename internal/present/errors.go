package present

import "errors"

// ErrInvalidKey indicates a cache key outside [a-z0-9_].
var ErrInvalidKey = errors.New("invalid cache key")

// ErrCacheDecode indicates a cached value could not be decoded. The stored
// value is left in place.
var ErrCacheDecode = errors.New("failed to decode cached value")
