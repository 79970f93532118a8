package supabase

import "errors"

// Sentinel errors for Supabase REST operations.

// ErrURLMissing indicates the Supabase project URL is not configured.
var ErrURLMissing = errors.New("supabase URL is not configured")

// ErrURLParse indicates the Supabase project URL could not be parsed.
var ErrURLParse = errors.New("failed to parse supabase URL")

// ErrKeyMissing indicates the Supabase anon key is not configured.
var ErrKeyMissing = errors.New("supabase anon key is not configured")

// ErrRequestCreate indicates an error occurred while creating the HTTP request.
var ErrRequestCreate = errors.New("failed to create HTTP request")

// ErrRequestExecute indicates an error occurred while executing the HTTP request.
var ErrRequestExecute = errors.New("failed to execute HTTP request")

// ErrResponseDecode indicates an error occurred while decoding the response body.
var ErrResponseDecode = errors.New("failed to decode response body")

// ErrServerError indicates PostgREST returned a non-2xx status with an error
// message. The message is included where this is returned.
var ErrServerError = errors.New("supabase returned an error")

// ErrServerErrorUnparseable indicates PostgREST returned a non-2xx status
// whose body could not be parsed.
var ErrServerErrorUnparseable = errors.New("supabase returned an unparseable error")
