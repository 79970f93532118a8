package llm

import "errors"

// Sentinel errors for generation and response parsing.

// ErrGeneratorNil indicates the pipeline was built without a generator.
var ErrGeneratorNil = errors.New("generator cannot be nil")

// ErrCompilerNil indicates the pipeline was built without a prompt compiler.
var ErrCompilerNil = errors.New("prompt compiler cannot be nil")

// ErrPromptEmpty indicates the prompt passed to a generator was empty.
var ErrPromptEmpty = errors.New("prompt cannot be empty")

// ErrMissingAPIKey indicates a provider client was requested without an API key.
var ErrMissingAPIKey = errors.New("generation API key is not configured")

// ErrUnknownProvider indicates the configured provider name is not supported.
var ErrUnknownProvider = errors.New("unknown generation provider")

// ErrUpstreamUnavailable indicates the generation service call itself failed
// (network error, non-2xx status, timeout). The SDK error is wrapped.
var ErrUpstreamUnavailable = errors.New("generation service unavailable")

// ErrInvalidFormat indicates the generation service answered but its text is
// not a well-shaped brief. The decoding error is wrapped.
var ErrInvalidFormat = errors.New("generation response has an invalid format")

// ErrEmptyResponse indicates the service returned no usable content. It is
// always wrapped together with ErrInvalidFormat.
var ErrEmptyResponse = errors.New("received an empty response from the generation service")

// Log codes attached to generation failures.
const (
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeInvalidFormat       = "invalid_format"
)

// ErrorCode classifies err into one of the log codes, or "" when it is
// neither an upstream nor a format failure.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return CodeInvalidFormat
	case errors.Is(err, ErrUpstreamUnavailable):
		return CodeUpstreamUnavailable
	}
	return ""
}
