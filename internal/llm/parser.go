package llm

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

// ParseBriefResult normalizes raw generation output into a brief.Result.
// The text must be a single JSON object of the exact result shape; there is
// no code-fence stripping and no repair of partial objects. Every failure
// wraps ErrInvalidFormat.
func ParseBriefResult(raw string) (brief.Result, error) {
	if raw == "" {
		return brief.Result{}, wrapInvalid(ErrEmptyResponse)
	}

	result, err := brief.DecodeResult([]byte(raw))
	if err != nil {
		// Log the size only, never the text.
		log.Error().Err(err).Int("response_bytes", len(raw)).Msg("Generation response failed validation")
		return brief.Result{}, wrapInvalid(err)
	}
	return result, nil
}

func wrapInvalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
}
