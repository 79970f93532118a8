// Package share persists briefs under short random ids and resolves them.
package share

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/store"
)

const (
	// IDLength is the number of characters in a share id.
	IDLength = 6
	// Alphabet is the character set share ids are drawn from.
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// MaxAttempts bounds the number of ids tried before giving up.
	MaxAttempts = 5
)

var idPattern = regexp.MustCompile(`^[0-9a-z]{6}$`)

// ValidID reports whether id has the share id shape.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// IDFunc returns a new candidate id.
type IDFunc func() (string, error)

// NewID draws IDLength characters uniformly from Alphabet.
func NewID() (string, error) {
	base := big.NewInt(int64(len(Alphabet)))
	b := make([]byte, IDLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("failed to generate share id: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}

// Service creates and resolves share links.
type Service struct {
	store store.Store
	newID IDFunc
}

// Option configures a Service.
type Option func(*Service)

// WithIDFunc replaces the id generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService returns a Service backed by st.
func NewService(st store.Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, ErrStoreNil
	}
	s := &Service{store: st, newID: NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create persists result under a fresh id and returns the id. A collision
// with an existing record draws another id, up to MaxAttempts times.
func (s *Service) Create(ctx context.Context, result brief.Result) (string, error) {
	if err := result.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode brief: %w", err)
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		err = s.store.Put(ctx, store.Record{ID: id, Data: data})
		if err == nil {
			log.Info().Str("id", id).Int("attempt", attempt).Msg("Shared brief created")
			return id, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return "", fmt.Errorf("failed to store shared brief: %w", err)
		}
		log.Warn().Str("id", id).Int("attempt", attempt).Msg("Share id collision, retrying")
	}
	return "", ErrIDExhausted
}

// Resolve returns the brief stored under id. Absence, malformed ids, store
// errors and undecodable records all return ErrNotFound; the cause is logged.
func (s *Service) Resolve(ctx context.Context, id string) (brief.Result, error) {
	if !ValidID(id) {
		return brief.Result{}, ErrNotFound
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Str("id", id).Msg("Failed to read shared brief")
		}
		return brief.Result{}, ErrNotFound
	}
	result, err := brief.DecodeResult(rec.Data)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Stored brief is malformed")
		return brief.Result{}, ErrNotFound
	}
	return result, nil
}

// URL returns the share page URL for id under baseURL.
func URL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/s/" + id
}
