// Package storetest holds the behaviour every store.Store must share.
package storetest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
	"github.com/hayato-coosy/kouseian/internal/store"
)

// Run exercises a Store built fresh by newStore for every subtest.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()
	ctx := context.Background()
	data := json.RawMessage(brieftest.ResultJSON())

	t.Run("Put_Then_Get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, store.Record{ID: "abc123", Data: data}))

		got, err := s.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "abc123", got.ID)
		assert.JSONEq(t, string(data), string(got.Data))
	})

	t.Run("Put_Duplicate", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, store.Record{ID: "dup001", Data: data}))

		err := s.Put(ctx, store.Record{ID: "dup001", Data: json.RawMessage(`{"other":true}`)})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrAlreadyExists)

		got, err := s.Get(ctx, "dup001")
		require.NoError(t, err)
		assert.JSONEq(t, string(data), string(got.Data), "first write must be kept")
	})

	t.Run("Get_Unknown", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "zzzzzz")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Exists", func(t *testing.T) {
		s := newStore(t)
		ok, err := s.Exists(ctx, "ex0001")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Put(ctx, store.Record{ID: "ex0001", Data: data}))
		ok, err = s.Exists(ctx, "ex0001")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Put_Invalid", func(t *testing.T) {
		s := newStore(t)
		assert.ErrorIs(t, s.Put(ctx, store.Record{Data: data}), store.ErrInvalidRecord)
		assert.ErrorIs(t, s.Put(ctx, store.Record{ID: "empty1"}), store.ErrInvalidRecord)
	})
}
