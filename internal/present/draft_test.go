package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
)

func TestDrafts(t *testing.T) {
	d := NewDrafts(NewMemoryCache())

	_, ok, err := d.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	want := brieftest.Request()
	require.NoError(t, d.Save(want))

	got, ok, err := d.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	next := want
	next.Title = "更新後"
	require.NoError(t, d.Save(next))
	got, _, err = d.Load()
	require.NoError(t, err)
	assert.Equal(t, "更新後", got.Title)

	require.NoError(t, d.Clear())
	_, ok, err = d.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}
