package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
)

func TestChecklistKey(t *testing.T) {
	assert.Equal(t, "brief_checklist_state", ChecklistKey(""))
	assert.Equal(t, "brief_abc123", ChecklistKey("abc123"))
}

func TestItemIDs(t *testing.T) {
	items := ItemIDs(brieftest.Result())
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{
		"0-direct-0", "0-direct-1",
		"1-sub0-0", "1-sub0-1", "1-sub1-0",
		"2-direct-0",
	}, ids)
	assert.Equal(t, "ロゴデータの有無", items[2].Text)
}

func TestChecklist_ToggleTwiceRestores(t *testing.T) {
	starts := []Checklist{
		NewChecklist(),
		NewChecklist("0-direct-0"),
		NewChecklist("0-direct-0", "1-sub0-1"),
	}
	for _, start := range starts {
		for _, item := range ItemIDs(brieftest.Result()) {
			once := start.Toggle(item.ID)
			assert.NotEqual(t, start.Has(item.ID), once.Has(item.ID))
			twice := once.Toggle(item.ID)
			assert.Equal(t, start.IDs(), twice.IDs())
		}
	}
}

func TestChecklist_ToggleDoesNotMutate(t *testing.T) {
	c := NewChecklist("a")
	_ = c.Toggle("a")
	_ = c.Toggle("b")
	assert.Equal(t, []string{"a"}, c.IDs())
}

func TestChecklists_ScopedPersistence(t *testing.T) {
	store := NewChecklists(NewMemoryCache())

	got, err := store.Toggle("abc123", "0-direct-0")
	require.NoError(t, err)
	assert.True(t, got.Has("0-direct-0"))

	local, err := store.Load("")
	require.NoError(t, err)
	assert.Empty(t, local.IDs(), "shared brief state must not leak into the local checklist")

	other, err := store.Load("zzz999")
	require.NoError(t, err)
	assert.Empty(t, other.IDs())

	got, err = store.Toggle("abc123", "0-direct-0")
	require.NoError(t, err)
	assert.False(t, got.Has("0-direct-0"))

	reloaded, err := store.Load("abc123")
	require.NoError(t, err)
	assert.Empty(t, reloaded.IDs())
}
