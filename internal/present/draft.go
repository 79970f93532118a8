package present

import (
	"github.com/hayato-coosy/kouseian/internal/brief"
)

// DraftKey is the cache key of the saved form draft.
const DraftKey = "brief_draft"

// Drafts saves and restores the in-progress form.
type Drafts struct {
	cache Cache
}

// NewDrafts returns Drafts stored in c.
func NewDrafts(c Cache) *Drafts {
	return &Drafts{cache: c}
}

// Save stores a full snapshot of req, replacing any earlier draft.
func (d *Drafts) Save(req brief.Request) error {
	return SetJSON(d.cache, DraftKey, req)
}

// Load returns the saved draft and whether one exists.
func (d *Drafts) Load() (brief.Request, bool, error) {
	var req brief.Request
	ok, err := GetJSON(d.cache, DraftKey, &req)
	if err != nil || !ok {
		return brief.Request{}, false, err
	}
	return req, true, nil
}

// Clear removes the draft. Call it only after a successful generation so a
// failed submission can be retried from the draft.
func (d *Drafts) Clear() error {
	return d.cache.Remove(DraftKey)
}
