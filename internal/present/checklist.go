package present

import (
	"fmt"
	"sort"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

// LocalChecklistKey scopes checklist state of the unsaved local result.
const LocalChecklistKey = "brief_checklist_state"

// ChecklistKey returns the cache key for the checklist of a shared brief, or
// LocalChecklistKey when id is empty.
func ChecklistKey(id string) string {
	if id == "" {
		return LocalChecklistKey
	}
	return "brief_" + id
}

// DirectItemID identifies items[item] of actions[group].
func DirectItemID(group, item int) string {
	return fmt.Sprintf("%d-direct-%d", group, item)
}

// SubItemID identifies subsections[sub].items[item] of actions[group].
func SubItemID(group, sub, item int) string {
	return fmt.Sprintf("%d-sub%d-%d", group, sub, item)
}

// ChecklistItem is one checkable action item with its id.
type ChecklistItem struct {
	ID   string
	Text string
}

// ItemIDs lists every checklist item of result in display order.
func ItemIDs(result brief.Result) []ChecklistItem {
	var out []ChecklistItem
	for g, group := range result.Actions {
		for i, text := range group.Items {
			out = append(out, ChecklistItem{ID: DirectItemID(g, i), Text: text})
		}
		for s, sub := range group.Subsections {
			for i, text := range sub.Items {
				out = append(out, ChecklistItem{ID: SubItemID(g, s, i), Text: text})
			}
		}
	}
	return out
}

// Checklist is the set of checked item ids.
type Checklist map[string]struct{}

// NewChecklist returns a checklist containing ids.
func NewChecklist(ids ...string) Checklist {
	c := make(Checklist, len(ids))
	for _, id := range ids {
		c[id] = struct{}{}
	}
	return c
}

// Has reports whether id is checked.
func (c Checklist) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// Toggle returns a new checklist with id flipped. c is not modified.
func (c Checklist) Toggle(id string) Checklist {
	out := make(Checklist, len(c)+1)
	for k := range c {
		out[k] = struct{}{}
	}
	if _, ok := out[id]; ok {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the checked ids sorted.
func (c Checklist) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Checklists persists checklist state per brief scope.
type Checklists struct {
	cache Cache
}

// NewChecklists returns Checklists stored in c.
func NewChecklists(c Cache) *Checklists {
	return &Checklists{cache: c}
}

// Load returns the checklist for the brief id ("" for the local result).
// A missing entry is an empty checklist.
func (s *Checklists) Load(id string) (Checklist, error) {
	var ids []string
	if _, err := GetJSON(s.cache, ChecklistKey(id), &ids); err != nil {
		return nil, err
	}
	return NewChecklist(ids...), nil
}

// Toggle flips item in the checklist of brief id and saves the result.
func (s *Checklists) Toggle(id, item string) (Checklist, error) {
	current, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	next := current.Toggle(item)
	if err := SetJSON(s.cache, ChecklistKey(id), next.IDs()); err != nil {
		return nil, err
	}
	return next, nil
}
