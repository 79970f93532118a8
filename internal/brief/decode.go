package brief

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for result decoding.
var (
	// ErrMalformedJSON indicates the input is not syntactically valid JSON.
	ErrMalformedJSON = errors.New("result is not valid JSON")

	// ErrMalformedResult indicates valid JSON that does not have the Result shape.
	// The failing path is appended to the message where this is returned.
	ErrMalformedResult = errors.New("result does not match the brief schema")
)

// DecodeResult parses data as a Result and checks its shape: every key the
// presentation dereferences must be present and non-null, arrays must be
// arrays, and every action color must be blue, orange or red. There is no
// repair step; a partially populated result is rejected as a whole.
func DecodeResult(data []byte) (Result, error) {
	if !json.Valid(data) {
		return Result{}, ErrMalformedJSON
	}
	if err := checkShape(data); err != nil {
		return Result{}, err
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMalformedResult, err)
	}
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	return r, nil
}

// Validate checks the invariants that survive decoding: non-nil arrays and
// the color enum. It does not look at key presence, which only DecodeResult
// can see.
func (r Result) Validate() error {
	if r.Actions == nil {
		return malformed("actions", "must be an array")
	}
	for i, a := range r.Actions {
		path := fmt.Sprintf("actions[%d]", i)
		if !a.Color.Valid() {
			return malformed(path+".color", "is not blue, orange or red")
		}
		if a.Items == nil {
			return malformed(path+".items", "must be an array")
		}
		for j, s := range a.Subsections {
			if s.Items == nil {
				return malformed(fmt.Sprintf("%s.subsections[%d].items", path, j), "must be an array")
			}
		}
	}
	return nil
}

func malformed(path, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrMalformedResult, path, reason)
}

func checkShape(data []byte) error {
	root, err := object(data, "$")
	if err != nil {
		return err
	}

	summary, err := requireObject(root, "summary", "summary")
	if err != nil {
		return err
	}
	if err := requireKeys(summary, "summary", SummaryKeys); err != nil {
		return err
	}

	details, err := requireObject(root, "details", "details")
	if err != nil {
		return err
	}
	keys := make([]string, len(DetailSections))
	for i, s := range DetailSections {
		keys[i] = s.Key
	}
	if err := requireKeys(details, "details", keys); err != nil {
		return err
	}

	actions, err := requireArray(root, "actions", "actions")
	if err != nil {
		return err
	}
	for i, raw := range actions {
		path := fmt.Sprintf("actions[%d]", i)
		group, err := object(raw, path)
		if err != nil {
			return err
		}
		if err := requireKeys(group, path, []string{"category", "label", "color"}); err != nil {
			return err
		}
		if err := requireStrings(group, "items", path+".items"); err != nil {
			return err
		}
		subs, ok := group["subsections"]
		if !ok || isNull(subs) {
			continue
		}
		var list []json.RawMessage
		if err := json.Unmarshal(subs, &list); err != nil {
			return malformed(path+".subsections", "must be an array")
		}
		for j, rawSub := range list {
			subPath := fmt.Sprintf("%s.subsections[%d]", path, j)
			sub, err := object(rawSub, subPath)
			if err != nil {
				return err
			}
			if err := requireKeys(sub, subPath, []string{"title"}); err != nil {
				return err
			}
			if err := requireStrings(sub, "items", subPath+".items"); err != nil {
				return err
			}
		}
	}
	return nil
}

func object(raw json.RawMessage, path string) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &m) != nil {
		return nil, malformed(path, "must be an object")
	}
	return m, nil
}

func requireObject(parent map[string]json.RawMessage, key, path string) (map[string]json.RawMessage, error) {
	raw, ok := parent[key]
	if !ok {
		return nil, malformed(path, "is missing")
	}
	return object(raw, path)
}

func requireArray(parent map[string]json.RawMessage, key, path string) ([]json.RawMessage, error) {
	raw, ok := parent[key]
	if !ok || isNull(raw) {
		return nil, malformed(path, "is missing")
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, malformed(path, "must be an array")
	}
	return list, nil
}

// requireStrings checks that parent[key] is an array of strings. Null
// elements are rejected rather than decoded as "".
func requireStrings(parent map[string]json.RawMessage, key, path string) error {
	list, err := requireArray(parent, key, path)
	if err != nil {
		return err
	}
	for k, raw := range list {
		var s string
		if isNull(raw) || json.Unmarshal(raw, &s) != nil {
			return malformed(fmt.Sprintf("%s[%d]", path, k), "must be a string")
		}
	}
	return nil
}

func requireKeys(obj map[string]json.RawMessage, path string, keys []string) error {
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok || isNull(raw) {
			return malformed(path+"."+k, "is missing")
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
