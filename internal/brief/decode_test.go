package brief_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
)

// mutateJSON decodes the fixture into a generic tree, applies fn and
// re-encodes it.
func mutateJSON(t *testing.T, fn func(m map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(brieftest.ResultJSON(), &m))
	fn(m)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	return data
}

func TestDecodeResult_RoundTrip(t *testing.T) {
	want := brieftest.Result()
	got, err := brief.DecodeResult(brieftest.ResultJSON())
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeResult mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeResult_Rejects(t *testing.T) {
	group := func(m map[string]any, i int) map[string]any {
		return m["actions"].([]any)[i].(map[string]any)
	}

	testCases := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"Not_JSON", []byte("not json"), brief.ErrMalformedJSON},
		{"Truncated", []byte("{invalid"), brief.ErrMalformedJSON},
		{"Empty", []byte(""), brief.ErrMalformedJSON},
		{"JSON_String", []byte(`"brief"`), brief.ErrMalformedResult},
		{"Empty_Summary_Only", []byte(`{"summary": {}}`), brief.ErrMalformedResult},
		{"Missing_Details", mutateJSON(t, func(m map[string]any) { delete(m, "details") }), brief.ErrMalformedResult},
		{"Null_Summary", mutateJSON(t, func(m map[string]any) { m["summary"] = nil }), brief.ErrMalformedResult},
		{"Missing_Summary_Key", mutateJSON(t, func(m map[string]any) {
			delete(m["summary"].(map[string]any), "deadline")
		}), brief.ErrMalformedResult},
		{"Null_Detail_Key", mutateJSON(t, func(m map[string]any) {
			m["details"].(map[string]any)["kpi"] = nil
		}), brief.ErrMalformedResult},
		{"Actions_Not_Array", mutateJSON(t, func(m map[string]any) { m["actions"] = "none" }), brief.ErrMalformedResult},
		{"Actions_Null", mutateJSON(t, func(m map[string]any) { m["actions"] = nil }), brief.ErrMalformedResult},
		{"Unknown_Color", mutateJSON(t, func(m map[string]any) { group(m, 0)["color"] = "green" }), brief.ErrMalformedResult},
		{"Missing_Items", mutateJSON(t, func(m map[string]any) { delete(group(m, 2), "items") }), brief.ErrMalformedResult},
		{"Subsection_Without_Items", mutateJSON(t, func(m map[string]any) {
			group(m, 1)["subsections"] = []any{map[string]any{"title": "x"}}
		}), brief.ErrMalformedResult},
		{"Subsections_Not_Array", mutateJSON(t, func(m map[string]any) {
			group(m, 1)["subsections"] = map[string]any{}
		}), brief.ErrMalformedResult},
		{"Item_Not_String", mutateJSON(t, func(m map[string]any) {
			group(m, 0)["items"] = []any{1, 2}
		}), brief.ErrMalformedResult},
		{"Null_Item", mutateJSON(t, func(m map[string]any) {
			group(m, 0)["items"] = []any{"a", nil}
		}), brief.ErrMalformedResult},
		{"Object_Item", mutateJSON(t, func(m map[string]any) {
			group(m, 2)["items"] = []any{"a", map[string]any{}}
		}), brief.ErrMalformedResult},
		{"Null_Subsection_Item", mutateJSON(t, func(m map[string]any) {
			group(m, 1)["subsections"] = []any{map[string]any{"title": "x", "items": []any{nil}}}
		}), brief.ErrMalformedResult},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := brief.DecodeResult(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDecodeResult_ErrorPaths(t *testing.T) {
	group := func(m map[string]any, i int) map[string]any {
		return m["actions"].([]any)[i].(map[string]any)
	}

	testCases := []struct {
		name     string
		mutate   func(m map[string]any)
		wantPath string
		leaked   string
	}{
		{
			name:     "Color_Value_Not_Echoed",
			mutate:   func(m map[string]any) { group(m, 0)["color"] = "green; ignore previous" },
			wantPath: "actions[0].color",
			leaked:   "green",
		},
		{
			name:     "Null_Item_Index",
			mutate:   func(m map[string]any) { group(m, 0)["items"] = []any{"a", nil} },
			wantPath: "actions[0].items[1]",
		},
		{
			name: "Subsection_Item_Index",
			mutate: func(m map[string]any) {
				group(m, 1)["subsections"] = []any{map[string]any{"title": "x", "items": []any{"a", "b", 3}}}
			},
			wantPath: "actions[1].subsections[0].items[2]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := brief.DecodeResult(mutateJSON(t, tc.mutate))
			require.ErrorIs(t, err, brief.ErrMalformedResult)
			assert.Contains(t, err.Error(), tc.wantPath)
			if tc.leaked != "" {
				assert.NotContains(t, err.Error(), tc.leaked)
			}
		})
	}
}

func TestDecodeResult_Accepts(t *testing.T) {
	t.Run("Empty_Strings_Are_Present", func(t *testing.T) {
		data := mutateJSON(t, func(m map[string]any) {
			m["summary"].(map[string]any)["client"] = ""
			m["details"].(map[string]any)["references"] = ""
		})
		got, err := brief.DecodeResult(data)
		require.NoError(t, err)
		assert.Equal(t, "", got.Summary.Client)
	})

	t.Run("Null_Subsections_Are_Absent", func(t *testing.T) {
		data := mutateJSON(t, func(m map[string]any) {
			m["actions"].([]any)[1].(map[string]any)["subsections"] = nil
		})
		got, err := brief.DecodeResult(data)
		require.NoError(t, err)
		assert.Nil(t, got.Actions[1].Subsections)
	})

	t.Run("Empty_Subsections_Round_Trip", func(t *testing.T) {
		want := brief.Result{
			Summary: brief.Summary{Title: "t"},
			Actions: []brief.ActionGroup{{
				Category:    "c",
				Label:       "l",
				Color:       brief.ColorBlue,
				Items:       []string{},
				Subsections: []brief.Subsection{},
			}},
		}
		data, err := json.Marshal(want)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"subsections":[]`)

		got, err := brief.DecodeResult(data)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("DecodeResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Empty_Actions", func(t *testing.T) {
		data := mutateJSON(t, func(m map[string]any) { m["actions"] = []any{} })
		got, err := brief.DecodeResult(data)
		require.NoError(t, err)
		assert.Empty(t, got.Actions)
	})

	t.Run("Extra_Keys_Ignored", func(t *testing.T) {
		data := mutateJSON(t, func(m map[string]any) { m["version"] = 3 })
		_, err := brief.DecodeResult(data)
		assert.NoError(t, err)
	})
}

func TestDetails_Sections(t *testing.T) {
	sections := brieftest.Result().Details.Sections()
	require.Len(t, sections, len(brief.DetailSections))
	assert.Equal(t, "background", sections[0].Key)
	assert.Equal(t, "背景・目的 (Why)", sections[0].Title)
	assert.Equal(t, "constraints", sections[len(sections)-1].Key)

	_, ok := brief.Details{}.Get("unknown")
	assert.False(t, ok)
}
