package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
	"github.com/hayato-coosy/kouseian/internal/present"
)

func TestChecklistScope(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		resultFile string
		extra      int
		want       string
		wantErr    string
	}{
		{name: "ListShared", args: []string{"abc123"}, want: "abc123"},
		{name: "ListLocal", resultFile: "result.json"},
		{name: "ToggleShared", args: []string{"abc123", "0-direct-0"}, extra: 1, want: "abc123"},
		{name: "ToggleLocal", args: []string{"0-direct-0"}, resultFile: "result.json", extra: 1},
		{name: "BothGiven", args: []string{"abc123"}, resultFile: "result.json", wantErr: "cannot be combined"},
		{name: "NeitherGiven", wantErr: "a share id or --result-file is required"},
		{name: "ToggleMissingID", args: []string{"0-direct-0"}, extra: 1, wantErr: "a share id or --result-file is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checklistScope(tt.args, tt.resultFile, tt.extra)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecklistListRun(t *testing.T) {
	lists := new(MockChecklistStore)
	var out bytes.Buffer
	lists.On("Load", "abc123").Return(present.NewChecklist("0-direct-1", "1-sub0-0"), nil)

	err := checklistListRun(lists, "abc123", brieftest.Result(), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "[ ] 0-direct-0     ワイヤーフレーム作成", lines[0])
	assert.Equal(t, "[x] 0-direct-1     素材の手配", lines[1])
	assert.Equal(t, "[x] 1-sub0-0       ロゴデータの有無", lines[2])
	assert.Equal(t, "[ ] 2-direct-0     スケジュールが短い", lines[5])
	assert.Equal(t, "2/6 done", lines[6])
	lists.AssertExpectations(t)
}

func TestChecklistListRun_LoadError(t *testing.T) {
	lists := new(MockChecklistStore)
	expectedErr := errors.New("corrupt state")
	lists.On("Load", "").Return(nil, expectedErr)

	err := checklistListRun(lists, "", brieftest.Result(), &bytes.Buffer{})

	assert.ErrorIs(t, err, expectedErr)
}

func TestChecklistToggleRun(t *testing.T) {
	t.Run("Checked", func(t *testing.T) {
		lists := new(MockChecklistStore)
		var out bytes.Buffer
		lists.On("Toggle", "abc123", "1-sub1-0").Return(present.NewChecklist("1-sub1-0"), nil)

		err := checklistToggleRun(lists, "abc123", brieftest.Result(), "1-sub1-0", &out)

		require.NoError(t, err)
		assert.Equal(t, "[x] 1-sub1-0       担当デザイナー\n", out.String())
		lists.AssertExpectations(t)
	})

	t.Run("Unchecked", func(t *testing.T) {
		lists := new(MockChecklistStore)
		var out bytes.Buffer
		lists.On("Toggle", "", "0-direct-0").Return(present.NewChecklist(), nil)

		err := checklistToggleRun(lists, "", brieftest.Result(), "0-direct-0", &out)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(), "[ ] 0-direct-0"))
	})

	t.Run("UnknownItem", func(t *testing.T) {
		lists := new(MockChecklistStore)

		err := checklistToggleRun(lists, "abc123", brieftest.Result(), "9-direct-0", &bytes.Buffer{})

		assert.ErrorContains(t, err, `unknown checklist item "9-direct-0"`)
		lists.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything)
	})
}

// TestChecklistScopesAreSeparate toggles the same item for the local result
// and a shared brief over a file cache.
func TestChecklistScopesAreSeparate(t *testing.T) {
	lists := present.NewChecklists(present.NewFileCache(afero.NewMemMapFs(), "/cache"))
	result := brieftest.Result()

	require.NoError(t, checklistToggleRun(lists, "", result, "0-direct-0", &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, checklistListRun(lists, "abc123", result, &out))
	assert.Contains(t, out.String(), "0/6 done")

	out.Reset()
	require.NoError(t, checklistListRun(lists, "", result, &out))
	assert.Contains(t, out.String(), "1/6 done")
}

func TestLoadResult(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.json")
		require.NoError(t, os.WriteFile(path, brieftest.ResultJSON(), 0o600))

		result, err := loadResult(path, nil)

		require.NoError(t, err)
		assert.Equal(t, "春のキャンペーンLP", result.Summary.Title)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := loadResult("-", strings.NewReader(`{"summary":{}}`))

		assert.Error(t, err)
	})
}
