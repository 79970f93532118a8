package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
	"github.com/hayato-coosy/kouseian/internal/share"
)

func TestResolveRun(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		shares := new(MockShareService)
		var out bytes.Buffer
		shares.On("Resolve", context.Background(), "abc123").Return(brieftest.Result(), nil)

		err := resolveRun(context.Background(), shares, "abc123", formatJSON, &out)
		require.NoError(t, err)

		var got brief.Result
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "春のキャンペーンLP", got.Summary.Title)
		assert.Len(t, got.Actions, 3)
		shares.AssertExpectations(t)
	})

	t.Run("Markdown", func(t *testing.T) {
		shares := new(MockShareService)
		var out bytes.Buffer
		shares.On("Resolve", context.Background(), "abc123").Return(brieftest.Result(), nil)

		err := resolveRun(context.Background(), shares, "abc123", formatMarkdown, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "## ネクストアクション")
		assert.NotContains(t, out.String(), "共有リンク")
	})

	t.Run("NotFound", func(t *testing.T) {
		shares := new(MockShareService)
		var out bytes.Buffer
		shares.On("Resolve", context.Background(), "zzzzzz").Return(brief.Result{}, share.ErrNotFound)

		err := resolveRun(context.Background(), shares, "zzzzzz", formatJSON, &out)

		assert.ErrorIs(t, err, share.ErrNotFound)
		assert.Contains(t, err.Error(), `brief "zzzzzz" not found`)
		assert.Empty(t, out.String())
	})
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: formatJSON},
		{in: "json", want: formatJSON},
		{in: "Markdown", want: formatMarkdown},
		{in: "md", want: formatMarkdown},
		{in: "html", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
