package present

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
)

func TestRenderer_Share(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	result := brieftest.Result()
	result.Details.Problem = "直帰率 **70%**<script>alert(1)</script>"

	var buf bytes.Buffer
	err = r.Render(&buf, PageShare, ShareView{
		ID:           "abc123",
		URL:          "https://example.com/s/abc123",
		Result:       result,
		ChecklistKey: ChecklistKey("abc123"),
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<title>春のキャンペーンLP | 構成案ジェネレーター</title>")
	assert.Contains(t, out, `data-checklist-key="brief_abc123"`)
	assert.Contains(t, out, "<strong>70%</strong>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `data-item-id="1-sub0-1"`)
	assert.Contains(t, out, `data-color="orange"`)
	assert.Contains(t, out, `href="https://example.com/s/abc123"`)
}

func TestRenderer_Pages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.RenderHTTP(rec, http.StatusNotFound, PageNotFound, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "ブリーフが見つかりません")

	rec = httptest.NewRecorder()
	require.NoError(t, r.RenderHTTP(rec, http.StatusOK, PageIndex, nil))
	assert.Contains(t, rec.Body.String(), "<title>構成案ジェネレーター</title>")

	rec = httptest.NewRecorder()
	assert.Error(t, r.RenderHTTP(rec, http.StatusOK, "missing.html", nil))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestRenderer_MarkdownSanitizes(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html := string(r.Markdown("[x](javascript:alert(1)) and <img src=x onerror=alert(1)>"))
	assert.NotContains(t, html, "javascript:")
	assert.NotContains(t, html, "onerror")
}
