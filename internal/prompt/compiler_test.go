package prompt

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
)

func minimalRequest() brief.Request {
	return brief.Request{
		Title:           "Spring LP",
		DeliverableType: "LP",
		Background:      "...",
		Problem:         "...",
		Goal:            "...",
		Elements:        "...",
	}
}

func newCompiler(t *testing.T) *Compiler {
	t.Helper()
	c, err := NewCompiler(SchemaV3Grouped)
	require.NoError(t, err)
	return c
}

func TestNewCompiler(t *testing.T) {
	t.Run("Default_Version", func(t *testing.T) {
		c, err := NewCompiler("")
		require.NoError(t, err)
		assert.Equal(t, SchemaV3Grouped, c.Version())
	})

	for _, v := range []SchemaVersion{SchemaV1Sections, SchemaV2Flat, SchemaV4FreeText, "v9"} {
		t.Run("Unsupported_"+string(v), func(t *testing.T) {
			_, err := NewCompiler(v)
			assert.ErrorIs(t, err, ErrUnsupportedSchema)
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	c := newCompiler(t)
	for _, req := range []brief.Request{minimalRequest(), brieftest.Request()} {
		first, err := c.Compile(req)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := c.Compile(req)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestCompile_Fallbacks(t *testing.T) {
	c := newCompiler(t)
	out, err := c.Compile(minimalRequest())
	require.NoError(t, err)

	expected := []string{
		"- **クライアント**: " + FallbackUndecided + "\n",
		"- **納期**: " + FallbackUndecided + "\n",
		"- **優先度**: " + FallbackUnspecified + "\n",
		"- **ターゲット**: " + FallbackUnspecified + "\n",
		"- **流入チャネル**: " + FallbackUnspecified + "\n",
		"- **ビジネスゴール(KPI)**: " + FallbackUnspecified + "\n",
		"- **キーワード**: " + FallbackUnspecified + "\n",
		"- **詳細イメージ**: " + FallbackNone + "\n",
		"- **参考URL**: " + FallbackNone + "\n",
		"- **NG例**: " + FallbackNone + "\n",
		"- **制約事項**: " + FallbackNone + "\n",
	}
	for _, e := range expected {
		assert.Contains(t, out, e)
	}

	emptyValue := regexp.MustCompile(`(?m)^\s*- (\*\*[^*]+\*\*|[^:\n]+):\s*$`)
	assert.False(t, emptyValue.MatchString(out), "prompt contains an empty substitution:\n%s", out)
	assert.NotContains(t, out, "undefined")
	assert.NotContains(t, out, "<nil>")
}

func TestCompile_BlankTagsFallBack(t *testing.T) {
	c := newCompiler(t)
	req := minimalRequest()
	req.ToneTags = []string{" ", ""}
	req.Channels = brief.StringList{""}

	out, err := c.Compile(req)
	require.NoError(t, err)
	assert.Contains(t, out, "- **キーワード**: "+FallbackUnspecified+"\n")
	assert.Contains(t, out, "- **流入チャネル**: "+FallbackUnspecified+"\n")
}

func TestCompile_Values(t *testing.T) {
	c := newCompiler(t)
	req := brieftest.Request()
	req.TargetUserText = "都内在住"
	req.BusinessGoalTags = []string{"CVR向上"}
	req.BusinessGoalText = "CVR 2%"
	req.LPPageCount = "5"
	req.RequestText = "春の新商品LPをお願いします"

	out, err := c.Compile(req)
	require.NoError(t, err)

	assert.Contains(t, out, "- **タイトル**: 春のキャンペーンLP\n")
	assert.Contains(t, out, "- **優先度**: 中\n")
	assert.Contains(t, out, "  - 想定ページ数: 5\n")
	assert.Contains(t, out, "- **ターゲット**: 20代〜30代, 新規顧客 / 都内在住\n")
	assert.Contains(t, out, "- **流入チャネル**: 広告（Google / Meta）, SEO\n")
	assert.Contains(t, out, "- **ビジネスゴール(KPI)**: CVR向上 / CVR 2%\n")
	assert.Contains(t, out, "- **キーワード**: シンプル, モダン\n")
	assert.Contains(t, out, "春の新商品LPをお願いします")
	assert.NotContains(t, out, "サイズ・枚数", "absent detail fields must not be emitted")
}

func TestCompile_OtherDeliverable(t *testing.T) {
	c := newCompiler(t)
	req := minimalRequest()
	req.DeliverableType = brief.OtherDeliverable
	req.DeliverableTypeOther = "動画サムネイル"

	out, err := c.Compile(req)
	require.NoError(t, err)
	assert.Contains(t, out, "- **成果物**: 動画サムネイル\n")
	assert.NotContains(t, out, "## 成果物別の注意点")
}

func TestCompile_InvalidRequest(t *testing.T) {
	c := newCompiler(t)
	req := minimalRequest()
	req.Elements = ""

	_, err := c.Compile(req)
	assert.ErrorIs(t, err, brief.ErrMissingRequiredFields)
}

func TestCompile_AppendsContract(t *testing.T) {
	c := newCompiler(t)
	out, err := c.Compile(minimalRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, outputContract))
	for _, key := range brief.SummaryKeys {
		assert.Contains(t, outputContract, `"`+key+`":`)
	}
	for _, s := range brief.DetailSections {
		assert.Contains(t, outputContract, `"`+s.Key+`":`)
	}
	for _, color := range []brief.Color{brief.ColorBlue, brief.ColorOrange, brief.ColorRed} {
		assert.Contains(t, outputContract, `"color": "`+string(color)+`"`)
	}
	assert.NotEmpty(t, c.SystemInstruction())
}

func TestGuidance(t *testing.T) {
	testCases := []struct {
		deliverable string
		want        []Fragment
	}{
		{"LP", []Fragment{FragmentLP}},
		{"バナー大量制作", []Fragment{FragmentBanner}},
		{"SNS画像（Instagram/X）", []Fragment{FragmentBanner, FragmentSNS}},
		{"ロゴ", nil},
		{"", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.deliverable, func(t *testing.T) {
			got := Guidance(tc.deliverable)
			require.Len(t, got, len(tc.want))
			for i, f := range tc.want {
				assert.Equal(t, fragmentText[f], got[i])
			}
		})
	}
}

func TestCompile_IncludesGuidance(t *testing.T) {
	c := newCompiler(t)
	out, err := c.Compile(minimalRequest())
	require.NoError(t, err)
	assert.Contains(t, out, fragmentText[FragmentLP])
	assert.NotContains(t, out, fragmentText[FragmentBanner])
}
