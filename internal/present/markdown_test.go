package present

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayato-coosy/kouseian/internal/brief/brieftest"
)

func TestMarkdown(t *testing.T) {
	md := Markdown(brieftest.Result())

	assert.True(t, strings.HasPrefix(md, "# 春のキャンペーンLP\n"))
	assert.Contains(t, md, "- **クライアント**: 株式会社サンプル\n")
	assert.Contains(t, md, "### 背景・目的 (Why)\n- 新商品の発売\n- 認知拡大\n")
	assert.Contains(t, md, "### 次のアクション\n- [ ] ワイヤーフレーム作成\n- [ ] 素材の手配\n")
	assert.Contains(t, md, "#### クライアント確認\n- [ ] ロゴデータの有無\n")
	assert.True(t, strings.HasSuffix(md, "- [ ] スケジュールが短い\n"))

	assert.Less(t, strings.Index(md, "背景・目的"), strings.Index(md, "制約事項"), "sections keep display order")
}
