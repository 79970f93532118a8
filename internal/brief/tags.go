package brief

// Option catalogues offered by the form as selects and tag toggles.
var (
	DeliverableTypes = []string{
		"Webサイト", "LP", "バナー", "バナー大量制作", "アプリUI",
		"プレゼン資料", "ロゴ", "SNS画像（Instagram/X）", "印刷物（パンフ・チラシ）", "採用資料", OtherDeliverable,
	}

	TargetTags = []string{
		"一般消費者", "BtoB", "経営層", "20代〜30代", "40代以上",
		"既存顧客", "新規顧客", "学生", "採用候補者", "女性向け", "男性向け",
	}

	ChannelOptions = []string{
		"広告（Google / Meta）", "SEO", "SNS（Instagram/X/TikTok）",
		"メール / メルマガ", "比較サイト", "イベント", "オフライン（紙媒体）",
	}

	ToneTags = []string{
		"シンプル", "ミニマル", "上品", "親しみ",
		"テック", "コーポレート", "ラグジュアリー",
		"女性向け", "男性向け", "カジュアル", "モダン",
	}
)

// ToggleTag returns a copy of tags with tag removed if present and appended
// otherwise. The input slice is never modified, so toggling the same tag
// twice yields the original membership.
func ToggleTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags)+1)
	found := false
	for _, t := range tags {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}

// HasTag reports whether tag is in tags.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
