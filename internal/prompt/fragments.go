package prompt

// Fragment names an instruction block appended for specific deliverables.
type Fragment string

const (
	FragmentLP           Fragment = "lp"
	FragmentBanner       Fragment = "banner"
	FragmentAppUI        Fragment = "app_ui"
	FragmentWebsite      Fragment = "website"
	FragmentPresentation Fragment = "presentation"
	FragmentSNS          Fragment = "sns"
)

// fragmentOrder fixes the concatenation order of fragments.
var fragmentOrder = []Fragment{
	FragmentLP,
	FragmentBanner,
	FragmentAppUI,
	FragmentWebsite,
	FragmentPresentation,
	FragmentSNS,
}

var fragmentText = map[Fragment]string{
	FragmentLP: "- LP: ファーストビューで伝える価値、CTAの配置と回数、スクロールに沿った情報の順序を明記すること。\n" +
		"- LP: 想定ページ数が指定されている場合は、各セクションの役割を一覧にすること。",
	FragmentBanner: "- バナー: サイズ・枚数ごとの仕様と、テキスト量の上限、訴求軸を整理すること。\n" +
		"- バナー: 複数パターンを作る場合は、パターン間で変える要素と固定する要素を分けること。",
	FragmentAppUI:        "- アプリUI: 対応OSごとのガイドライン差分、主要画面と画面遷移、操作状態（空・読み込み中・エラー）を挙げること。",
	FragmentWebsite:      "- Webサイト: サイトマップ、ページごとの目的、更新運用の担当を確認事項に含めること。",
	FragmentPresentation: "- プレゼン資料: 想定する発表シーンと聞き手、1スライド1メッセージの構成案を示すこと。",
	FragmentSNS:          "- SNS画像: 投稿フォーマット（フィード・ストーリーズ等）ごとの比率と、タイムラインで目を止める工夫を示すこと。",
}

// deliverableFragments maps a deliverable type to the fragments it triggers.
var deliverableFragments = map[string][]Fragment{
	"LP":                 {FragmentLP},
	"Webサイト":             {FragmentWebsite},
	"バナー":                {FragmentBanner},
	"バナー大量制作":            {FragmentBanner},
	"アプリUI":              {FragmentAppUI},
	"プレゼン資料":             {FragmentPresentation},
	"SNS画像（Instagram/X）": {FragmentBanner, FragmentSNS},
}

// Guidance returns the instruction fragments for deliverable in fixed order.
// Deliverables without guidance yield nil.
func Guidance(deliverable string) []string {
	wanted := deliverableFragments[deliverable]
	if len(wanted) == 0 {
		return nil
	}
	var out []string
	for _, f := range fragmentOrder {
		for _, w := range wanted {
			if w == f {
				out = append(out, fragmentText[f])
				break
			}
		}
	}
	return out
}
