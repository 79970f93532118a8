// Package brieftest provides fixed brief values for tests in other packages.
package brieftest

import (
	"encoding/json"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

// Request returns a request that passes validation.
func Request() brief.Request {
	return brief.Request{
		Title:           "春のキャンペーンLP",
		ClientName:      "株式会社サンプル",
		DeliverableType: "LP",
		DueDate:         "2025-04-30",
		Priority:        brief.PriorityMedium,
		Background:      "新商品の発売に合わせて認知を広げたい",
		Problem:         "既存LPの直帰率が高い",
		Goal:            "申込数を月100件にする",
		Elements:        "ファーストビュー、料金表、FAQ",
		TargetUserTags:  []string{"20代〜30代", "新規顧客"},
		Channels:        brief.StringList{"広告（Google / Meta）", "SEO"},
		ToneTags:        []string{"シンプル", "モダン"},
	}
}

// Result returns a fully populated result. Every call returns a fresh value.
func Result() brief.Result {
	return brief.Result{
		Summary: brief.Summary{
			Title:    "春のキャンペーンLP",
			Client:   "株式会社サンプル",
			Type:     "LP",
			Deadline: "2025-04-30",
			Overview: "新商品の認知拡大と申込獲得を目的としたLP制作。",
		},
		Details: brief.Details{
			Background:  "- 新商品の発売\n- 認知拡大",
			Problem:     "既存LPの**直帰率**が高い",
			Goal:        "申込数 月100件",
			Elements:    "1. ファーストビュー\n2. 料金表\n3. FAQ",
			Target:      "20代〜30代の新規顧客",
			Channel:     "広告（Google / Meta）、SEO",
			KPI:         "CVR 2%",
			Tone:        "シンプル、モダン",
			References:  "なし",
			NGExamples:  "なし",
			Constraints: "",
		},
		Actions: []brief.ActionGroup{
			{
				Category: "next",
				Label:    "次のアクション",
				Color:    brief.ColorBlue,
				Items:    []string{"ワイヤーフレーム作成", "素材の手配"},
			},
			{
				Category: "questions",
				Label:    "確認事項",
				Color:    brief.ColorOrange,
				Items:    []string{},
				Subsections: []brief.Subsection{
					{Title: "クライアント確認", Items: []string{"ロゴデータの有無", "公開日"}},
					{Title: "社内確認", Items: []string{"担当デザイナー"}},
				},
			},
			{
				Category: "risks",
				Label:    "リスク",
				Color:    brief.ColorRed,
				Items:    []string{"スケジュールが短い"},
			},
		},
	}
}

// ResultJSON returns Result marshaled as JSON.
func ResultJSON() []byte {
	data, err := json.Marshal(Result())
	if err != nil {
		panic(err)
	}
	return data
}
