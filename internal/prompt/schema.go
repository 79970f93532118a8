package prompt

const systemInstruction = "あなたはデザイン制作の要件定義を専門とするクリエイティブディレクターです。" +
	"出力は指定されたJSONオブジェクトのみとし、前後に説明文やコードフェンスを付けないでください。" +
	"すべてのキーを必ず含め、情報がない項目は空文字列ではなく「なし」と記載してください。"

// outputContract is the result schema appended to every prompt. It mirrors
// brief.Result and must change together with it.
const outputContract = `## 出力形式（JSON）
以下の構造のJSONオブジェクトのみを出力してください。すべてのキーは必須です。
details の各値と items の各要素はMarkdown形式の文字列です。
actions[].color は "blue"（次のアクション）、"orange"（確認事項）、"red"（リスク）のいずれかです。
subsections は項目をグループ化する場合のみ含め、含める場合は title と items を必ず持たせてください。

{
  "summary": {
    "title": "案件タイトル",
    "client": "クライアント名",
    "type": "成果物の種類",
    "deadline": "納期",
    "overview": "案件の概要（2〜3文）"
  },
  "details": {
    "background": "背景・目的",
    "problem": "現状の課題",
    "goal": "ゴール",
    "elements": "必須要素",
    "target": "ターゲット",
    "channel": "流入チャネル",
    "kpi": "ビジネスゴール / KPI",
    "tone": "トーン＆マナー",
    "references": "参考情報",
    "ng_examples": "NG項目",
    "constraints": "制約事項"
  },
  "actions": [
    {
      "category": "next",
      "label": "次のアクション",
      "color": "blue",
      "items": ["..."]
    },
    {
      "category": "questions",
      "label": "確認事項",
      "color": "orange",
      "items": [],
      "subsections": [
        { "title": "クライアントへの確認", "items": ["..."] },
        { "title": "社内での確認", "items": ["..."] }
      ]
    },
    {
      "category": "risks",
      "label": "リスク",
      "color": "red",
      "items": ["..."]
    }
  ]
}

## 執筆のポイント
- デザイナーが迷わず作業に入れるよう、具体的かつ論理的に記述すること。
- 元の情報が不足している場合は、確認事項として補完するか、仮説を立てて提案すること。
`
