// Package prompt renders a brief request into the instruction document sent
// to the generation service.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

// SchemaVersion identifies an output contract the generation service is
// asked to follow.
type SchemaVersion string

const (
	// SchemaV1Sections asked for ten titled Markdown sections.
	SchemaV1Sections SchemaVersion = "v1-sections"
	// SchemaV2Flat asked for summary, details and actions with flat items.
	SchemaV2Flat SchemaVersion = "v2-flat"
	// SchemaV3Grouped asks for summary, details and actions whose groups may
	// carry titled subsections. It is the only version Compiler renders.
	SchemaV3Grouped SchemaVersion = "v3-grouped"
	// SchemaV4FreeText asked for a free-text brief plus missing points.
	SchemaV4FreeText SchemaVersion = "v4-free-text"
)

// DefaultVersion is the schema version used when none is configured.
const DefaultVersion = SchemaV3Grouped

// ErrUnsupportedSchema is returned when a compiler is requested for a version
// other than SchemaV3Grouped.
var ErrUnsupportedSchema = errors.New("unsupported prompt schema version")

// Fallback literals substituted for absent optional values.
const (
	FallbackUndecided   = "未定"
	FallbackUnspecified = "指定なし"
	FallbackNone        = "なし"
)

var priorityLabels = map[brief.Priority]string{
	brief.PriorityHigh:   "高",
	brief.PriorityMedium: "中",
	brief.PriorityLow:    "低",
}

// Compiler renders requests for a single schema version.
type Compiler struct {
	version SchemaVersion
}

// NewCompiler returns a compiler for version. An empty version selects
// DefaultVersion.
func NewCompiler(version SchemaVersion) (*Compiler, error) {
	if version == "" {
		version = DefaultVersion
	}
	if version != SchemaV3Grouped {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSchema, version)
	}
	return &Compiler{version: version}, nil
}

// Version returns the schema version the compiler renders.
func (c *Compiler) Version() SchemaVersion {
	return c.version
}

// SystemInstruction returns the system-level instruction sent alongside the
// prompt.
func (c *Compiler) SystemInstruction() string {
	return systemInstruction
}

// Compile renders req into prompt text. The output depends only on req and
// the compiler version. A request that fails validation is rejected.
func (c *Compiler) Compile(req brief.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString("あなたはプロフェッショナルなクリエイティブディレクターです。\n")
	b.WriteString("以下の依頼情報を元に、デザイナーやエンジニアに渡すためのデザインブリーフ（要件定義書）を作成してください。\n\n")

	deliverable := req.DeliverableLabel()

	b.WriteString("## 依頼情報\n")
	item(&b, "タイトル", req.Title, FallbackNone)
	item(&b, "クライアント", req.ClientName, FallbackUndecided)
	item(&b, "成果物", deliverable, FallbackNone)
	for _, d := range detailFields(req) {
		if v := strings.TrimSpace(d.value); v != "" {
			fmt.Fprintf(&b, "  - %s: %s\n", d.label, v)
		}
	}
	item(&b, "納期", req.DueDate, FallbackUndecided)
	item(&b, "優先度", priorityLabels[req.Priority], FallbackUnspecified)
	b.WriteString("\n")

	b.WriteString("## 現状と課題\n")
	item(&b, "背景", req.Background, FallbackNone)
	item(&b, "課題", req.Problem, FallbackNone)
	item(&b, "ゴール", req.Goal, FallbackNone)
	b.WriteString("\n")

	b.WriteString("## 要件\n")
	item(&b, "必須要素", req.Elements, FallbackNone)
	item(&b, "ターゲット", joinParts(" / ", joinTags(req.TargetUserTags), req.TargetUserText), FallbackUnspecified)
	item(&b, "流入チャネル", joinTags(req.Channels), FallbackUnspecified)
	item(&b, "ビジネスゴール(KPI)", joinParts(" / ", joinTags(req.BusinessGoalTags), req.BusinessGoalText), FallbackUnspecified)
	b.WriteString("\n")

	b.WriteString("## トーン＆マナー\n")
	item(&b, "キーワード", joinTags(req.ToneTags), FallbackUnspecified)
	item(&b, "詳細イメージ", req.ToneKeywords, FallbackNone)
	item(&b, "参考URL", req.ReferenceURLs, FallbackNone)
	item(&b, "NG例", req.NGExamples, FallbackNone)
	item(&b, "制約事項", req.Constraints, FallbackNone)
	b.WriteString("\n")

	b.WriteString("## 元の依頼文（参考）\n")
	b.WriteString(orFallback(req.RequestText, FallbackNone))
	b.WriteString("\n\n")

	if fragments := Guidance(deliverable); len(fragments) > 0 {
		b.WriteString("## 成果物別の注意点\n")
		for _, f := range fragments {
			b.WriteString(f)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString(outputContract)

	return b.String(), nil
}

type detailField struct {
	label string
	value string
}

// detailFields lists the deliverable specific details in display order.
func detailFields(req brief.Request) []detailField {
	return []detailField{
		{"サイズ・枚数", req.BannerSize},
		{"想定ページ数", req.LPPageCount},
		{"対応OS", req.AppOS},
		{"SNSフォーマット", req.SNSFormat},
		{"想定ページ構成", req.WebsitePages},
	}
}

func item(b *strings.Builder, label, value, fallback string) {
	fmt.Fprintf(b, "- **%s**: %s\n", label, orFallback(value, fallback))
}

func orFallback(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// joinTags joins the non-blank tags with ", ".
func joinTags(tags []string) string {
	return joinParts(", ", tags...)
}

func joinParts(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
