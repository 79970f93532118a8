package brief

// Color tags an action group with its role: blue for confirmed next steps,
// orange for open questions, red for risks.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Valid reports whether c is one of the three allowed colors.
func (c Color) Valid() bool {
	switch c {
	case ColorBlue, ColorOrange, ColorRed:
		return true
	}
	return false
}

// Result is the normalized brief returned by the generation service. It is
// immutable once produced.
type Result struct {
	Summary Summary       `json:"summary"`
	Details Details       `json:"details"`
	Actions []ActionGroup `json:"actions"`
}

// Summary is the headline card of a brief.
type Summary struct {
	Title    string `json:"title"`
	Client   string `json:"client"`
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
	Overview string `json:"overview"`
}

// Details holds the Markdown body of each named section.
type Details struct {
	Background  string `json:"background"`
	Problem     string `json:"problem"`
	Goal        string `json:"goal"`
	Elements    string `json:"elements"`
	Target      string `json:"target"`
	Channel     string `json:"channel"`
	KPI         string `json:"kpi"`
	Tone        string `json:"tone"`
	References  string `json:"references"`
	NGExamples  string `json:"ng_examples"`
	Constraints string `json:"constraints"`
}

// ActionGroup is one card of the next-actions checklist.
type ActionGroup struct {
	Category    string       `json:"category"`
	Label       string       `json:"label"`
	Color       Color        `json:"color"`
	Items       []string     `json:"items"`
	Subsections []Subsection `json:"subsections"`
}

// Subsection groups checklist items under a heading inside an ActionGroup.
type Subsection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Section is a detail section with its display title and content.
type Section struct {
	Key     string
	Title   string
	Content string
}

// DetailSection names a details key and its display title.
type DetailSection struct {
	Key   string
	Title string
}

// DetailSections is the display order of the details mapping.
var DetailSections = []DetailSection{
	{"background", "背景・目的 (Why)"},
	{"problem", "現状の課題 (Problem)"},
	{"goal", "ゴール (Goal)"},
	{"elements", "必須要素 (Elements)"},
	{"target", "ターゲット"},
	{"channel", "流入チャネル"},
	{"kpi", "ビジネスゴール / KPI"},
	{"tone", "トーン＆マナー"},
	{"references", "参考情報"},
	{"ng_examples", "NG項目"},
	{"constraints", "制約事項"},
}

// SummaryKeys lists the required keys of the summary object.
var SummaryKeys = []string{"title", "client", "type", "deadline", "overview"}

// Get returns the content of the named section and whether the key exists.
func (d Details) Get(key string) (string, bool) {
	switch key {
	case "background":
		return d.Background, true
	case "problem":
		return d.Problem, true
	case "goal":
		return d.Goal, true
	case "elements":
		return d.Elements, true
	case "target":
		return d.Target, true
	case "channel":
		return d.Channel, true
	case "kpi":
		return d.KPI, true
	case "tone":
		return d.Tone, true
	case "references":
		return d.References, true
	case "ng_examples":
		return d.NGExamples, true
	case "constraints":
		return d.Constraints, true
	}
	return "", false
}

// Sections returns the details in display order.
func (d Details) Sections() []Section {
	out := make([]Section, 0, len(DetailSections))
	for _, s := range DetailSections {
		content, _ := d.Get(s.Key)
		out = append(out, Section{Key: s.Key, Title: s.Title, Content: content})
	}
	return out
}
