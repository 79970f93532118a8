package present

import (
	"strings"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

// Markdown renders result as a Markdown document for copying into other
// tools. Action items become task-list entries.
func Markdown(result brief.Result) string {
	var b strings.Builder

	b.WriteString("# " + result.Summary.Title + "\n\n")

	b.WriteString("## 概要\n")
	b.WriteString("- **クライアント**: " + result.Summary.Client + "\n")
	b.WriteString("- **成果物**: " + result.Summary.Type + "\n")
	b.WriteString("- **納期**: " + result.Summary.Deadline + "\n")
	b.WriteString("- **概要**: " + result.Summary.Overview + "\n\n")

	b.WriteString("## 詳細\n")
	for _, s := range result.Details.Sections() {
		b.WriteString("### " + s.Title + "\n")
		b.WriteString(strings.TrimSpace(s.Content) + "\n\n")
	}

	b.WriteString("## ネクストアクション\n")
	for i, group := range result.Actions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("### " + group.Label + "\n")
		for _, item := range group.Items {
			b.WriteString("- [ ] " + item + "\n")
		}
		for _, sub := range group.Subsections {
			b.WriteString("#### " + sub.Title + "\n")
			for _, item := range sub.Items {
				b.WriteString("- [ ] " + item + "\n")
			}
		}
	}

	return strings.TrimSpace(b.String()) + "\n"
}
