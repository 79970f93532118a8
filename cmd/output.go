package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/present"
)

// Output formats accepted by --format.
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// normalizeFormat validates a --format value. "md" is an alias of markdown.
func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatJSON:
		return formatJSON, nil
	case formatMarkdown, "md":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want %s or %s)", format, formatJSON, formatMarkdown)
	}
}

// shareLink is the id and page URL of a shared brief.
type shareLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// sharedOutput is the JSON document printed for a shared brief.
type sharedOutput struct {
	Result brief.Result `json:"result"`
	Share  shareLink    `json:"share"`
}

// writeResult prints result in format. link is included when non-nil.
func writeResult(w io.Writer, format string, result brief.Result, link *shareLink) error {
	if format == formatMarkdown {
		if _, err := io.WriteString(w, present.Markdown(result)); err != nil {
			return err
		}
		if link != nil {
			_, err := fmt.Fprintf(w, "\n共有リンク: %s\n", link.URL)
			return err
		}
		return nil
	}
	if link != nil {
		return writeJSON(w, sharedOutput{Result: result, Share: *link})
	}
	return writeJSON(w, result)
}
