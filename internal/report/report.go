// Package report renders a research record as a Markdown briefing and its
// HTML form.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/yuin/goldmark"

	"github.com/topicscout/scout/internal/synth"
)

const briefingTmpl = `# Research Briefing: {{.Topic}}

*Generated {{.Date}}*

## Key Points
{{range .Record.KeyPoints}}
- {{.}}
{{- end}}

## Recent Developments
{{range .Record.RecentDevelopments}}
- {{.}}
{{- end}}

## Challenges
{{range .Record.Challenges}}
- {{.}}
{{- end}}

## Future Outlook
{{range .Record.FutureOutlook}}
- {{.}}
{{- end}}

## Sources
{{range $i, $s := .Record.Sources}}
{{inc $i}}. {{$s}}
{{- end}}
`

var tmpl = template.Must(template.New("briefing").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(briefingTmpl))

// Render produces the Markdown briefing for a record.
func Render(rec synth.Record, topic string, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Topic  string
		Date   string
		Record synth.Record
	}{
		Topic:  topic,
		Date:   now.Format("January 2, 2006 15:04 MST"),
		Record: rec,
	})
	if err != nil {
		return "", fmt.Errorf("rendering briefing: %w", err)
	}
	return buf.String(), nil
}

// RenderHTML converts a Markdown briefing to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting briefing to HTML: %w", err)
	}
	return buf.String(), nil
}

// DownloadName builds a safe attachment filename from a topic, keeping only
// alphanumerics, spaces, hyphens and underscores.
func DownloadName(topic string) string {
	var sb strings.Builder
	for _, r := range topic {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	safe := strings.TrimRight(sb.String(), " ")
	if safe == "" {
		safe = "topic"
	}
	return fmt.Sprintf("research_%s.md", safe)
}
