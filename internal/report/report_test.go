package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topicscout/scout/internal/synth"
)

func sampleRecord() synth.Record {
	return synth.Record{
		KeyPoints:          []string{"First finding", "Second finding"},
		RecentDevelopments: []string{"A development"},
		Challenges:         []string{"A challenge"},
		FutureOutlook:      []string{"An outlook"},
		Sources:            []string{"https://a.test", "https://b.test"},
	}
}

func TestRender_Sections(t *testing.T) {
	md, err := Render(sampleRecord(), "quantum computing", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, md, "# Research Briefing: quantum computing")
	assert.Contains(t, md, "## Key Points")
	assert.Contains(t, md, "- First finding")
	assert.Contains(t, md, "## Recent Developments")
	assert.Contains(t, md, "## Challenges")
	assert.Contains(t, md, "## Future Outlook")
	assert.Contains(t, md, "1. https://a.test")
	assert.Contains(t, md, "2. https://b.test")
	assert.Contains(t, md, "March 1, 2024")
}

func TestRenderHTML(t *testing.T) {
	md, err := Render(sampleRecord(), "ai", time.Now())
	require.NoError(t, err)

	html, err := RenderHTML(md)
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>")
	assert.Contains(t, html, "<li>First finding</li>")
}

func TestDownloadName(t *testing.T) {
	cases := []struct {
		topic string
		want  string
	}{
		{"quantum computing", "research_quantum computing.md"},
		{"c++ & rust!", "research_c  rust.md"},
		{"///", "research_topic.md"},
		{"trailing space ", "research_trailing space.md"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DownloadName(c.topic), "topic %q", c.topic)
	}
}
