package synth

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_ShortEntryUnchanged(t *testing.T) {
	assert.Equal(t, "short finding", truncate("short finding"))
}

func TestTruncate_CutsOnRuneBoundary(t *testing.T) {
	// 100 three-byte runes (300 bytes); a cut at 250 bytes would land
	// mid-rune.
	s := strings.Repeat("研", 100)

	out := truncate(s)
	assert.LessOrEqual(t, len(out), maxEntryLen)
	assert.True(t, utf8.ValidString(out), "truncated entry must stay valid UTF-8")
	assert.Equal(t, strings.Repeat("研", 83), out)
}

func TestTruncateAll_DropsEmptyAndTrims(t *testing.T) {
	out := truncateAll([]string{"  first  ", "", "   ", "second"})
	assert.Equal(t, []string{"first", "second"}, out)
}

func TestTruncateRunes_PromptContentBoundary(t *testing.T) {
	// Mirrors the prompt-assembly cut of page text at promptContentLen.
	s := strings.Repeat("界", 300)

	out := truncateRunes(s, promptContentLen)
	assert.LessOrEqual(t, len(out), promptContentLen)
	assert.True(t, utf8.ValidString(out))
}
