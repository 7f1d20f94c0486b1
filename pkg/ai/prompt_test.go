package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunkSummaryPromptDefaultsTemplate(t *testing.T) {
	prompt := ChunkSummaryPrompt("", "chunk text")
	assert.True(t, strings.HasPrefix(prompt, DEFAULT_CHUNK_SUMMARY_TEMPLATE))
	assert.True(t, strings.HasSuffix(prompt, "chunk text"))

	custom := ChunkSummaryPrompt("Summarize: ", "chunk text")
	assert.Equal(t, "Summarize: chunk text", custom)
}

func TestCombinedSummaryPrompt(t *testing.T) {
	prompt := CombinedSummaryPrompt("coastal adaptation", []string{"first", "second"})
	assert.Contains(t, prompt, "user query: 'coastal adaptation'")
	assert.Contains(t, prompt, "first second")
}

func TestOverallSummaryPromptMarkers(t *testing.T) {
	prompt := OverallSummaryPrompt([]string{"alpha", "beta", "gamma"})
	assert.Equal(t, "alpha [1] beta [2] gamma [3]", prompt)
}

func TestBibliographyPromptTruncatesPrefix(t *testing.T) {
	content := strings.Repeat("x", 50)

	full := BibliographyPrompt(content, 100)
	assert.Contains(t, full, content)

	clipped := BibliographyPrompt(content, 10)
	assert.Contains(t, clipped, strings.Repeat("x", 10))
	assert.NotContains(t, clipped, strings.Repeat("x", 11))

	unbounded := BibliographyPrompt(content, 0)
	assert.Contains(t, unbounded, content)
}

func TestBibliographyPromptTruncatesOnRuneBoundary(t *testing.T) {
	content := strings.Repeat("é", 20)

	clipped := BibliographyPrompt(content, 10)
	assert.True(t, utf8.ValidString(clipped))
	assert.Contains(t, clipped, strings.Repeat("é", 10))
	assert.NotContains(t, clipped, strings.Repeat("é", 11))
}
