package ai

import (
	"fmt"
	"strings"
)

const PROMPT_SYSTEM_CHUNK_SUMMARY = `You are an AI assistant that produces comprehensive, structured summaries of academic or informational texts. Your summaries should provide clear background context, methodological details, main findings, and conclusions, similar to a scholarly abstract.`

// DEFAULT_CHUNK_SUMMARY_TEMPLATE prefixes the chunk text on every per-chunk
// summary call. A deployment can override it through configuration.
const DEFAULT_CHUNK_SUMMARY_TEMPLATE = `Please write a structured summary of the following document excerpt. Cover the background and context, the methods or approach where stated, the main findings, and the conclusions.

`

const PROMPT_SYSTEM_COMBINED_SUMMARY = `You are an AI assistant that summarizes texts.`

const PROMPT_SYSTEM_OVERALL_SUMMARY = `You are an AI assistant that writes a single narrative synthesis across multiple document summaries. Each input summary ends with a bracketed reference number such as [1]. Weave the documents into one coherent narrative and cite them with those bracketed numbers as superscript-style reference markers.`

const PROMPT_SYSTEM_KEYWORDS = `You are an AI assistant that extracts keywords and themes from a text. Return at most 25 terms as a single comma-separated list. Do not include bare year ranges.`

const PROMPT_SYSTEM_BIBLIOGRAPHY = `You are an AI assistant that extracts title, authors, and publication date in a structured bibliography format.`

// ChunkSummaryPrompt concatenates the configured template with the chunk
// text.
func ChunkSummaryPrompt(template, chunkText string) string {
	if template == "" {
		template = DEFAULT_CHUNK_SUMMARY_TEMPLATE
	}
	return template + chunkText
}

// CombinedSummaryPrompt asks for one per-document summary over all chunk
// summaries of that document, anchored on the user query.
func CombinedSummaryPrompt(query string, summaries []string) string {
	return fmt.Sprintf("Can you please summarize these documents based on the user query: '%s'?", query) + strings.Join(summaries, " ")
}

// OverallSummaryPrompt concatenates the per-document combined summaries,
// each suffixed with its 1-based position in brackets. The positions line up
// with the document order of the scan, which is what the narrative's
// reference markers point back to.
func OverallSummaryPrompt(combined []string) string {
	parts := make([]string, 0, len(combined))
	for i, s := range combined {
		parts = append(parts, fmt.Sprintf("%s [%d]", s, i+1))
	}
	return strings.Join(parts, " ")
}

func KeywordsPrompt(overallSummary string) string {
	return "Extract the keywords and themes from the following text:\n\n" + overallSummary
}

// BibliographyPrompt bounds the chunk text to a prefix on the assumption
// that title pages and front matter live at the start of a document. The
// prefix counts characters, not bytes, so multi-byte text is never cut
// mid-rune.
func BibliographyPrompt(contentText string, prefixLen int) string {
	if prefixLen > 0 && len(contentText) > prefixLen {
		if runes := []rune(contentText); len(runes) > prefixLen {
			contentText = string(runes[:prefixLen])
		}
	}
	return "Extract the title, authors, and publication date from the following document content. " +
		"Return the result in the format: 'Authors (Year). Title. Institution/Publisher.'. " +
		"If any information is missing, leave those fields blank but keep the format. " +
		"Content:\n\n" + contentText
}
