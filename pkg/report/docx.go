package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fumiama/go-docx"

	"github.com/knowscan-ai/knowscan/pkg/types"
)

const (
	titleSize    = "40"
	headingSize  = "32"
	sectionSize  = "28"
	citationGrey = "595959"
)

// Render lays a persisted knowledge scan out as a DOCX document: general
// notes, keyword and resource lists, one section per source document with
// its bibliography, and the overall summary. The scan itself is not
// modified.
func Render(scan *types.KnowledgeScan, generatedAt time.Time) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	addHeading(w, "Knowledge Scan", titleSize)
	w.AddParagraph().AddText("Generated on " + generatedAt.Format("January 2, 2006")).Italic()

	addHeading(w, "General notes:", headingSize)
	notes := scan.GeneralNotes
	if notes == "" {
		notes = "No general notes provided."
	}
	w.AddParagraph().AddText(notes)

	addHeading(w, "Keywords and themes:", sectionSize)
	addBullets(w, scan.Keywords, "No keywords provided.")

	addHeading(w, "Resources searched:", sectionSize)
	addBullets(w, scan.ResourcesSearched, "No resources provided.")

	addHeading(w, "Summaries:", headingSize)
	if len(scan.CombinedSummaries) == 0 {
		w.AddParagraph().AddText("No summaries available.")
	}
	for i, section := range scan.CombinedSummaries {
		addHeading(w, fmt.Sprintf("Document %d: %s", i+1, section.FileName), sectionSize)

		bibliography := section.Bibliography
		if bibliography == "" {
			bibliography = types.NoBibliography
		}
		w.AddParagraph().AddText(bibliography).Italic().Color(citationGrey)

		summary := section.Summary
		if summary == "" {
			summary = "No summary available."
		}
		w.AddParagraph().AddText(summary)
	}

	addHeading(w, "Overall Summary:", headingSize)
	overall := scan.OverallSummary
	if overall == "" {
		overall = "No overall summary provided."
	}
	w.AddParagraph().AddText(overall)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeading(w *docx.Docx, text, size string) {
	w.AddParagraph().AddText(text).Size(size).Bold()
}

func addBullets(w *docx.Docx, items []string, empty string) {
	if len(items) == 0 {
		w.AddParagraph().AddText(empty)
		return
	}
	for _, item := range items {
		w.AddParagraph().AddText("• " + item)
	}
}
