package types

import "strings"

// NoBibliography is returned for documents whose first chunk is missing or
// whose citation could not be derived at all.
const NoBibliography = "No bibliography available"

// BibliographyEntry is a best-effort structured citation extracted from the
// front matter of a document. Any field may be empty; formatting collapses
// empty fields instead of emitting blanks.
type BibliographyEntry struct {
	Authors         []string `json:"authors"`
	Title           string   `json:"title"`
	PublicationDate string   `json:"publication_date"`
	Institution     string   `json:"institution"`
}

// Format renders the entry as "Authors (Year). Title. Institution." keeping
// only the populated fields, with a trailing period. A fully empty entry
// degrades to the NoBibliography sentinel.
func (b BibliographyEntry) Format() string {
	var parts []string

	var authors []string
	for _, a := range b.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	head := strings.Join(authors, ", ")
	if date := strings.TrimSpace(b.PublicationDate); date != "" {
		if head != "" {
			head += " (" + date + ")"
		} else {
			head = "(" + date + ")"
		}
	}
	if head != "" {
		parts = append(parts, head)
	}
	if title := strings.TrimSpace(b.Title); title != "" {
		parts = append(parts, title)
	}
	if inst := strings.TrimSpace(b.Institution); inst != "" {
		parts = append(parts, inst)
	}

	if len(parts) == 0 {
		return NoBibliography
	}
	return strings.Join(parts, ". ") + "."
}
