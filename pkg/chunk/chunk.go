package chunk

import (
	"errors"
	"fmt"
	"strings"
)

// Marker separates the source document name from the chunk suffix in a
// chunk file name. Base names containing the marker cannot be decoded.
const Marker = "_chunk_"

var (
	ErrInvalidWindow     = errors.New("chunk window must be at least 2 pages")
	ErrInvalidPageCount  = errors.New("page count cannot be negative")
	ErrMalformedFileName = errors.New("file name does not contain a chunk marker")
)

// Window is a half-open page range [Start, End) within a source document.
// Page indexes are 0-based.
type Window struct {
	Start int
	End   int
}

func (w Window) Pages() int {
	return w.End - w.Start
}

// Split slides a window of the given size across pageCount pages with a
// stride of half the window, so consecutive windows overlap by window/2
// pages. The final window is clipped to the page count and may be shorter.
// Windows smaller than 2 pages are rejected: a stride of zero would never
// advance.
func Split(pageCount, window int) ([]Window, error) {
	if window < 2 {
		return nil, ErrInvalidWindow
	}
	if pageCount < 0 {
		return nil, ErrInvalidPageCount
	}

	stride := window / 2
	var windows []Window
	for start := 0; start < pageCount; start += stride {
		end := start + window
		if end > pageCount {
			end = pageCount
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return windows, nil
}

// FileName builds the provenance name a chunk is stored and indexed under.
// Ordinal and page numbers are rendered 1-based for readability; only the
// part left of the marker is ever parsed back out.
func FileName(base string, ordinal int, w Window) string {
	return fmt.Sprintf("%s%s%d_pages_%d_to_%d.pdf", base, Marker, ordinal, w.Start+1, w.End)
}

// FirstChunkFileName is the name the first chunk of a document was indexed
// under, given the chunk window size the document was split with.
func FirstChunkFileName(base string, window int) string {
	return FileName(base, 1, Window{Start: 0, End: window})
}

// BaseFileName recovers the source document name from a chunk file name by
// cutting at the first marker occurrence.
func BaseFileName(fileName string) (string, error) {
	base, _, ok := strings.Cut(fileName, Marker)
	if !ok {
		return "", ErrMalformedFileName
	}
	return base, nil
}

// Label is the short ordinal + page-range tag stored alongside the full
// chunk file name.
func Label(ordinal int, w Window) string {
	return fmt.Sprintf("%d_%d_to_%d", ordinal, w.Start+1, w.End)
}
