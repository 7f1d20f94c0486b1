package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// CombinedSummary is the per-document section of a knowledge scan: all chunk
// summaries of one source document condensed into a single summary.
type CombinedSummary struct {
	FileName     string `json:"file_name"`
	Summary      string `json:"summary"`
	Bibliography string `json:"bibliography"`
}

type CombinedSummaries []CombinedSummary

func (s CombinedSummaries) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *CombinedSummaries) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported scan source %T for CombinedSummaries", value)
	}
}

// KnowledgeScan is the persisted aggregation result for one query over a set
// of indexed records. Immutable after creation; reports are rendered from it
// without mutating it.
type KnowledgeScan struct {
	ID                string            `json:"id" db:"id"`
	Query             string            `json:"query" db:"query"`
	CombinedSummaries CombinedSummaries `json:"combined_summaries" db:"combined_summaries"`
	OverallSummary    string            `json:"overall_summary" db:"overall_summary"`
	GeneralNotes      string            `json:"general_notes" db:"general_notes"`
	Keywords          pq.StringArray    `json:"keywords" db:"keywords"`
	ResourcesSearched pq.StringArray    `json:"resources_searched" db:"resources_searched"`
	CreatedAt         int64             `json:"created_at" db:"created_at"`
}

// ScanReport records a rendered report document and where its file lives in
// object storage.
type ScanReport struct {
	ID           string `json:"id" db:"id"`
	ScanID       string `json:"scan_id" db:"scan_id"`
	FileName     string `json:"file_name" db:"file_name"`
	BlobLocation string `json:"blob_location" db:"blob_location"`
	CreatedAt    int64  `json:"created_at" db:"created_at"`
}
