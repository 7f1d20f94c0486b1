package types

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// ScanRecord is one indexed chunk of a source document. Records are created
// by the enrichment stage and never updated; re-processing a chunk produces
// a new record under a new id.
type ScanRecord struct {
	ID            string          `json:"id" db:"id"`
	FileName      string          `json:"file_name" db:"file_name"`             // chunk file name, carries document provenance
	FileNameChunk string          `json:"file_name_chunk" db:"file_name_chunk"` // short ordinal + page-range label
	ContentText   string          `json:"content_text" db:"content_text"`
	Summary       string          `json:"summary" db:"summary"`
	Keywords      pq.StringArray  `json:"keywords" db:"keywords"`
	Resource      string          `json:"resource" db:"resource"`
	Vector        pgvector.Vector `json:"vector" db:"vector"`
	CreatedAt     int64           `json:"created_at" db:"created_at"`
}
