package v1

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/knowscan-ai/knowscan/app/core"
	"github.com/knowscan-ai/knowscan/app/store"
	"github.com/knowscan-ai/knowscan/pkg/ai"
	"github.com/knowscan-ai/knowscan/pkg/chunk"
	pkgerrors "github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/types"
)

const (
	// Chunk PDFs and rendered reports live under fixed object-storage
	// prefixes, mirroring the ingest and output sides of the pipeline.
	intermediatePrefix = "intermediate/"
	curatedPrefix      = "curated/"

	// modelCallTimeout bounds every outbound model call; a timeout is
	// treated like any other collaborator failure.
	modelCallTimeout = time.Minute * 2
)

// ObjectStorage is the blob collaborator consumed by ingest and report
// generation.
type ObjectStorage interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, fullPath string, body io.Reader) error
}

// ObjectPresigner is optionally implemented by storage backends that can
// hand out short-lived download URLs.
type ObjectPresigner interface {
	GenGetObjectPreSignURL(ctx context.Context, fullPath string) (string, error)
}

// recordGroup is one source document and its chunk records, request-scoped.
type recordGroup struct {
	BaseName string
	Records  []*types.ScanRecord
}

// groupRecords fetches each record and groups them by decoded base document
// name, preserving the order in which each base name first appears. The
// first missing id aborts the whole request.
func groupRecords(ctx context.Context, records store.ScanRecordStore, ids []string) ([]recordGroup, error) {
	index := make(map[string]int)
	var groups []recordGroup

	for _, id := range ids {
		record, err := records.GetRecord(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, pkgerrors.New("groupRecords.GetRecord", "record not found: "+id, err)
			}
			return nil, pkgerrors.New("groupRecords.GetRecord", "failed to fetch record "+id, err)
		}

		base, err := chunk.BaseFileName(record.FileName)
		if err != nil {
			return nil, pkgerrors.New("groupRecords.BaseFileName", "malformed chunk file name: "+record.FileName, err)
		}

		if pos, ok := index[base]; ok {
			groups[pos].Records = append(groups[pos].Records, record)
		} else {
			index[base] = len(groups)
			groups = append(groups, recordGroup{BaseName: base, Records: []*types.ScanRecord{record}})
		}
	}

	return groups, nil
}

// callModel issues one completion call with the shared timeout and metrics
// accounting.
func callModel(ctx context.Context, m *core.Metrics, driver ai.ChatAI, target, prompt, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	if m != nil {
		timer := m.ModelRequestTimer(target)
		defer timer.ObserveDuration()
	}

	result, err := driver.Generate(ctx, prompt, system)
	if err != nil {
		if m != nil {
			m.ModelErrorInc(target)
		}
		return "", err
	}
	return result.Content, nil
}

func callEmbedding(ctx context.Context, m *core.Metrics, driver ai.EmbeddingAI, content string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	if m != nil {
		timer := m.ModelRequestTimer("embedding")
		defer timer.ObserveDuration()
	}

	result, err := driver.Embedding(ctx, content)
	if err != nil {
		if m != nil {
			m.ModelErrorInc("embedding")
		}
		return nil, err
	}
	return result.Vector, nil
}

func invalidInput(trace, message string) error {
	return pkgerrors.New(trace, message, errors.New(message)).Code(http.StatusBadRequest)
}
