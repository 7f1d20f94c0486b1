package v1

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pgvector/pgvector-go"

	"github.com/knowscan-ai/knowscan/app/core"
	"github.com/knowscan-ai/knowscan/app/store"
	"github.com/knowscan-ai/knowscan/pkg/ai"
	"github.com/knowscan-ai/knowscan/pkg/chunk"
	pkgerrors "github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/pdf"
	"github.com/knowscan-ai/knowscan/pkg/safe"
	"github.com/knowscan-ai/knowscan/pkg/types"
	"github.com/knowscan-ai/knowscan/pkg/utils"
)

// PageSource is the slice of a parsed PDF the ingest pipeline needs.
// pdf.Document satisfies it.
type PageSource interface {
	PageCount() int
	PageText(start, end int) (string, error)
	ExtractRange(start, end int) ([]byte, error)
}

type IngestLogic struct {
	ctx  context.Context
	core *core.Core

	storage   ObjectStorage
	records   store.ScanRecordStore
	driver    ai.Driver
	cfg       core.ScanConfig
	chatModel string
}

func NewIngestLogic(ctx context.Context, c *core.Core) *IngestLogic {
	return &IngestLogic{
		ctx:       ctx,
		core:      c,
		storage:   c.ObjectStorage(),
		records:   c.Store().ScanRecordStore(),
		driver:    c.Srv().AI(),
		cfg:       c.Cfg().Scan,
		chatModel: c.Cfg().AI.Models.ChatModel,
	}
}

type IngestResult struct {
	FileName  string   `json:"file_name"`
	PageCount int      `json:"page_count"`
	Chunks    int      `json:"chunks"`
	RecordIDs []string `json:"record_ids"`
}

// IngestDocument reads a source PDF from object storage, splits it into
// overlapping page chunks, and enriches and indexes every chunk. Chunks are
// processed with bounded concurrency; the request fails if any chunk fails.
func (l *IngestLogic) IngestDocument(objectPath, fileName string) (*IngestResult, error) {
	if objectPath == "" || fileName == "" {
		return nil, invalidInput("IngestLogic.IngestDocument", "object_path and file_name are required")
	}

	raw, err := l.storage.GetObject(l.ctx, objectPath)
	if err != nil {
		return nil, pkgerrors.New("IngestLogic.GetObject", "failed to read source document "+objectPath, err)
	}

	doc, err := pdf.Open(raw)
	if err != nil {
		return nil, pkgerrors.New("IngestLogic.OpenPDF", "failed to parse source document "+fileName, err)
	}

	return l.ingestPages(doc, fileName)
}

// ListDocumentChunks returns every indexed chunk record of one source
// document, in ingestion order.
func (l *IngestLogic) ListDocumentChunks(fileName string) ([]*types.ScanRecord, error) {
	if fileName == "" {
		return nil, invalidInput("IngestLogic.ListDocumentChunks", "file_name is required")
	}

	records, err := l.records.ListByBaseName(l.ctx, fileName)
	if err != nil {
		return nil, pkgerrors.New("IngestLogic.ListByBaseName", "failed to list chunk records for "+fileName, err)
	}
	return records, nil
}

func (l *IngestLogic) ingestPages(doc PageSource, fileName string) (*IngestResult, error) {
	windows, err := chunk.Split(doc.PageCount(), l.cfg.ChunkSize)
	if err != nil {
		return nil, invalidInput("IngestLogic.Split", err.Error())
	}
	if len(windows) == 0 {
		return nil, invalidInput("IngestLogic.Split", "document has no pages")
	}

	recordIDs := make([]string, len(windows))
	errs := make([]error, len(windows))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, l.cfg.EnrichConcurrency)

	for i, w := range windows {
		wg.Add(1)
		go func(ordinal int, w chunk.Window) {
			defer wg.Done()
			// Pre-seeded so a recovered panic inside the closure still
			// fails the chunk; cleared only on full success.
			errs[ordinal-1] = fmt.Errorf("chunk %d did not complete", ordinal)
			safe.Run(func() {
				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				id, err := l.processChunk(doc, fileName, ordinal, w)
				if err != nil {
					errs[ordinal-1] = err
					return
				}
				recordIDs[ordinal-1] = id
				errs[ordinal-1] = nil
			})
		}(i+1, w)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			slog.Error("chunk ingestion failed",
				slog.String("file_name", fileName),
				slog.Int("chunk", i+1),
				slog.Any("error", err),
			)
			return nil, pkgerrors.Trace("IngestLogic.ingestPages", err)
		}
	}

	return &IngestResult{
		FileName:  fileName,
		PageCount: doc.PageCount(),
		Chunks:    len(windows),
		RecordIDs: recordIDs,
	}, nil
}

// processChunk materializes one chunk: page-range PDF into object storage,
// then embedding, summary and index record. The record is only created once
// both model calls succeed, so a partial failure never leaves a
// half-populated record behind.
func (l *IngestLogic) processChunk(doc PageSource, fileName string, ordinal int, w chunk.Window) (string, error) {
	chunkName := chunk.FileName(fileName, ordinal, w)

	payload, err := doc.ExtractRange(w.Start, w.End)
	if err != nil {
		return "", fmt.Errorf("failed to extract chunk %s: %w", chunkName, err)
	}
	if err = l.storage.Upload(l.ctx, intermediatePrefix+chunkName, bytes.NewReader(payload)); err != nil {
		return "", fmt.Errorf("failed to upload chunk %s: %w", chunkName, err)
	}

	text, err := doc.PageText(w.Start, w.End)
	if err != nil {
		return "", fmt.Errorf("failed to extract text of chunk %s: %w", chunkName, err)
	}

	record, err := l.enrichChunk(text, chunkName, chunk.Label(ordinal, w))
	if err != nil {
		return "", err
	}

	if err = l.records.Create(l.ctx, *record); err != nil {
		return "", fmt.Errorf("failed to index chunk %s: %w", chunkName, err)
	}

	slog.Info("chunk indexed",
		slog.String("file_name", chunkName),
		slog.String("record_id", record.ID),
	)
	return record.ID, nil
}

func (l *IngestLogic) enrichChunk(text, chunkName, label string) (*types.ScanRecord, error) {
	var metrics *core.Metrics
	if l.core != nil {
		metrics = l.core.Metrics()
	}

	vector, err := callEmbedding(l.ctx, metrics, l.driver, text)
	if err != nil {
		return nil, fmt.Errorf("embedding failed for chunk %s: %w", chunkName, err)
	}

	prompt := ai.ChunkSummaryPrompt(l.cfg.SummaryPromptTemplate,
		ai.TruncateTokens(l.chatModel, text, l.cfg.MaxPromptTokens))
	summary, err := callModel(l.ctx, metrics, l.driver, "chunk_summary", prompt, ai.PROMPT_SYSTEM_CHUNK_SUMMARY)
	if err != nil {
		return nil, fmt.Errorf("summarization failed for chunk %s: %w", chunkName, err)
	}

	return &types.ScanRecord{
		ID:            utils.GenSpecID(),
		FileName:      chunkName,
		FileNameChunk: label,
		ContentText:   text,
		Summary:       summary,
		Vector:        pgvector.NewVector(vector),
	}, nil
}
