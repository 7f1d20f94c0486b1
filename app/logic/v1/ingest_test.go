package v1

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowscan-ai/knowscan/pkg/ai"
)

// fakePages stands in for a parsed PDF: one word of text per page.
type fakePages struct {
	pages      int
	extractErr error
}

func (f *fakePages) PageCount() int { return f.pages }

func (f *fakePages) PageText(start, end int) (string, error) {
	return fmt.Sprintf("pages %d to %d", start+1, end), nil
}

func (f *fakePages) ExtractRange(start, end int) ([]byte, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return []byte(fmt.Sprintf("%%PDF %d-%d", start+1, end)), nil
}

func newTestIngestLogic(storage *fakeStorage, records *fakeRecordStore, driver *fakeAI) *IngestLogic {
	return &IngestLogic{
		ctx:       context.Background(),
		storage:   storage,
		records:   records,
		driver:    driver,
		cfg:       testScanConfig(),
		chatModel: "gpt-4o-mini",
	}
}

func TestIngestPages(t *testing.T) {
	storage := newFakeStorage()
	records := newFakeRecordStore()
	driver := newFakeAI().reply(ai.PROMPT_SYSTEM_CHUNK_SUMMARY, "chunk summary")

	logic := newTestIngestLogic(storage, records, driver)
	result, err := logic.ingestPages(&fakePages{pages: 25}, "report.pdf")
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", result.FileName)
	assert.Equal(t, 25, result.PageCount)
	assert.Equal(t, 5, result.Chunks)
	require.Len(t, result.RecordIDs, 5)
	for _, id := range result.RecordIDs {
		assert.NotEmpty(t, id)
	}

	require.Len(t, records.created, 5)
	names := make(map[string]bool)
	for _, record := range records.created {
		names[record.FileName] = true
		assert.Equal(t, "chunk summary", record.Summary)
		assert.NotEmpty(t, record.ContentText)
		assert.Equal(t, 3, len(record.Vector.Slice()))
	}
	assert.True(t, names["report.pdf_chunk_1_pages_1_to_10.pdf"])
	assert.True(t, names["report.pdf_chunk_5_pages_21_to_25.pdf"])

	assert.Contains(t, storage.keys(), "intermediate/report.pdf_chunk_1_pages_1_to_10.pdf")
	assert.Len(t, storage.keys(), 5)
}

func TestIngestPagesShortDocument(t *testing.T) {
	logic := newTestIngestLogic(newFakeStorage(), newFakeRecordStore(), newFakeAI())

	result, err := logic.ingestPages(&fakePages{pages: 4}, "note.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Chunks)
}

func TestIngestPagesEmptyDocument(t *testing.T) {
	logic := newTestIngestLogic(newFakeStorage(), newFakeRecordStore(), newFakeAI())

	_, err := logic.ingestPages(&fakePages{pages: 0}, "empty.pdf")
	require.Error(t, err)
}

func TestIngestPagesChunkFailureFailsRequest(t *testing.T) {
	records := newFakeRecordStore()
	logic := newTestIngestLogic(newFakeStorage(), records, newFakeAI())

	_, err := logic.ingestPages(&fakePages{pages: 25, extractErr: errors.New("corrupt xref")}, "report.pdf")
	require.Error(t, err)
	assert.Empty(t, records.created)
}

func TestIngestPagesModelFailureCreatesNoRecord(t *testing.T) {
	records := newFakeRecordStore()
	driver := newFakeAI()
	driver.generate = func(prompt, system string) (string, error) {
		return "", errors.New("model unavailable")
	}

	logic := newTestIngestLogic(newFakeStorage(), records, driver)
	_, err := logic.ingestPages(&fakePages{pages: 12}, "report.pdf")
	require.Error(t, err)
	assert.Empty(t, records.created)
}

func TestIngestPagesPanicFailsRequest(t *testing.T) {
	records := newFakeRecordStore()
	driver := newFakeAI()
	driver.generate = func(prompt, system string) (string, error) {
		panic("tokenizer exploded")
	}

	logic := newTestIngestLogic(newFakeStorage(), records, driver)
	_, err := logic.ingestPages(&fakePages{pages: 12}, "report.pdf")
	require.Error(t, err)
	assert.Empty(t, records.created)
}

func TestListDocumentChunks(t *testing.T) {
	records := newFakeRecordStore(
		chunkRecord("a1", "alpha.pdf_chunk_1_pages_1_to_10.pdf", "s", ""),
		chunkRecord("a2", "alpha.pdf_chunk_2_pages_6_to_15.pdf", "s", ""),
		chunkRecord("b1", "beta.pdf_chunk_1_pages_1_to_10.pdf", "s", ""),
	)
	logic := newTestIngestLogic(newFakeStorage(), records, newFakeAI())

	chunks, err := logic.ListDocumentChunks("alpha.pdf")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)

	_, err = logic.ListDocumentChunks("")
	require.Error(t, err)
}

func TestIngestDocumentValidatesInput(t *testing.T) {
	logic := newTestIngestLogic(newFakeStorage(), newFakeRecordStore(), newFakeAI())

	_, err := logic.IngestDocument("", "report.pdf")
	require.Error(t, err)

	_, err = logic.IngestDocument("uploads/report.pdf", "")
	require.Error(t, err)
}
