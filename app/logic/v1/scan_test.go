package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowscan-ai/knowscan/app/core"
	"github.com/knowscan-ai/knowscan/pkg/ai"
	pkgerrors "github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/types"
)

func testScanConfig() core.ScanConfig {
	cfg := core.ScanConfig{}
	cfg.ApplyDefaults()
	return cfg
}

func newTestScanLogic(records *fakeRecordStore, scans *fakeScanStore, driver *fakeAI) *ScanLogic {
	cfg := testScanConfig()
	return &ScanLogic{
		ctx:     context.Background(),
		records: records,
		scans:   scans,
		driver:  driver,
		cfg:     cfg,
		biblio: &BibliographyLogic{
			ctx:     context.Background(),
			records: records,
			driver:  driver,
			cfg:     cfg,
		},
	}
}

func TestGenerateKnowledgeScan(t *testing.T) {
	records := newFakeRecordStore(
		chunkRecord("a1", "alpha.pdf_chunk_1_pages_1_to_10.pdf", "alpha part one", "coastal archive", "erosion"),
		chunkRecord("a2", "alpha.pdf_chunk_2_pages_6_to_15.pdf", "alpha part two", "coastal archive"),
		chunkRecord("b1", "beta.pdf_chunk_1_pages_1_to_10.pdf", "beta part one", "policy library", "governance"),
	)
	driver := newFakeAI().
		reply(ai.PROMPT_SYSTEM_COMBINED_SUMMARY, "per-document summary").
		reply(ai.PROMPT_SYSTEM_OVERALL_SUMMARY, "cross-document narrative [1] [2]").
		reply(ai.PROMPT_SYSTEM_KEYWORDS, "erosion, adaptation, 2010-2015, adaptation").
		reply(ai.PROMPT_SYSTEM_BIBLIOGRAPHY, "Smith, J. (2021). Alpha Study. Marine Institute.")
	scans := newFakeScanStore()

	logic := newTestScanLogic(records, scans, driver)
	scan, err := logic.GenerateKnowledgeScan("coastal adaptation", []string{"a1", "b1", "a2"})
	require.NoError(t, err)

	require.Len(t, scan.CombinedSummaries, 2)
	assert.Equal(t, "alpha.pdf", scan.CombinedSummaries[0].FileName)
	assert.Equal(t, "beta.pdf", scan.CombinedSummaries[1].FileName)
	assert.Equal(t, "per-document summary", scan.CombinedSummaries[0].Summary)
	assert.Equal(t, "Smith, J. (2021). Alpha Study. Marine Institute.", scan.CombinedSummaries[0].Bibliography)
	assert.Equal(t, "cross-document narrative [1] [2]", scan.OverallSummary)
	assert.Contains(t, scan.GeneralNotes, "Generated based on query: coastal adaptation.")

	assert.Equal(t, []string{"adaptation", "erosion", "governance"}, []string(scan.Keywords))
	assert.Equal(t, []string{"coastal archive", "policy library"}, []string(scan.ResourcesSearched))

	stored, err := scans.GetScan(context.Background(), scan.ID)
	require.NoError(t, err)
	assert.Equal(t, scan.OverallSummary, stored.OverallSummary)
}

func TestGenerateKnowledgeScanOverallPromptMarkers(t *testing.T) {
	records := newFakeRecordStore(
		chunkRecord("a1", "alpha.pdf_chunk_1_pages_1_to_10.pdf", "first", ""),
		chunkRecord("b1", "beta.pdf_chunk_1_pages_1_to_10.pdf", "second", ""),
	)
	driver := newFakeAI()
	driver.generate = func(prompt, system string) (string, error) {
		if system == ai.PROMPT_SYSTEM_COMBINED_SUMMARY {
			if strings.Contains(prompt, "first") {
				return "summary one", nil
			}
			return "summary two", nil
		}
		return "done", nil
	}

	logic := newTestScanLogic(records, newFakeScanStore(), driver)
	_, err := logic.GenerateKnowledgeScan("query", []string{"a1", "b1"})
	require.NoError(t, err)

	overall := driver.callsFor(ai.PROMPT_SYSTEM_OVERALL_SUMMARY)
	require.Len(t, overall, 1)
	assert.Contains(t, overall[0].Prompt, "[1]")
	assert.Contains(t, overall[0].Prompt, "[2]")
	assert.NotContains(t, overall[0].Prompt, "[3]")
}

func TestGenerateKnowledgeScanMissingRecordPersistsNothing(t *testing.T) {
	records := newFakeRecordStore(
		chunkRecord("a1", "alpha.pdf_chunk_1_pages_1_to_10.pdf", "s", ""),
	)
	scans := newFakeScanStore()

	logic := newTestScanLogic(records, scans, newFakeAI())
	_, err := logic.GenerateKnowledgeScan("query", []string{"a1", "missing"})
	require.Error(t, err)
	assert.Empty(t, scans.scans)
}

func TestGenerateKnowledgeScanSummaryFailureAborts(t *testing.T) {
	records := newFakeRecordStore(
		chunkRecord("a1", "alpha.pdf_chunk_1_pages_1_to_10.pdf", "s", ""),
	)
	driver := newFakeAI()
	driver.generate = func(prompt, system string) (string, error) {
		if system == ai.PROMPT_SYSTEM_COMBINED_SUMMARY {
			return "", errors.New("model unavailable")
		}
		return "ok", nil
	}
	scans := newFakeScanStore()

	logic := newTestScanLogic(records, scans, driver)
	_, err := logic.GenerateKnowledgeScan("query", []string{"a1"})
	require.Error(t, err)
	assert.Empty(t, scans.scans)
}

func TestGenerateKnowledgeScanSummaryPanicAborts(t *testing.T) {
	records := newFakeRecordStore(
		chunkRecord("a1", "alpha.pdf_chunk_1_pages_1_to_10.pdf", "s", ""),
	)
	driver := newFakeAI()
	driver.generate = func(prompt, system string) (string, error) {
		if system == ai.PROMPT_SYSTEM_COMBINED_SUMMARY {
			panic("summary exploded")
		}
		return "ok", nil
	}
	scans := newFakeScanStore()

	logic := newTestScanLogic(records, scans, driver)
	_, err := logic.GenerateKnowledgeScan("query", []string{"a1"})
	require.Error(t, err)
	assert.Empty(t, scans.scans)
}

func TestGenerateKnowledgeScanRejectsEmptyInput(t *testing.T) {
	logic := newTestScanLogic(newFakeRecordStore(), newFakeScanStore(), newFakeAI())

	_, err := logic.GenerateKnowledgeScan("", []string{"a1"})
	require.Error(t, err)

	_, err = logic.GenerateKnowledgeScan("query", nil)
	require.Error(t, err)

	var ce *pkgerrors.CustomizedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.GetCode())
}

func TestGetScanNotFound(t *testing.T) {
	logic := newTestScanLogic(newFakeRecordStore(), newFakeScanStore(), newFakeAI())

	_, err := logic.GetScan("nope")
	require.Error(t, err)

	var ce *pkgerrors.CustomizedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.GetCode())
}

func TestMergeKeywordsDeterministic(t *testing.T) {
	groups := []recordGroup{
		{BaseName: "alpha.pdf", Records: []*types.ScanRecord{
			{Keywords: []string{"zoning", "erosion "}},
		}},
	}

	first := mergeKeywords("erosion, 2010-2015, sediment, 1998", groups)
	assert.Equal(t, []string{"erosion", "sediment", "zoning"}, first)

	second := mergeKeywords("erosion, 2010-2015, sediment, 1998", groups)
	assert.Equal(t, first, second)
}
