package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/types"
)

type presigningStorage struct {
	*fakeStorage
}

func (s *presigningStorage) GenGetObjectPreSignURL(ctx context.Context, fullPath string) (string, error) {
	return "https://blob.test/" + fullPath + "?sig=abc", nil
}

func storedScan(t *testing.T, scans *fakeScanStore) types.KnowledgeScan {
	t.Helper()
	scan := types.KnowledgeScan{
		ID:             "scan-1",
		Query:          "coastal adaptation",
		OverallSummary: "narrative [1]",
		GeneralNotes:   "Generated based on query: coastal adaptation.",
		Keywords:       []string{"erosion"},
		CombinedSummaries: types.CombinedSummaries{
			{FileName: "alpha.pdf", Summary: "summary", Bibliography: types.NoBibliography},
		},
	}
	require.NoError(t, scans.Create(context.Background(), scan))
	return scan
}

func newTestReportLogic(scans *fakeScanStore, reports *fakeReportStore, storage ObjectStorage) *ReportLogic {
	return &ReportLogic{
		ctx:     context.Background(),
		scans:   scans,
		reports: reports,
		storage: storage,
		tx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func TestGenerateReport(t *testing.T) {
	scans := newFakeScanStore()
	scan := storedScan(t, scans)
	reports := newFakeReportStore()
	storage := newFakeStorage()

	logic := newTestReportLogic(scans, reports, storage)
	result, err := logic.GenerateReport(scan.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.BlobLocation, "curated/knowledge_scan_"))
	assert.True(t, strings.HasSuffix(result.FileName, ".docx"))
	assert.Empty(t, result.DownloadURL)

	payload, err := storage.GetObject(context.Background(), result.BlobLocation)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(payload[:2]))

	stored, err := reports.GetReport(context.Background(), result.ReportID)
	require.NoError(t, err)
	assert.Equal(t, scan.ID, stored.ScanID)
	assert.Equal(t, result.BlobLocation, stored.BlobLocation)
}

func TestGenerateReportPresignsWhenSupported(t *testing.T) {
	scans := newFakeScanStore()
	scan := storedScan(t, scans)

	logic := newTestReportLogic(scans, newFakeReportStore(), &presigningStorage{newFakeStorage()})
	result, err := logic.GenerateReport(scan.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.DownloadURL, "https://blob.test/curated/"))
}

type failingUploadStorage struct {
	*fakeStorage
	uploadErr error
}

func (s *failingUploadStorage) Upload(ctx context.Context, fullPath string, body io.Reader) error {
	return s.uploadErr
}

func TestGenerateReportUploadFailurePersistsNoRow(t *testing.T) {
	scans := newFakeScanStore()
	scan := storedScan(t, scans)
	reports := newFakeReportStore()
	storage := &failingUploadStorage{fakeStorage: newFakeStorage(), uploadErr: errors.New("bucket unavailable")}

	logic := newTestReportLogic(scans, reports, storage)
	_, err := logic.GenerateReport(scan.ID)
	require.Error(t, err)
	assert.Empty(t, reports.reports)
}

func TestGenerateReportScanNotFound(t *testing.T) {
	logic := newTestReportLogic(newFakeScanStore(), newFakeReportStore(), newFakeStorage())

	_, err := logic.GenerateReport("missing")
	require.Error(t, err)

	var ce *pkgerrors.CustomizedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.GetCode())
}
