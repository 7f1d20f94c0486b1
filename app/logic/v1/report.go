package v1

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/knowscan-ai/knowscan/app/core"
	"github.com/knowscan-ai/knowscan/app/store"
	pkgerrors "github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/report"
	"github.com/knowscan-ai/knowscan/pkg/types"
	"github.com/knowscan-ai/knowscan/pkg/utils"
)

type ReportLogic struct {
	ctx  context.Context
	core *core.Core

	scans   store.KnowledgeScanStore
	reports store.ScanReportStore
	storage ObjectStorage
	tx      func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewReportLogic(ctx context.Context, c *core.Core) *ReportLogic {
	return &ReportLogic{
		ctx:     ctx,
		core:    c,
		scans:   c.Store().KnowledgeScanStore(),
		reports: c.Store().ScanReportStore(),
		storage: c.ObjectStorage(),
		tx:      c.Store().Transaction,
	}
}

type ReportResult struct {
	ReportID     string `json:"report_id"`
	FileName     string `json:"file_name"`
	BlobLocation string `json:"blob_location"`
	DownloadURL  string `json:"download_url,omitempty"`
}

// GenerateReport renders a stored knowledge scan into a Word document and
// uploads it under the curated prefix.
func (l *ReportLogic) GenerateReport(scanID string) (*ReportResult, error) {
	scan, err := l.scans.GetScan(l.ctx, scanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkgerrors.New("ReportLogic.GetScan", "knowledge scan not found", err).Code(http.StatusNotFound)
		}
		return nil, pkgerrors.New("ReportLogic.GetScan", "failed to fetch knowledge scan", err)
	}

	payload, err := report.Render(scan, time.Now())
	if err != nil {
		return nil, pkgerrors.New("ReportLogic.Render", "failed to render report", err)
	}

	fileName := fmt.Sprintf("knowledge_scan_%s.docx", utils.GenSpecID())
	blobLocation := curatedPrefix + fileName
	rec := types.ScanReport{
		ID:           utils.GenSpecID(),
		ScanID:       scan.ID,
		FileName:     fileName,
		BlobLocation: blobLocation,
	}

	// Upload and insert run inside one transaction: the report row only
	// commits once the blob it points at exists.
	err = l.tx(l.ctx, func(ctx context.Context) error {
		if err := l.storage.Upload(ctx, blobLocation, bytes.NewReader(payload)); err != nil {
			return pkgerrors.New("ReportLogic.Upload", "failed to upload report", err)
		}
		if err := l.reports.Create(ctx, rec); err != nil {
			return pkgerrors.New("ReportLogic.Create", "failed to persist report", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Trace("ReportLogic.GenerateReport", err)
	}

	result := &ReportResult{
		ReportID:     rec.ID,
		FileName:     fileName,
		BlobLocation: blobLocation,
	}
	if presigner, ok := l.storage.(ObjectPresigner); ok {
		url, err := presigner.GenGetObjectPreSignURL(l.ctx, blobLocation)
		if err != nil {
			slog.Error("report presign failed",
				slog.String("blob_location", blobLocation),
				slog.String("error", err.Error()),
			)
		} else {
			result.DownloadURL = url
		}
	}

	slog.Info("scan report generated",
		slog.String("scan_id", scan.ID),
		slog.String("report_id", rec.ID),
	)
	return result, nil
}
