package store

import (
	"context"

	"github.com/knowscan-ai/knowscan/pkg/sqlstore"
	"github.com/knowscan-ai/knowscan/pkg/types"
)

// ScanRecordStore is the search-index collaborator: enriched chunk records
// keyed by id, with an exact-match lookup on the chunk file name.
type ScanRecordStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ScanRecord) error
	GetRecord(ctx context.Context, id string) (*types.ScanRecord, error)
	GetByFileName(ctx context.Context, fileName string) (*types.ScanRecord, error)
	ListByBaseName(ctx context.Context, baseName string) ([]*types.ScanRecord, error)
}

// KnowledgeScanStore persists aggregation results. Scans are created once
// and never updated.
type KnowledgeScanStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.KnowledgeScan) error
	GetScan(ctx context.Context, id string) (*types.KnowledgeScan, error)
}

type ScanReportStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ScanReport) error
	GetReport(ctx context.Context, id string) (*types.ScanReport, error)
}

type Store interface {
	ScanRecordStore() ScanRecordStore
	KnowledgeScanStore() KnowledgeScanStore
	ScanReportStore() ScanReportStore
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
