package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/knowscan-ai/knowscan/pkg/types"
)

type ScanReportStore struct {
	CommonFields
}

func NewScanReportStore(provider SqlProviderAchieve) *ScanReportStore {
	store := &ScanReportStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_SCAN_REPORT)
	store.SetAllColumns("id", "scan_id", "file_name", "blob_location", "created_at")
	return store
}

func (s *ScanReportStore) Create(ctx context.Context, data types.ScanReport) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "scan_id", "file_name", "blob_location", "created_at").
		Values(data.ID, data.ScanID, data.FileName, data.BlobLocation, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ScanReportStore) GetReport(ctx context.Context, id string) (*types.ScanReport, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ScanReport
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}
