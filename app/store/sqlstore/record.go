package sqlstore

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/knowscan-ai/knowscan/pkg/chunk"
	"github.com/knowscan-ai/knowscan/pkg/types"
)

type ScanRecordStore struct {
	CommonFields
}

func NewScanRecordStore(provider SqlProviderAchieve) *ScanRecordStore {
	store := &ScanRecordStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_SCAN_RECORD)
	store.SetAllColumns("id", "file_name", "file_name_chunk", "content_text", "summary", "keywords", "resource", "vector", "created_at")
	return store
}

func (s *ScanRecordStore) Create(ctx context.Context, data types.ScanRecord) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "file_name", "file_name_chunk", "content_text", "summary", "keywords", "resource", "vector", "created_at").
		Values(data.ID, data.FileName, data.FileNameChunk, data.ContentText, data.Summary, pq.Array(data.Keywords), data.Resource, data.Vector, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ScanRecordStore) GetRecord(ctx context.Context, id string) (*types.ScanRecord, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ScanRecord
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *ScanRecordStore) GetByFileName(ctx context.Context, fileName string) (*types.ScanRecord, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"file_name": fileName}).Limit(1)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.ScanRecord
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// likePattern escapes LIKE metacharacters in the prefix so underscores and
// percent signs in file names match literally, then appends the wildcard.
func likePattern(prefix string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return escaper.Replace(prefix) + "%"
}

func (s *ScanRecordStore) listByBaseNameQuery(baseName string) (string, []interface{}, error) {
	return sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Expr(`file_name LIKE ? ESCAPE '\'`, likePattern(baseName+chunk.Marker))).
		OrderBy("created_at ASC").
		ToSql()
}

// ListByBaseName returns every chunk record of one source document, ordered
// by creation.
func (s *ScanRecordStore) ListByBaseName(ctx context.Context, baseName string) ([]*types.ScanRecord, error) {
	queryString, args, err := s.listByBaseNameQuery(baseName)
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []*types.ScanRecord
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
