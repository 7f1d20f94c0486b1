package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/knowscan-ai/knowscan/pkg/types"
)

type KnowledgeScanStore struct {
	CommonFields
}

func NewKnowledgeScanStore(provider SqlProviderAchieve) *KnowledgeScanStore {
	store := &KnowledgeScanStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_KNOWLEDGE_SCAN)
	store.SetAllColumns("id", "query", "combined_summaries", "overall_summary", "general_notes", "keywords", "resources_searched", "created_at")
	return store
}

func (s *KnowledgeScanStore) Create(ctx context.Context, data types.KnowledgeScan) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "query", "combined_summaries", "overall_summary", "general_notes", "keywords", "resources_searched", "created_at").
		Values(data.ID, data.Query, data.CombinedSummaries, data.OverallSummary, data.GeneralNotes, pq.Array(data.Keywords), pq.Array(data.ResourcesSearched), data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *KnowledgeScanStore) GetScan(ctx context.Context, id string) (*types.KnowledgeScan, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.KnowledgeScan
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}
