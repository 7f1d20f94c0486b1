package sqlstore

import (
	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/knowscan-ai/knowscan/app/store"
	"github.com/knowscan-ai/knowscan/pkg/sqlstore"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.ScanRecordStore
	store.KnowledgeScanStore
	store.ScanReportStore
}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) *Provider {
	provider := &Provider{
		SqlProvider: sqlstore.MustSetupProvider(m, s...),
		stores:      &Stores{},
	}

	provider.stores.ScanRecordStore = NewScanRecordStore(provider)
	provider.stores.KnowledgeScanStore = NewKnowledgeScanStore(provider)
	provider.stores.ScanReportStore = NewScanReportStore(provider)

	return provider
}

func (p *Provider) ScanRecordStore() store.ScanRecordStore {
	return p.stores.ScanRecordStore
}

func (p *Provider) KnowledgeScanStore() store.KnowledgeScanStore {
	return p.stores.KnowledgeScanStore
}

func (p *Provider) ScanReportStore() store.ScanReportStore {
	return p.stores.ScanReportStore
}
