package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"
	"github.com/procurehub/procurement-gateway/internal/domain"
)

const historyIndex = "export_history"

// HistoryIndexer mirrors export-history records into Elasticsearch so
// back-office screens can search the ledger. Indexing is best-effort and
// sits behind the same swallow-and-log policy as the audit write itself;
// a nil indexer is valid and makes every call a no-op error.
type HistoryIndexer struct {
	client *elastic.Client
}

// NewHistoryIndexer connects to the given Elasticsearch URL
func NewHistoryIndexer(url string) (*HistoryIndexer, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("creating elasticsearch client: %w", err)
	}
	return &HistoryIndexer{client: client}, nil
}

// IndexRecord indexes one ledger row keyed by order id and timestamp
func (hi *HistoryIndexer) IndexRecord(ctx context.Context, rec *domain.ExportHistoryRecord) error {
	if hi == nil || hi.client == nil {
		return fmt.Errorf("history indexer is not configured")
	}

	_, err := hi.client.Index().
		Index(historyIndex).
		Id(fmt.Sprintf("%d-%d", rec.OrderID, rec.ExportedAt.UnixNano())).
		BodyJson(rec).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("indexing export history for order %d: %w", rec.OrderID, err)
	}
	return nil
}

// SearchByOrder returns the ledger rows recorded for one order
func (hi *HistoryIndexer) SearchByOrder(ctx context.Context, orderID int64) ([]domain.ExportHistoryRecord, error) {
	if hi == nil || hi.client == nil {
		return nil, fmt.Errorf("history indexer is not configured")
	}

	query := elastic.NewTermQuery("order_id", orderID)
	result, err := hi.client.Search().
		Index(historyIndex).
		Query(query).
		Sort("exported_at", false).
		Size(100).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching export history: %w", err)
	}

	var records []domain.ExportHistoryRecord
	for _, hit := range result.Hits.Hits {
		var rec domain.ExportHistoryRecord
		if err := json.Unmarshal(hit.Source, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
