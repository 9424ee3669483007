package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/procurehub/procurement-gateway/internal/domain"
	"github.com/procurehub/procurement-gateway/internal/repository/builder"
)

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new instance of HistoryStore
func NewHistoryRepository(db *sql.DB) domain.HistoryStore {
	return &historyRepository{db: db}
}

// Append writes one ledger row. The ledger is append-only; there is no
// update or delete path.
func (r *historyRepository) Append(ctx context.Context, rec *domain.ExportHistoryRecord) error {
	b := builder.NewSQLBuilder()
	query, args := b.Insert("export_history", "order_id", "export_type", "exported_by", "filename", "exported_at").
		Values(rec.OrderID, rec.ExportType, rec.ExportedBy, rec.Filename, rec.ExportedAt).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("appending export history for order %d: %w", rec.OrderID, err)
	}
	return nil
}

// historyPageSize caps a ledger lookup; the endpoint serves recent
// activity, not a full archive dump.
const historyPageSize = 100

// ListByOrder returns the ledger rows for one order, newest first
func (r *historyRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.ExportHistoryRecord, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("order_id", "export_type", "exported_by", "filename", "exported_at").
		From("export_history").
		Where("order_id = ?", orderID).
		OrderBy("exported_at DESC").
		Limit(historyPageSize).
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing export history for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var records []domain.ExportHistoryRecord
	for rows.Next() {
		var rec domain.ExportHistoryRecord
		if err := rows.Scan(&rec.OrderID, &rec.ExportType, &rec.ExportedBy, &rec.Filename, &rec.ExportedAt); err != nil {
			return nil, fmt.Errorf("scanning export history of order %d: %w", orderID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export history of order %d: %w", orderID, err)
	}
	return records, nil
}
