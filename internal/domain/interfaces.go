package domain

import "context"

// OrderReader defines the read-side data access the export engine needs
type OrderReader interface {
	GetOrder(ctx context.Context, id int64) (*Order, error)
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	GetOrderParts(ctx context.Context, orderID int64) ([]Part, error)
}

// HistoryWriter appends rows to the export-history ledger
type HistoryWriter interface {
	Append(ctx context.Context, rec *ExportHistoryRecord) error
}

// HistoryStore is the full ledger access: append plus per-order lookup
type HistoryStore interface {
	HistoryWriter
	ListByOrder(ctx context.Context, orderID int64) ([]ExportHistoryRecord, error)
}
