package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/procurehub/procurement-gateway/internal/domain"
	"github.com/procurehub/procurement-gateway/internal/logger"
)

// HistorySearch is an optional search backend for ledger lookups. When it
// fails or is absent, the relational ledger is the source of truth.
type HistorySearch interface {
	SearchByOrder(ctx context.Context, orderID int64) ([]domain.ExportHistoryRecord, error)
}

type HistoryHandler struct {
	store  domain.HistoryStore
	search HistorySearch
}

// NewHistoryHandler wires the ledger lookup endpoint. search may be nil.
func NewHistoryHandler(store domain.HistoryStore, search HistorySearch) *HistoryHandler {
	return &HistoryHandler{store: store, search: search}
}

// GetOrderExports returns the export-history rows recorded for one order
func (h *HistoryHandler) GetOrderExports(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responseError(c, http.StatusBadRequest, "Invalid order id", err)
	}

	ctx := c.Request().Context()

	if h.search != nil {
		records, err := h.search.SearchByOrder(ctx, orderID)
		if err == nil {
			return c.JSON(http.StatusOK, normalizeRecords(records))
		}
		logger.WarnLog(ctx, "history search failed for order %d, reading ledger: %v", orderID, err)
	}

	records, err := h.store.ListByOrder(ctx, orderID)
	if err != nil {
		return responseError(c, http.StatusInternalServerError, "Failed to read export history", err)
	}
	return c.JSON(http.StatusOK, normalizeRecords(records))
}

// normalizeRecords keeps the empty-ledger response a JSON array, not null
func normalizeRecords(records []domain.ExportHistoryRecord) []domain.ExportHistoryRecord {
	if records == nil {
		return []domain.ExportHistoryRecord{}
	}
	return records
}
