package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/procurehub/procurement-gateway/internal/domain"
	"github.com/procurehub/procurement-gateway/internal/logger"
	"github.com/procurehub/procurement-gateway/pkg/poexcel"
)

// HistorySearcher mirrors ledger rows into a search backend. Optional;
// failures are swallowed the same way audit-write failures are.
type HistorySearcher interface {
	IndexRecord(ctx context.Context, rec *domain.ExportHistoryRecord) error
}

// ExportService turns purchase orders into supplier-ready quote
// workbooks. Every invocation is one-shot and stateless apart from the
// process-wide logo cache.
type ExportService struct {
	orders   domain.OrderReader
	history  domain.HistoryWriter
	searcher HistorySearcher
	logos    *poexcel.LogoCache
	issuer   poexcel.IssuerInfo
	maxBatch int

	now func() time.Time
}

// NewExportService wires the export engine. searcher may be nil.
func NewExportService(orders domain.OrderReader, history domain.HistoryWriter, searcher HistorySearcher, logos *poexcel.LogoCache, issuer poexcel.IssuerInfo, maxBatch int) *ExportService {
	if maxBatch <= 0 {
		maxBatch = 10
	}
	return &ExportService{
		orders:   orders,
		history:  history,
		searcher: searcher,
		logos:    logos,
		issuer:   issuer,
		maxBatch: maxBatch,
		now:      time.Now,
	}
}

// MaxBatch reports the configured batch ceiling
func (s *ExportService) MaxBatch() int {
	return s.maxBatch
}

// ExportSingle renders one order into a quote workbook and records the
// export in the history ledger.
func (s *ExportService) ExportSingle(ctx context.Context, orderID int64, templateOverride, exportedBy string) (*domain.ExportResult, error) {
	bundle, err := s.assembleOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	exp := &poexcel.SingleExport{
		Order:    toOrderInfo(bundle.Order),
		Issuer:   s.issuer,
		Supplier: toSupplierInfo(*bundle.Supplier),
		Items:    toLineItems(bundle.Parts),
	}

	data, err := poexcel.BuildSingleWorkbook(ctx, exp, templateOverride, s.logos)
	if err != nil {
		return nil, fmt.Errorf("building workbook for order %d: %w", orderID, err)
	}

	filename := poexcel.Filename(bundle.Supplier.Name, []string{bundle.Order.OrderNumber}, s.now().UTC())
	s.recordHistory(ctx, []*domain.OrderBundle{bundle}, "single", exportedBy, filename)

	return &domain.ExportResult{Filename: filename, Data: data}, nil
}

// ExportBatch renders a batch of orders into one combined workbook. All
// orders must belong to one supplier; a single fetch failure aborts the
// whole batch before any layout work.
func (s *ExportService) ExportBatch(ctx context.Context, orderIDs []int64, templateOverride, exportedBy string) (*domain.ExportResult, error) {
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("%w: no order ids", domain.ErrBadRequest)
	}
	if len(orderIDs) > s.maxBatch {
		return nil, fmt.Errorf("%w: at most %d orders per export", domain.ErrBatchTooLarge, s.maxBatch)
	}

	bundles, err := s.assembleOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	if err := validateSupplierGroup(bundles); err != nil {
		return nil, err
	}

	supplier := *bundles[0].Supplier
	exp := &poexcel.MultiExport{Issuer: s.issuer, Supplier: toSupplierInfo(supplier)}
	numbers := make([]string, 0, len(bundles))
	for _, b := range bundles {
		exp.Groups = append(exp.Groups, poexcel.OrderGroup{
			Order: toOrderInfo(b.Order),
			Items: toLineItems(b.Parts),
		})
		numbers = append(numbers, b.Order.OrderNumber)
	}

	data, err := poexcel.BuildMultiWorkbook(ctx, exp, templateOverride, s.logos)
	if err != nil {
		return nil, fmt.Errorf("building combined workbook: %w", err)
	}

	filename := poexcel.Filename(supplier.Name, numbers, s.now().UTC())
	s.recordHistory(ctx, bundles, "multi", exportedBy, filename)

	return &domain.ExportResult{Filename: filename, Data: data}, nil
}

// assembleOrder is the composite read for one order. Integrity failures
// (missing order, no supplier, no parts) surface before any layout work.
func (s *ExportService) assembleOrder(ctx context.Context, orderID int64) (*domain.OrderBundle, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.SupplierID.Valid {
		return nil, fmt.Errorf("order %s: %w", order.OrderNumber, domain.ErrNoSupplier)
	}
	supplier, err := s.orders.GetSupplier(ctx, order.SupplierID.Int64)
	if err != nil {
		return nil, err
	}

	parts, err := s.orders.GetOrderParts(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("order %s: %w", order.OrderNumber, domain.ErrNoParts)
	}

	return &domain.OrderBundle{Order: *order, Supplier: supplier, Parts: parts}, nil
}

type assembleResult struct {
	idx    int
	bundle *domain.OrderBundle
	err    error
}

// assembleOrders fans the composite reads out concurrently and waits for
// all of them; any failure fails the batch. Results keep request order.
func (s *ExportService) assembleOrders(ctx context.Context, orderIDs []int64) ([]*domain.OrderBundle, error) {
	results := make(chan assembleResult, len(orderIDs))
	var wg sync.WaitGroup

	for i, id := range orderIDs {
		wg.Add(1)
		go func(idx int, orderID int64) {
			defer wg.Done()
			bundle, err := s.assembleOrder(ctx, orderID)
			results <- assembleResult{idx: idx, bundle: bundle, err: err}
		}(i, id)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	bundles := make([]*domain.OrderBundle, len(orderIDs))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		bundles[res.idx] = res.bundle
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return bundles, nil
}

// validateSupplierGroup enforces the batching invariant: every order in
// one export must belong to the same supplier.
func validateSupplierGroup(bundles []*domain.OrderBundle) error {
	seen := make(map[int64]string)
	for _, b := range bundles {
		seen[b.Supplier.ID] = b.Supplier.Name
	}
	if len(seen) > 1 {
		names := make([]string, 0, len(seen))
		for _, name := range seen {
			names = append(names, name)
		}
		return fmt.Errorf("%w: %v", domain.ErrMixedSuppliers, names)
	}
	return nil
}

// recordHistory writes one ledger row per order. The export response is
// authoritative; audit failures are logged and discarded.
func (s *ExportService) recordHistory(ctx context.Context, bundles []*domain.OrderBundle, exportType, exportedBy, filename string) {
	exportedAt := s.now().UTC()
	for _, b := range bundles {
		rec := &domain.ExportHistoryRecord{
			OrderID:    b.Order.ID,
			ExportType: exportType,
			ExportedBy: exportedBy,
			Filename:   filename,
			ExportedAt: exportedAt,
		}
		if s.history != nil {
			if err := s.history.Append(ctx, rec); err != nil {
				logger.WarnLog(ctx, "export history write failed for order %d: %v", b.Order.ID, err)
			}
		}
		if s.searcher != nil {
			if err := s.searcher.IndexRecord(ctx, rec); err != nil {
				logger.WarnLog(ctx, "export history indexing failed for order %d: %v", b.Order.ID, err)
			}
		}
	}
}

func toOrderInfo(o domain.Order) poexcel.OrderInfo {
	return poexcel.OrderInfo{
		OrderNumber:      o.OrderNumber,
		OrderDate:        o.OrderDate,
		ExpectedDelivery: o.ExpectedDelivery,
		Notes:            o.Notes,
		Priority:         o.Priority,
		Status:           o.Status,
	}
}

func toSupplierInfo(s domain.Supplier) poexcel.SupplierInfo {
	return poexcel.SupplierInfo{
		Name:           s.Name,
		ContactPerson:  s.ContactPerson,
		Email:          s.Email,
		Phone:          s.Phone,
		Address:        s.Address,
		PaymentTerms:   s.PaymentTerms,
		TemplateType:   s.TemplateType,
		TemplateConfig: s.TemplateConfig,
	}
}

func toLineItems(parts []domain.Part) []poexcel.LineItem {
	items := make([]poexcel.LineItem, len(parts))
	for i, p := range parts {
		items[i] = poexcel.LineItem{
			PartNumber:     p.PartNumber,
			Name:           p.Name,
			Description:    p.Description,
			Specifications: p.Specifications,
			Quantity:       p.Quantity,
			UnitPrice:      p.UnitPrice,
		}
	}
	return items
}
