package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/procurehub/procurement-gateway/internal/domain"
	"github.com/procurehub/procurement-gateway/pkg/poexcel"
)

type stubOrderReader struct {
	orders    map[int64]*domain.Order
	suppliers map[int64]*domain.Supplier
	parts     map[int64][]domain.Part
}

func (s *stubOrderReader) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	copied := *o
	return &copied, nil
}

func (s *stubOrderReader) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	sup, ok := s.suppliers[id]
	if !ok {
		return nil, fmt.Errorf("supplier %d: %w", id, domain.ErrNoSupplier)
	}
	copied := *sup
	return &copied, nil
}

func (s *stubOrderReader) GetOrderParts(ctx context.Context, orderID int64) ([]domain.Part, error) {
	return s.parts[orderID], nil
}

type stubHistoryWriter struct {
	mu   sync.Mutex
	recs []*domain.ExportHistoryRecord
	err  error
}

func (s *stubHistoryWriter) Append(ctx context.Context, rec *domain.ExportHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.recs = append(s.recs, rec)
	return nil
}

type stubSearcher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubSearcher) IndexRecord(ctx context.Context, rec *domain.ExportHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

var fixedNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func testOrder(id int64, number string, supplierID int64) *domain.Order {
	return &domain.Order{
		ID:               id,
		OrderNumber:      number,
		OrderDate:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ExpectedDelivery: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Priority:         "normal",
		Status:           "open",
		SupplierID:       sql.NullInt64{Int64: supplierID, Valid: supplierID > 0},
	}
}

func testParts() []domain.Part {
	return []domain.Part{
		{
			PartNumber:     "PRT-0001",
			Name:           "Hex Bolt M8",
			Description:    "Stainless steel",
			Specifications: map[string]string{"grade": "A2-70"},
			Quantity:       50,
			UnitPrice:      0.45,
		},
	}
}

func testReader() *stubOrderReader {
	return &stubOrderReader{
		orders: map[int64]*domain.Order{
			1: testOrder(1, "PO-2026-0001", 10),
			2: testOrder(2, "PO-2026-0002", 10),
			3: testOrder(3, "PO-2026-0003", 20),
			4: testOrder(4, "PO-2026-0004", 10),
			5: testOrder(5, "PO-2026-0005", 10),
			7: testOrder(7, "PO-2026-0007", 0),
			8: testOrder(8, "PO-2026-0008", 10),
		},
		suppliers: map[int64]*domain.Supplier{
			10: {ID: 10, Name: "Acme Industrial", TemplateType: "generic"},
			20: {ID: 20, Name: "Nordic Fasteners", TemplateType: "branded"},
		},
		parts: map[int64][]domain.Part{
			1: testParts(),
			2: testParts(),
			3: testParts(),
			4: testParts(),
			5: testParts(),
			7: testParts(),
		},
	}
}

func testIssuer() poexcel.IssuerInfo {
	return poexcel.IssuerInfo{
		Name:    "ProcureHub Procurement",
		Address: "1 Commerce Park, Springfield",
		Email:   "purchasing@procurehub.example.com",
		Phone:   "+1-555-0199",
	}
}

func newTestService(reader domain.OrderReader, history domain.HistoryWriter, searcher HistorySearcher) *ExportService {
	svc := NewExportService(reader, history, searcher, poexcel.NewLogoCache(nil), testIssuer(), 10)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestExportSingle(t *testing.T) {
	history := &stubHistoryWriter{}
	svc := newTestService(testReader(), history, nil)

	result, err := svc.ExportSingle(context.Background(), 1, "", "buyer1")
	require.NoError(t, err)

	assert.Equal(t, "PO_Request_Acme_Industrial_PO_2026_0001_2026-03-15.xlsx", result.Filename)
	assert.NotEmpty(t, result.Data)

	require.Len(t, history.recs, 1)
	rec := history.recs[0]
	assert.Equal(t, int64(1), rec.OrderID)
	assert.Equal(t, "single", rec.ExportType)
	assert.Equal(t, "buyer1", rec.ExportedBy)
	assert.Equal(t, result.Filename, rec.Filename)
	assert.Equal(t, fixedNow, rec.ExportedAt)
}

func TestExportSingle_IssuerInHeader(t *testing.T) {
	svc := newTestService(testReader(), &stubHistoryWriter{}, nil)

	result, err := svc.ExportSingle(context.Background(), 1, "", "buyer1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(poexcel.SingleSheetName, "B6")
	require.NoError(t, err)
	assert.Equal(t, "ProcureHub Procurement", name)

	address, err := f.GetCellValue(poexcel.SingleSheetName, "B7")
	require.NoError(t, err)
	assert.Equal(t, "1 Commerce Park, Springfield", address)
}

func TestExportSingle_OrderNotFound(t *testing.T) {
	svc := newTestService(testReader(), &stubHistoryWriter{}, nil)

	result, err := svc.ExportSingle(context.Background(), 99, "", "buyer1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Nil(t, result)
}

func TestExportSingle_NoSupplierAssigned(t *testing.T) {
	svc := newTestService(testReader(), &stubHistoryWriter{}, nil)

	// Order 7 exists but carries a NULL supplier reference.
	result, err := svc.ExportSingle(context.Background(), 7, "", "buyer1")
	assert.ErrorIs(t, err, domain.ErrNoSupplier)
	assert.Nil(t, result)
}

func TestExportSingle_NoParts(t *testing.T) {
	history := &stubHistoryWriter{}
	svc := newTestService(testReader(), history, nil)

	// Order 8 has a supplier but no line items.
	result, err := svc.ExportSingle(context.Background(), 8, "", "buyer1")
	assert.ErrorIs(t, err, domain.ErrNoParts)
	assert.Nil(t, result)
	assert.Empty(t, history.recs)
}

func TestExportSingle_AuditFailureDoesNotBlock(t *testing.T) {
	history := &stubHistoryWriter{err: errors.New("ledger down")}
	searcher := &stubSearcher{err: errors.New("index down")}
	svc := newTestService(testReader(), history, searcher)

	result, err := svc.ExportSingle(context.Background(), 1, "", "buyer1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	assert.Equal(t, 1, searcher.calls)
}

func TestExportBatch(t *testing.T) {
	history := &stubHistoryWriter{}
	svc := newTestService(testReader(), history, nil)

	result, err := svc.ExportBatch(context.Background(), []int64{1, 2}, "", "buyer1")
	require.NoError(t, err)

	assert.Equal(t, "PO_Request_Acme_Industrial_PO_2026_0001_PO_2026_0002_2026-03-15.xlsx", result.Filename)
	assert.NotEmpty(t, result.Data)

	require.Len(t, history.recs, 2)
	assert.Equal(t, "multi", history.recs[0].ExportType)
	assert.Equal(t, result.Filename, history.recs[1].Filename)
}

func TestExportBatch_LargeBatchFilename(t *testing.T) {
	svc := newTestService(testReader(), &stubHistoryWriter{}, nil)

	result, err := svc.ExportBatch(context.Background(), []int64{1, 2, 4, 5}, "", "buyer1")
	require.NoError(t, err)
	assert.Equal(t, "PO_Request_Acme_Industrial_Combined_4_Orders_2026-03-15.xlsx", result.Filename)
}

func TestExportBatch_MixedSuppliers(t *testing.T) {
	history := &stubHistoryWriter{}
	svc := newTestService(testReader(), history, nil)

	result, err := svc.ExportBatch(context.Background(), []int64{1, 3}, "", "buyer1")
	assert.ErrorIs(t, err, domain.ErrMixedSuppliers)
	assert.Nil(t, result)
	assert.Empty(t, history.recs)
}

func TestExportBatch_Empty(t *testing.T) {
	svc := newTestService(testReader(), &stubHistoryWriter{}, nil)

	_, err := svc.ExportBatch(context.Background(), nil, "", "buyer1")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestExportBatch_TooLarge(t *testing.T) {
	svc := newTestService(testReader(), &stubHistoryWriter{}, nil)

	ids := make([]int64, 11)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	_, err := svc.ExportBatch(context.Background(), ids, "", "buyer1")
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
}

func TestExportBatch_FetchFailureAborts(t *testing.T) {
	history := &stubHistoryWriter{}
	svc := newTestService(testReader(), history, nil)

	result, err := svc.ExportBatch(context.Background(), []int64{1, 99}, "", "buyer1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Nil(t, result)
	assert.Empty(t, history.recs)
}
