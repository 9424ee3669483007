package poexcel

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Worksheet names for the two document shapes
const (
	SingleSheetName = "Purchase Order"
	MultiSheetName  = "Combined Orders"
)

var (
	// ErrNoItems is returned when an export model arrives without line
	// items; validation upstream should have rejected it already.
	ErrNoItems = errors.New("export model has no line items")
	// ErrNoGroups is returned for a combined export without orders
	ErrNoGroups = errors.New("export model has no orders")
)

// BuildSingleWorkbook renders a one-order export into xlsx bytes. The
// caller-supplied template override loses to the supplier's own setting.
func BuildSingleWorkbook(ctx context.Context, exp *SingleExport, templateOverride string, logos *LogoCache) ([]byte, error) {
	if len(exp.Items) == 0 {
		return nil, ErrNoItems
	}

	templateType := ResolveTemplateType(exp.Supplier.TemplateType, templateOverride)
	render := templateFor(templateType).single

	return buildWorkbook(ctx, SingleSheetName, templateType, exp.Supplier, logos, 0,
		func(f *excelize.File, sheet string, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error) {
			return render(f, sheet, exp, logo, cfg)
		})
}

// BuildMultiWorkbook renders a combined export into xlsx bytes. Multi
// sheets also freeze the leading index and order-number columns.
func BuildMultiWorkbook(ctx context.Context, exp *MultiExport, templateOverride string, logos *LogoCache) ([]byte, error) {
	if len(exp.Groups) == 0 {
		return nil, ErrNoGroups
	}
	for _, g := range exp.Groups {
		if len(g.Items) == 0 {
			return nil, ErrNoItems
		}
	}

	templateType := ResolveTemplateType(exp.Supplier.TemplateType, templateOverride)
	render := templateFor(templateType).multi

	return buildWorkbook(ctx, MultiSheetName, templateType, exp.Supplier, logos, 2,
		func(f *excelize.File, sheet string, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error) {
			return render(f, sheet, exp, logo, cfg)
		})
}

func buildWorkbook(ctx context.Context, sheet, templateType string, supplier SupplierInfo, logos *LogoCache, freezeCols int, render func(*excelize.File, string, *LogoAsset, *TemplateConfig) (*SheetStats, error)) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming worksheet: %w", err)
	}

	var logo *LogoAsset
	if logos != nil {
		logo, _ = logos.Load(ctx, templateType)
	}

	cfg := ParseTemplateConfig(supplier.TemplateConfig)

	stats, err := render(f, sheet, logo, cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering %s template: %w", templateType, err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      freezeCols,
		YSplit:      stats.HeaderRow,
		TopLeftCell: cellRef(freezeCols+1, stats.HeaderRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("setting freeze panes: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
