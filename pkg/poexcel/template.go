package poexcel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Template identifiers. Anything else falls back to the generic layout so
// a misconfigured supplier can still be exported.
const (
	DefaultTemplateType = "generic"
	BrandedTemplateType = "branded"
)

// SingleTemplateFunc lays a one-order export onto a worksheet
type SingleTemplateFunc func(f *excelize.File, sheet string, exp *SingleExport, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error)

// MultiTemplateFunc lays a combined export onto a worksheet
type MultiTemplateFunc func(f *excelize.File, sheet string, exp *MultiExport, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error)

type templateEntry struct {
	single SingleTemplateFunc
	multi  MultiTemplateFunc
}

var templates = map[string]templateEntry{
	DefaultTemplateType: {single: GenericSingleTemplate, multi: GenericMultiTemplate},
	BrandedTemplateType: {single: BrandedSingleTemplate, multi: BrandedMultiTemplate},
}

// NormalizeTemplateType canonicalizes a template identifier
func NormalizeTemplateType(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// ResolveTemplateType picks the effective template identifier. The
// supplier record wins over the caller-supplied override, and the generic
// layout is the last resort.
func ResolveTemplateType(supplierType, callerType string) string {
	if t := NormalizeTemplateType(supplierType); t != "" {
		return t
	}
	if t := NormalizeTemplateType(callerType); t != "" {
		return t
	}
	return DefaultTemplateType
}

// templateFor maps an identifier to its template pair, defaulting unknown
// identifiers to generic rather than failing.
func templateFor(identifier string) templateEntry {
	if entry, ok := templates[NormalizeTemplateType(identifier)]; ok {
		return entry
	}
	return templates[DefaultTemplateType]
}

// sheetWriter wraps an excelize file and records the first error so layout
// code can stay linear instead of checking every SetCellValue call.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet}
}

func (w *sheetWriter) Err() error {
	return w.err
}

func (w *sheetWriter) cell(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, cellRef(col, row), value); err != nil {
		w.err = fmt.Errorf("setting cell %s: %w", cellRef(col, row), err)
	}
}

func (w *sheetWriter) formula(col, row int, formula string) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellFormula(w.sheet, cellRef(col, row), formula); err != nil {
		w.err = fmt.Errorf("setting formula at %s: %w", cellRef(col, row), err)
	}
}

func (w *sheetWriter) style(startCol, startRow, endCol, endRow, styleID int) {
	if w.err != nil || styleID == 0 {
		return
	}
	if err := w.f.SetCellStyle(w.sheet, cellRef(startCol, startRow), cellRef(endCol, endRow), styleID); err != nil {
		w.err = fmt.Errorf("styling range %s: %w", rangeRef(startCol, startRow, endCol, endRow), err)
	}
}

func (w *sheetWriter) merge(startCol, startRow, endCol, endRow int) {
	if w.err != nil {
		return
	}
	if err := w.f.MergeCell(w.sheet, cellRef(startCol, startRow), cellRef(endCol, endRow)); err != nil {
		w.err = fmt.Errorf("merging range %s: %w", rangeRef(startCol, startRow, endCol, endRow), err)
	}
}

func (w *sheetWriter) rowHeight(row int, height float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetRowHeight(w.sheet, row, height); err != nil {
		w.err = fmt.Errorf("setting height of row %d: %w", row, err)
	}
}

func (w *sheetWriter) colWidth(col int, width float64) {
	if w.err != nil {
		return
	}
	name := columnName(col)
	if err := w.f.SetColWidth(w.sheet, name, name, width); err != nil {
		w.err = fmt.Errorf("setting width of column %s: %w", name, err)
	}
}
