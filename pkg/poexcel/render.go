package poexcel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// render.go - the shared layout engine behind the four template functions.
// Row positions below the column header are computed from content length,
// never hard-coded, so every formula is built through cellRef/rangeRef.

const (
	logoRows        = 4
	spacerHeight    = 6.0
	colHeaderHeight = 22.0
	baseRowHeight   = 18.0
	tallRowHeight   = 30.0
	headerRow       = 10
	firstDataRow    = headerRow + 1
	printMarginRows = 2
)

var defaultBankDetails = []string{
	"Bank: First Commercial Bank",
	"Account: 0000-0000-0000",
	"SWIFT: FCBKUS33",
}

// columnSet fixes the column schema of a document variant. Indices are
// 1-based; order is zero when the variant has no order-number column.
type columnSet struct {
	headers []string
	widths  []float64

	index, order, part, desc, spec, qty, price, total, lead, notes int
}

func (c columnSet) last() int { return c.notes }

var singleColumns = columnSet{
	headers: []string{"#", "Part Number", "Description", "Specifications", "Qty", "Unit Price", "Total", "Lead Time", "Notes"},
	widths:  []float64{5, 16, 28, 36, 8, 12, 12, 12, 20},
	index:   1, part: 2, desc: 3, spec: 4, qty: 5, price: 6, total: 7, lead: 8, notes: 9,
}

var multiColumns = columnSet{
	headers: []string{"#", "Order No", "Part Number", "Description", "Specifications", "Qty", "Unit Price", "Total", "Lead Time", "Notes"},
	widths:  []float64{5, 14, 16, 28, 36, 8, 12, 12, 12, 20},
	index:   1, order: 2, part: 3, desc: 4, spec: 5, qty: 6, price: 7, total: 8, lead: 9, notes: 10,
}

// renderDocument lays out one full quote document. Single-order exports
// arrive as one OrderGroup; branded layouts add a tax line and bank block.
func renderDocument(f *excelize.File, sheet string, issuer IssuerInfo, supplier SupplierInfo, groups []OrderGroup, logo *LogoAsset, cfg *TemplateConfig, multi, branded bool) (*SheetStats, error) {
	styles, err := newSheetStyles(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating styles: %w", err)
	}

	cols := singleColumns
	if multi {
		cols = multiColumns
	}

	w := newSheetWriter(f, sheet)

	for i, header := range cols.headers {
		w.colWidth(i+1, cfg.columnWidth(header, cols.widths[i]))
	}

	writeHeaderBlock(w, styles, cols, issuer, supplier, groups, multi)

	if err := placeLogo(f, w, sheet, styles, logo); err != nil {
		return nil, err
	}

	lastData := writeItemRows(w, styles, cols, groups, multi)

	cursor := writeFooterBlock(w, styles, cols, cfg, lastData, branded)
	cursor = writeTermsBlock(w, styles, cfg, groups, cursor, branded)
	lastContent := writeSignoffBlock(w, styles, cursor)

	if err := w.Err(); err != nil {
		return nil, err
	}

	if err := applyPrintGeometry(f, sheet, cols.last(), lastContent); err != nil {
		return nil, err
	}

	return &SheetStats{
		HeaderRow:      headerRow,
		FirstDataRow:   firstDataRow,
		LastDataRow:    lastData,
		LastContentRow: lastContent,
	}, nil
}

func writeHeaderBlock(w *sheetWriter, styles *sheetStyles, cols columnSet, issuer IssuerInfo, supplier SupplierInfo, groups []OrderGroup, multi bool) {
	labelCol := cols.qty
	valueCol := cols.price
	lastCol := cols.last()

	// Logo area spans the first four rows on the left.
	w.merge(1, 1, 3, logoRows)

	w.merge(labelCol, 1, lastCol, 1)
	w.cell(labelCol, 1, "REQUEST FOR QUOTE")
	w.style(labelCol, 1, lastCol, 1, styles.title)

	metaRow := func(row int, label string, value interface{}) {
		w.cell(labelCol, row, label)
		w.style(labelCol, row, labelCol, row, styles.label)
		w.merge(valueCol, row, lastCol, row)
		w.cell(valueCol, row, value)
		w.style(valueCol, row, valueCol, row, styles.value)
	}

	if multi {
		numbers := make([]string, len(groups))
		for i, g := range groups {
			numbers[i] = g.Order.OrderNumber
		}
		metaRow(2, "Orders:", len(groups))
		metaRow(3, "Order Numbers:", strings.Join(numbers, ", "))
		metaRow(4, "Earliest Order Date:", formatDate(earliestOrderDate(groups)))
	} else {
		order := groups[0].Order
		metaRow(2, "Order No:", order.OrderNumber)
		metaRow(3, "Order Date:", formatDate(order.OrderDate))
		metaRow(4, "Expected Delivery:", formatDate(order.ExpectedDelivery))
	}

	w.rowHeight(5, spacerHeight)

	// Rows 6-8: the issuing company on the left, the addressed supplier on
	// the right. The terms block later refers back to the issuer address.
	issuerRow := func(row int, label, value string) {
		w.cell(1, row, label)
		w.style(1, row, 1, row, styles.label)
		w.merge(2, row, 3, row)
		w.cell(2, row, value)
		w.style(2, row, 2, row, styles.value)
	}
	supplierRow := func(row int, label, value, farLabel, farValue string) {
		w.cell(labelCol, row, label)
		w.style(labelCol, row, labelCol, row, styles.label)
		w.merge(valueCol, row, cols.total, row)
		w.cell(valueCol, row, value)
		w.style(valueCol, row, valueCol, row, styles.value)

		w.cell(cols.lead, row, farLabel)
		w.style(cols.lead, row, cols.lead, row, styles.label)
		w.cell(cols.notes, row, farValue)
		w.style(cols.notes, row, cols.notes, row, styles.value)
	}

	issuerRow(6, "From:", issuer.Name)
	issuerRow(7, "Address:", issuer.Address)
	issuerRow(8, "Contact:", issuerContact(issuer))

	supplierRow(6, "Supplier:", supplier.Name, "Contact:", supplier.ContactPerson)
	supplierRow(7, "Address:", supplier.Address, "Email:", supplier.Email)
	supplierRow(8, "Payment Terms:", supplier.PaymentTerms, "Phone:", supplier.Phone)

	w.rowHeight(9, spacerHeight)

	for i, header := range cols.headers {
		w.cell(i+1, headerRow, header)
	}
	w.style(1, headerRow, lastCol, headerRow, styles.colHeader)
	w.rowHeight(headerRow, colHeaderHeight)
}

func placeLogo(f *excelize.File, w *sheetWriter, sheet string, styles *sheetStyles, logo *LogoAsset) error {
	if w.Err() != nil {
		return w.Err()
	}
	if logo == nil {
		w.cell(1, 1, "[ company logo ]")
		w.style(1, 1, 1, 1, styles.terms)
		return w.Err()
	}

	scale := 1.0
	if logo.Width > 0 {
		if s := 200.0 / float64(logo.Width); s < scale {
			scale = s
		}
	}
	if logo.Height > 0 {
		if s := 76.0 / float64(logo.Height); s < scale {
			scale = s
		}
	}

	return f.AddPictureFromBytes(sheet, "A1", &excelize.Picture{
		Extension: logo.Extension,
		File:      logo.Data,
		Format:    &excelize.GraphicOptions{ScaleX: scale, ScaleY: scale},
	})
}

// writeItemRows emits one row per line item, grouped by order in input
// order, and returns the last data row index.
func writeItemRows(w *sheetWriter, styles *sheetStyles, cols columnSet, groups []OrderGroup, multi bool) int {
	row := firstDataRow
	ordinal := 0

	for _, group := range groups {
		for _, item := range group.Items {
			ordinal++

			w.cell(cols.index, row, ordinal)
			if multi {
				w.cell(cols.order, row, group.Order.OrderNumber)
			}
			w.cell(cols.part, row, item.PartNumber)
			w.cell(cols.desc, row, itemDescription(item))

			specs := flattenSpecs(item.Specifications)
			w.cell(cols.spec, row, specs)
			w.cell(cols.qty, row, item.Quantity)

			// Unit price stays blank for the supplier; only the line total
			// is a formula over the adjacent quantity and price cells.
			w.formula(cols.total, row, fmt.Sprintf("%s*%s", cellRef(cols.qty, row), cellRef(cols.price, row)))

			w.style(cols.index, row, cols.qty, row, styles.dataStyle(ordinal))
			w.style(cols.price, row, cols.price, row, styles.editable)
			w.style(cols.total, row, cols.total, row, styles.formula)
			w.style(cols.lead, row, cols.notes, row, styles.editable)

			if len(specs) > specWrapThreshold {
				w.rowHeight(row, tallRowHeight)
			} else {
				w.rowHeight(row, baseRowHeight)
			}

			row++
		}
	}

	return row - 1
}

func issuerContact(issuer IssuerInfo) string {
	parts := make([]string, 0, 2)
	if issuer.Email != "" {
		parts = append(parts, issuer.Email)
	}
	if issuer.Phone != "" {
		parts = append(parts, issuer.Phone)
	}
	return strings.Join(parts, " / ")
}

func itemDescription(item LineItem) string {
	if item.Description == "" {
		return item.Name
	}
	return item.Name + " - " + item.Description
}

// writeFooterBlock emits subtotal/shipping/(tax)/grand-total rows and
// returns the grand-total row index. Every amount is a formula over cell
// addresses, never a recomputed literal.
func writeFooterBlock(w *sheetWriter, styles *sheetStyles, cols columnSet, cfg *TemplateConfig, lastData int, branded bool) int {
	labelCol := cols.total - 1
	sub := lastData + 2

	w.cell(labelCol, sub, "Subtotal:")
	w.style(labelCol, sub, labelCol, sub, styles.footerLabel)
	w.formula(cols.total, sub, fmt.Sprintf("SUM(%s)", rangeRef(cols.total, firstDataRow, cols.total, lastData)))
	w.style(cols.total, sub, cols.total, sub, styles.footerTotal)

	ship := sub + 1
	w.cell(labelCol, ship, "Shipping:")
	w.style(labelCol, ship, labelCol, ship, styles.footerLabel)
	w.style(cols.total, ship, cols.total, ship, styles.editable)

	grand := ship + 1
	grandFormula := fmt.Sprintf("%s+%s", cellRef(cols.total, sub), cellRef(cols.total, ship))

	if branded {
		rate := cfg.EffectiveTaxRate()
		tax := ship + 1
		grand = tax + 1

		w.cell(labelCol, tax, fmt.Sprintf("Tax (%s%%):", strconv.FormatFloat(rate*100, 'f', -1, 64)))
		w.style(labelCol, tax, labelCol, tax, styles.footerLabel)
		w.formula(cols.total, tax, fmt.Sprintf("%s*%s", cellRef(cols.total, sub), strconv.FormatFloat(rate, 'f', -1, 64)))
		w.style(cols.total, tax, cols.total, tax, styles.formula)

		grandFormula = fmt.Sprintf("%s+%s+%s", cellRef(cols.total, sub), cellRef(cols.total, ship), cellRef(cols.total, tax))
	}

	w.cell(labelCol, grand, "Grand Total:")
	w.style(labelCol, grand, labelCol, grand, styles.footerLabel)
	w.formula(cols.total, grand, grandFormula)
	w.style(cols.total, grand, cols.total, grand, styles.footerTotal)

	return grand
}

func writeTermsBlock(w *sheetWriter, styles *sheetStyles, cfg *TemplateConfig, groups []OrderGroup, grandRow int, branded bool) int {
	row := grandRow + 2
	w.cell(1, row, "Terms & Conditions")
	w.style(1, row, 1, row, styles.label)

	deadline := quoteDeadline(earliestOrderDate(groups))
	lines := []string{
		fmt.Sprintf("Please return your quotation by %s.", formatDate(deadline)),
		"Unit prices must include packaging and delivery to the address above.",
		"State lead time and price validity for every line item.",
	}
	for _, line := range lines {
		row++
		w.cell(1, row, line)
		w.style(1, row, 1, row, styles.terms)
	}

	if branded {
		bank := cfg.BankDetails
		if len(bank) == 0 {
			bank = defaultBankDetails
		}
		row += 2
		w.cell(1, row, "Remit to")
		w.style(1, row, 1, row, styles.label)
		for _, line := range bank {
			row++
			w.cell(1, row, line)
			w.style(1, row, 1, row, styles.terms)
		}
	}

	return row
}

func writeSignoffBlock(w *sheetWriter, styles *sheetStyles, cursor int) int {
	row := cursor + 2
	for _, line := range []string{
		"Quoted by: _________________________",
		"Signature: _________________________",
		"Date: _________________________",
	} {
		w.cell(1, row, line)
		w.style(1, row, 1, row, styles.value)
		row++
	}
	return row - 1
}

func applyPrintGeometry(f *excelize.File, sheet string, lastCol, lastContent int) error {
	orientation := "landscape"
	fitToWidth, fitToHeight := 1, 0
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		FitToWidth:  &fitToWidth,
		FitToHeight: &fitToHeight,
	}); err != nil {
		return fmt.Errorf("setting page layout: %w", err)
	}

	return f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!$A$1:$%s$%d", sheet, columnName(lastCol), lastContent+printMarginRows),
		Scope:    sheet,
	})
}
