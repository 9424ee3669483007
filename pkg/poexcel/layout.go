package poexcel

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// layout.go - coordinate math and formatting primitives shared by every
// template. Formulas are always built from computed addresses because row
// counts vary with content length.

const (
	dateLayout         = "2006-01-02"
	specWrapThreshold  = 50
	quoteDeadlineDays  = 14
	maxFilenameOrders  = 3
	filenameDateLayout = "2006-01-02"
)

// columnName converts a 1-based column index to its Excel letter name
func columnName(index int) string {
	name := ""
	for index > 0 {
		index--
		name = string(rune('A'+index%26)) + name
		index /= 26
	}
	return name
}

// cellRef composes a cell address from 1-based column and row indices
func cellRef(col, row int) string {
	return columnName(col) + fmt.Sprintf("%d", row)
}

// rangeRef composes a rectangular range address
func rangeRef(startCol, startRow, endCol, endRow int) string {
	return cellRef(startCol, startRow) + ":" + cellRef(endCol, endRow)
}

// formatDate renders a date for display cells
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// flattenSpecs renders a specification mapping as a single display string.
// Keys are sorted so two exports of the same item are byte-identical.
func flattenSpecs(specs map[string]string) string {
	if len(specs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+specs[k])
	}
	return strings.Join(parts, "; ")
}

// quoteDeadline is the date by which the supplier must return a quote
func quoteDeadline(orderDate time.Time) time.Time {
	return orderDate.AddDate(0, 0, quoteDeadlineDays)
}

// earliestOrderDate picks the deadline anchor for a combined document
func earliestOrderDate(groups []OrderGroup) time.Time {
	var earliest time.Time
	for _, g := range groups {
		if earliest.IsZero() || g.Order.OrderDate.Before(earliest) {
			earliest = g.Order.OrderDate
		}
	}
	return earliest
}

// SanitizeName reduces a supplier name to a filename-safe charset
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
}

// Filename builds the attachment filename for an export. Up to three order
// numbers are listed verbatim; larger batches collapse to a count.
func Filename(supplierName string, orderNumbers []string, date time.Time) string {
	supplier := SanitizeName(supplierName)

	var middle string
	if len(orderNumbers) > maxFilenameOrders {
		middle = fmt.Sprintf("Combined_%d_Orders", len(orderNumbers))
	} else {
		sanitized := make([]string, len(orderNumbers))
		for i, n := range orderNumbers {
			sanitized[i] = SanitizeName(n)
		}
		middle = strings.Join(sanitized, "_")
	}

	return fmt.Sprintf("PO_Request_%s_%s_%s.xlsx", supplier, middle, date.Format(filenameDateLayout))
}
