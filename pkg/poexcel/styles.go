package poexcel

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetStyles holds the style IDs a template needs, created once per sheet.
// Colors come from the supplier TemplateConfig with built-in defaults.
type sheetStyles struct {
	title       int
	label       int
	value       int
	colHeader   int
	dataEven    int
	dataOdd     int
	editable    int
	formula     int
	footerLabel int
	footerTotal int
	terms       int
}

func hexColor(c string) string {
	return strings.TrimPrefix(c, "#")
}

func newSheetStyles(f *excelize.File, cfg *TemplateConfig) (*sheetStyles, error) {
	s := &sheetStyles{}
	var err error

	thinBorder := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
	}

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Family: "Arial", Color: hexColor(cfg.HeaderColor)},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	}); err != nil {
		return nil, err
	}

	if s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return nil, err
	}

	if s.value, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	}); err != nil {
		return nil, err
	}

	if s.colHeader, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Family: "Arial", Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(cfg.HeaderColor)}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}

	if s.dataEven, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}

	if s.dataOdd, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(cfg.AccentColor)}},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}

	// Cells the supplier fills in: unit price, lead time, notes.
	if s.editable, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF2CC"}},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}

	numFmt := "#,##0.00"
	if s.formula, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10, Family: "Arial"},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:       thinBorder,
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}

	if s.footerLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	}); err != nil {
		return nil, err
	}

	if s.footerTotal, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11, Family: "Arial"},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       thinBorder,
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}

	if s.terms, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Family: "Arial", Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// dataStyle picks the shading style by item ordinal parity
func (s *sheetStyles) dataStyle(ordinal int) int {
	if ordinal%2 == 1 {
		return s.dataOdd
	}
	return s.dataEven
}
