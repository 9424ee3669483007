package poexcel

import "github.com/xuri/excelize/v2"

// GenericSingleTemplate is the default one-order layout
func GenericSingleTemplate(f *excelize.File, sheet string, exp *SingleExport, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error) {
	groups := []OrderGroup{{Order: exp.Order, Items: exp.Items}}
	return renderDocument(f, sheet, exp.Issuer, exp.Supplier, groups, logo, cfg, false, false)
}

// GenericMultiTemplate is the default combined-order layout
func GenericMultiTemplate(f *excelize.File, sheet string, exp *MultiExport, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error) {
	return renderDocument(f, sheet, exp.Issuer, exp.Supplier, exp.Groups, logo, cfg, true, false)
}
