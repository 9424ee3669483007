package poexcel

import "github.com/xuri/excelize/v2"

// Branded templates extend the generic layout with supplier branding: the
// configured colors, a tax line in the footer, and a bank-details block.

// BrandedSingleTemplate is the supplier-branded one-order layout
func BrandedSingleTemplate(f *excelize.File, sheet string, exp *SingleExport, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error) {
	groups := []OrderGroup{{Order: exp.Order, Items: exp.Items}}
	return renderDocument(f, sheet, exp.Issuer, exp.Supplier, groups, logo, cfg, false, true)
}

// BrandedMultiTemplate is the supplier-branded combined-order layout
func BrandedMultiTemplate(f *excelize.File, sheet string, exp *MultiExport, logo *LogoAsset, cfg *TemplateConfig) (*SheetStats, error) {
	return renderDocument(f, sheet, exp.Issuer, exp.Supplier, exp.Groups, logo, cfg, true, true)
}
