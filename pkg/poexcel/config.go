package poexcel

import (
	"gopkg.in/yaml.v2"
)

// TemplateConfig is the supplier-supplied layout override. Every field is
// optional; zero values fall back to the built-in defaults so a missing or
// malformed config can never block an export.
type TemplateConfig struct {
	HeaderColor  string             `yaml:"header_color"`
	AccentColor  string             `yaml:"accent_color"`
	ColumnWidths map[string]float64 `yaml:"column_widths"`
	BankDetails  []string           `yaml:"bank_details"`
	TaxRate      *float64           `yaml:"tax_rate"`
}

const (
	defaultHeaderColor = "#44546A"
	defaultAccentColor = "#D9E1F2"
	defaultTaxRate     = 0.10
)

// ParseTemplateConfig decodes a supplier's raw YAML config, falling back
// to defaults for anything absent or unparseable.
func ParseTemplateConfig(raw string) *TemplateConfig {
	cfg := &TemplateConfig{}
	if raw != "" {
		// Parse errors degrade to defaults rather than failing the export.
		_ = yaml.Unmarshal([]byte(raw), cfg)
	}
	if cfg.HeaderColor == "" {
		cfg.HeaderColor = defaultHeaderColor
	}
	if cfg.AccentColor == "" {
		cfg.AccentColor = defaultAccentColor
	}
	return cfg
}

// EffectiveTaxRate returns the configured tax rate or the built-in default
func (c *TemplateConfig) EffectiveTaxRate() float64 {
	if c != nil && c.TaxRate != nil && *c.TaxRate >= 0 {
		return *c.TaxRate
	}
	return defaultTaxRate
}

// columnWidth returns the configured width for a column header, or the
// supplied default when no override exists.
func (c *TemplateConfig) columnWidth(header string, fallback float64) float64 {
	if c != nil {
		if w, ok := c.ColumnWidths[header]; ok && w > 0 {
			return w
		}
	}
	return fallback
}
