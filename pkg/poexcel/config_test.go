package poexcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplateConfig(t *testing.T) {
	t.Run("EmptyUsesDefaults", func(t *testing.T) {
		cfg := ParseTemplateConfig("")
		assert.Equal(t, defaultHeaderColor, cfg.HeaderColor)
		assert.Equal(t, defaultAccentColor, cfg.AccentColor)
		assert.Nil(t, cfg.TaxRate)
	})

	t.Run("MalformedFallsBackToDefaults", func(t *testing.T) {
		cfg := ParseTemplateConfig("{{{not yaml")
		assert.Equal(t, defaultHeaderColor, cfg.HeaderColor)
		assert.Equal(t, defaultAccentColor, cfg.AccentColor)
	})

	t.Run("Overrides", func(t *testing.T) {
		raw := "header_color: \"#1F4E79\"\ntax_rate: 0.08\ncolumn_widths:\n  Notes: 30\nbank_details:\n  - \"Bank: Harbor Trust\"\n"
		cfg := ParseTemplateConfig(raw)
		assert.Equal(t, "#1F4E79", cfg.HeaderColor)
		assert.Equal(t, defaultAccentColor, cfg.AccentColor)
		assert.Equal(t, 0.08, cfg.EffectiveTaxRate())
		assert.Equal(t, []string{"Bank: Harbor Trust"}, cfg.BankDetails)
		assert.Equal(t, 30.0, cfg.columnWidth("Notes", 20))
		assert.Equal(t, 20.0, cfg.columnWidth("Qty", 20))
	})
}

func TestEffectiveTaxRate(t *testing.T) {
	assert.Equal(t, defaultTaxRate, (&TemplateConfig{}).EffectiveTaxRate())

	zero := 0.0
	assert.Equal(t, 0.0, (&TemplateConfig{TaxRate: &zero}).EffectiveTaxRate())

	negative := -0.5
	assert.Equal(t, defaultTaxRate, (&TemplateConfig{TaxRate: &negative}).EffectiveTaxRate())
}
