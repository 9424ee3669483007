package poexcel

import (
	"bytes"
	"context"
	"sync"

	"github.com/disintegration/imaging"
)

// Logos are static per template, so the cache lives for the whole process
// and is never invalidated. Absence is a valid, renderable state: any
// fetch or decode failure yields "absent" and the template renders a
// placeholder cell instead.

const maxLogoWidth = 320

var allowedLogoTemplates = map[string]bool{
	DefaultTemplateType: true,
	BrandedTemplateType: true,
}

// LogoCache is a process-wide, read-mostly cache of decoded logo assets
// keyed by normalized template identifier. Redundant population under
// concurrent misses is harmless; the overwrite is idempotent.
type LogoCache struct {
	source LogoSource

	mu     sync.RWMutex
	assets map[string]*LogoAsset
}

// NewLogoCache creates a cache over the given source. A nil source is
// valid and makes every lookup absent.
func NewLogoCache(source LogoSource) *LogoCache {
	return &LogoCache{
		source: source,
		assets: make(map[string]*LogoAsset),
	}
}

// Load returns the logo for a template identifier, fetching and decoding
// it on first use. Identifiers outside the allow-list, fetch failures and
// undecodable images all report absence.
func (c *LogoCache) Load(ctx context.Context, templateType string) (*LogoAsset, bool) {
	key := NormalizeTemplateType(templateType)
	if !allowedLogoTemplates[key] {
		return nil, false
	}

	c.mu.RLock()
	asset, ok := c.assets[key]
	c.mu.RUnlock()
	if ok {
		return asset, true
	}

	if c.source == nil {
		return nil, false
	}

	raw, err := c.source.FetchLogo(ctx, key)
	if err != nil || raw == nil || len(raw.Data) == 0 {
		return nil, false
	}

	asset = normalizeLogo(raw)
	if asset == nil {
		return nil, false
	}

	c.mu.Lock()
	c.assets[key] = asset
	c.mu.Unlock()

	return asset, true
}

// normalizeLogo decodes the raw image, records its bounds and downscales
// oversized logos so the embedded picture stays inside the header block.
func normalizeLogo(raw *LogoAsset) *LogoAsset {
	img, err := imaging.Decode(bytes.NewReader(raw.Data))
	if err != nil {
		return nil
	}

	bounds := img.Bounds()
	data := raw.Data
	ext := raw.Extension
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxLogoWidth {
		resized := imaging.Resize(img, maxLogoWidth, 0, imaging.Lanczos)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
			return nil
		}
		data = buf.Bytes()
		ext = ".png"
		width = resized.Bounds().Dx()
		height = resized.Bounds().Dy()
	}

	return &LogoAsset{
		Data:      data,
		Extension: ext,
		Width:     width,
		Height:    height,
	}
}
