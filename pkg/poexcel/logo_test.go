package poexcel

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogoSource struct {
	asset *LogoAsset
	err   error
	calls int
}

func (s *stubLogoSource) FetchLogo(ctx context.Context, templateType string) (*LogoAsset, error) {
	s.calls++
	return s.asset, s.err
}

func pngLogo(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 0x44, G: 0x54, B: 0x6A, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestLogoCache_RejectsUnknownTemplate(t *testing.T) {
	source := &stubLogoSource{asset: &LogoAsset{Data: pngLogo(t, 10, 10), Extension: ".png"}}
	cache := NewLogoCache(source)

	asset, ok := cache.Load(context.Background(), "holographic")
	assert.False(t, ok)
	assert.Nil(t, asset)
	assert.Zero(t, source.calls)
}

func TestLogoCache_NilSourceIsAbsent(t *testing.T) {
	cache := NewLogoCache(nil)

	asset, ok := cache.Load(context.Background(), "generic")
	assert.False(t, ok)
	assert.Nil(t, asset)
}

func TestLogoCache_FetchFailureIsAbsent(t *testing.T) {
	source := &stubLogoSource{err: errors.New("store offline")}
	cache := NewLogoCache(source)

	_, ok := cache.Load(context.Background(), "generic")
	assert.False(t, ok)

	// Failures are not cached; the next lookup retries the source.
	_, ok = cache.Load(context.Background(), "generic")
	assert.False(t, ok)
	assert.Equal(t, 2, source.calls)
}

func TestLogoCache_UndecodableImageIsAbsent(t *testing.T) {
	source := &stubLogoSource{asset: &LogoAsset{Data: []byte("not an image"), Extension: ".png"}}
	cache := NewLogoCache(source)

	_, ok := cache.Load(context.Background(), "generic")
	assert.False(t, ok)
}

func TestLogoCache_CachesDecodedAsset(t *testing.T) {
	source := &stubLogoSource{asset: &LogoAsset{Data: pngLogo(t, 120, 40), Extension: ".png"}}
	cache := NewLogoCache(source)

	first, ok := cache.Load(context.Background(), "generic")
	require.True(t, ok)
	assert.Equal(t, 120, first.Width)
	assert.Equal(t, 40, first.Height)

	second, ok := cache.Load(context.Background(), "generic")
	require.True(t, ok)
	assert.Same(t, first, second)
	assert.Equal(t, 1, source.calls)
}

func TestLogoCache_NormalizesIdentifierCase(t *testing.T) {
	source := &stubLogoSource{asset: &LogoAsset{Data: pngLogo(t, 50, 20), Extension: ".png"}}
	cache := NewLogoCache(source)

	_, ok := cache.Load(context.Background(), "  Branded ")
	require.True(t, ok)

	_, ok = cache.Load(context.Background(), "branded")
	require.True(t, ok)
	assert.Equal(t, 1, source.calls)
}

func TestLogoCache_DownscalesWideLogos(t *testing.T) {
	source := &stubLogoSource{asset: &LogoAsset{Data: pngLogo(t, 640, 100), Extension: ".jpg"}}
	cache := NewLogoCache(source)

	asset, ok := cache.Load(context.Background(), "generic")
	require.True(t, ok)
	assert.Equal(t, maxLogoWidth, asset.Width)
	assert.Equal(t, 50, asset.Height)
	assert.Equal(t, ".png", asset.Extension)
}
