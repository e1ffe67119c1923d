package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	assert.NoError(t, p.ValidateImage(pngBytes(t, 10, 10)))
	assert.Error(t, p.ValidateImage(nil))
	assert.Error(t, p.ValidateImage([]byte("definitely not an image")))

	p.MaxSize = 10
	assert.Error(t, p.ValidateImage(pngBytes(t, 10, 10)))
}

func TestProcessImage_FitsVariants(t *testing.T) {
	p := NewImageProcessor()

	variants, err := p.ProcessImage(pngBytes(t, 1600, 800))
	require.NoError(t, err)
	require.Len(t, variants, 2)

	thumb, format, err := image.DecodeConfig(bytes.NewReader(variants[VariantThumbnail]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, thumb.Width)
	assert.Equal(t, 200, thumb.Height)

	large, _, err := image.DecodeConfig(bytes.NewReader(variants[VariantLarge]))
	require.NoError(t, err)
	assert.Equal(t, 1200, large.Width)
}
