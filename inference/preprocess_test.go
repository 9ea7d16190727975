package inference

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareInputNormalizesToUnitRange(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, G: 128, B: 0, A: 255})
		}
	}

	dst := make([]float32, InputSize*InputSize*3)
	require.NoError(t, PrepareInput(src, dst))

	for i, v := range dst {
		assert.GreaterOrEqual(t, v, float32(0), "index %d", i)
		assert.LessOrEqual(t, v, float32(1), "index %d", i)
	}
	// Solid color survives the resize exactly: NHWC order is R, G, B.
	assert.InDelta(t, 1.0, dst[0], 0.02)
	assert.InDelta(t, 128.0/255.0, dst[1], 0.02)
	assert.InDelta(t, 0.0, dst[2], 0.02)
}

func TestPrepareInputGrayscalePromotion(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range src.Pix {
		src.Pix[i] = 100
	}

	dst := make([]float32, InputSize*InputSize*3)
	require.NoError(t, PrepareInput(src, dst))
	// All three channels carry the replicated gray value.
	assert.InDelta(t, float64(dst[0]), float64(dst[1]), 1e-6)
	assert.InDelta(t, float64(dst[1]), float64(dst[2]), 1e-6)
}

func TestPrepareInputShortBuffer(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	err := PrepareInput(src, make([]float32, 16))
	assert.Error(t, err)
}
