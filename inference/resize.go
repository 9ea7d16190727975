package inference

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ResizeScores bilinearly resizes a (H, W, C) float32 score tensor to the
// given target dimensions, channel by channel. The pipeline decodes labels
// at the source image's resolution, so scores are resized before the
// argmax rather than after, matching the model's training-time convention
// and avoiding nearest-neighbor label artifacts.
//
// Arguments:
//   - scores: The (H, W, C) score tensor at the model resolution.
//   - height, width: Target dimensions, both > 0.
//
// Returns:
//   - *tensor.Dense: A new (height, width, C) tensor.
//   - error: When the tensor is not a rank-3 float32 tensor or the target
//     dimensions are not positive.
func ResizeScores(scores *tensor.Dense, height, width int) (*tensor.Dense, error) {
	shape := scores.Shape()
	if len(shape) != 3 {
		return nil, errors.Errorf("score tensor has rank %d, want 3", len(shape))
	}
	if height <= 0 || width <= 0 {
		return nil, errors.Errorf("target %dx%d is not positive", width, height)
	}
	srcH, srcW, channels := shape[0], shape[1], shape[2]
	src, ok := scores.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("score tensor dtype %v, want float32", scores.Dtype())
	}

	if srcH == height && srcW == width {
		out := make([]float32, len(src))
		copy(out, src)
		return tensor.New(tensor.WithShape(height, width, channels), tensor.WithBacking(out)), nil
	}

	dst := make([]float32, height*width*channels)
	scaleY := float64(srcH) / float64(height)
	scaleX := float64(srcW) / float64(width)

	for y := 0; y < height; y++ {
		// Half-pixel centers keep the grid aligned under both up and
		// down scaling.
		fy := (float64(y)+0.5)*scaleY - 0.5
		y0 := clampInt(int(fy), 0, srcH-1)
		y1 := clampInt(y0+1, 0, srcH-1)
		wy := fy - float64(y0)
		if wy < 0 {
			wy = 0
		}
		for x := 0; x < width; x++ {
			fx := (float64(x)+0.5)*scaleX - 0.5
			x0 := clampInt(int(fx), 0, srcW-1)
			x1 := clampInt(x0+1, 0, srcW-1)
			wx := fx - float64(x0)
			if wx < 0 {
				wx = 0
			}
			for c := 0; c < channels; c++ {
				v00 := float64(src[(y0*srcW+x0)*channels+c])
				v01 := float64(src[(y0*srcW+x1)*channels+c])
				v10 := float64(src[(y1*srcW+x0)*channels+c])
				v11 := float64(src[(y1*srcW+x1)*channels+c])
				top := v00 + (v01-v00)*wx
				bottom := v10 + (v11-v10)*wx
				dst[(y*width+x)*channels+c] = float32(top + (bottom-top)*wy)
			}
		}
	}
	return tensor.New(tensor.WithShape(height, width, channels), tensor.WithBacking(dst)), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
