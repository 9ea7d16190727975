package raster

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Decode reduces a (H, W, C) float32 score tensor to a label map by taking
// the per-pixel argmax over the channel axis. Scores need no normalization;
// argmax is invariant to monotone rescaling. Ties resolve to the lowest
// channel index.
//
// Arguments:
//   - scores: A 3-axis float32 tensor of per-pixel class scores.
//
// Returns:
//   - *LabelMap: The decoded label map, one label per pixel.
//   - error: ErrInvalidInput if the tensor is not rank 3, has an empty
//     axis, is not float32, or has more channels than a label can hold.
func Decode(scores *tensor.Dense) (*LabelMap, error) {
	if scores == nil {
		return nil, errors.Wrap(ErrInvalidInput, "nil score tensor")
	}
	shape := scores.Shape()
	if len(shape) != 3 {
		return nil, errors.Wrapf(ErrInvalidInput, "score tensor has rank %d, want 3", len(shape))
	}
	height, width, channels := shape[0], shape[1], shape[2]
	if height == 0 || width == 0 || channels == 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "empty score tensor axis in shape %v", shape)
	}
	if channels > 256 {
		return nil, errors.Wrapf(ErrInvalidInput, "%d channels exceed the label range", channels)
	}
	data, ok := scores.Data().([]float32)
	if !ok {
		// A 1x1x1 tensor surfaces its data as a bare scalar.
		if v, scalar := scores.Data().(float32); scalar {
			data = []float32{v}
		} else {
			return nil, errors.Wrapf(ErrInvalidInput, "score tensor dtype %v, want float32", scores.Dtype())
		}
	}

	out := NewLabelMap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := (y*width + x) * channels
			best := math32.Inf(-1)
			label := 0
			for c := 0; c < channels; c++ {
				if v := data[base+c]; v > best {
					best = v
					label = c
				}
			}
			out.Pix[y*width+x] = uint8(label)
		}
	}
	return out, nil
}
