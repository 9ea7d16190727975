package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// PrepareInput resizes an image to the model's working resolution and
// writes it into dst as NHWC float32 scaled to [0, 1], the layout the
// floor-plan model was exported with. Grayscale sources come out promoted
// to RGB by channel replication, which the RGBA accessor gives for free.
//
// Arguments:
//   - img: The source image at any resolution.
//   - dst: The destination buffer. Must hold InputSize*InputSize*3 floats.
//
// Returns:
//   - error: When dst is too small for the input shape.
func PrepareInput(img image.Image, dst []float32) error {
	need := InputSize * InputSize * 3
	if len(dst) < need {
		return errors.Errorf("destination holds %d floats, input shape needs %d", len(dst), need)
	}

	img = resize.Resize(InputSize, InputSize, img, resize.Lanczos3)

	i := 0
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			dst[i] = float32(r>>8) / 255.0
			dst[i+1] = float32(g>>8) / 255.0
			dst[i+2] = float32(b>>8) / 255.0
			i += 3
		}
	}
	return nil
}
