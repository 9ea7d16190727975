package postprocess

import (
	"github.com/pkg/errors"

	"github.com/floorplan-ai/go-floorplan/raster"
)

// point is a grid coordinate queued during breadth-first traversal.
type point struct {
	x, y int
}

// neighbors4 are the 4-connectivity offsets shared by the flood fill and
// the connected-component labeling in refine.go.
var neighbors4 = [4]point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FillFootprint fuses the room occupancy mask with the repaired boundary
// mask and fills enclosed holes, yielding the building's full-footprint
// mask (1 = interior or boundary, 0 = true exterior).
//
// The image border is guaranteed exterior: a breadth-first flood fill
// seeded from every unset border cell marks all reachable unset cells as
// confirmed exterior, and whatever unset cells remain are pockets trapped
// inside the footprint, which neither classifier marked, so they become
// interior.
//
// Arguments:
//   - roomMask: Occupancy mask of the room label map (>0).
//   - boundaryMask: The repaired boundary mask.
//
// Returns:
//   - *raster.BinaryMask: The full-footprint mask.
//   - error: ErrInvalidInput on a dimension mismatch.
func FillFootprint(roomMask, boundaryMask *raster.BinaryMask) (*raster.BinaryMask, error) {
	fuse := roomMask.Clone()
	if err := fuse.Union(boundaryMask); err != nil {
		return nil, errors.Wrap(err, "fusing room and boundary masks")
	}

	w, h := fuse.Width, fuse.Height
	exterior := make([]bool, w*h)
	queue := make([]point, 0, 2*(w+h))

	seed := func(x, y int) {
		i := y*w + x
		if !fuse.Pix[i] && !exterior[i] {
			exterior[i] = true
			queue = append(queue, point{x, y})
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	// Explicit work queue rather than recursion; depth is unbounded on
	// large images otherwise.
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighbors4 {
			nx, ny := p.x+d.x, p.y+d.y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			i := ny*w + nx
			if fuse.Pix[i] || exterior[i] {
				continue
			}
			exterior[i] = true
			queue = append(queue, point{nx, ny})
		}
	}

	out := raster.NewBinaryMask(w, h)
	for i := range out.Pix {
		out.Pix[i] = !exterior[i]
	}
	return out, nil
}
