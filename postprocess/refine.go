package postprocess

import (
	"github.com/pkg/errors"

	"github.com/floorplan-ai/go-floorplan/raster"
)

// RefineRooms enforces one label per physically connected room. Cells that
// are not barrier cells are grouped into 4-connected components (barrier
// cells separate components and belong to none); within each component the
// most frequent non-zero room label is assigned to every member cell, with
// ties resolved to the lowest label value for determinism. Components whose
// cells are all zero-labeled stay zero. The result is then intersected
// with the footprint mask: anything outside the footprint is forced to
// zero, suppressing background the classifier mislabeled as a room.
//
// The output never contains a label absent from the input room map.
//
// Arguments:
//   - room: The decoded room label map. Not modified.
//   - barrier: The repaired boundary mask acting as impassable walls.
//   - footprint: The full-footprint mask from FillFootprint.
//
// Returns:
//   - *raster.LabelMap: The refined room map.
//   - error: ErrInvalidInput on a dimension mismatch.
func RefineRooms(room *raster.LabelMap, barrier, footprint *raster.BinaryMask) (*raster.LabelMap, error) {
	if !barrier.SameSize(room) || !footprint.SameSize(room) {
		return nil, errors.Wrapf(raster.ErrInvalidInput,
			"refining %dx%d room map against %dx%d barrier and %dx%d footprint",
			room.Width, room.Height, barrier.Width, barrier.Height, footprint.Width, footprint.Height)
	}

	w, h := room.Width, room.Height
	visited := make([]bool, w*h)
	component := make([]int, 0, 256) // reused flat-index scratch per component
	out := raster.NewLabelMap(w, h)

	for start := 0; start < w*h; start++ {
		if visited[start] || barrier.Pix[start] {
			continue
		}
		component = component[:0]
		component = append(component, start)
		visited[start] = true

		var counts [256]int
		// Breadth-first expansion over non-barrier neighbors.
		for head := 0; head < len(component); head++ {
			i := component[head]
			counts[room.Pix[i]]++
			x, y := i%w, i/w
			for _, d := range neighbors4 {
				nx, ny := x+d.x, y+d.y
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if visited[n] || barrier.Pix[n] {
					continue
				}
				visited[n] = true
				component = append(component, n)
			}
		}

		label := majorityLabel(&counts)
		if label == 0 {
			continue
		}
		for _, i := range component {
			out.Pix[i] = label
		}
	}

	for i := range out.Pix {
		if !footprint.Pix[i] {
			out.Pix[i] = 0
		}
	}
	return out, nil
}

// majorityLabel picks the most frequent non-zero label from a count table,
// lowest label first so equal counts resolve deterministically. Returns 0
// when no non-zero label occurred.
func majorityLabel(counts *[256]int) uint8 {
	best, bestCount := uint8(0), 0
	for v := 1; v < 256; v++ {
		if counts[v] > bestCount {
			best, bestCount = uint8(v), counts[v]
		}
	}
	return best
}
