// Package raster - Label map and binary mask primitives for floor-plan grids.
package raster

import (
	"github.com/pkg/errors"
)

// ErrInvalidInput reports a malformed or dimensionally inconsistent grid or
// score tensor handed to the pipeline. It is a programming error at an
// integration boundary, not a recoverable runtime condition.
var ErrInvalidInput = errors.New("raster: invalid input")

// Room category labels produced by the room-type head of the model.
const (
	RoomBackground uint8 = iota
	RoomCloset
	RoomBathroom
	RoomLiving
	RoomBedroom
	RoomHall
	RoomBalcony
	RoomExtra1
	RoomExtra2
)

// Boundary labels produced by the boundary head of the model.
const (
	BoundaryNone uint8 = iota
	BoundaryWall
	BoundaryOpening
)

// Channel counts of the two model heads. Fixed at build time, matching the
// label enumerations above.
const (
	RoomChannels     = 9
	BoundaryChannels = 3
)

// LabelMap is a dense 2D grid of small integer labels, one per pixel,
// stored row-major. Two instances exist per image: the room-type map and
// the boundary map.
type LabelMap struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewLabelMap allocates a zero-filled label map.
func NewLabelMap(width, height int) *LabelMap {
	return &LabelMap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the label at (x, y). Callers are responsible for bounds.
func (m *LabelMap) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Set writes the label at (x, y).
func (m *LabelMap) Set(x, y int, v uint8) {
	m.Pix[y*m.Width+x] = v
}

// Clone returns a deep copy of the map.
func (m *LabelMap) Clone() *LabelMap {
	out := NewLabelMap(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

// SameSize reports whether the two maps share dimensions.
func (m *LabelMap) SameSize(o *LabelMap) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Mask derives the >0 occupancy mask from the label map.
func (m *LabelMap) Mask() *BinaryMask {
	out := NewBinaryMask(m.Width, m.Height)
	for i, v := range m.Pix {
		out.Pix[i] = v > 0
	}
	return out
}

// Labels returns the set of distinct labels present in the map.
func (m *LabelMap) Labels() map[uint8]bool {
	set := make(map[uint8]bool)
	for _, v := range m.Pix {
		set[v] = true
	}
	return set
}

// BinaryMask is a dense 2D grid of booleans, stored row-major, always
// derived from or aligned with a LabelMap of the same dimensions.
type BinaryMask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewBinaryMask allocates a cleared mask.
func NewBinaryMask(width, height int) *BinaryMask {
	return &BinaryMask{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At returns the mask bit at (x, y).
func (m *BinaryMask) At(x, y int) bool {
	return m.Pix[y*m.Width+x]
}

// Set writes the mask bit at (x, y).
func (m *BinaryMask) Set(x, y int, v bool) {
	m.Pix[y*m.Width+x] = v
}

// Clone returns a deep copy of the mask.
func (m *BinaryMask) Clone() *BinaryMask {
	out := NewBinaryMask(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

// SameSize reports whether the mask shares dimensions with a label map.
func (m *BinaryMask) SameSize(o *LabelMap) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Union merges another mask into this one in place.
//
// Arguments:
//   - o: The mask to merge. Must share dimensions.
//
// Returns:
//   - error: ErrInvalidInput on a dimension mismatch.
func (m *BinaryMask) Union(o *BinaryMask) error {
	if m.Width != o.Width || m.Height != o.Height {
		return errors.Wrapf(ErrInvalidInput, "union of %dx%d mask with %dx%d mask",
			m.Width, m.Height, o.Width, o.Height)
	}
	for i, v := range o.Pix {
		if v {
			m.Pix[i] = true
		}
	}
	return nil
}

// Count returns the number of set bits.
func (m *BinaryMask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}
