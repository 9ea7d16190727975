package render

import (
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/pkg/errors"

	"github.com/floorplan-ai/go-floorplan/raster"
)

// Sentinel label codes boundary categories take inside a unified label
// image, disjoint from every room-category code.
const (
	SentinelWall    uint8 = 9
	SentinelOpening uint8 = 10
)

// CompositeLabels merges the room and boundary maps into one label image.
// Boundary labels are remapped onto the sentinel codes, the room
// contribution is zeroed wherever the boundary is non-zero (boundary takes
// precedence), and the two maps are summed. Each output pixel therefore
// holds exactly one of the two contributions, never both.
//
// Arguments:
//   - room: Room label map (raw or refined).
//   - boundary: Boundary label map (raw or repaired).
//
// Returns:
//   - *raster.LabelMap: The unified label image.
//   - error: ErrInvalidInput on a dimension mismatch.
func CompositeLabels(room, boundary *raster.LabelMap) (*raster.LabelMap, error) {
	if !room.SameSize(boundary) {
		return nil, errors.Wrapf(raster.ErrInvalidInput,
			"compositing %dx%d room map with %dx%d boundary map",
			room.Width, room.Height, boundary.Width, boundary.Height)
	}
	out := raster.NewLabelMap(room.Width, room.Height)
	for i, b := range boundary.Pix {
		switch b {
		case raster.BoundaryNone:
			out.Pix[i] = room.Pix[i]
		case raster.BoundaryWall:
			out.Pix[i] = SentinelWall
		case raster.BoundaryOpening:
			out.Pix[i] = SentinelOpening
		default:
			return nil, errors.Wrapf(ErrUnmappedLabel, "boundary label %d has no sentinel", b)
		}
	}
	return out, nil
}

// CompositeRGB merges the room and boundary maps into an RGB image. The
// room contribution is zeroed at boundary pixels first, each map is
// translated through its own color table, and the two layers are summed
// additively; the precedence zeroing guarantees no pixel is painted by
// both layers.
//
// Arguments:
//   - room: Room label map (raw or refined).
//   - boundary: Boundary label map (raw or repaired).
//
// Returns:
//   - *image.RGBA: The colorized composite.
//   - error: ErrInvalidInput on a dimension mismatch, ErrUnmappedLabel on
//     a label outside its table.
func CompositeRGB(room, boundary *raster.LabelMap) (*image.RGBA, error) {
	if !room.SameSize(boundary) {
		return nil, errors.Wrapf(raster.ErrInvalidInput,
			"compositing %dx%d room map with %dx%d boundary map",
			room.Width, room.Height, boundary.Width, boundary.Height)
	}

	masked := room.Clone()
	for i, b := range boundary.Pix {
		if b != raster.BoundaryNone {
			masked.Pix[i] = 0
		}
	}

	roomRGB, err := Colorize(masked, RoomColors)
	if err != nil {
		return nil, err
	}
	boundaryRGB, err := Colorize(boundary, BoundaryColors)
	if err != nil {
		return nil, err
	}
	return blend.Add(roomRGB, boundaryRGB), nil
}

// Colorize translates a label map through a color table into an RGBA
// image. The table must be total over the labels present in the map.
func Colorize(m *raster.LabelMap, table ColorTable) (*image.RGBA, error) {
	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c, err := table.Lookup(m.At(x, y))
			if err != nil {
				return nil, errors.Wrapf(err, "pixel (%d, %d)", x, y)
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out, nil
}

// ToGray converts a label image to a grayscale image whose pixel values
// are the raw label codes, suitable for lossless persistence.
func ToGray(m *raster.LabelMap) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+m.Width], m.Pix[y*m.Width:(y+1)*m.Width])
	}
	return out
}
