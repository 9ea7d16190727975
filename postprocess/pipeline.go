package postprocess

import (
	"image"

	"github.com/pkg/errors"

	"github.com/floorplan-ai/go-floorplan/raster"
	"github.com/floorplan-ai/go-floorplan/render"
)

// Mode selects one of the four terminal pipeline outcomes. The two flags
// are orthogonal: refinement is the expensive correctness path, color is a
// presentation transform over whichever maps are available.
type Mode int

const (
	// ModeRaw composites the raw decoded maps into a label image.
	ModeRaw Mode = iota
	// ModeColorize composites the raw decoded maps into an RGB image.
	ModeColorize
	// ModeRefine repairs, fills, and refines, then emits a label image.
	ModeRefine
	// ModeRefineColorize repairs, fills, and refines, then emits RGB.
	ModeRefineColorize
)

// ModeFor maps the two caller-owned flags to a pipeline mode.
func ModeFor(postprocess, colorize bool) Mode {
	switch {
	case postprocess && colorize:
		return ModeRefineColorize
	case postprocess:
		return ModeRefine
	case colorize:
		return ModeColorize
	default:
		return ModeRaw
	}
}

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeColorize:
		return "colorize"
	case ModeRefine:
		return "refine"
	case ModeRefineColorize:
		return "refine+colorize"
	default:
		return "unknown"
	}
}

// Refined carries the intermediate products of the repair/fill/refine
// chain for one image.
type Refined struct {
	// Room is the refined room label map, zero outside the footprint.
	Room *raster.LabelMap
	// Boundary is the gap-repaired boundary label map.
	Boundary *raster.LabelMap
	// Footprint is the hole-filled full-footprint mask.
	Footprint *raster.BinaryMask
}

// Refine runs boundary repair, mask fusion with hole filling, and room
// region refinement over the two decoded maps.
//
// Arguments:
//   - room: Decoded room label map.
//   - boundary: Decoded boundary label map. Must share dimensions.
//
// Returns:
//   - *Refined: Refined maps plus the footprint mask.
//   - error: ErrInvalidInput on a dimension mismatch.
func Refine(room, boundary *raster.LabelMap) (*Refined, error) {
	if !room.SameSize(boundary) {
		return nil, errors.Wrapf(raster.ErrInvalidInput,
			"room map %dx%d vs boundary map %dx%d",
			room.Width, room.Height, boundary.Width, boundary.Height)
	}

	repaired := RepairBoundaryLabels(boundary)
	barrier := repaired.Mask()

	footprint, err := FillFootprint(room.Mask(), barrier)
	if err != nil {
		return nil, err
	}

	refined, err := RefineRooms(room, barrier, footprint)
	if err != nil {
		return nil, err
	}

	return &Refined{
		Room:      refined,
		Boundary:  repaired,
		Footprint: footprint,
	}, nil
}

// Result is the terminal output of one pipeline run: a label image for the
// non-colorized modes, an RGB image otherwise.
type Result struct {
	Mode   Mode
	Labels *raster.LabelMap
	RGB    *image.RGBA
}

// Run executes the pipeline for one image in the given mode. The input
// maps are not modified; no state survives the call.
//
// Arguments:
//   - room: Decoded room label map.
//   - boundary: Decoded boundary label map.
//   - mode: Pipeline mode from ModeFor.
//
// Returns:
//   - *Result: The composited output.
//   - error: ErrInvalidInput or ErrUnmappedLabel from the stages.
func Run(room, boundary *raster.LabelMap, mode Mode) (*Result, error) {
	if !room.SameSize(boundary) {
		return nil, errors.Wrapf(raster.ErrInvalidInput,
			"room map %dx%d vs boundary map %dx%d",
			room.Width, room.Height, boundary.Width, boundary.Height)
	}

	if mode == ModeRefine || mode == ModeRefineColorize {
		refined, err := Refine(room, boundary)
		if err != nil {
			return nil, err
		}
		room, boundary = refined.Room, refined.Boundary
	}

	switch mode {
	case ModeRaw, ModeRefine:
		labels, err := render.CompositeLabels(room, boundary)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: mode, Labels: labels}, nil
	case ModeColorize, ModeRefineColorize:
		rgb, err := render.CompositeRGB(room, boundary)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: mode, RGB: rgb}, nil
	default:
		return nil, errors.Wrapf(raster.ErrInvalidInput, "unknown pipeline mode %d", mode)
	}
}
