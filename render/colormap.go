// Package render - Composites the refined room and boundary maps into a
// single label image, or into an RGB image through fixed color tables.
package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// ErrUnmappedLabel reports a label value with no entry in a color table.
// Tables are total over the label enumerations used by the pipeline, so
// hitting this is a programming error, not a data condition.
var ErrUnmappedLabel = errors.New("render: unmapped label")

// ColorTable maps small integer labels to RGB triples. Index = label.
type ColorTable []color.RGBA

// Lookup returns the color for a label.
//
// Returns:
//   - color.RGBA: The mapped color.
//   - error: ErrUnmappedLabel when the label is outside the table.
func (t ColorTable) Lookup(label uint8) (color.RGBA, error) {
	if int(label) >= len(t) {
		return color.RGBA{}, errors.Wrapf(ErrUnmappedLabel, "label %d, table holds %d entries", label, len(t))
	}
	return t[label], nil
}

// mustHex parses a hex color into an opaque RGBA. Table construction runs
// at init with literal strings, so a parse failure is fatal.
func mustHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// RoomColors maps the room-category labels to their display colors.
// Label 0 (background) maps explicitly to black.
var RoomColors = ColorTable{
	mustHex("#000000"), // background
	mustHex("#c0c0e0"), // closet
	mustHex("#c0ffff"), // bathroom
	mustHex("#e0ffc0"), // living room / kitchen / dining
	mustHex("#ffe080"), // bedroom
	mustHex("#ffa060"), // hall
	mustHex("#ffe0e0"), // balcony
	mustHex("#e0e0e0"),
	mustHex("#e0e080"),
}

// BoundaryColors maps the boundary labels to their display colors.
var BoundaryColors = ColorTable{
	mustHex("#000000"), // none
	mustHex("#ffffff"), // wall line
	mustHex("#ff3c80"), // window / door opening
}
