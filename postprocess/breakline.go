// Package postprocess - Raster post-processing for floor-plan segmentation:
// boundary gap repair, footprint hole filling, and room region refinement.
package postprocess

import (
	"github.com/floorplan-ai/go-floorplan/raster"
)

// MaxBridgeGap is the longest run of unset pixels a repair pass will bridge.
// Large enough to close typical prediction noise in a wall line, small
// enough not to merge genuinely separate walls.
const MaxBridgeGap = 4

// bridgeDirections are the scan directions for gap bridging: horizontal,
// vertical, and the two diagonals.
var bridgeDirections = [4]struct{ dx, dy int }{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// RepairBoundary bridges small gaps in a binary boundary mask so the mask
// is topologically sound when used as a region barrier. Along each of the
// four scan directions, a run of at most MaxBridgeGap unset pixels flanked
// on both sides by set pixels is filled. Every pass reads the input mask;
// the fills are unioned with it, so the operation only ever adds pixels.
//
// Arguments:
//   - mask: The boundary mask to repair. Not modified.
//
// Returns:
//   - *raster.BinaryMask: The repaired mask, same dimensions.
func RepairBoundary(mask *raster.BinaryMask) *raster.BinaryMask {
	out := mask.Clone()
	for _, d := range bridgeDirections {
		bridgeDirection(mask, out, d.dx, d.dy)
	}
	return out
}

// bridgeDirection fills gaps along one scan direction, reading src and
// writing fills into dst.
func bridgeDirection(src, dst *raster.BinaryMask, dx, dy int) {
	w, h := src.Width, src.Height
	inBounds := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h
	}
	// Walk every line in the (dx, dy) direction starting from cells that
	// have no predecessor along that direction.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if inBounds(x-dx, y-dy) {
				continue // not a line start
			}
			bridgeLine(src, dst, x, y, dx, dy, inBounds)
		}
	}
}

// bridgeLine walks a single scan line, filling unset runs of length at
// most MaxBridgeGap that sit between two set pixels.
func bridgeLine(src, dst *raster.BinaryMask, x, y, dx, dy int, inBounds func(int, int) bool) {
	lastSetX, lastSetY := -1, -1
	haveSet := false
	for inBounds(x, y) {
		if src.At(x, y) {
			if haveSet {
				gap := maxInt(absInt(x-lastSetX), absInt(y-lastSetY)) - 1
				if gap > 0 && gap <= MaxBridgeGap {
					fx, fy := lastSetX+dx, lastSetY+dy
					for fx != x || fy != y {
						dst.Set(fx, fy, true)
						fx += dx
						fy += dy
					}
				}
			}
			lastSetX, lastSetY = x, y
			haveSet = true
		}
		x += dx
		y += dy
	}
}

// RepairBoundaryLabels lifts boundary repair from the binary mask to the
// boundary label map. Pixels already labeled keep their label; pixels added
// by the repair are labeled as wall, since a bridged gap in a wall line is
// wall. The occupancy mask of the result equals RepairBoundary of the
// input's occupancy mask.
func RepairBoundaryLabels(boundary *raster.LabelMap) *raster.LabelMap {
	repaired := RepairBoundary(boundary.Mask())
	out := boundary.Clone()
	for i, set := range repaired.Pix {
		if set && out.Pix[i] == raster.BoundaryNone {
			out.Pix[i] = raster.BoundaryWall
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
