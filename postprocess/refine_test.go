package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorplan-ai/go-floorplan/raster"
)

// labelsFromRows builds a label map from rows of digit characters, '.'
// meaning zero.
func labelsFromRows(rows ...string) *raster.LabelMap {
	m := raster.NewLabelMap(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch != '.' {
				m.Set(x, y, uint8(ch-'0'))
			}
		}
	}
	return m
}

func fullMask(w, h int) *raster.BinaryMask {
	m := raster.NewBinaryMask(w, h)
	for i := range m.Pix {
		m.Pix[i] = true
	}
	return m
}

func TestRefineRoomsMajorityVote(t *testing.T) {
	// One open region with a noisy minority label: the majority wins
	// everywhere, including the noisy cells and the unlabeled ones.
	room := labelsFromRows(
		"44.4",
		"4244",
		"4444",
	)
	barrier := raster.NewBinaryMask(4, 3)

	out, err := RefineRooms(room, barrier, fullMask(4, 3))
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.Equal(t, uint8(4), v)
	}
}

func TestRefineRoomsBarrierSeparatesRegions(t *testing.T) {
	room := labelsFromRows(
		"11.22",
		"11.22",
		"11.22",
	)
	barrier := maskFromRows(
		"..1..",
		"..1..",
		"..1..",
	)

	out, err := RefineRooms(room, barrier, fullMask(5, 3))
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		assert.Equal(t, uint8(1), out.At(0, y))
		assert.Equal(t, uint8(1), out.At(1, y))
		assert.Equal(t, uint8(2), out.At(3, y))
		assert.Equal(t, uint8(2), out.At(4, y))
		// Barrier cells belong to no component and stay zero.
		assert.Equal(t, uint8(0), out.At(2, y))
	}
}

func TestRefineRoomsTieBreaksToLowestLabel(t *testing.T) {
	room := labelsFromRows(
		"3311",
	)
	barrier := raster.NewBinaryMask(4, 1)

	out, err := RefineRooms(room, barrier, fullMask(4, 1))
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.Equal(t, uint8(1), v)
	}
}

func TestRefineRoomsZeroComponentStaysZero(t *testing.T) {
	room := labelsFromRows(
		"..1",
		".11",
	)
	barrier := maskFromRows(
		".1.",
		".1.",
	)

	out, err := RefineRooms(room, barrier, fullMask(3, 2))
	require.NoError(t, err)
	assert.Equal(t, uint8(0), out.At(0, 0))
	assert.Equal(t, uint8(0), out.At(0, 1))
	assert.Equal(t, uint8(1), out.At(2, 0))
	assert.Equal(t, uint8(1), out.At(2, 1))
}

func TestRefineRoomsFootprintZeroesOutside(t *testing.T) {
	room := labelsFromRows(
		"555",
		"555",
	)
	barrier := raster.NewBinaryMask(3, 2)
	footprint := maskFromRows(
		"11.",
		"11.",
	)

	out, err := RefineRooms(room, barrier, footprint)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), out.At(0, 0))
	assert.Equal(t, uint8(5), out.At(1, 1))
	assert.Equal(t, uint8(0), out.At(2, 0))
	assert.Equal(t, uint8(0), out.At(2, 1))
}

func TestRefineRoomsNeverInventsLabels(t *testing.T) {
	room := labelsFromRows(
		"17.3",
		"1..3",
		"1..3",
	)
	barrier := maskFromRows(
		"..1.",
		"..1.",
		"..1.",
	)

	out, err := RefineRooms(room, barrier, fullMask(4, 3))
	require.NoError(t, err)

	inputLabels := room.Labels()
	for _, v := range out.Pix {
		assert.True(t, inputLabels[v], "label %d absent from input", v)
	}
}

func TestRefineRoomsOneLabelPerRegion(t *testing.T) {
	room := labelsFromRows(
		"1122.44",
		"1212.44",
		"2211.45",
	)
	barrier := maskFromRows(
		"....1..",
		"....1..",
		"....1..",
	)

	out, err := RefineRooms(room, barrier, fullMask(7, 3))
	require.NoError(t, err)

	// Left region: 1 and 2 tie 6-6, lowest wins.
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, uint8(1), out.At(x, y))
		}
	}
	// Right region: majority 4.
	for y := 0; y < 3; y++ {
		for x := 5; x < 7; x++ {
			assert.Equal(t, uint8(4), out.At(x, y))
		}
	}
}

func TestRefineRoomsDimensionMismatch(t *testing.T) {
	room := raster.NewLabelMap(3, 3)
	_, err := RefineRooms(room, raster.NewBinaryMask(4, 3), fullMask(3, 3))
	assert.ErrorIs(t, err, raster.ErrInvalidInput)
}
