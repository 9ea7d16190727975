package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelMapMask(t *testing.T) {
	m := NewLabelMap(3, 2)
	m.Set(0, 0, 4)
	m.Set(2, 1, 1)

	mask := m.Mask()
	assert.True(t, mask.At(0, 0))
	assert.True(t, mask.At(2, 1))
	assert.False(t, mask.At(1, 0))
	assert.Equal(t, 2, mask.Count())
}

func TestBinaryMaskUnion(t *testing.T) {
	a := NewBinaryMask(2, 2)
	a.Set(0, 0, true)
	b := NewBinaryMask(2, 2)
	b.Set(1, 1, true)

	require.NoError(t, a.Union(b))
	assert.True(t, a.At(0, 0))
	assert.True(t, a.At(1, 1))
	assert.Equal(t, 2, a.Count())
}

func TestBinaryMaskUnionDimensionMismatch(t *testing.T) {
	a := NewBinaryMask(2, 2)
	b := NewBinaryMask(3, 2)

	err := a.Union(b)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLabelMapCloneIsDeep(t *testing.T) {
	m := NewLabelMap(2, 2)
	m.Set(1, 1, 5)

	c := m.Clone()
	c.Set(1, 1, 7)
	assert.Equal(t, uint8(5), m.At(1, 1))
	assert.Equal(t, uint8(7), c.At(1, 1))
}

func TestLabelMapLabels(t *testing.T) {
	m := NewLabelMap(2, 2)
	m.Set(0, 0, 3)
	m.Set(1, 0, 3)
	m.Set(0, 1, 1)

	labels := m.Labels()
	assert.True(t, labels[0])
	assert.True(t, labels[1])
	assert.True(t, labels[3])
	assert.False(t, labels[2])
}
