package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTemplate() Template {
	return Template{
		Name:     "sample",
		Width:    3,
		Height:   2,
		TileData: []uint32{0, 5, 0, 1, 0, 7},
		SpawnX:   4,
		SpawnY:   12,
	}
}

func TestTemplate_At(t *testing.T) {
	tmpl := sampleTemplate()

	v, ok := tmpl.At(1, 0)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), v)

	v, ok = tmpl.At(2, 1)
	assert.True(t, ok)
	assert.Equal(t, uint32(7), v)

	_, ok = tmpl.At(3, 0)
	assert.False(t, ok)
	_, ok = tmpl.At(0, -1)
	assert.False(t, ok)
}

func TestTemplate_CollisionMatrix(t *testing.T) {
	matrix := sampleTemplate().CollisionMatrix(nil)
	assert.Equal(t, [][]bool{
		{false, true, false},
		{false, false, true},
	}, matrix, "empty and spawn tiles are walkable")

	walls := sampleTemplate().CollisionMatrix(func(tile uint32) bool { return tile == 7 })
	assert.Equal(t, [][]bool{
		{false, false, false},
		{false, false, true},
	}, walls)
}

func TestTemplate_Bounds(t *testing.T) {
	b := sampleTemplate().Bounds()
	assert.Equal(t, Bounds{MinX: 0, MaxX: 24, MinY: 0, MaxY: 16}, b)
}

func TestTemplate_Validate(t *testing.T) {
	tmpl := sampleTemplate()
	assert.NoError(t, tmpl.Validate())

	tmpl.TileData = tmpl.TileData[:5]
	assert.Error(t, tmpl.Validate())
}

func TestTemplate_Spawn(t *testing.T) {
	assert.Equal(t, Spawn{X: 4, Y: 12}, sampleTemplate().Spawn())
}
