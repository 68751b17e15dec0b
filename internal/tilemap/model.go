package tilemap

import (
	"errors"
	"fmt"
)

const (
	// TileSize is the edge of one tile in world pixels.
	TileSize = 8

	// SpawnTile marks the player spawn cell inside a template.
	SpawnTile uint32 = 1
)

var (
	ErrEmptyFile     = errors.New("map file has no rows")
	ErrRaggedRow     = errors.New("row width differs from first row")
	ErrDuplicateName = errors.New("duplicate template name")
)

// Template is one row of the map_template table: a named grid of tile ids
// stored row-major.
type Template struct {
	Name     string   `gorm:"primaryKey" json:"name"`
	Width    uint32   `gorm:"not null" json:"width"`
	Height   uint32   `gorm:"not null" json:"height"`
	TileData []uint32 `gorm:"type:jsonb;serializer:json;not null" json:"tile_data"`
	SpawnX   float32  `json:"spawn_x"`
	SpawnY   float32  `json:"spawn_y"`

	HasSpawn bool `gorm:"-" json:"-"`
}

func (Template) TableName() string {
	return "map_templates"
}

type Bounds struct {
	MinX float32 `json:"minX"`
	MaxX float32 `json:"maxX"`
	MinY float32 `json:"minY"`
	MaxY float32 `json:"maxY"`
}

type Spawn struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (t Template) Validate() error {
	want := uint64(t.Width) * uint64(t.Height)
	if uint64(len(t.TileData)) != want {
		return fmt.Errorf("template %s: %dx%d needs %d tiles, has %d",
			t.Name, t.Width, t.Height, want, len(t.TileData))
	}
	return nil
}

// Bounds returns the world-space extent of the template.
func (t Template) Bounds() Bounds {
	return Bounds{
		MinX: 0,
		MaxX: float32(t.Width * TileSize),
		MinY: 0,
		MaxY: float32(t.Height * TileSize),
	}
}

func (t Template) Spawn() Spawn {
	return Spawn{X: t.SpawnX, Y: t.SpawnY}
}

func tileCenter(i int) float32 {
	return float32(i*TileSize) + TileSize/2.0
}
