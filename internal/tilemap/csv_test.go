package tilemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FlattensRowMajor(t *testing.T) {
	src := "0,2,3\n4,5,6\n"

	tmpl, err := Parse("road", strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "road", tmpl.Name)
	assert.Equal(t, uint32(3), tmpl.Width)
	assert.Equal(t, uint32(2), tmpl.Height)
	assert.Equal(t, []uint32{0, 2, 3, 4, 5, 6}, tmpl.TileData)
	assert.NoError(t, tmpl.Validate())
}

func TestParse_TileCountIsRowsTimesColumns(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{{1, 1}, {3, 4}, {10, 7}} {
		var b strings.Builder
		for r := 0; r < tc.rows; r++ {
			cells := make([]string, tc.cols)
			for c := range cells {
				cells[c] = "9"
			}
			b.WriteString(strings.Join(cells, ","))
			b.WriteString("\n")
		}

		tmpl, err := Parse("grid", strings.NewReader(b.String()))
		require.NoError(t, err)
		assert.Len(t, tmpl.TileData, tc.rows*tc.cols)
	}
}

func TestParse_IgnoresBlankLinesAndWhitespace(t *testing.T) {
	src := "\n  7 , 8 \r\n\n\t9,10,\n   \n"

	tmpl, err := Parse("ws", strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), tmpl.Width)
	assert.Equal(t, uint32(2), tmpl.Height)
	assert.Equal(t, []uint32{7, 8, 9, 10}, tmpl.TileData)
}

func TestParse_DetectsSpawn(t *testing.T) {
	src := "0,0,0\n0,0,1\n"

	tmpl, err := Parse("spawn", strings.NewReader(src))
	require.NoError(t, err)

	assert.True(t, tmpl.HasSpawn)
	assert.Equal(t, float32(2*8+4), tmpl.SpawnX)
	assert.Equal(t, float32(1*8+4), tmpl.SpawnY)
}

func TestParse_NoSpawn(t *testing.T) {
	tmpl, err := Parse("plain", strings.NewReader("0,2\n3,4\n"))
	require.NoError(t, err)
	assert.False(t, tmpl.HasSpawn)
	assert.Zero(t, tmpl.SpawnX)
	assert.Zero(t, tmpl.SpawnY)
}

func TestParse_InvalidToken(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("1,2\n3,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad line 2")
	assert.Contains(t, err.Error(), `column 2: invalid tile "x"`)
}

func TestParse_NegativeToken(t *testing.T) {
	_, err := Parse("neg", strings.NewReader("1,-2\n"))
	assert.Error(t, err)
}

func TestParse_RaggedRow(t *testing.T) {
	_, err := Parse("ragged", strings.NewReader("1,2,3\n4,5\n"))
	assert.ErrorIs(t, err, ErrRaggedRow)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("empty", strings.NewReader("\n \n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestTemplateName(t *testing.T) {
	assert.Equal(t, "tavern_outside", TemplateName("Tavern_Outside.csv"))
	assert.Equal(t, "tavern_inside", TemplateName(filepath.Join("src", "maps", "tavern_inside.CSV")))
	assert.Equal(t, "road", TemplateName(" ..road .csv"))
	assert.Equal(t, "notes.txt", TemplateName("notes.txt"))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dungeon.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,0\n0,0\n"), 0o644))

	tmpl, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dungeon", tmpl.Name)
	assert.True(t, tmpl.HasSpawn)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
