package tilemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const csvExt = ".csv"

// TemplateName derives the template key from a CSV file name:
// "Tavern_Outside.csv" -> "tavern_outside".
func TemplateName(filename string) string {
	name := filepath.Base(filename)
	if strings.EqualFold(filepath.Ext(name), csvExt) {
		name = name[:len(name)-len(csvExt)]
	}
	name = strings.ReplaceAll(name, "..", "")
	return strings.ToLower(strings.TrimSpace(name))
}

// Parse reads a comma separated tile grid. Blank lines are ignored, cells
// are trimmed and empty cells dropped. Every row must have as many tiles as
// the first one.
func Parse(name string, r io.Reader) (Template, error) {
	t := Template{Name: name}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			return Template{}, fmt.Errorf("%s line %d: %w", name, lineNo, err)
		}
		if len(row) == 0 {
			continue
		}

		if t.Height == 0 {
			t.Width = uint32(len(row))
		} else if uint32(len(row)) != t.Width {
			return Template{}, fmt.Errorf("%s line %d: %w (got %d, want %d)",
				name, lineNo, ErrRaggedRow, len(row), t.Width)
		}

		for x, tile := range row {
			if tile == SpawnTile {
				t.SpawnX = tileCenter(x)
				t.SpawnY = tileCenter(int(t.Height))
				t.HasSpawn = true
			}
		}

		t.TileData = append(t.TileData, row...)
		t.Height++
	}
	if err := scanner.Err(); err != nil {
		return Template{}, fmt.Errorf("read %s: %w", name, err)
	}
	if t.Height == 0 {
		return Template{}, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}

	return t, nil
}

func parseRow(line string) ([]uint32, error) {
	cells := strings.Split(line, ",")
	row := make([]uint32, 0, len(cells))
	for col, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseUint(cell, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("column %d: invalid tile %q", col+1, cell)
		}
		row = append(row, uint32(v))
	}
	return row, nil
}

// ParseFile parses the CSV at path, naming the template after the file.
func ParseFile(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(TemplateName(path), f)
}
