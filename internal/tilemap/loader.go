package tilemap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type LoadResult struct {
	Templates []Template
	// Skipped lists CSV files that had no rows.
	Skipped []string
}

type Loader struct {
	Logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Logger: logger}
}

// LoadDir parses every *.csv file directly inside dir, in file name order.
// Empty files are skipped; any malformed file aborts the load.
func (l *Loader) LoadDir(dir string) (LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read maps dir %s: %w", dir, err)
	}

	var result LoadResult
	seen := make(map[string]string)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), csvExt) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		t, err := ParseFile(path)
		if errors.Is(err, ErrEmptyFile) {
			l.Logger.Warn("map file is empty, skipping", zap.String("file", path))
			result.Skipped = append(result.Skipped, entry.Name())
			continue
		}
		if err != nil {
			return LoadResult{}, err
		}

		if prev, ok := seen[t.Name]; ok {
			return LoadResult{}, fmt.Errorf("%w: %s from %s and %s", ErrDuplicateName, t.Name, prev, entry.Name())
		}
		seen[t.Name] = entry.Name()

		if !t.HasSpawn {
			l.Logger.Warn("map has no spawn tile",
				zap.String("template", t.Name),
				zap.Uint32("spawnTile", SpawnTile))
		}
		l.Logger.Debug("map parsed",
			zap.String("template", t.Name),
			zap.Uint32("width", t.Width),
			zap.Uint32("height", t.Height))

		result.Templates = append(result.Templates, t)
	}

	return result, nil
}
