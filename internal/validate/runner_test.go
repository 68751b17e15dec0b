package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func smallChecklist() Checklist {
	return Checklist{
		Title: "Combat Systems Validation",
		Groups: []Group{
			declarations("Core System Files", "Core Systems",
				"Scripts/Core/CombatSystem.cs", "CombatSystem",
				"Scripts/Core/MapSystem.cs", "MapSystem",
				"Scripts/Core/ICombatSystem.cs", "ICombatSystem",
			),
			methods("Combat System Methods", "Combat Methods", "Scripts/Core/CombatSystem.cs",
				"ExecuteAttack", "GetEquippedWeapon"),
			methods("Map Methods", "Map Methods", "Scripts/Core/MapSystem.cs", "LoadMap"),
		},
	}
}

func TestRunner_Run(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Scripts/Core/CombatSystem.cs", combatSystemSrc)
	writeSource(t, root, "Scripts/Core/ICombatSystem.cs", "public class Wrong {}")

	report := NewRunner(root, nil).Run(smallChecklist())

	require.Len(t, report.Groups, 3)
	core := report.Groups[0]
	assert.Equal(t, 1, core.Passed())
	assert.Equal(t, 3, core.Total())
	assert.Equal(t, "class", core.Checks[0].Kind)

	assert.True(t, core.Checks[2].Exists)
	assert.False(t, core.Checks[2].Found)

	combat := report.Groups[1]
	assert.Equal(t, 1, combat.Passed())
	assert.True(t, combat.Checks[0].Passed())
	assert.False(t, combat.Checks[1].Passed())

	assert.Equal(t, 2, report.Passed())
	assert.Equal(t, 6, report.Total())
}

func TestRunner_MissingFileFailsBothChecksAndContinues(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Scripts/Core/CombatSystem.cs", combatSystemSrc)

	report := NewRunner(root, nil).Run(smallChecklist())

	missing := report.Groups[0].Checks[1]
	assert.Equal(t, "Scripts/Core/MapSystem.cs", missing.Path)
	assert.False(t, missing.Exists)
	assert.False(t, missing.Found)
	assert.False(t, missing.Passed())

	// later checks still ran
	assert.True(t, report.Groups[1].Checks[0].Passed())
	mapMethod := report.Groups[2].Checks[0]
	assert.False(t, mapMethod.Exists)
	assert.False(t, mapMethod.Passed())
}

func TestRunner_UnreadableFile(t *testing.T) {
	root := t.TempDir()
	// a directory where a file is expected exists but cannot be read
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Scripts", "Core", "MapSystem.cs"), 0o755))

	report := NewRunner(root, nil).Run(smallChecklist())

	check := report.Groups[0].Checks[1]
	assert.True(t, check.Exists)
	assert.Error(t, check.Err)
	assert.False(t, check.Passed())
}

func TestRunner_EmptyRootFailsEverything(t *testing.T) {
	report := NewRunner(t.TempDir(), nil).Run(DefaultChecklist())
	assert.Equal(t, 0, report.Passed())
	assert.Equal(t, 30, report.Total())
	assert.Equal(t, 1, report.ExitCode(DefaultThreshold))

	var out bytes.Buffer
	require.NoError(t, report.Render(&out, NewTheme(&out, false), DefaultThreshold))
	assert.Contains(t, out.String(), "OVERALL: 0/30 checks passed (0.0%)")
}
