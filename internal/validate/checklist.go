package validate

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	// KindDeclarations checks that each entry's file exists and declares a
	// public class, interface or struct named Symbol.
	KindDeclarations Kind = "declarations"
	// KindMethods checks that the group's file declares each method.
	KindMethods Kind = "methods"
)

type Entry struct {
	Path   string `yaml:"path,omitempty"`
	Symbol string `yaml:"symbol"`
}

type Group struct {
	Name    string  `yaml:"name"`
	Label   string  `yaml:"label,omitempty"`
	Kind    Kind    `yaml:"kind"`
	File    string  `yaml:"file,omitempty"`
	Entries []Entry `yaml:"entries"`
}

// SummaryLabel is the short name used in the summary table.
func (g Group) SummaryLabel() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Name
}

type Checklist struct {
	Title  string  `yaml:"title"`
	Groups []Group `yaml:"groups"`
}

func (c Checklist) Total() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Entries)
	}
	return n
}

func (c Checklist) Validate() error {
	if c.Total() == 0 {
		return errors.New("checklist has no entries")
	}
	for i, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d: name is required", i)
		}
		switch g.Kind {
		case KindDeclarations:
			for j, e := range g.Entries {
				if e.Path == "" || e.Symbol == "" {
					return fmt.Errorf("group %s entry %d: path and symbol are required", g.Name, j)
				}
			}
		case KindMethods:
			if g.File == "" {
				return fmt.Errorf("group %s: file is required for method checks", g.Name)
			}
			for j, e := range g.Entries {
				if e.Symbol == "" {
					return fmt.Errorf("group %s entry %d: symbol is required", g.Name, j)
				}
			}
		default:
			return fmt.Errorf("group %s: unknown kind %q", g.Name, g.Kind)
		}
	}
	return nil
}

func ParseChecklist(data []byte) (Checklist, error) {
	var c Checklist
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Checklist{}, fmt.Errorf("decode checklist: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Checklist{}, err
	}
	return c, nil
}

func LoadChecklist(path string) (Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Checklist{}, fmt.Errorf("read checklist %s: %w", path, err)
	}
	c, err := ParseChecklist(data)
	if err != nil {
		return Checklist{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func declarations(name, label string, pairs ...string) Group {
	g := Group{Name: name, Label: label, Kind: KindDeclarations}
	for i := 0; i+1 < len(pairs); i += 2 {
		g.Entries = append(g.Entries, Entry{Path: pairs[i], Symbol: pairs[i+1]})
	}
	return g
}

func methods(name, label, file string, symbols ...string) Group {
	g := Group{Name: name, Label: label, Kind: KindMethods, File: file}
	for _, s := range symbols {
		g.Entries = append(g.Entries, Entry{Symbol: s})
	}
	return g
}

// DefaultChecklist is the combat systems checklist for the Godot client.
func DefaultChecklist() Checklist {
	return Checklist{
		Title: "Combat Systems Validation",
		Groups: []Group{
			declarations("Core System Files", "Core Systems",
				"Scripts/Core/CombatSystem.cs", "CombatSystem",
				"Scripts/Core/ICombatSystem.cs", "ICombatSystem",
				"Scripts/Core/ProjectileManager.cs", "ProjectileManager",
				"Scripts/Core/InventorySystem.cs", "InventorySystem",
				"Scripts/Core/IInventorySystem.cs", "IInventorySystem",
				"Scripts/Core/MovementSystem.cs", "MovementSystem",
				"Scripts/Core/IMovementSystem.cs", "IMovementSystem",
				"Scripts/Core/InputManager.cs", "InputManager",
				"Scripts/Core/IInputManager.cs", "IInputManager",
				"Scripts/Core/MapSystem.cs", "MapSystem",
				"Scripts/Core/IMapSystem.cs", "IMapSystem",
			),
			declarations("Test Files", "Test Files",
				"Scripts/Test/CombatSystemTest.cs", "CombatSystemTest",
				"Scripts/Test/ProjectileSystemTest.cs", "ProjectileSystemTest",
				"Scripts/Test/MovementSystemTest.cs", "MovementSystemTest",
				"Scripts/Test/InputManagerTest.cs", "InputManagerTest",
				"Scripts/Test/MapSystemTest.cs", "MapSystemTest",
			),
			declarations("Data Files", "Data Files",
				"Scripts/Data/PlayerData.cs", "PlayerData",
				"Scripts/Data/CombatData.cs", "WeaponData",
				"Scripts/Data/MapData.cs", "MapData",
				"Scripts/Data/EnemyData.cs", "EnemyData",
			),
			declarations("Network Files", "Network Files",
				"Scripts/Network/SpacetimeDBClient.cs", "SpacetimeDBClient",
				"Scripts/GameManager.cs", "GameManager",
			),
			methods("Combat System Methods", "Combat Methods", "Scripts/Core/CombatSystem.cs",
				"ExecuteAttack",
				"ProcessHit",
				"CreateProjectile",
				"IsPlayerAttacking",
				"GetEquippedWeapon",
			),
			methods("Projectile System Methods", "Projectile Methods", "Scripts/Core/ProjectileManager.cs",
				"CreateProjectile",
				"GetActiveProjectiles",
				"GetProjectileConfig",
			),
		},
	}
}
