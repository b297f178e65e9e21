// Package virus implements the pill-dropping virus puzzle with campaign and endless modes.
// Board rules live in the engine subpackage; this package adapts a round to the
// platform's fixed-step game loop, keeps score and walks through levels.
package virus

import (
	"github.com/vovakirdan/pillbox/internal/config"
	"github.com/vovakirdan/pillbox/internal/games/virus/engine"
)

// Level defines a campaign level.
type Level struct {
	ID           int
	Name         string
	Contaminants int // Contaminants seeded at round start
	MinRow       int // Highest row contaminants may occupy
}

// Levels defines the campaign. Counts follow 4 per level; the seeding area grows
// upward so later boards stay solvable.
var Levels = []Level{
	{ID: 1, Name: "Checkup", Contaminants: 4, MinRow: 8},
	{ID: 2, Name: "Sniffles", Contaminants: 8, MinRow: 8},
	{ID: 3, Name: "Fever", Contaminants: 12, MinRow: 8},
	{ID: 4, Name: "Outbreak", Contaminants: 16, MinRow: 7},
	{ID: 5, Name: "Quarantine", Contaminants: 20, MinRow: 7},
	{ID: 6, Name: "Epidemic", Contaminants: 24, MinRow: 7},
	{ID: 7, Name: "Mutation", Contaminants: 28, MinRow: 6},
	{ID: 8, Name: "Pandemic", Contaminants: 32, MinRow: 6},
	{ID: 9, Name: "Superbug", Contaminants: 36, MinRow: 6},
	{ID: 10, Name: "Patient Zero", Contaminants: 40, MinRow: 5},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// EndlessLevel builds the level at index for endless mode from the configured growth.
func EndlessLevel(index int, cfg config.VirusConfig) Level {
	count := cfg.Levels.StartContaminants + index*cfg.Levels.ContaminantsPerLevel
	count = min(count, cfg.Levels.MaxContaminants)
	minRow := max(4, cfg.Round.ContaminantMinRow-index/3)
	return Level{
		ID:           index + 1,
		Name:         "Endless",
		Contaminants: count,
		MinRow:       minRow,
	}
}

// capacity returns how many contaminants fit at or below minRow.
func capacity(minRow int) int {
	return (engine.Rows - minRow) * engine.Cols
}
