package config

import (
	_ "embed"
)

//go:embed defaults/virus.yaml
var defaultVirusYAML []byte

// DefaultVirusConfig returns the default virus game configuration.
// It mirrors defaults/virus.yaml and is used when the embedded file cannot be parsed.
func DefaultVirusConfig() VirusConfig {
	return VirusConfig{
		Round: VirusRound{
			FallIntervalMs:    400,
			MinFallIntervalMs: 120,
			SpeedRampMs:       2,
			ContaminantMinRow: 8,
		},
		Levels: VirusLevels{
			StartContaminants:    4,
			ContaminantsPerLevel: 4,
			MaxContaminants:      60,
		},
		Scoring: VirusScoring{
			ContaminantPoints: 100,
			MaxChainShift:     5,
			LevelBonus:        500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				RowRise:         3,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "virus", "virus_endless":
		return defaultVirusYAML
	default:
		return nil
	}
}
