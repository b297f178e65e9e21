// Package config provides YAML-based game configuration loading and
// difficulty management for pillbox.
package config

// VirusConfig contains all configuration for the virus game.
type VirusConfig struct {
	Round      VirusRound       `yaml:"round"`
	Levels     VirusLevels      `yaml:"levels"`
	Scoring    VirusScoring     `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// VirusRound defines the timing and board parameters of a single round.
type VirusRound struct {
	FallIntervalMs    int `yaml:"fall_interval_ms"`     // Initial interval between fall ticks
	MinFallIntervalMs int `yaml:"min_fall_interval_ms"` // Fastest allowed interval
	SpeedRampMs       int `yaml:"speed_ramp_ms"`        // Interval decrement per placed piece
	ContaminantMinRow int `yaml:"contaminant_min_row"`  // Highest row contaminants may occupy
}

// VirusLevels defines how contaminant counts grow across levels.
type VirusLevels struct {
	StartContaminants    int `yaml:"start_contaminants"`     // Contaminants on level 1
	ContaminantsPerLevel int `yaml:"contaminants_per_level"` // Added per level
	MaxContaminants      int `yaml:"max_contaminants"`       // Upper bound for endless mode
}

// VirusScoring defines point values.
type VirusScoring struct {
	ContaminantPoints int `yaml:"contaminant_points"` // Points per contaminant on the first clearing pass
	MaxChainShift     int `yaml:"max_chain_shift"`    // Chain bonus doubles up to this many times
	LevelBonus        int `yaml:"level_bonus"`        // Multiplied by the level number on clear
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Fall speed gain at max difficulty (1.0 = twice as fast)
	RowRise         int     `yaml:"row_rise"`         // Rows contaminants may climb at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
