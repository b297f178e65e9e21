package config

import "math"

// DifficultyManager calculates round parameters based on level and score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
// gameLevel is 0-based.
func (d *DifficultyManager) Level(score int, gameLevel int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "level":
		progress = float64(gameLevel) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallInterval returns the starting fall interval for a round, never below minMs.
func (d *DifficultyManager) FallInterval(baseMs, minMs, score, gameLevel int) int {
	level := d.Level(score, gameLevel)
	// Speed increases from base to base * (1 + speedMultiplier)
	speed := 1.0 + level*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		speed = 1
	}
	interval := int(math.Round(float64(baseMs) / speed))
	return max(minMs, interval)
}

// MinRow returns the highest row contaminants may be seeded on.
// The result never goes above row 1 so the spawn row stays clear.
func (d *DifficultyManager) MinRow(baseRow, score, gameLevel int) int {
	level := d.Level(score, gameLevel)
	rise := int(level * float64(d.cfg.Scaling.RowRise))
	return max(1, baseRow-rise)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
