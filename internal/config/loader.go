package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadVirus loads the virus game configuration.
// Search order: customPath -> ~/.pillbox/configs/virus.yaml -> ./configs/virus.yaml -> embedded default
func LoadVirus(customPath string) (VirusConfig, error) {
	// Start from defaults so a partial file only overrides what it names.
	cfg := DefaultVirusConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserConfigPath("virus.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			user := cfg
			if err := yaml.Unmarshal(data, &user); err == nil && user.Validate() == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "virus.yaml")); err == nil {
		local := cfg
		if err := yaml.Unmarshal(data, &local); err == nil && local.Validate() == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	embedded := cfg
	if err := yaml.Unmarshal(defaultVirusYAML, &embedded); err != nil {
		return DefaultVirusConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// UserConfigPath returns the path to user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pillbox", "configs", filename)
}

// Validate checks the values a round cannot run without.
func (c VirusConfig) Validate() error {
	r := c.Round
	switch {
	case r.FallIntervalMs <= 0:
		return fmt.Errorf("config: round.fall_interval_ms must be positive, got %d", r.FallIntervalMs)
	case r.MinFallIntervalMs <= 0 || r.MinFallIntervalMs > r.FallIntervalMs:
		return fmt.Errorf("config: round.min_fall_interval_ms must be in [1, %d], got %d", r.FallIntervalMs, r.MinFallIntervalMs)
	case r.SpeedRampMs < 0:
		return fmt.Errorf("config: round.speed_ramp_ms must not be negative, got %d", r.SpeedRampMs)
	case r.ContaminantMinRow < 1:
		return fmt.Errorf("config: round.contaminant_min_row must be at least 1, got %d", r.ContaminantMinRow)
	case c.Levels.StartContaminants < 1:
		return fmt.Errorf("config: levels.start_contaminants must be at least 1, got %d", c.Levels.StartContaminants)
	case c.Levels.MaxContaminants < c.Levels.StartContaminants:
		return fmt.Errorf("config: levels.max_contaminants %d below start_contaminants %d", c.Levels.MaxContaminants, c.Levels.StartContaminants)
	case c.Scoring.MaxChainShift < 0 || c.Scoring.MaxChainShift > 16:
		return fmt.Errorf("config: scoring.max_chain_shift must be in [0, 16], got %d", c.Scoring.MaxChainShift)
	}
	return nil
}

// ApplyVirusPreset modifies the config based on a difficulty preset.
func ApplyVirusPreset(cfg *VirusConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Round.FallIntervalMs = 500
		cfg.Round.SpeedRampMs = 1
	case DifficultyHard:
		cfg.Round.FallIntervalMs = 300
		cfg.Round.SpeedRampMs = 4
		cfg.Round.MinFallIntervalMs = min(cfg.Round.MinFallIntervalMs, 80)
	}
}
