package virus

import (
	"math/rand"

	"github.com/vovakirdan/pillbox/internal/config"
	"github.com/vovakirdan/pillbox/internal/core"
	"github.com/vovakirdan/pillbox/internal/games/virus/engine"
	"github.com/vovakirdan/pillbox/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

const (
	levelClearDelay = 120 // Steps the "level clear" banner stays up
	chainBannerTime = 90  // Steps a chain banner stays up
)

// Game adapts engine rounds to the platform loop.
type Game struct {
	mode       Mode
	cfg        config.VirusConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64

	round      *engine.Round
	startLevel int // 1-based campaign level restarts begin at, 0 for the first
	levelIndex int // Current level (0-indexed)
	elapsedMs  int // Time banked toward the next round tick
	stepMs     int

	score             int
	roundScore        int
	roundContaminants int
	lastChain         int
	chainTicks        int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int

	events []core.Event
}

// Package-level variables for config
var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting campaign level (1-10). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that ignores the package-level config path and preset.
func NewWithConfig(mode Mode, cfg config.VirusConfig) *Game {
	return &Game{mode: mode, cfg: cfg}
}

// WithStartLevel makes the campaign begin (and restart) at the given 1-based level.
func (g *Game) WithStartLevel(level int) *Game {
	g.startLevel = level
	return g
}

func init() {
	registry.Register("virus", func() registry.Game {
		return New()
	})
	registry.Register("virus_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "virus_endless"
	}
	return "virus"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Pillbox (Endless)"
	}
	return "Pillbox"
}

// loadConfig resolves the game config unless one was injected.
func (g *Game) loadConfig() {
	if g.cfg != (config.VirusConfig{}) {
		return
	}
	cfg, err := config.LoadVirus(configPath)
	if err != nil {
		cfg = config.DefaultVirusConfig()
	}
	if difficultyPreset != "" {
		config.ApplyVirusPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.stepMs = cfg.StepMillis()
	g.elapsedMs = 0
	g.score = 0
	g.lastChain = 0
	g.chainTicks = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.events = nil

	// Apply selected start level (campaign only)
	if g.mode == ModeCampaign && selectedStartLevel > 0 {
		g.startLevel = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	g.levelIndex = 0
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= LevelCount() {
		g.levelIndex = g.startLevel - 1
	}

	g.startRound()
	g.checkScreenSize()
}

// currentLevel returns the level definition for the current index.
func (g *Game) currentLevel() Level {
	if g.mode == ModeEndless {
		return EndlessLevel(g.levelIndex, g.cfg)
	}
	level := GetLevel(g.levelIndex)
	if level == nil {
		level = GetLevel(LevelCount() - 1)
	}
	return *level
}

// roundConfig derives engine parameters for the current level.
func (g *Game) roundConfig() engine.RoundConfig {
	level := g.currentLevel()
	minRow := g.difficulty.MinRow(level.MinRow, g.score, g.levelIndex)
	rc := engine.RoundConfig{
		ContaminantCount:  min(level.Contaminants, capacity(minRow)),
		FallIntervalMs:    g.difficulty.FallInterval(g.cfg.Round.FallIntervalMs, g.cfg.Round.MinFallIntervalMs, g.score, g.levelIndex),
		SpeedRampMs:       g.cfg.Round.SpeedRampMs,
		MinFallIntervalMs: g.cfg.Round.MinFallIntervalMs,
		ContaminantMinRow: minRow,
	}
	rc.MinFallIntervalMs = min(rc.MinFallIntervalMs, rc.FallIntervalMs)
	return rc
}

// startRound seeds a new board for the current level.
func (g *Game) startRound() {
	round, err := engine.NewRound(g.roundConfig(), g.rng)
	if err != nil {
		round, _ = engine.NewRound(engine.DefaultRoundConfig(), g.rng)
	}
	g.useRound(round)
}

// useRound installs a round and resets per-round counters.
func (g *Game) useRound(round *engine.Round) {
	g.round = round
	g.roundScore = 0
	g.roundContaminants = round.RemainingContaminants()
	g.elapsedMs = 0
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Resize updates the layout without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
		if g.paused {
			g.round.Pause()
		} else {
			g.round.Resume()
		}
	}
	if g.paused {
		return g.result()
	}

	// Restart is handled by the platform
	if g.gameOver || g.won {
		return g.result()
	}

	if g.chainTicks > 0 {
		g.chainTicks--
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return g.result()
	}

	for _, a := range in.Actions {
		if cmd, ok := commandFor(a); ok {
			g.round.HandleCommand(cmd)
		}
	}

	g.elapsedMs += g.stepMs
	for !g.levelCleared && !g.gameOver {
		interval := g.round.FallIntervalMs()
		if g.elapsedMs < interval {
			break
		}
		g.elapsedMs -= interval
		g.apply(g.round.Tick())
	}

	return g.result()
}

// pieceActions lists the actions that steer the capsule.
var pieceActions = []core.Action{
	core.ActionLeft,
	core.ActionRight,
	core.ActionUp,
	core.ActionRotateCW,
	core.ActionRotateCCW,
	core.ActionDown,
}

// commandFor maps a platform action to a round command.
func commandFor(a core.Action) (engine.Command, bool) {
	switch a {
	case core.ActionLeft:
		return engine.CmdLeft, true
	case core.ActionRight:
		return engine.CmdRight, true
	case core.ActionDown:
		return engine.CmdDown, true
	case core.ActionUp, core.ActionRotateCW:
		return engine.CmdRotateCW, true
	case core.ActionRotateCCW:
		return engine.CmdRotateCCW, true
	default:
		return engine.CmdNone, false
	}
}

// apply folds one round tick into score, events and level state.
func (g *Game) apply(res engine.TickResult) {
	if res.Cleared.Productive() {
		points := g.clearPoints(res.Cleared.Contaminants, res.Chain)
		g.score += points
		g.roundScore += points
		if res.Chain > 1 {
			g.lastChain = res.Chain
			g.chainTicks = chainBannerTime
		}
		g.events = append(g.events, core.Event{
			Kind:   core.EventCleared,
			Level:  g.levelIndex + 1,
			Cells:  res.Cleared.Cleared,
			Chain:  res.Chain,
			Points: points,
		})
	}

	switch res.Outcome {
	case engine.Won:
		bonus := g.cfg.Scoring.LevelBonus * (g.levelIndex + 1)
		g.score += bonus
		g.roundScore += bonus
		summary := g.summary()
		g.events = append(g.events, core.Event{
			Kind:   core.EventLevelCleared,
			Level:  g.levelIndex + 1,
			Points: bonus,
			Round:  &summary,
		})
		g.levelCleared = true
		g.levelClearTicks = 0
	case engine.Lost:
		summary := g.summary()
		g.events = append(g.events, core.Event{
			Kind:  core.EventRoundLost,
			Level: g.levelIndex + 1,
			Round: &summary,
		})
		g.gameOver = true
	}
}

// clearPoints scores a clearing pass. Each chain step doubles the value of a
// contaminant, up to the configured cap.
func (g *Game) clearPoints(contaminants, chain int) int {
	shift := min(max(chain-1, 0), g.cfg.Scoring.MaxChainShift)
	return contaminants * (g.cfg.Scoring.ContaminantPoints << shift)
}

// summary describes the current round for persistence.
func (g *Game) summary() core.RoundSummary {
	stats := g.round.Stats()
	return core.RoundSummary{
		Level:        g.levelIndex + 1,
		Outcome:      g.round.Outcome().String(),
		Contaminants: g.roundContaminants,
		Cleared:      stats.Contaminants,
		Pieces:       stats.Pieces,
		Ticks:        stats.Ticks,
		LongestChain: stats.LongestChain,
		Score:        g.roundScore,
	}
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.mode == ModeCampaign && g.levelIndex >= LevelCount()-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.startRound()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.levelIndex + 1,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Round exposes the active round for inspection.
func (g *Game) Round() *engine.Round {
	return g.round
}

// Config returns the resolved game config.
func (g *Game) Config() config.VirusConfig {
	return g.cfg
}
