package virus

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StatePaused       GameStateType = "paused"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	Mode           string // "campaign" or "endless"
	Level          int    // 1-indexed
	Score          int
	Remaining      int
	FallIntervalMs int
	Phase          string
	Next           [2]string
	Board          string // One line per row, see engine.Cell.Rune
	State          GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	hinge, sat := g.round.Next()
	return Snapshot{
		Tick:           g.tick,
		Mode:           string(g.mode),
		Level:          g.levelIndex + 1,
		Score:          g.score,
		Remaining:      g.round.RemainingContaminants(),
		FallIntervalMs: g.round.FallIntervalMs(),
		Phase:          g.round.Phase().String(),
		Next:           [2]string{hinge.String(), sat.String()},
		Board:          g.round.Grid().String(),
		State:          state,
	}
}
