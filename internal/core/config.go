package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// StepMillis returns the simulated time covered by one Step.
func (c RuntimeConfig) StepMillis() int {
	if c.TickRate <= 0 {
		return 1000 / 60
	}
	return Max(1, 1000/c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level, 1-based
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended by finishing the last level
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind identifies something notable that happened during a Step.
type EventKind string

const (
	EventCleared      EventKind = "cleared"       // Cells removed by a clearing pass
	EventLevelCleared EventKind = "level_cleared" // Every contaminant of a level removed
	EventRoundLost    EventKind = "round_lost"    // Spawn blocked
)

// Event is a notable game occurrence the platform may log or persist.
type Event struct {
	Kind   EventKind
	Level  int // 1-based level the event belongs to
	Cells  int // Cells cleared (EventCleared)
	Chain  int // Clearing pass index since the last lock (EventCleared)
	Points int // Score gained
	Round  *RoundSummary
}

// RoundSummary describes a finished round (one level attempt).
type RoundSummary struct {
	Level        int
	Outcome      string
	Contaminants int // Seeded at round start
	Cleared      int // Contaminants cleared
	Pieces       int
	Ticks        int
	LongestChain int
	Score        int // Score gained during the round
}
