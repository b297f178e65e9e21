package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// RoundConfig holds the parameters of one round.
type RoundConfig struct {
	ContaminantCount  int // Contaminants seeded at round start
	FallIntervalMs    int // Initial interval between ticks
	SpeedRampMs       int // Interval decrement applied after every piece
	MinFallIntervalMs int // Floor for the interval
	ContaminantMinRow int // Contaminants are never seeded above this row
}

// DefaultRoundConfig returns the parameters of the classic first level.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		ContaminantCount:  4,
		FallIntervalMs:    400,
		SpeedRampMs:       4,
		MinFallIntervalMs: 100,
		ContaminantMinRow: 8,
	}
}

// Validate checks that the configuration describes a playable round.
func (c RoundConfig) Validate() error {
	if c.ContaminantMinRow < 1 || c.ContaminantMinRow >= Rows {
		return fmt.Errorf("engine: contaminant min row %d outside [1, %d]", c.ContaminantMinRow, Rows-1)
	}
	capacity := (Rows - c.ContaminantMinRow) * Cols
	if c.ContaminantCount < 1 || c.ContaminantCount > capacity {
		return fmt.Errorf("engine: contaminant count %d outside [1, %d]", c.ContaminantCount, capacity)
	}
	if c.FallIntervalMs <= 0 {
		return errors.New("engine: fall interval must be positive")
	}
	if c.MinFallIntervalMs <= 0 || c.MinFallIntervalMs > c.FallIntervalMs {
		return fmt.Errorf("engine: min fall interval %d outside [1, %d]", c.MinFallIntervalMs, c.FallIntervalMs)
	}
	if c.SpeedRampMs < 0 {
		return errors.New("engine: speed ramp must not be negative")
	}
	return nil
}

// Phase is what the next tick will do.
type Phase uint8

const (
	PhaseFalling  Phase = iota // Active piece descends
	PhaseSettling              // Loose halves drop one row per tick
	PhaseOver                  // Round finished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseSettling:
		return "settling"
	default:
		return "over"
	}
}

// Stats accumulates counters over a round.
type Stats struct {
	Ticks        int
	Pieces       int
	CellsCleared int
	Contaminants int // Contaminants cleared
	LongestChain int
}

// TickResult describes what a single tick did.
type TickResult struct {
	Moved   bool        // The piece descended or a settle pass moved something
	Locked  bool        // The piece landed this tick
	Cleared ClearResult // Cells removed by this tick's clearing pass, if any
	Chain   int         // 1-based index of the clearing pass since the piece locked
	Spawned bool        // A new piece entered the board
	Outcome Outcome
}

// Round is the controller of one game round. It owns the grid and the active piece
// and advances only when the host calls Tick or HandleCommand. It is not safe for
// concurrent use; the host serializes commands and ticks.
type Round struct {
	cfg       RoundConfig
	rng       *rand.Rand
	grid      *Grid
	piece     *Piece
	next      [2]Color
	phase     Phase
	outcome   Outcome
	remaining int
	interval  int
	chain     int
	paused    bool
	stats     Stats
}

// NewRound seeds a fresh board and spawns the first piece.
func NewRound(cfg RoundConfig, rng *rand.Rand) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := NewGrid()
	SeedContaminants(g, cfg.ContaminantCount, cfg.ContaminantMinRow, rng)
	return newRound(cfg, g, rng), nil
}

// NewRoundFromGrid starts a round on a prepared board. The contaminant count in cfg
// is ignored; the board's own contaminants are the ones to clear.
func NewRoundFromGrid(cfg RoundConfig, g *Grid, rng *rand.Rand) (*Round, error) {
	cfg.ContaminantCount = max(1, g.ContaminantCount())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.CheckInvariants(); err != nil {
		return nil, err
	}
	return newRound(cfg, g.Clone(), rng), nil
}

func newRound(cfg RoundConfig, g *Grid, rng *rand.Rand) *Round {
	r := &Round{
		cfg:       cfg,
		rng:       rng,
		grid:      g,
		remaining: g.ContaminantCount(),
		interval:  cfg.FallIntervalMs,
	}
	r.next = r.randomPair()
	r.beginTurn()
	return r
}

func (r *Round) randomPair() [2]Color {
	return [2]Color{
		Colors[r.rng.Intn(len(Colors))],
		Colors[r.rng.Intn(len(Colors))],
	}
}

// beginTurn spawns the queued piece or ends the round if the spawn is blocked.
func (r *Round) beginTurn() bool {
	if SpawnBlocked(r.grid) {
		r.finish(Lost)
		return false
	}
	r.piece = SpawnPiece(r.grid, r.next[0], r.next[1])
	r.next = r.randomPair()
	r.phase = PhaseFalling
	r.stats.Pieces++
	return true
}

func (r *Round) finish(o Outcome) {
	r.outcome = o
	r.phase = PhaseOver
	if r.piece != nil {
		r.piece.Lock()
		r.piece = nil
	}
}

// HandleCommand applies a player command to the active piece.
// It returns false when the command was rejected or there is nothing to control.
func (r *Round) HandleCommand(cmd Command) bool {
	if r.outcome != InProgress || r.paused || r.piece == nil || r.phase != PhaseFalling {
		return false
	}
	switch cmd {
	case CmdLeft:
		return r.piece.Move(MoveLeft)
	case CmdRight:
		return r.piece.Move(MoveRight)
	case CmdDown:
		return r.piece.Move(MoveDown)
	case CmdRotateCW:
		return r.piece.Rotate(Clockwise)
	case CmdRotateCCW:
		return r.piece.Rotate(CounterClockwise)
	default:
		return false
	}
}

// Tick advances the fall/settle clock by one step.
func (r *Round) Tick() TickResult {
	if r.outcome != InProgress || r.paused {
		return TickResult{Outcome: r.outcome}
	}
	r.stats.Ticks++

	var res TickResult
	switch r.phase {
	case PhaseFalling:
		if r.piece.Move(MoveDown) {
			res.Moved = true
			break
		}
		r.piece.Lock()
		r.piece = nil
		r.chain = 0
		res.Locked = true
		r.resolve(&res)
	case PhaseSettling:
		if SettleOneStep(r.grid) {
			res.Moved = true
			break
		}
		r.resolve(&res)
	}

	res.Outcome = r.outcome
	return res
}

// resolve runs one clearing pass. With nothing to clear the turn ends; otherwise
// the round is won or gravity takes over.
func (r *Round) resolve(res *TickResult) {
	matches := FindMatches(r.grid)
	if len(matches) == 0 {
		r.interval = max(r.cfg.MinFallIntervalMs, r.interval-r.cfg.SpeedRampMs)
		res.Spawned = r.beginTurn()
		return
	}

	cleared := ClearMatches(r.grid, matches)
	r.chain++
	r.remaining -= cleared.Contaminants
	r.stats.CellsCleared += cleared.Cleared
	r.stats.Contaminants += cleared.Contaminants
	r.stats.LongestChain = max(r.stats.LongestChain, r.chain)
	res.Cleared = cleared
	res.Chain = r.chain

	// Only clearing the last contaminant wins; a bare board has nothing to win.
	if cleared.Contaminants > 0 && r.remaining <= 0 {
		r.remaining = 0
		r.finish(Won)
		return
	}
	r.phase = PhaseSettling
}

// Pause stops tick and command processing without discarding state.
func (r *Round) Pause() { r.paused = true }

// Resume continues a paused round.
func (r *Round) Resume() { r.paused = false }

// Paused reports whether the round is paused.
func (r *Round) Paused() bool { return r.paused }

// Grid returns a read-only snapshot of the board.
func (r *Round) Grid() GridView { return r.grid.View() }

// Outcome returns the round state.
func (r *Round) Outcome() Outcome { return r.outcome }

// Phase returns what the next tick will do.
func (r *Round) Phase() Phase { return r.phase }

// RemainingContaminants returns how many contaminants are left.
func (r *Round) RemainingContaminants() int { return r.remaining }

// FallIntervalMs returns the current tick interval in milliseconds.
func (r *Round) FallIntervalMs() int { return r.interval }

// FallInterval returns the current tick interval.
func (r *Round) FallInterval() time.Duration {
	return time.Duration(r.interval) * time.Millisecond
}

// Next returns the colors of the queued piece (hinge, satellite).
func (r *Round) Next() (Color, Color) { return r.next[0], r.next[1] }

// Piece returns the active piece, if any.
func (r *Round) Piece() (PieceView, bool) {
	if r.piece == nil {
		return PieceView{}, false
	}
	return r.piece.View(), true
}

// Stats returns the round counters.
func (r *Round) Stats() Stats { return r.stats }

// Config returns the configuration the round was started with.
func (r *Round) Config() RoundConfig { return r.cfg }

// CheckInvariants verifies the board; intended for tests and soak runs.
func (r *Round) CheckInvariants() error {
	if err := r.grid.CheckInvariants(); err != nil {
		return err
	}
	if got := r.grid.ContaminantCount(); got != r.remaining && r.outcome != Won {
		return fmt.Errorf("engine: remaining %d, board has %d contaminants", r.remaining, got)
	}
	return nil
}
