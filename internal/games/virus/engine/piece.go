package engine

// PieceState is the lifecycle of a falling piece.
type PieceState uint8

const (
	PieceSpawned PieceState = iota
	PieceFalling
	PieceLocked
)

// Piece is the player-controlled pair of halves. The hinge is the rotation pivot;
// the satellite is the other half. Both halves live in the grid; the piece only
// remembers where they are.
//
// Layout conventions that fall out of the rotation table:
//   - Horizontal: hinge on the left, satellite on the right.
//   - Vertical: hinge on the bottom, satellite on top.
type Piece struct {
	grid        *Grid
	hinge       Coord
	satellite   Coord
	orientation Orientation
	state       PieceState
}

// SpawnPiece places a new horizontal piece at the spawn positions.
// Callers must check SpawnBlocked first; placing over an occupied slot is a fault.
func SpawnPiece(g *Grid, hingeColor, satelliteColor Color) *Piece {
	g.place(SpawnHinge, Cell{Kind: KindPiece, Color: hingeColor, Pair: PairRight, Active: true})
	g.place(SpawnSatellite, Cell{Kind: KindPiece, Color: satelliteColor, Pair: PairLeft, Active: true})
	return &Piece{
		grid:        g,
		hinge:       SpawnHinge,
		satellite:   SpawnSatellite,
		orientation: Horizontal,
		state:       PieceFalling,
	}
}

// SpawnBlocked reports whether either spawn slot is taken.
func SpawnBlocked(g *Grid) bool {
	return !g.Get(SpawnHinge).IsEmpty() || !g.Get(SpawnSatellite).IsEmpty()
}

// Hinge returns the hinge position.
func (p *Piece) Hinge() Coord { return p.hinge }

// Satellite returns the satellite position.
func (p *Piece) Satellite() Coord { return p.satellite }

// Orientation returns the current orientation.
func (p *Piece) Orientation() Orientation { return p.orientation }

// State returns the lifecycle state.
func (p *Piece) State() PieceState { return p.state }

// Move translates both halves one step. It returns false and leaves the grid
// untouched if either target is off the board or occupied by anything but the sibling.
func (p *Piece) Move(dir MoveDir) bool {
	if p.state != PieceFalling {
		return false
	}

	off := dir.offset()
	hingeTarget := p.hinge.Add(off)
	satTarget := p.satellite.Add(off)
	if p.grid.blocked(hingeTarget, p.satellite) || p.grid.blocked(satTarget, p.hinge) {
		return false
	}

	hingeCell := p.grid.Get(p.hinge)
	satCell := p.grid.Get(p.satellite)
	p.grid.Clear(p.hinge)
	p.grid.Clear(p.satellite)
	p.hinge, p.satellite = hingeTarget, satTarget
	p.grid.place(p.hinge, hingeCell)
	p.grid.place(p.satellite, satCell)
	return true
}

// Rotate turns the piece a quarter around its hinge.
// Rotation is a no-op while the hinge is on the top row.
// A vertical piece blocked on its right is kicked one column left when that slot is free;
// there is no mirrored kick to the right, and horizontal pieces are never kicked.
func (p *Piece) Rotate(dir RotateDir) bool {
	if p.state != PieceFalling || p.hinge.Row == 0 {
		return false
	}

	off := offUp
	if p.orientation == Vertical {
		off = offRight
	}
	target := p.hinge.Add(off)

	if p.grid.blocked(target, p.satellite) {
		if p.orientation == Vertical {
			return p.kick(dir)
		}
		return false
	}

	switch {
	case dir == Clockwise && p.orientation == Horizontal:
		p.relocate(target, p.hinge, true)
	case dir == Clockwise && p.orientation == Vertical:
		p.relocate(p.hinge, p.satellite.Add(offBottomRight), false)
	case dir == CounterClockwise && p.orientation == Horizontal:
		p.relocate(p.hinge, p.satellite.Add(offTopLeft), false)
	default:
		p.relocate(target, p.hinge, true)
	}
	return true
}

// kick completes a blocked vertical rotation by shifting the piece one column left.
func (p *Piece) kick(dir RotateDir) bool {
	right := p.hinge.Add(offRight)
	left := p.hinge.Add(offLeft)

	rightTaken := !InBounds(right) || !p.grid.Get(right).IsEmpty()
	leftFree := InBounds(left) && p.grid.Get(left).IsEmpty()
	if !rightTaken || !leftFree {
		return false
	}

	if dir == Clockwise {
		p.relocate(left, p.hinge, false)
	} else {
		p.relocate(p.hinge, left, true)
	}
	return true
}

// relocate moves the current hinge cell to hingeDst and the satellite cell to satDst,
// optionally swapping roles, then rewrites the pair handles and toggles orientation.
func (p *Piece) relocate(hingeDst, satDst Coord, swap bool) {
	hingeCell := p.grid.Get(p.hinge)
	satCell := p.grid.Get(p.satellite)
	p.grid.Clear(p.hinge)
	p.grid.Clear(p.satellite)

	if swap {
		p.hinge, p.satellite = satDst, hingeDst
		hingeCell, satCell = satCell, hingeCell
	} else {
		p.hinge, p.satellite = hingeDst, satDst
	}

	hingeCell.Pair = pairToward(p.hinge, p.satellite)
	satCell.Pair = hingeCell.Pair.Opposite()
	p.grid.place(p.hinge, hingeCell)
	p.grid.place(p.satellite, satCell)

	if p.orientation == Horizontal {
		p.orientation = Vertical
	} else {
		p.orientation = Horizontal
	}
}

// Lock ends player control. The halves stay on the grid, still paired.
func (p *Piece) Lock() {
	if p.state == PieceLocked {
		return
	}
	for _, c := range []Coord{p.hinge, p.satellite} {
		cell := p.grid.Get(c)
		cell.Active = false
		p.grid.Set(c, cell)
	}
	p.state = PieceLocked
}

// View returns a read-only description of the piece.
func (p *Piece) View() PieceView {
	return PieceView{
		Hinge:          p.hinge,
		Satellite:      p.satellite,
		HingeColor:     p.grid.Get(p.hinge).Color,
		SatelliteColor: p.grid.Get(p.satellite).Color,
		Orientation:    p.orientation,
		State:          p.state,
	}
}

// PieceView describes the active piece for renderers and tests.
type PieceView struct {
	Hinge          Coord
	Satellite      Coord
	HingeColor     Color
	SatelliteColor Color
	Orientation    Orientation
	State          PieceState
}
