// Package engine implements the board simulation for the virus game:
// the grid, the falling piece, match detection, gravity and the round controller.
// This package is UI-agnostic and deterministic for a given RNG seed.
package engine

import "fmt"

// Board dimensions.
const (
	Rows = 16
	Cols = 8
)

// MinRun is the shortest run of one color that clears.
const MinRun = 4

// Coord is a grid position. Row 0 is the top, Col 0 is the left edge.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns c offset by another coordinate.
func (c Coord) Add(o Coord) Coord {
	return Coord{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Offsets around a cell.
var (
	offUp          = Coord{Row: -1, Col: 0}
	offDown        = Coord{Row: 1, Col: 0}
	offLeft        = Coord{Row: 0, Col: -1}
	offRight       = Coord{Row: 0, Col: 1}
	offTopLeft     = Coord{Row: -1, Col: -1}
	offBottomRight = Coord{Row: 1, Col: 1}
)

// Spawn positions. A new piece always appears here; if either is taken the round is lost.
var (
	SpawnHinge     = At(0, 3)
	SpawnSatellite = At(0, 4)
)

// Color is the color family shared by contaminants and piece halves.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorYellow
	ColorBlue
)

// Colors lists the playable colors in a stable order.
var Colors = []Color{ColorRed, ColorYellow, ColorBlue}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorYellow:
		return "Yellow"
	case ColorBlue:
		return "Blue"
	default:
		return "None"
	}
}

// Orientation of a falling piece.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// MoveDir is a translation command for the active piece.
type MoveDir uint8

const (
	MoveLeft MoveDir = iota
	MoveRight
	MoveDown
)

func (d MoveDir) offset() Coord {
	switch d {
	case MoveLeft:
		return offLeft
	case MoveRight:
		return offRight
	default:
		return offDown
	}
}

// RotateDir is a rotation command for the active piece.
type RotateDir uint8

const (
	Clockwise RotateDir = iota
	CounterClockwise
)

// Command is a player intent delivered to the round controller.
type Command uint8

const (
	CmdNone Command = iota
	CmdLeft
	CmdRight
	CmdDown
	CmdRotateCW
	CmdRotateCCW
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdLeft:
		return "Left"
	case CmdRight:
		return "Right"
	case CmdDown:
		return "Down"
	case CmdRotateCW:
		return "RotateCW"
	case CmdRotateCCW:
		return "RotateCCW"
	default:
		return "None"
	}
}

// Outcome is the state of a round.
type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Lost
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in_progress"
	}
}
