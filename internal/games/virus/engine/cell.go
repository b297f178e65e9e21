package engine

// Kind tags the variant held by a Cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindContaminant
	KindPiece
)

// Pair is a handle from a piece half to the slot of its partner.
// It never owns the partner; both halves are addressed through the grid.
type Pair uint8

const (
	PairNone Pair = iota
	PairUp
	PairDown
	PairLeft
	PairRight
)

// Opposite returns the handle the partner must hold for the link to be symmetric.
func (p Pair) Opposite() Pair {
	switch p {
	case PairUp:
		return PairDown
	case PairDown:
		return PairUp
	case PairLeft:
		return PairRight
	case PairRight:
		return PairLeft
	default:
		return PairNone
	}
}

// Offset returns the relative position of the partner.
func (p Pair) Offset() Coord {
	switch p {
	case PairUp:
		return offUp
	case PairDown:
		return offDown
	case PairLeft:
		return offLeft
	case PairRight:
		return offRight
	default:
		return Coord{}
	}
}

// Vertical reports whether the partner sits in a different row.
func (p Pair) Vertical() bool {
	return p == PairUp || p == PairDown
}

// pairToward returns the handle pointing from one slot to an adjacent one.
func pairToward(from, to Coord) Pair {
	switch to.Add(Coord{Row: -from.Row, Col: -from.Col}) {
	case offUp:
		return PairUp
	case offDown:
		return PairDown
	case offLeft:
		return PairLeft
	case offRight:
		return PairRight
	default:
		return PairNone
	}
}

// Cell is one slot of the grid. The zero value is Empty.
type Cell struct {
	Kind  Kind
	Color Color
	Pair  Pair // Piece halves only
	// Active marks the halves of the player-controlled piece.
	// Gravity never moves active cells.
	Active bool
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Contaminant returns an immobile contaminant cell.
func Contaminant(c Color) Cell {
	return Cell{Kind: KindContaminant, Color: c}
}

// PieceHalf returns an unpaired, settled piece half.
func PieceHalf(c Color) Cell {
	return Cell{Kind: KindPiece, Color: c}
}

// IsEmpty reports whether the slot is free.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// IsContaminant reports whether the cell is a contaminant.
func (c Cell) IsContaminant() bool {
	return c.Kind == KindContaminant
}

// IsPiece reports whether the cell is a piece half.
func (c Cell) IsPiece() bool {
	return c.Kind == KindPiece
}

// Paired reports whether the cell has a live partner link.
func (c Cell) Paired() bool {
	return c.Kind == KindPiece && c.Pair != PairNone
}

// Symbol returns the match symbol of the cell; empty slots use 0,
// which never equals a color.
func (c Cell) Symbol() Color {
	if c.Kind == KindEmpty {
		return ColorNone
	}
	return c.Color
}

// Rune returns a single-character debug representation:
// '.' empty, 'R'/'Y'/'B' contaminants, 'r'/'y'/'b' piece halves.
func (c Cell) Rune() rune {
	var r rune
	switch c.Color {
	case ColorRed:
		r = 'r'
	case ColorYellow:
		r = 'y'
	case ColorBlue:
		r = 'b'
	}
	switch c.Kind {
	case KindContaminant:
		return r - 'a' + 'A'
	case KindPiece:
		return r
	default:
		return '.'
	}
}
