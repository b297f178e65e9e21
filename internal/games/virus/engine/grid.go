package engine

import (
	"fmt"
	"strings"
)

// Grid is the fixed-size board. Cells are stored in row-major order: index = row*Cols + col.
// Every accessor expects an in-bounds coordinate; anything else is a programming fault.
type Grid struct {
	cells [Rows * Cols]Cell
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// ParseGrid builds a grid from up to Rows lines of text, bottom-aligned so short
// fixtures describe the floor of the board. '.' is empty, 'R'/'Y'/'B' contaminants,
// 'r'/'y'/'b' unpaired piece halves.
func ParseGrid(lines ...string) (*Grid, error) {
	if len(lines) > Rows {
		return nil, fmt.Errorf("engine: grid has %d rows, max %d", len(lines), Rows)
	}
	g := NewGrid()
	top := Rows - len(lines)
	for i, line := range lines {
		if len(line) > Cols {
			return nil, fmt.Errorf("engine: row %d has %d columns, max %d", i, len(line), Cols)
		}
		for col, ch := range line {
			var cell Cell
			switch ch {
			case '.', ' ':
				continue
			case 'R':
				cell = Contaminant(ColorRed)
			case 'Y':
				cell = Contaminant(ColorYellow)
			case 'B':
				cell = Contaminant(ColorBlue)
			case 'r':
				cell = PieceHalf(ColorRed)
			case 'y':
				cell = PieceHalf(ColorYellow)
			case 'b':
				cell = PieceHalf(ColorBlue)
			default:
				return nil, fmt.Errorf("engine: unknown cell %q at row %d col %d", ch, i, col)
			}
			g.cells[index(At(top+i, col))] = cell
		}
	}
	return g, nil
}

func index(c Coord) int {
	return c.Row*Cols + c.Col
}

// InBounds returns true if the coordinate lies on the board.
func InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// InBounds returns true if the coordinate lies on the board.
func (g *Grid) InBounds(c Coord) bool {
	return InBounds(c)
}

// Get returns the cell at c.
func (g *Grid) Get(c Coord) Cell {
	if !InBounds(c) {
		fault("get", c, ErrOutOfBounds)
	}
	return g.cells[index(c)]
}

// Set writes a cell at c.
func (g *Grid) Set(c Coord, cell Cell) {
	if !InBounds(c) {
		fault("set", c, ErrOutOfBounds)
	}
	g.cells[index(c)] = cell
}

// Clear empties the slot at c.
func (g *Grid) Clear(c Coord) {
	g.Set(c, Empty())
}

// place writes a cell into a slot that must currently be empty.
func (g *Grid) place(c Coord, cell Cell) {
	if !g.Get(c).IsEmpty() {
		fault("place", c, ErrOccupied)
	}
	g.cells[index(c)] = cell
}

// blocked reports whether c is blocked for a mover whose sibling sits at sibling.
// Out-of-bounds slots are blocked.
func (g *Grid) blocked(c Coord, sibling Coord) bool {
	if !InBounds(c) {
		return true
	}
	return !g.Get(c).IsEmpty() && c != sibling
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	return &clone
}

// Equal returns true if two grids have the same contents.
func (g *Grid) Equal(other *Grid) bool {
	return g.cells == other.cells
}

// ContaminantCount returns the number of contaminants on the board.
func (g *Grid) ContaminantCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell.IsContaminant() {
			count++
		}
	}
	return count
}

// Partner returns the coordinate of the partner of the piece half at c.
func (g *Grid) Partner(c Coord) (Coord, bool) {
	cell := g.Get(c)
	if !cell.Paired() {
		return Coord{}, false
	}
	return c.Add(cell.Pair.Offset()), true
}

// Link pairs two adjacent unpaired piece halves.
func (g *Grid) Link(a, b Coord) error {
	ca, cb := g.Get(a), g.Get(b)
	if !ca.IsPiece() || !cb.IsPiece() || ca.Paired() || cb.Paired() {
		return fmt.Errorf("engine: cannot link %v and %v", a, b)
	}
	pair := pairToward(a, b)
	if pair == PairNone {
		return fmt.Errorf("engine: %v and %v are not adjacent", a, b)
	}
	ca.Pair = pair
	cb.Pair = pair.Opposite()
	g.Set(a, ca)
	g.Set(b, cb)
	return nil
}

// Decouple breaks the pair link of the cell at c on both sides.
func (g *Grid) Decouple(c Coord) {
	p, ok := g.Partner(c)
	if !ok {
		return
	}
	cell := g.Get(c)
	cell.Pair = PairNone
	g.Set(c, cell)

	if InBounds(p) {
		partner := g.Get(p)
		partner.Pair = PairNone
		g.Set(p, partner)
	}
}

// CheckInvariants verifies that every pair link is symmetric.
func (g *Grid) CheckInvariants() error {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			c := At(row, col)
			cell := g.cells[index(c)]
			if cell.Kind != KindPiece && cell.Pair != PairNone {
				return &InvariantError{Op: "check", Coord: c, Err: ErrAsymmetricPair}
			}
			if !cell.Paired() {
				continue
			}
			p := c.Add(cell.Pair.Offset())
			if !InBounds(p) {
				return &InvariantError{Op: "check", Coord: c, Err: ErrAsymmetricPair}
			}
			partner := g.cells[index(p)]
			if !partner.IsPiece() || partner.Pair != cell.Pair.Opposite() {
				return &InvariantError{Op: "check", Coord: c, Err: ErrAsymmetricPair}
			}
			if partner.Active != cell.Active {
				return &InvariantError{Op: "check", Coord: c, Err: ErrAsymmetricPair}
			}
		}
	}
	return nil
}

// String renders the grid one row per line using Cell.Rune.
func (g *Grid) String() string {
	return g.View().String()
}

// View returns a read-only copy of the grid.
func (g *Grid) View() GridView {
	return GridView{cells: g.cells}
}

// GridView is an immutable snapshot of the board for renderers.
type GridView struct {
	cells [Rows * Cols]Cell
}

// At returns the cell at c, or Empty for out-of-bounds coordinates.
func (v GridView) At(c Coord) Cell {
	if !InBounds(c) {
		return Empty()
	}
	return v.cells[index(c)]
}

// Rows returns the board height.
func (v GridView) Rows() int {
	return Rows
}

// Cols returns the board width.
func (v GridView) Cols() int {
	return Cols
}

// String renders the view one row per line.
func (v GridView) String() string {
	var sb strings.Builder
	sb.Grow(Rows * (Cols + 1))
	for row := 0; row < Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < Cols; col++ {
			sb.WriteRune(v.cells[index(At(row, col))].Rune())
		}
	}
	return sb.String()
}
