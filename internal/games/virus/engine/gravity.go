package engine

// SettleOneStep drops every unsupported piece half one row and reports whether
// anything moved. Rows are processed from the second-to-last upward so a cell can
// only fall into a slot vacated earlier in the same pass.
//
// Floating rules:
//   - contaminants and the active piece never fall;
//   - a cell with anything directly below it is supported;
//   - a half paired side by side falls only if its partner can fall too;
//   - a half paired vertically falls whenever its own slot below is free.
func SettleOneStep(g *Grid) bool {
	moved := false
	floating := make([]Coord, 0, Cols)

	for row := Rows - 2; row >= 0; row-- {
		floating = floating[:0]
		for col := 0; col < Cols; col++ {
			c := At(row, col)
			if isFloating(g, c) {
				floating = append(floating, c)
			}
		}

		for _, c := range floating {
			cell := g.Get(c)
			g.Clear(c)
			g.place(c.Add(offDown), cell)
			moved = true
		}
	}
	return moved
}

func isFloating(g *Grid, c Coord) bool {
	cell := g.Get(c)
	if !cell.IsPiece() || cell.Active {
		return false
	}

	if !g.Get(c.Add(offDown)).IsEmpty() {
		return false
	}

	if cell.Paired() && !cell.Pair.Vertical() {
		partner := c.Add(cell.Pair.Offset())
		below := partner.Add(offDown)
		return InBounds(below) && g.Get(below).IsEmpty()
	}
	return true
}

// Settle runs SettleOneStep until nothing moves and returns the number of passes that moved.
func Settle(g *Grid) int {
	steps := 0
	for SettleOneStep(g) {
		steps++
	}
	return steps
}
