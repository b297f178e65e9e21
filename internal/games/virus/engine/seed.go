package engine

import "math/rand"

// seedRun is the run length seeding refuses to create, so a fresh board never
// holds a match or a near-match.
const seedRun = MinRun - 1

// SeedContaminants scatters up to count contaminants over rows [minRow, Rows).
// Slots are never stacked and no run of seedRun equal colors is formed.
// It returns how many were actually placed, which can fall short on a crowded board.
func SeedContaminants(g *Grid, count, minRow int, rng *rand.Rand) int {
	minRow = max(0, min(minRow, Rows-1))
	placed := 0
	attempts := count * 64

	for placed < count && attempts > 0 {
		attempts--
		c := At(minRow+rng.Intn(Rows-minRow), rng.Intn(Cols))
		if !g.Get(c).IsEmpty() {
			continue
		}
		if color, ok := pickColor(g, c, rng.Intn(len(Colors))); ok {
			g.Set(c, Contaminant(color))
			placed++
		}
	}

	// Random probing gave up; sweep the remaining slots in order.
	for row := minRow; row < Rows && placed < count; row++ {
		for col := 0; col < Cols && placed < count; col++ {
			c := At(row, col)
			if !g.Get(c).IsEmpty() {
				continue
			}
			if color, ok := pickColor(g, c, (row+col)%len(Colors)); ok {
				g.Set(c, Contaminant(color))
				placed++
			}
		}
	}
	return placed
}

// pickColor tries every color starting at Colors[first] and returns the first one
// that does not complete a run at c.
func pickColor(g *Grid, c Coord, first int) (Color, bool) {
	for i := range Colors {
		color := Colors[(first+i)%len(Colors)]
		if !completesRun(g, c, color, seedRun) {
			return color, true
		}
	}
	return ColorNone, false
}

// completesRun reports whether writing color at c would create a horizontal or
// vertical run of at least n.
func completesRun(g *Grid, c Coord, color Color, n int) bool {
	axes := [][2]Coord{{offLeft, offRight}, {offUp, offDown}}
	for _, axis := range axes {
		length := 1
		for _, off := range axis {
			for p := c.Add(off); InBounds(p) && g.Get(p).Symbol() == color; p = p.Add(off) {
				length++
			}
		}
		if length >= n {
			return true
		}
	}
	return false
}
