package engine

import (
	"sort"

	"github.com/kamstrup/intmap"
)

// span is a half-open run [start, end) within one line.
type span struct {
	start, end int
}

// runs returns every maximal run of at least MinRun equal, non-empty symbols.
func runs(line []Color) []span {
	var out []span
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i] == line[start] {
			continue
		}
		if line[start] != ColorNone && i-start >= MinRun {
			out = append(out, span{start: start, end: i})
		}
		start = i
	}
	return out
}

// transpose returns the board as columns, so each column can be scanned like a row.
func transpose(g *Grid) [Cols][Rows]Color {
	var t [Cols][Rows]Color
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			t[col][row] = g.cells[index(At(row, col))].Symbol()
		}
	}
	return t
}

// FindMatches returns every coordinate covered by a horizontal or vertical run of
// MinRun or more cells of one color. A cell in both a row run and a column run is
// reported once. The result is sorted row-major. The grid is not modified.
func FindMatches(g *Grid) []Coord {
	seen := intmap.New[int, Coord](Rows * Cols)
	var out []Coord
	add := func(c Coord) {
		k := index(c)
		if _, ok := seen.Get(k); ok {
			return
		}
		seen.Put(k, c)
		out = append(out, c)
	}

	line := make([]Color, Cols)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			line[col] = g.cells[index(At(row, col))].Symbol()
		}
		for _, s := range runs(line) {
			for col := s.start; col < s.end; col++ {
				add(At(row, col))
			}
		}
	}

	columns := transpose(g)
	for col := range columns {
		for _, s := range runs(columns[col][:]) {
			for row := s.start; row < s.end; row++ {
				add(At(row, col))
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return index(out[i]) < index(out[j])
	})
	return out
}

// ClearResult summarizes one clearing pass.
type ClearResult struct {
	Cleared      int // Cells removed
	Contaminants int // Contaminants among them
}

// Productive reports whether the pass removed anything.
func (r ClearResult) Productive() bool {
	return r.Cleared > 0
}

// ClearMatches removes the given cells. A removed half's partner is decoupled
// first so it falls on its own.
func ClearMatches(g *Grid, coords []Coord) ClearResult {
	var res ClearResult
	for _, c := range coords {
		cell := g.Get(c)
		if cell.IsEmpty() {
			continue
		}
		if cell.Paired() {
			g.Decouple(c)
		}
		if cell.IsContaminant() {
			res.Contaminants++
		}
		g.Clear(c)
		res.Cleared++
	}
	return res
}
