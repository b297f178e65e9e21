package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, lines ...string) *Grid {
	t.Helper()
	g, err := ParseGrid(lines...)
	require.NoError(t, err)
	return g
}

func row(r int, cols ...int) []Coord {
	out := make([]Coord, 0, len(cols))
	for _, c := range cols {
		out = append(out, At(r, c))
	}
	return out
}

func TestRuns(t *testing.T) {
	R, Y := ColorRed, ColorYellow
	tests := []struct {
		name string
		line []Color
		want []span
	}{
		{"empty", []Color{0, 0, 0, 0, 0}, nil},
		{"three", []Color{R, R, R, 0, 0}, nil},
		{"four", []Color{R, R, R, R, 0}, []span{{0, 4}}},
		{"four at end", []Color{0, Y, Y, Y, Y}, []span{{1, 5}}},
		{"broken", []Color{R, R, Y, R, R}, nil},
		{"seven", []Color{R, R, R, R, R, R, R, 0}, []span{{0, 7}}},
		{"two runs", []Color{R, R, R, R, Y, Y, Y, Y}, []span{{0, 4}, {4, 8}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runs(tt.line))
		})
	}
}

func TestFindMatches(t *testing.T) {
	last := Rows - 1
	tests := []struct {
		name  string
		lines []string
		want  []Coord
	}{
		{
			name:  "run of three does not clear",
			lines: []string{"RRR....."},
			want:  nil,
		},
		{
			name:  "run of four",
			lines: []string{"yyyy...."},
			want:  row(last, 0, 1, 2, 3),
		},
		{
			name:  "run of seven",
			lines: []string{".bbbbbbb"},
			want:  row(last, 1, 2, 3, 4, 5, 6, 7),
		},
		{
			name:  "contaminants and halves share a color",
			lines: []string{"RrRr...."},
			want:  row(last, 0, 1, 2, 3),
		},
		{
			name:  "vertical run",
			lines: []string{"..B.....", "..b.....", "..b.....", "..B....."},
			want:  []Coord{At(last-3, 2), At(last-2, 2), At(last-1, 2), At(last, 2)},
		},
		{
			name: "crossing runs report shared cell once",
			lines: []string{
				"...y....",
				"...y....",
				"yyyy....",
				"...y....",
			},
			want: []Coord{
				At(last-3, 3),
				At(last-2, 3),
				At(last-1, 0), At(last-1, 1), At(last-1, 2), At(last-1, 3),
				At(last, 3),
			},
		},
		{
			name:  "mixed colors never clear",
			lines: []string{"RYRYRYRY", "YRYRYRYR"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.lines...)
			before := g.Clone()
			assert.Equal(t, tt.want, FindMatches(g))
			assert.True(t, g.Equal(before), "FindMatches must not modify the grid")
		})
	}
}

func TestClearFloatingDebris(t *testing.T) {
	g := NewGrid()
	for col := 2; col <= 5; col++ {
		g.Set(At(10, col), PieceHalf(ColorYellow))
	}

	matches := FindMatches(g)
	require.Equal(t, row(10, 2, 3, 4, 5), matches)

	res := ClearMatches(g, matches)
	assert.Equal(t, ClearResult{Cleared: 4}, res)
	assert.True(t, res.Productive())
	assert.True(t, g.Equal(NewGrid()))
	assert.Equal(t, 0, Settle(g))
}

func TestClearMatchesCountsContaminants(t *testing.T) {
	g := mustParse(t, "RRrr....")
	res := ClearMatches(g, FindMatches(g))
	assert.Equal(t, ClearResult{Cleared: 4, Contaminants: 2}, res)
	assert.Equal(t, 0, g.ContaminantCount())
}

func TestClearMatchesDecouplesPartner(t *testing.T) {
	last := Rows - 1
	g := mustParse(t, "rrrrb...")
	require.NoError(t, g.Link(At(last, 3), At(last, 4)))

	ClearMatches(g, FindMatches(g))
	survivor := g.Get(At(last, 4))
	assert.True(t, survivor.IsPiece())
	assert.False(t, survivor.Paired())
	assert.NoError(t, g.CheckInvariants())
}

func TestClearMatchesSkipsEmpty(t *testing.T) {
	g := NewGrid()
	res := ClearMatches(g, []Coord{At(0, 0), At(1, 1)})
	assert.False(t, res.Productive())
}
