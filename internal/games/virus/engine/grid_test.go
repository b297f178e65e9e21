package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recoverInvariant runs fn and returns the InvariantError it panicked with, if any.
func recoverInvariant(fn func()) (err *InvariantError) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(*InvariantError)
		}
	}()
	fn()
	return nil
}

func TestGridOutOfBoundsFaults(t *testing.T) {
	g := NewGrid()
	tests := []struct {
		name string
		fn   func()
	}{
		{"get above", func() { g.Get(At(-1, 0)) }},
		{"get below", func() { g.Get(At(Rows, 0)) }},
		{"set left", func() { g.Set(At(0, -1), Empty()) }},
		{"clear right", func() { g.Clear(At(0, Cols)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := recoverInvariant(tt.fn)
			require.NotNil(t, err)
			assert.True(t, errors.Is(err, ErrOutOfBounds))
		})
	}
}

func TestGridPlaceOccupiedFaults(t *testing.T) {
	g := NewGrid()
	g.Set(At(5, 5), Contaminant(ColorRed))

	err := recoverInvariant(func() { g.place(At(5, 5), PieceHalf(ColorBlue)) })
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrOccupied)
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid(
		"B.......",
		"R.y.....",
	)
	require.NoError(t, err)

	assert.Equal(t, Contaminant(ColorBlue), g.Get(At(Rows-2, 0)))
	assert.Equal(t, Contaminant(ColorRed), g.Get(At(Rows-1, 0)))
	assert.Equal(t, PieceHalf(ColorYellow), g.Get(At(Rows-1, 2)))
	assert.True(t, g.Get(At(Rows-1, 1)).IsEmpty())
	assert.Equal(t, 2, g.ContaminantCount())
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"unknown symbol", []string{"R.x"}},
		{"too wide", []string{"RRRRRRRRR"}},
		{"too tall", make([]string, Rows+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(tt.lines...)
			assert.Error(t, err)
		})
	}
}

func TestGridString(t *testing.T) {
	g, err := ParseGrid("R.y.B..b")
	require.NoError(t, err)

	lines := g.String()
	assert.Len(t, lines, Rows*(Cols+1)-1)
	assert.Equal(t, "R.y.B..b", lines[len(lines)-Cols:])
}

func TestGridLinkAndDecouple(t *testing.T) {
	g := NewGrid()
	a, b := At(15, 0), At(15, 1)
	g.Set(a, PieceHalf(ColorRed))
	g.Set(b, PieceHalf(ColorBlue))

	require.NoError(t, g.Link(a, b))
	assert.Equal(t, PairRight, g.Get(a).Pair)
	assert.Equal(t, PairLeft, g.Get(b).Pair)
	assert.NoError(t, g.CheckInvariants())

	p, ok := g.Partner(a)
	require.True(t, ok)
	assert.Equal(t, b, p)

	g.Decouple(b)
	assert.False(t, g.Get(a).Paired())
	assert.False(t, g.Get(b).Paired())
	assert.NoError(t, g.CheckInvariants())
}

func TestGridLinkRejects(t *testing.T) {
	g := NewGrid()
	g.Set(At(15, 0), PieceHalf(ColorRed))
	g.Set(At(15, 2), PieceHalf(ColorRed))
	g.Set(At(14, 0), Contaminant(ColorRed))

	assert.Error(t, g.Link(At(15, 0), At(15, 2)), "not adjacent")
	assert.Error(t, g.Link(At(15, 0), At(14, 0)), "contaminant")
}

func TestCheckInvariantsAsymmetric(t *testing.T) {
	g := NewGrid()
	g.Set(At(15, 0), Cell{Kind: KindPiece, Color: ColorRed, Pair: PairRight})

	err := g.CheckInvariants()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAsymmetricPair)

	g.Set(At(15, 1), Cell{Kind: KindPiece, Color: ColorRed, Pair: PairUp})
	assert.ErrorIs(t, g.CheckInvariants(), ErrAsymmetricPair)

	g.Set(At(15, 1), Cell{Kind: KindPiece, Color: ColorRed, Pair: PairLeft})
	assert.NoError(t, g.CheckInvariants())
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid()
	g.Set(At(3, 3), Contaminant(ColorYellow))

	clone := g.Clone()
	require.True(t, g.Equal(clone))

	clone.Clear(At(3, 3))
	assert.False(t, g.Equal(clone))
	assert.True(t, g.Get(At(3, 3)).IsContaminant())
}

func TestGridViewOutOfBoundsIsEmpty(t *testing.T) {
	v := NewGrid().View()
	assert.True(t, v.At(At(-1, -1)).IsEmpty())
	assert.Equal(t, Rows, v.Rows())
	assert.Equal(t, Cols, v.Cols())
}

func TestCellRune(t *testing.T) {
	tests := []struct {
		cell Cell
		want rune
	}{
		{Empty(), '.'},
		{Contaminant(ColorRed), 'R'},
		{Contaminant(ColorYellow), 'Y'},
		{Contaminant(ColorBlue), 'B'},
		{PieceHalf(ColorRed), 'r'},
		{PieceHalf(ColorYellow), 'y'},
		{PieceHalf(ColorBlue), 'b'},
	}

	for _, tt := range tests {
		if got := tt.cell.Rune(); got != tt.want {
			t.Errorf("Rune(%+v) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}
