package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spawnBelowTop spawns a red/blue piece and drops it one row so it may rotate.
func spawnBelowTop(t *testing.T, g *Grid) *Piece {
	t.Helper()
	p := SpawnPiece(g, ColorRed, ColorBlue)
	require.True(t, p.Move(MoveDown))
	return p
}

func assertHalf(t *testing.T, g *Grid, c Coord, color Color, pair Pair) {
	t.Helper()
	cell := g.Get(c)
	assert.True(t, cell.IsPiece(), "cell %v is not a piece half", c)
	assert.Equal(t, color, cell.Color, "color at %v", c)
	assert.Equal(t, pair, cell.Pair, "pair at %v", c)
}

func TestSpawnPiece(t *testing.T) {
	g := NewGrid()
	require.False(t, SpawnBlocked(g))

	p := SpawnPiece(g, ColorRed, ColorBlue)
	assert.Equal(t, SpawnHinge, p.Hinge())
	assert.Equal(t, SpawnSatellite, p.Satellite())
	assert.Equal(t, Horizontal, p.Orientation())
	assert.Equal(t, PieceFalling, p.State())
	assertHalf(t, g, SpawnHinge, ColorRed, PairRight)
	assertHalf(t, g, SpawnSatellite, ColorBlue, PairLeft)
	assert.True(t, g.Get(SpawnHinge).Active)
	assert.True(t, SpawnBlocked(g))
	assert.NoError(t, g.CheckInvariants())
}

func TestSpawnBlockedEitherSlot(t *testing.T) {
	for _, c := range []Coord{SpawnHinge, SpawnSatellite} {
		g := NewGrid()
		g.Set(c, Contaminant(ColorYellow))
		assert.True(t, SpawnBlocked(g), "slot %v", c)
	}
}

func TestPieceMove(t *testing.T) {
	g := NewGrid()
	p := SpawnPiece(g, ColorRed, ColorBlue)

	require.True(t, p.Move(MoveRight))
	assert.Equal(t, At(0, 4), p.Hinge())
	assert.Equal(t, At(0, 5), p.Satellite())
	assert.True(t, g.Get(At(0, 3)).IsEmpty())

	require.True(t, p.Move(MoveDown))
	assert.Equal(t, At(1, 4), p.Hinge())
	assertHalf(t, g, At(1, 4), ColorRed, PairRight)
	assertHalf(t, g, At(1, 5), ColorBlue, PairLeft)
	assert.NoError(t, g.CheckInvariants())
}

func TestPieceMoveRejectedLeavesGrid(t *testing.T) {
	g := NewGrid()
	p := SpawnPiece(g, ColorRed, ColorBlue)
	for i := 0; i < 3; i++ {
		require.True(t, p.Move(MoveLeft))
	}

	before := g.Clone()
	assert.False(t, p.Move(MoveLeft), "wall")
	assert.True(t, g.Equal(before))
	assert.Equal(t, At(0, 0), p.Hinge())

	g.Set(At(1, 1), Contaminant(ColorRed))
	before = g.Clone()
	assert.False(t, p.Move(MoveDown), "blocked below satellite")
	assert.True(t, g.Equal(before))
}

func TestRotateNoopOnTopRow(t *testing.T) {
	g := NewGrid()
	p := SpawnPiece(g, ColorRed, ColorBlue)
	before := g.Clone()

	assert.False(t, p.Rotate(Clockwise))
	assert.False(t, p.Rotate(CounterClockwise))
	assert.True(t, g.Equal(before))
	assert.Equal(t, Horizontal, p.Orientation())
}

func TestRotateTable(t *testing.T) {
	// Piece starts at (1,3) red, (1,4) blue.
	tests := []struct {
		name        string
		dirs        []RotateDir
		hinge       Coord
		satellite   Coord
		hingeColor  Color
		satColor    Color
		orientation Orientation
	}{
		{
			name:        "clockwise from horizontal promotes satellite",
			dirs:        []RotateDir{Clockwise},
			hinge:       At(1, 3),
			satellite:   At(0, 3),
			hingeColor:  ColorBlue,
			satColor:    ColorRed,
			orientation: Vertical,
		},
		{
			name:        "clockwise from vertical",
			dirs:        []RotateDir{Clockwise, Clockwise},
			hinge:       At(1, 3),
			satellite:   At(1, 4),
			hingeColor:  ColorBlue,
			satColor:    ColorRed,
			orientation: Horizontal,
		},
		{
			name:        "counter-clockwise from horizontal",
			dirs:        []RotateDir{CounterClockwise},
			hinge:       At(1, 3),
			satellite:   At(0, 3),
			hingeColor:  ColorRed,
			satColor:    ColorBlue,
			orientation: Vertical,
		},
		{
			name:        "counter-clockwise from vertical promotes satellite",
			dirs:        []RotateDir{CounterClockwise, CounterClockwise},
			hinge:       At(1, 3),
			satellite:   At(1, 4),
			hingeColor:  ColorBlue,
			satColor:    ColorRed,
			orientation: Horizontal,
		},
		{
			name:        "four clockwise turns are identity",
			dirs:        []RotateDir{Clockwise, Clockwise, Clockwise, Clockwise},
			hinge:       At(1, 3),
			satellite:   At(1, 4),
			hingeColor:  ColorRed,
			satColor:    ColorBlue,
			orientation: Horizontal,
		},
		{
			name:        "four counter-clockwise turns are identity",
			dirs:        []RotateDir{CounterClockwise, CounterClockwise, CounterClockwise, CounterClockwise},
			hinge:       At(1, 3),
			satellite:   At(1, 4),
			hingeColor:  ColorRed,
			satColor:    ColorBlue,
			orientation: Horizontal,
		},
		{
			name:        "clockwise then counter-clockwise is identity",
			dirs:        []RotateDir{Clockwise, CounterClockwise},
			hinge:       At(1, 3),
			satellite:   At(1, 4),
			hingeColor:  ColorRed,
			satColor:    ColorBlue,
			orientation: Horizontal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid()
			p := spawnBelowTop(t, g)
			for _, dir := range tt.dirs {
				require.True(t, p.Rotate(dir))
				require.NoError(t, g.CheckInvariants())
			}

			v := p.View()
			assert.Equal(t, tt.hinge, v.Hinge)
			assert.Equal(t, tt.satellite, v.Satellite)
			assert.Equal(t, tt.hingeColor, v.HingeColor)
			assert.Equal(t, tt.satColor, v.SatelliteColor)
			assert.Equal(t, tt.orientation, v.Orientation)

			hinge := g.Get(v.Hinge)
			assert.Equal(t, pairToward(v.Hinge, v.Satellite), hinge.Pair)
			assert.True(t, hinge.Active)
		})
	}
}

// verticalAtRightWall builds a vertical piece with hinge at (row,7), blue below red.
func verticalAtRightWall(t *testing.T, g *Grid, row int) *Piece {
	t.Helper()
	p := spawnBelowTop(t, g)
	require.True(t, p.Rotate(Clockwise))
	for p.Hinge().Col < Cols-1 {
		require.True(t, p.Move(MoveRight))
	}
	for p.Hinge().Row < row {
		require.True(t, p.Move(MoveDown))
	}
	require.Equal(t, At(row, Cols-1), p.Hinge())
	return p
}

func TestRotateWallKick(t *testing.T) {
	t.Run("clockwise", func(t *testing.T) {
		g := NewGrid()
		p := verticalAtRightWall(t, g, 1)

		require.True(t, p.Rotate(Clockwise))
		assert.Equal(t, Horizontal, p.Orientation())
		assertHalf(t, g, At(1, 6), ColorBlue, PairRight)
		assertHalf(t, g, At(1, 7), ColorRed, PairLeft)
		assert.Equal(t, At(1, 6), p.Hinge())
		assert.True(t, g.Get(At(0, 7)).IsEmpty())
	})

	t.Run("counter-clockwise", func(t *testing.T) {
		g := NewGrid()
		p := verticalAtRightWall(t, g, 1)

		require.True(t, p.Rotate(CounterClockwise))
		assert.Equal(t, Horizontal, p.Orientation())
		assertHalf(t, g, At(1, 6), ColorRed, PairRight)
		assertHalf(t, g, At(1, 7), ColorBlue, PairLeft)
		assert.Equal(t, At(1, 6), p.Hinge())
	})

	t.Run("left also blocked", func(t *testing.T) {
		g := NewGrid()
		g.Set(At(2, 6), Contaminant(ColorYellow))
		p := verticalAtRightWall(t, g, 2)

		before := g.Clone()
		assert.False(t, p.Rotate(Clockwise))
		assert.False(t, p.Rotate(CounterClockwise))
		assert.True(t, g.Equal(before))
		assert.Equal(t, Vertical, p.Orientation())
	})
}

func TestRotateHorizontalBlockedNoKick(t *testing.T) {
	g := NewGrid()
	g.Set(At(4, 0), Contaminant(ColorRed))
	p := SpawnPiece(g, ColorRed, ColorBlue)
	for p.Hinge().Row < 5 {
		require.True(t, p.Move(MoveDown))
	}
	for p.Hinge().Col > 0 {
		require.True(t, p.Move(MoveLeft))
	}

	before := g.Clone()
	assert.False(t, p.Rotate(Clockwise))
	assert.False(t, p.Rotate(CounterClockwise))
	assert.True(t, g.Equal(before))
}

func TestPieceLock(t *testing.T) {
	g := NewGrid()
	p := spawnBelowTop(t, g)
	p.Lock()

	assert.Equal(t, PieceLocked, p.State())
	assert.False(t, g.Get(p.Hinge()).Active)
	assert.False(t, g.Get(p.Satellite()).Active)
	assert.True(t, g.Get(p.Hinge()).Paired(), "locking keeps the pair")
	assert.False(t, p.Move(MoveDown))
	assert.False(t, p.Rotate(Clockwise))
	assert.NoError(t, g.CheckInvariants())
}
