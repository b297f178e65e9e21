package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedContaminants(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		minRow int
	}{
		{"first level", 4, 8},
		{"crowded", 32, 8},
		{"high rows allowed", 48, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				g := NewGrid()
				placed := SeedContaminants(g, tt.count, tt.minRow, newRNG(seed))
				assert.Equal(t, tt.count, placed)
				assert.Equal(t, placed, g.ContaminantCount())
				assert.Empty(t, FindMatches(g))

				for row := 0; row < Rows; row++ {
					for col := 0; col < Cols; col++ {
						c := At(row, col)
						cell := g.Get(c)
						if !cell.IsContaminant() {
							continue
						}
						assert.GreaterOrEqual(t, row, tt.minRow)
						assert.False(t, completesRun(g, c, cell.Color, seedRun), "run of %d through %v", seedRun, c)
					}
				}
			}
		})
	}
}

func TestSeedContaminantsStopsWhenFull(t *testing.T) {
	g := NewGrid()
	placed := SeedContaminants(g, 100, Rows-1, newRNG(1))
	assert.Equal(t, Cols, placed)
}
