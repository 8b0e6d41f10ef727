package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cachevis/cachevis/sim"
)

func TestLayout_GridOrigins(t *testing.T) {
	var l Layout
	for i := 0; i < 3; i++ {
		x, y := l.GridOrigin(i)
		assert.InDelta(t, marginX+float64(i)*gridDist, x, 1e-9)
		assert.InDelta(t, gridY, y, 1e-9)
	}
}

func TestLayout_CellRectStaysInsideBox(t *testing.T) {
	var l Layout
	rows, cols := 5, 7
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := l.CellRect(1, rows, cols, row, col)
			x0, y0 := l.GridOrigin(1)
			assert.GreaterOrEqual(t, r.X, x0)
			assert.GreaterOrEqual(t, r.Y, y0)
			assert.LessOrEqual(t, r.X+r.W, x0+gridBox+1e-9)
			assert.LessOrEqual(t, r.Y+r.H, y0+gridBox+1e-9)
		}
	}
}

func TestLayout_BlockRectCoversItsCells(t *testing.T) {
	var l Layout
	b := sim.Block{Row0: 2, Col0: 1, Rows: 2, Cols: 3}
	br := l.BlockRect(0, 6, 6, b)

	first := l.CellRect(0, 6, 6, b.Row0, b.Col0)
	last := l.CellRect(0, 6, 6, b.Row0+b.Rows-1, b.Col0+b.Cols-1)
	assert.InDelta(t, first.X, br.X, 1e-9)
	assert.InDelta(t, first.Y, br.Y, 1e-9)
	assert.InDelta(t, last.X+last.W, br.X+br.W, 1e-9)
	assert.InDelta(t, last.Y+last.H, br.Y+br.H, 1e-9)
}

func TestLayout_StripCellsTileTheStrip(t *testing.T) {
	var l Layout
	cells := 16
	strip := l.StripRect(2)
	first := l.StripCellRect(2, cells, 0)
	lastRect := l.StripCellRect(2, cells, cells-1)
	assert.InDelta(t, strip.X, first.X, 1e-9)
	assert.InDelta(t, strip.X+strip.W, lastRect.X+lastRect.W, 1e-9)
	assert.InDelta(t, strip.Y, first.Y, 1e-9)
}

func TestTierColor_Ramps(t *testing.T) {
	// MRU L1 slot is pure green, MRU L2 slot pure red; both fade with age
	assert.Equal(t, RGB{R: 0, G: 1, B: 0}, TierColor(0, sim.TierL1, 4))
	assert.Equal(t, RGB{R: 1, G: 0, B: 0}, TierColor(0, sim.TierL2, 0))

	older := TierColor(3, sim.TierL2, 0)
	assert.Equal(t, 1.0, older.R)
	assert.Greater(t, older.G, 0.0)
}

func TestLevelColor_DistinctPerLevel(t *testing.T) {
	assert.NotEqual(t, LevelColor(sim.LevelL1Block), LevelColor(sim.LevelL2Block))
}
