package render

import "github.com/cachevis/cachevis/sim"

// Frame geometry in layout units (380x200 surface): a title row, the three
// grids A × B = C in 100-unit boxes spaced 120 units apart, a totals line
// under the grids, and optional linear-memory strips near the bottom.
const (
	SurfaceW = 380
	SurfaceH = 200

	marginX  = 20.0
	titleY   = 25.0
	gridY    = 45.0
	gridBox  = 100.0
	gridDist = 120.0
	totalsY  = gridY + gridBox + 14

	linearY  = 172.0
	linearW  = 340.0
	stripH   = 5.0
	stripGap = 3.5
)

// Rect is an axis-aligned rectangle in layout units.
type Rect struct {
	X, Y, W, H float64
}

// Layout computes frame geometry. ShowLinear adds the three linear-memory
// strips that visualize each matrix's storage as a flat address range.
type Layout struct {
	ShowLinear bool
}

// GridOrigin returns the top-left corner of grid i (0=A, 1=B, 2=C).
func (l Layout) GridOrigin(i int) (x, y float64) {
	return marginX + float64(i)*gridDist, gridY
}

// CellRect returns the rectangle of cell (row, col) in grid i drawn with the
// given storage dimensions.
func (l Layout) CellRect(i, rows, cols, row, col int) Rect {
	x0, y0 := l.GridOrigin(i)
	cw := gridBox / float64(cols)
	ch := gridBox / float64(rows)
	return Rect{X: x0 + float64(col)*cw, Y: y0 + float64(row)*ch, W: cw, H: ch}
}

// BlockRect returns the rectangle covering a resident tile in grid i.
func (l Layout) BlockRect(i, rows, cols int, b sim.Block) Rect {
	x0, y0 := l.GridOrigin(i)
	cw := gridBox / float64(cols)
	ch := gridBox / float64(rows)
	return Rect{
		X: x0 + float64(b.Col0)*cw,
		Y: y0 + float64(b.Row0)*ch,
		W: float64(b.Cols) * cw,
		H: float64(b.Rows) * ch,
	}
}

// StripRect returns the outline of linear-memory strip i.
func (l Layout) StripRect(i int) Rect {
	return Rect{X: marginX, Y: linearY + float64(i)*(stripH+stripGap), W: linearW, H: stripH}
}

// StripCellRect returns the rectangle of the element at linear address addr in
// strip i, for a matrix of cells total elements.
func (l Layout) StripCellRect(i, cells, addr int) Rect {
	s := l.StripRect(i)
	w := s.W / float64(cells)
	return Rect{X: s.X + float64(addr)*w, Y: s.Y, W: w, H: s.H}
}

// RGB is a color in [0,1] components, shared by the raster and vector sinks.
type RGB struct {
	R, G, B float64
}

// TierColor ramps resident-line fills by LRU position: green for L1 slots,
// red for L2 slots, fading with age like the original animation.
func TierColor(lruIndex int, tier sim.CacheTier, l1Lines int) RGB {
	if tier == sim.TierL1 && l1Lines > 0 {
		t := float64(lruIndex) / float64(l1Lines)
		return RGB{R: t, G: 1, B: t}
	}
	t := float64(lruIndex) / float64(sim.L2Lines) / 1.5
	return RGB{R: 1, G: t, B: t}
}

// LevelColor returns the outline color for a resident tile at a cache level.
func LevelColor(level sim.CacheLevel) RGB {
	if level == sim.LevelL1Block {
		return RGB{R: 0.1, G: 0.3, B: 0.9}
	}
	return RGB{R: 0.5, G: 0.7, B: 1.0}
}

// grids orders a frame's matrix views for drawing.
func grids(fs *sim.FrameState) []sim.GridView {
	return []sim.GridView{fs.A, fs.B, fs.C}
}
