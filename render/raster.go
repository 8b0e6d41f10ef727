package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/cachevis/cachevis/sim"
)

// DefaultScale is the raster supersampling factor over layout units,
// matching the original animation's PNG scale.
const DefaultScale = 3

// Raster draws frames with fogleman/gg and hands the encoded PNG of each
// frame to a FrameWriter (ffmpeg pipe or numbered files).
type Raster struct {
	layout Layout
	scale  float64
	out    FrameWriter
}

// NewRaster builds a raster sink writing PNG frames to out.
func NewRaster(layout Layout, out FrameWriter) *Raster {
	return &Raster{layout: layout, scale: DefaultScale, out: out}
}

// px converts layout units to device pixels. All drawing happens in device
// coordinates so text placement and line widths stay consistent.
func (r *Raster) px(v float64) float64 { return v * r.scale }

// Frame implements sim.FrameSink.
func (r *Raster) Frame(fs *sim.FrameState) error {
	dc := gg.NewContext(int(r.px(SurfaceW)), int(r.px(SurfaceH)))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawString("Matrix multiplication: "+fs.Title, r.px(marginX), r.px(titleY))

	for i, gv := range grids(fs) {
		r.drawGrid(dc, i, gv, fs.WithL1)
	}
	r.drawOperator(dc, 0, "x")
	r.drawOperator(dc, 1, "=")

	dc.SetRGB(0, 0, 0)
	dc.DrawString("Totals: "+fs.Totals.Summary(fs.WithL1), r.px(marginX), r.px(totalsY))

	if r.layout.ShowLinear {
		for i, gv := range grids(fs) {
			r.drawStrip(dc, i, gv, fs.WithL1)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encoding frame %d: %w", fs.Index, err)
	}
	return r.out.WriteFrame(buf.Bytes())
}

// Close releases the underlying frame writer.
func (r *Raster) Close() error { return r.out.Close() }

func (r *Raster) drawOperator(dc *gg.Context, after int, op string) {
	x, y := r.layout.GridOrigin(after)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(op, r.px(x+gridBox+(gridDist-gridBox)/2), r.px(y+gridBox/2), 0.5, 0.5)
}

func (r *Raster) drawGrid(dc *gg.Context, i int, gv sim.GridView, withL1 bool) {
	x0, y0 := r.layout.GridOrigin(i)

	dc.SetRGB(0, 0, 0)
	dc.DrawString(gv.Name+"  "+gv.Stats.Line(withL1), r.px(x0), r.px(y0-4))

	// cache-resident cells, oldest drawn first so MRU fills win overlaps
	snap := gv.Resident
	for idx := len(snap) - 1; idx >= 0; idx-- {
		line := snap[idx]
		c := TierColor(idx, line.Tier, l1LinesFor(gv, withL1))
		dc.SetRGB(c.R, c.G, c.B)
		for _, cell := range line.Cells {
			rect := r.layout.CellRect(i, gv.Rows, gv.Cols, cell.Row, cell.Col)
			dc.DrawRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.W), r.px(rect.H))
			dc.Fill()
		}
	}

	// resident tiles, outermost first so the inner outline stays visible
	for _, br := range gv.Blocks {
		rect := r.layout.BlockRect(i, gv.Rows, gv.Cols, br.Block)
		c := LevelColor(br.Level)
		dc.SetRGB(c.R, c.G, c.B)
		dc.SetLineWidth(r.px(0.8))
		dc.DrawRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.W), r.px(rect.H))
		dc.Stroke()
	}

	// grid lines
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(r.px(0.15))
	cw := gridBox / float64(gv.Cols)
	ch := gridBox / float64(gv.Rows)
	for row := 0; row <= gv.Rows; row++ {
		y := y0 + float64(row)*ch
		dc.DrawLine(r.px(x0), r.px(y), r.px(x0+gridBox), r.px(y))
		dc.Stroke()
	}
	for col := 0; col <= gv.Cols; col++ {
		x := x0 + float64(col)*cw
		dc.DrawLine(r.px(x), r.px(y0), r.px(x), r.px(y0+gridBox))
		dc.Stroke()
	}

	// last touched element
	if gv.HasLast {
		rect := r.layout.CellRect(i, gv.Rows, gv.Cols, gv.Last.Row, gv.Last.Col)
		dc.SetLineWidth(r.px(0.6))
		dc.DrawRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.W), r.px(rect.H))
		dc.Stroke()
	}
}

func (r *Raster) drawStrip(dc *gg.Context, i int, gv sim.GridView, withL1 bool) {
	cells := gv.Rows * gv.Cols

	for idx := len(gv.Resident) - 1; idx >= 0; idx-- {
		line := gv.Resident[idx]
		c := TierColor(idx, line.Tier, l1LinesFor(gv, withL1))
		dc.SetRGB(c.R, c.G, c.B)
		for j := range line.Cells {
			rect := r.layout.StripCellRect(i, cells, line.Tag+j)
			dc.DrawRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.W), r.px(rect.H))
			dc.Fill()
		}
	}

	outline := r.layout.StripRect(i)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(r.px(0.15))
	dc.DrawRectangle(r.px(outline.X), r.px(outline.Y), r.px(outline.W), r.px(outline.H))
	dc.Stroke()
	dc.DrawStringAnchored(gv.Name, r.px(outline.X-6), r.px(outline.Y+outline.H/2), 0.5, 0.5)

	if gv.HasLast {
		addr := gv.Last.Row*gv.Cols + gv.Last.Col
		rect := r.layout.StripCellRect(i, cells, addr)
		dc.SetLineWidth(r.px(0.4))
		dc.DrawRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.W), r.px(rect.H))
		dc.Stroke()
	}
}

// l1LinesFor recovers the L1 slot count used for ramp coloring: when the run
// has no L1 tier every slot ramps red.
func l1LinesFor(gv sim.GridView, withL1 bool) int {
	if !withL1 {
		return 0
	}
	n := 0
	for _, line := range gv.Resident {
		if line.Tier == sim.TierL1 {
			n++
		}
	}
	return n
}
