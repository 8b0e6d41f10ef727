package render

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo/float"

	"github.com/cachevis/cachevis/sim"
)

// Vector draws each frame as a standalone SVG document and hands the encoded
// bytes to a FrameWriter. Same layout as Raster, vector output.
type Vector struct {
	layout Layout
	out    FrameWriter
}

// NewVector builds a vector sink writing SVG frames to out.
func NewVector(layout Layout, out FrameWriter) *Vector {
	return &Vector{layout: layout, out: out}
}

const (
	textStyle      = "font-family:sans-serif;font-size:6px;fill:black"
	titleStyle     = "font-family:sans-serif;font-size:10px;fill:black"
	gridStyle      = "stroke:black;stroke-width:0.15;fill:none"
	lastStyle      = "stroke:black;stroke-width:0.6;fill:none"
	stripLastStyle = "stroke:black;stroke-width:0.4;fill:none"
)

// Frame implements sim.FrameSink.
func (v *Vector) Frame(fs *sim.FrameState) error {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(SurfaceW, SurfaceH)
	canvas.Rect(0, 0, SurfaceW, SurfaceH, "fill:white")

	canvas.Text(marginX, titleY, "Matrix multiplication: "+fs.Title, titleStyle)

	for i, gv := range grids(fs) {
		v.drawGrid(canvas, i, gv, fs.WithL1)
	}
	v.drawOperator(canvas, 0, "x")
	v.drawOperator(canvas, 1, "=")

	canvas.Text(marginX, totalsY, "Totals: "+fs.Totals.Summary(fs.WithL1), textStyle)

	if v.layout.ShowLinear {
		for i, gv := range grids(fs) {
			v.drawStrip(canvas, i, gv, fs.WithL1)
		}
	}

	canvas.End()
	return v.out.WriteFrame(buf.Bytes())
}

// Close releases the underlying frame writer.
func (v *Vector) Close() error { return v.out.Close() }

func fillStyle(c RGB) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", int(c.R*255), int(c.G*255), int(c.B*255))
}

func strokeStyle(c RGB, width float64) string {
	return fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-width:%.2f;fill:none", int(c.R*255), int(c.G*255), int(c.B*255), width)
}

func (v *Vector) drawOperator(canvas *svg.SVG, after int, op string) {
	x, y := v.layout.GridOrigin(after)
	canvas.Text(x+gridBox+(gridDist-gridBox)/2, y+gridBox/2, op, titleStyle+";text-anchor:middle")
}

func (v *Vector) drawGrid(canvas *svg.SVG, i int, gv sim.GridView, withL1 bool) {
	x0, y0 := v.layout.GridOrigin(i)

	canvas.Text(x0, y0-4, gv.Name+"  "+gv.Stats.Line(withL1), textStyle)

	for idx := len(gv.Resident) - 1; idx >= 0; idx-- {
		line := gv.Resident[idx]
		style := fillStyle(TierColor(idx, line.Tier, l1LinesFor(gv, withL1)))
		for _, cell := range line.Cells {
			rect := v.layout.CellRect(i, gv.Rows, gv.Cols, cell.Row, cell.Col)
			canvas.Rect(rect.X, rect.Y, rect.W, rect.H, style)
		}
	}

	for _, br := range gv.Blocks {
		rect := v.layout.BlockRect(i, gv.Rows, gv.Cols, br.Block)
		canvas.Rect(rect.X, rect.Y, rect.W, rect.H, strokeStyle(LevelColor(br.Level), 0.8))
	}

	cw := gridBox / float64(gv.Cols)
	ch := gridBox / float64(gv.Rows)
	for row := 0; row <= gv.Rows; row++ {
		y := y0 + float64(row)*ch
		canvas.Line(x0, y, x0+gridBox, y, gridStyle)
	}
	for col := 0; col <= gv.Cols; col++ {
		x := x0 + float64(col)*cw
		canvas.Line(x, y0, x, y0+gridBox, gridStyle)
	}

	if gv.HasLast {
		rect := v.layout.CellRect(i, gv.Rows, gv.Cols, gv.Last.Row, gv.Last.Col)
		canvas.Rect(rect.X, rect.Y, rect.W, rect.H, lastStyle)
	}
}

func (v *Vector) drawStrip(canvas *svg.SVG, i int, gv sim.GridView, withL1 bool) {
	cells := gv.Rows * gv.Cols

	for idx := len(gv.Resident) - 1; idx >= 0; idx-- {
		line := gv.Resident[idx]
		style := fillStyle(TierColor(idx, line.Tier, l1LinesFor(gv, withL1)))
		for j := range line.Cells {
			rect := v.layout.StripCellRect(i, cells, line.Tag+j)
			canvas.Rect(rect.X, rect.Y, rect.W, rect.H, style)
		}
	}

	outline := v.layout.StripRect(i)
	canvas.Rect(outline.X, outline.Y, outline.W, outline.H, gridStyle)
	canvas.Text(outline.X-8, outline.Y+outline.H, gv.Name, textStyle)

	if gv.HasLast {
		addr := gv.Last.Row*gv.Cols + gv.Last.Col
		rect := v.layout.StripCellRect(i, cells, addr)
		canvas.Rect(rect.X, rect.Y, rect.W, rect.H, stripLastStyle)
	}
}
