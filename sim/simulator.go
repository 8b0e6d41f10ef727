// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// GridView is the renderable state of one matrix at a frame boundary: storage
// layout, cache residency, the last touched cell, and any resident tiles.
type GridView struct {
	Name    string
	Rows    int // storage layout drawn by the renderer
	Cols    int
	Last    Cell // last touched cell in storage coordinates
	HasLast bool
	// Resident lists cache lines MRU-first for residency coloring.
	Resident []ResidentLine
	// Blocks lists resident tiles outermost-first (blocked variants only).
	Blocks []BlockResidency
	Stats  MatrixStats
}

// FrameState is handed to the FrameSink once per access event. The renderer
// draws one frame from it; it holds no references back into the simulator.
type FrameState struct {
	Index  int
	Event  AccessEvent
	Title  string
	WithL1 bool // run models a distinct L1 tier (two-tier stat lines)
	A      GridView
	B      GridView
	C      GridView
	Totals Totals
}

// FrameSink consumes frame states in event order. Implementations draw or
// encode frames; returning an error aborts the run. Rendering and encoding
// failures belong to the sink, never to the core.
type FrameSink interface {
	Frame(*FrameState) error
}

// Simulator drives one run: it walks the traversal's event sequence, feeds
// each access into the touched matrix's line cache, and offers the resulting
// frame state to a sink. Each Simulator is single-use state built fresh from
// its Config; construct a new one to replay a run.
type Simulator struct {
	cfg       Config
	traversal *Traversal
	caches    map[MatrixID]*LineCache
	// last logical access per matrix, for tile-residency reconstruction
	lastLogical map[MatrixID]Cell
}

// NewSimulator validates cfg and assembles a ready-to-run simulator.
func NewSimulator(cfg Config) (*Simulator, error) {
	traversal, err := NewTraversal(cfg)
	if err != nil {
		return nil, err
	}
	transposeB := cfg.Variant == VariantTransposed
	return &Simulator{
		cfg:       cfg,
		traversal: traversal,
		caches: map[MatrixID]*LineCache{
			MatrixA: NewLineCache(cfg.M, cfg.K, cfg.L1, false),
			MatrixB: NewLineCache(cfg.K, cfg.N, cfg.L1, transposeB),
			MatrixC: NewLineCache(cfg.M, cfg.N, cfg.L1, false),
		},
		lastLogical: make(map[MatrixID]Cell),
	}, nil
}

// Traversal exposes the underlying generator (event counting, raw sequences).
func (s *Simulator) Traversal() *Traversal { return s.traversal }

// Run walks the full event sequence, feeding each frame to sink. A nil sink
// runs the simulation for its statistics alone.
func (s *Simulator) Run(sink FrameSink) (Totals, error) {
	logrus.Infof("Simulating %s: %dx%dx%d, block1=%d, l1=%d, block2=%d (%d events)",
		s.cfg.Variant, s.cfg.M, s.cfg.N, s.cfg.K, s.cfg.Block1, s.cfg.L1, s.cfg.Block2, s.traversal.EventCount())

	idx := 0
	for ev := range s.traversal.Events() {
		s.caches[ev.Matrix].Access(ev.Row, ev.Col)
		s.lastLogical[ev.Matrix] = Cell{Row: ev.Row, Col: ev.Col}
		logrus.Tracef("[frame %06d] %s level=%s", idx, ev, ev.Level)

		if sink != nil {
			if err := sink.Frame(s.frame(idx, ev)); err != nil {
				return s.Totals(), fmt.Errorf("rendering frame %d: %w", idx, err)
			}
		}
		idx++
	}
	logrus.Infof("Simulation ended after %d frames", idx)
	return s.Totals(), nil
}

// RunStats runs without a sink and returns the aggregate counters.
func (s *Simulator) RunStats() Totals {
	totals, _ := s.Run(nil)
	return totals
}

// Totals aggregates the three matrices' counters at the current point.
func (s *Simulator) Totals() Totals {
	return NewTotals(
		s.caches[MatrixA].Stats(),
		s.caches[MatrixB].Stats(),
		s.caches[MatrixC].Stats(),
	)
}

func (s *Simulator) frame(idx int, ev AccessEvent) *FrameState {
	return &FrameState{
		Index:  idx,
		Event:  ev,
		Title:  s.cfg.Title,
		WithL1: s.cfg.L1 > 0,
		A:      s.grid(MatrixA),
		B:      s.grid(MatrixB),
		C:      s.grid(MatrixC),
		Totals: s.Totals(),
	}
}

func (s *Simulator) grid(m MatrixID) GridView {
	lc := s.caches[m]
	rows, cols := lc.Dims()
	last, hasLast := lc.LastAccess()
	gv := GridView{
		Name:     string(m),
		Rows:     rows,
		Cols:     cols,
		Last:     last,
		HasLast:  hasLast,
		Resident: lc.Snapshot(),
		Stats:    lc.Stats(),
	}
	if logical, ok := s.lastLogical[m]; ok {
		gv.Blocks = s.residency(m, logical.Row, logical.Col)
	}
	return gv
}

// extents returns the logical (rows, cols) of matrix m for this run.
func (s *Simulator) extents(m MatrixID) (rows, cols int) {
	switch m {
	case MatrixA:
		return s.cfg.M, s.cfg.K
	case MatrixB:
		return s.cfg.K, s.cfg.N
	default:
		return s.cfg.M, s.cfg.N
	}
}

// residency reconstructs the resident tile(s) of matrix m around its last
// logical access. The cache-level annotation escalates with nesting depth and
// reverts at each tile boundary; reconstructing from geometry keeps events
// free of tile payload.
func (s *Simulator) residency(m MatrixID, row, col int) []BlockResidency {
	rows, cols := s.extents(m)
	switch s.cfg.Variant {
	case VariantBlocked1:
		outerR := SpanAt(row, 0, rows, s.cfg.Block1)
		outerC := SpanAt(col, 0, cols, s.cfg.Block1)
		res := []BlockResidency{{Level: LevelL2Block, Block: blockOf(outerR, outerC)}}
		if s.cfg.L1 > 0 {
			innerR := SpanAt(row, outerR.Start, outerR.Len, s.cfg.L1)
			innerC := SpanAt(col, outerC.Start, outerC.Len, s.cfg.L1)
			res = append(res, BlockResidency{Level: LevelL1Block, Block: blockOf(innerR, innerC)})
		}
		return res
	case VariantBlocked2:
		outerR := SpanAt(row, 0, rows, s.cfg.Block2)
		outerC := SpanAt(col, 0, cols, s.cfg.Block2)
		innerR := SpanAt(row, outerR.Start, outerR.Len, s.cfg.Block1)
		innerC := SpanAt(col, outerC.Start, outerC.Len, s.cfg.Block1)
		return []BlockResidency{
			{Level: LevelL2Block, Block: blockOf(outerR, outerC)},
			{Level: LevelL1Block, Block: blockOf(innerR, innerC)},
		}
	default:
		return nil
	}
}

func blockOf(r, c Span) Block {
	return Block{Row0: r.Start, Col0: c.Start, Rows: r.Len, Cols: c.Len}
}
