// Tracks per-matrix and aggregate access statistics for final reporting and
// the per-frame stat lines.

package sim

import "fmt"

// MatrixStats counts memory accesses and cache hits for one matrix.
type MatrixStats struct {
	Accesses int
	L1Hits   int
	L2Hits   int
}

// CacheHits returns hits across both tiers.
func (s MatrixStats) CacheHits() int { return s.L1Hits + s.L2Hits }

// Line formats the per-matrix stat shown above each grid. withL1 selects the
// two-tier form; without an L1 the tiers collapse into a single hit counter.
func (s MatrixStats) Line(withL1 bool) string {
	if withL1 {
		return fmt.Sprintf("mem:%-3d L1 hit:%-3d L2 hit:%-3d", s.Accesses, s.L1Hits, s.L2Hits)
	}
	return fmt.Sprintf("mem:%-3d cache hit:%-3d", s.Accesses, s.CacheHits())
}

// Totals aggregates the three matrices' counters for the summary line printed
// at the end of a run and drawn under the grids.
type Totals struct {
	Mem    int
	L1Hits int
	L2Hits int
}

// NewTotals sums per-matrix stats.
func NewTotals(stats ...MatrixStats) Totals {
	var t Totals
	for _, s := range stats {
		t.Mem += s.Accesses
		t.L1Hits += s.L1Hits
		t.L2Hits += s.L2Hits
	}
	return t
}

// CacheHits returns hits across both tiers.
func (t Totals) CacheHits() int { return t.L1Hits + t.L2Hits }

// percent guards the zero-access case (empty or aborted runs).
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return 100 * part / whole
}

// Summary formats the aggregate line. withL1 selects the two-tier form.
func (t Totals) Summary(withL1 bool) string {
	if withL1 {
		return fmt.Sprintf("mem:%-4d   L1 hits:%-4d≅%2d%%   L2 hits:%-4d≅%2d%%   cache hits:%-4d≅%2d%%",
			t.Mem, t.L1Hits, percent(t.L1Hits, t.Mem), t.L2Hits, percent(t.L2Hits, t.Mem),
			t.CacheHits(), percent(t.CacheHits(), t.Mem))
	}
	return fmt.Sprintf("mem:%-4d   cache hits:%-4d≅%2d%%", t.Mem, t.CacheHits(), percent(t.CacheHits(), t.Mem))
}

func (t Totals) String() string {
	return t.Summary(true)
}
