// Implements the LRU cache-line model behind the hit/miss statistics shown in
// each frame. This is a deliberately tiny illustrative cache: a single LRU
// list whose first L1Lines slots count as L1 and the rest as L2, tracking line
// tags derived from row-major element addresses.

package sim

const (
	// CacheLineSize is the number of matrix elements per cache line.
	// Must be a power of two (the tag mask relies on it).
	CacheLineSize = 2
	// L2Lines is the LRU capacity in cache lines.
	L2Lines = 8
)

// CacheTier labels which simulated cache tier a resident line occupies.
type CacheTier string

const (
	// TierL1 marks lines in the first L1Lines LRU slots.
	TierL1 CacheTier = "L1"
	// TierL2 marks the remaining resident lines.
	TierL2 CacheTier = "L2"
)

// Cell is one element position in a matrix's drawn (storage) layout.
type Cell struct {
	Row int
	Col int
}

// ResidentLine is one cache line currently held by a LineCache, with the
// element cells it covers. Snapshot order is most-recently-used first.
type ResidentLine struct {
	Tag   int // line-aligned linear address of the first covered element
	Tier  CacheTier
	Cells []Cell
}

// LineCache models the cache residency of a single matrix. Accesses use
// logical (row, col) coordinates; a transposed matrix swaps them before
// address computation, which is exactly what makes transposed B reads hit.
type LineCache struct {
	rows, cols int // storage layout dimensions
	transpose  bool
	l1Lines    int

	lines    []int // LRU list of resident line tags, MRU first
	lastRow  int   // last touched cell in storage coordinates, -1 when none
	lastCol  int
	accesses int
	l1Hits   int
	l2Hits   int
}

// NewLineCache builds a cache for a matrix with the given logical dimensions.
// l1Lines of 0 models a single-tier cache (every hit is an L2 hit).
func NewLineCache(rows, cols, l1Lines int, transpose bool) *LineCache {
	if transpose {
		rows, cols = cols, rows
	}
	return &LineCache{
		rows:      rows,
		cols:      cols,
		transpose: transpose,
		l1Lines:   l1Lines,
		lastRow:   -1,
		lastCol:   -1,
	}
}

// Access records one touch of logical element (row, col): attributes a hit to
// the tier the line was found in, moves its tag to the LRU front, and evicts
// beyond L2Lines.
func (lc *LineCache) Access(row, col int) {
	if lc.transpose {
		row, col = col, row
	}
	lc.accesses++
	lc.lastRow, lc.lastCol = row, col
	tag := lc.lineTag(row, col)
	for i, t := range lc.lines {
		if t == tag {
			if i < lc.l1Lines {
				lc.l1Hits++
			} else {
				lc.l2Hits++
			}
			lc.lines = append(lc.lines[:i], lc.lines[i+1:]...)
			break
		}
	}
	lc.lines = append([]int{tag}, lc.lines...)
	if len(lc.lines) > L2Lines {
		lc.lines = lc.lines[:L2Lines]
	}
}

// lineTag maps storage coordinates to the line-aligned linear address.
func (lc *LineCache) lineTag(row, col int) int {
	return (row*lc.cols + col) &^ (CacheLineSize - 1)
}

// lineCells expands a line tag to the element cells it covers, clamped to the
// matrix extent for the final partial line.
func (lc *LineCache) lineCells(tag int) []Cell {
	cells := make([]Cell, 0, CacheLineSize)
	for i := 0; i < CacheLineSize; i++ {
		addr := tag + i
		if addr >= lc.rows*lc.cols {
			break
		}
		cells = append(cells, Cell{Row: addr / lc.cols, Col: addr % lc.cols})
	}
	return cells
}

// Snapshot returns the resident lines MRU-first, each labeled with its tier.
func (lc *LineCache) Snapshot() []ResidentLine {
	out := make([]ResidentLine, 0, len(lc.lines))
	for i, tag := range lc.lines {
		tier := TierL2
		if i < lc.l1Lines {
			tier = TierL1
		}
		out = append(out, ResidentLine{Tag: tag, Tier: tier, Cells: lc.lineCells(tag)})
	}
	return out
}

// LastAccess returns the last touched cell in storage coordinates and whether
// any access has happened yet.
func (lc *LineCache) LastAccess() (Cell, bool) {
	if lc.lastRow < 0 {
		return Cell{}, false
	}
	return Cell{Row: lc.lastRow, Col: lc.lastCol}, true
}

// Dims returns the storage layout dimensions the renderer should draw.
func (lc *LineCache) Dims() (rows, cols int) { return lc.rows, lc.cols }

// Stats returns the access counters accumulated so far.
func (lc *LineCache) Stats() MatrixStats {
	return MatrixStats{Accesses: lc.accesses, L1Hits: lc.l1Hits, L2Hits: lc.l2Hits}
}
