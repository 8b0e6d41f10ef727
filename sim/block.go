package sim

// Span is one half-open tile [Start, Start+Len) of a single index range.
type Span struct {
	Start int
	Len   int
}

// End returns the exclusive upper bound of the span.
func (s Span) End() int { return s.Start + s.Len }

// Contains reports whether i falls inside the span.
func (s Span) Contains(i int) bool { return i >= s.Start && i < s.End() }

// TileRange partitions [start, start+length) into spans of the given side.
// The last span is truncated when length is not divisible by side; side >=
// length degenerates to a single span covering the whole range. side must be
// positive (enforced by Config.Validate before generation starts).
func TileRange(start, length, side int) []Span {
	if side >= length {
		return []Span{{Start: start, Len: length}}
	}
	spans := make([]Span, 0, (length+side-1)/side)
	for off := 0; off < length; off += side {
		spans = append(spans, Span{Start: start + off, Len: min(side, length-off)})
	}
	return spans
}

// Tile partitions [0, extent) into spans of the given side.
func Tile(extent, side int) []Span {
	return TileRange(0, extent, side)
}

// SpanAt returns the tile of the tiling TileRange(start, length, side) that
// contains index i. Used to reconstruct which tile is resident for an access
// without re-walking the tiling.
func SpanAt(i, start, length, side int) Span {
	if side >= length {
		return Span{Start: start, Len: length}
	}
	off := (i - start) / side * side
	return Span{Start: start + off, Len: min(side, length-off)}
}

// Block describes one resident 2-D tile of a matrix: origin and extent in that
// matrix's own coordinates.
type Block struct {
	Row0 int
	Col0 int
	Rows int
	Cols int
}

// BlockResidency pairs a resident tile with the cache level that logically
// holds it, outermost level first in FrameState listings.
type BlockResidency struct {
	Level CacheLevel
	Block Block
}
