// Implements the four traversal generators. Each variant is a separate pure
// procedure sharing only the event constructors in event.go; they differ in
// nested-loop order, tiling, and cache-level annotation, never in the per-cell
// contract: K read-pairs from A and B, each followed by an accumulate on C,
// then exactly one terminal write once the cell's last k range completes.

package sim

import "iter"

// Traversal generates the access-event sequence for one validated Config.
type Traversal struct {
	cfg Config
}

// NewTraversal validates cfg and returns a generator for it.
func NewTraversal(cfg Config) (*Traversal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Traversal{cfg: cfg}, nil
}

// Config returns the configuration the traversal was built from.
func (t *Traversal) Config() Config { return t.cfg }

// EventCount returns the exact length of the event sequence: each of the M×N
// output cells receives K A-reads, K B-reads, K accumulates, and one write.
func (t *Traversal) EventCount() int {
	return t.cfg.M * t.cfg.N * (3*t.cfg.K + 1)
}

// Events returns the lazy event sequence. The sequence is finite, produced on
// demand, and restartable: ranging over it again replays the identical order.
// Consumers may stop early by breaking out of the range loop.
func (t *Traversal) Events() iter.Seq[AccessEvent] {
	switch t.cfg.Variant {
	case VariantTransposed:
		return t.unblocked(true)
	case VariantBlocked1:
		return t.blocked1()
	case VariantBlocked2:
		return t.blocked2()
	default:
		return t.unblocked(false)
	}
}

// unblocked is the shared naive/transposed loop nest. The two variants emit
// the same order; contiguousB flips the locality annotation on B reads.
func (t *Traversal) unblocked(contiguousB bool) iter.Seq[AccessEvent] {
	m, n, k := t.cfg.M, t.cfg.N, t.cfg.K
	return func(yield func(AccessEvent) bool) {
		for r := 0; r < m; r++ {
			for c := 0; c < n; c++ {
				for x := 0; x < k; x++ {
					if !yield(read(MatrixA, r, x, LevelNone, true)) {
						return
					}
					if !yield(read(MatrixB, x, c, LevelNone, contiguousB)) {
						return
					}
					if !yield(accumulate(r, c, LevelNone)) {
						return
					}
				}
				if !yield(write(r, c, LevelNone)) {
					return
				}
			}
		}
	}
}

// blocked1 tiles all three index ranges at Block1 and walks tiles in the
// naive order. With L1 > 0 a sub-tiling of side L1 nests inside each tile and
// the accesses it covers carry LevelL1Block instead of LevelL2Block.
func (t *Traversal) blocked1() iter.Seq[AccessEvent] {
	cfg := t.cfg
	rowTiles := Tile(cfg.M, cfg.Block1)
	colTiles := Tile(cfg.N, cfg.Block1)
	kTiles := Tile(cfg.K, cfg.Block1)
	return func(yield func(AccessEvent) bool) {
		for _, rt := range rowTiles {
			for _, ct := range colTiles {
				for ki, kt := range kTiles {
					lastK := ki == len(kTiles)-1
					if cfg.L1 > 0 {
						if !t.subTiled(yield, rt, ct, kt, cfg.L1, lastK) {
							return
						}
					} else if !t.cell(yield, rt, ct, kt, LevelL2Block, lastK) {
						return
					}
				}
			}
		}
	}
}

// blocked2 composes the outer Block2 tiling with an inner Block1 tiling, the
// classic two-level loop nest. Element accesses sit inside both tiles and
// carry the deepest level, LevelL1Block; the simulator reconstructs the outer
// LevelL2Block residency for the renderer from the tile geometry.
func (t *Traversal) blocked2() iter.Seq[AccessEvent] {
	cfg := t.cfg
	rowTiles := Tile(cfg.M, cfg.Block2)
	colTiles := Tile(cfg.N, cfg.Block2)
	kTiles := Tile(cfg.K, cfg.Block2)
	return func(yield func(AccessEvent) bool) {
		for _, rt2 := range rowTiles {
			for _, ct2 := range colTiles {
				for ki2, kt2 := range kTiles {
					innerK := TileRange(kt2.Start, kt2.Len, cfg.Block1)
					for _, rt1 := range TileRange(rt2.Start, rt2.Len, cfg.Block1) {
						for _, ct1 := range TileRange(ct2.Start, ct2.Len, cfg.Block1) {
							for ki1, kt1 := range innerK {
								lastK := ki2 == len(kTiles)-1 && ki1 == len(innerK)-1
								if !t.cell(yield, rt1, ct1, kt1, LevelL1Block, lastK) {
									return
								}
							}
						}
					}
				}
			}
		}
	}
}

// subTiled walks the L1 sub-tiling nested inside one Block1 tile.
func (t *Traversal) subTiled(yield func(AccessEvent) bool, rt, ct, kt Span, side int, lastOuterK bool) bool {
	innerK := TileRange(kt.Start, kt.Len, side)
	for _, rs := range TileRange(rt.Start, rt.Len, side) {
		for _, cs := range TileRange(ct.Start, ct.Len, side) {
			for ki, ks := range innerK {
				lastK := lastOuterK && ki == len(innerK)-1
				if !t.cell(yield, rs, cs, ks, LevelL1Block, lastK) {
					return false
				}
			}
		}
	}
	return true
}

// cell emits the innermost loop body for one (rows × cols × k) tile: per
// output cell a read-pair and accumulate for each k, then the terminal write
// when this is the cell's final k range.
func (t *Traversal) cell(yield func(AccessEvent) bool, rs, cs, ks Span, level CacheLevel, writeAfter bool) bool {
	contiguousB := t.cfg.Variant == VariantTransposed
	for r := rs.Start; r < rs.End(); r++ {
		for c := cs.Start; c < cs.End(); c++ {
			for x := ks.Start; x < ks.End(); x++ {
				if !yield(read(MatrixA, r, x, level, true)) {
					return false
				}
				if !yield(read(MatrixB, x, c, level, contiguousB)) {
					return false
				}
				if !yield(accumulate(r, c, level)) {
					return false
				}
			}
			if writeAfter && !yield(write(r, c, level)) {
				return false
			}
		}
	}
	return true
}
