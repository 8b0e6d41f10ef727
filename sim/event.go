package sim

import "fmt"

// MatrixID names one of the three matrices of the multiplication C = A × B.
type MatrixID string

const (
	// MatrixA is the left operand (M×K).
	MatrixA MatrixID = "A"
	// MatrixB is the right operand (K×N).
	MatrixB MatrixID = "B"
	// MatrixC is the output (M×N).
	MatrixC MatrixID = "C"
)

// AccessKind classifies what an event does to its element.
type AccessKind string

const (
	// KindRead is a load of an operand element.
	KindRead AccessKind = "read"
	// KindAccumulate is a partial-sum update of an output element.
	KindAccumulate AccessKind = "accumulate"
	// KindWrite is the terminal store of an output element.
	KindWrite AccessKind = "write"
)

// CacheLevel is the tiling depth logically holding an access. It is an
// animation label for the innermost resident tile, not a hardware cache query.
type CacheLevel string

const (
	// LevelNone marks an access outside any tile (unblocked variants).
	LevelNone CacheLevel = "none"
	// LevelL2Block marks an access inside a first-level tile.
	LevelL2Block CacheLevel = "l2-block"
	// LevelL1Block marks an access inside a nested second-level tile.
	LevelL1Block CacheLevel = "l1-block"
)

// AccessEvent is one atomic touch of a matrix element. Events are immutable
// once produced; their order is the entire semantic payload of a simulation.
type AccessEvent struct {
	Matrix MatrixID
	Row    int
	Col    int
	Kind   AccessKind
	Level  CacheLevel
	// Contiguous reports whether this access is sequential in the matrix's
	// storage order. A reads always are (k varies fastest along a row);
	// B reads are only under the transposed variant. This is the locality
	// annotation the transposed animation exists to show.
	Contiguous bool
}

func (e AccessEvent) String() string {
	return fmt.Sprintf("%s(%s,%d,%d)", e.Kind, e.Matrix, e.Row, e.Col)
}

// read builds an operand read event.
func read(m MatrixID, row, col int, level CacheLevel, contiguous bool) AccessEvent {
	return AccessEvent{Matrix: m, Row: row, Col: col, Kind: KindRead, Level: level, Contiguous: contiguous}
}

// accumulate builds a partial-sum event on C. C accesses repeat the same cell
// across the inner loop, so they are always contiguous.
func accumulate(row, col int, level CacheLevel) AccessEvent {
	return AccessEvent{Matrix: MatrixC, Row: row, Col: col, Kind: KindAccumulate, Level: level, Contiguous: true}
}

// write builds the terminal store event on C.
func write(row, col int, level CacheLevel) AccessEvent {
	return AccessEvent{Matrix: MatrixC, Row: row, Col: col, Kind: KindWrite, Level: level, Contiguous: true}
}
