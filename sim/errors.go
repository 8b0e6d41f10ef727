// Sentinel error set for the sim package. Configuration errors are the only
// error kind the core raises; callers match them via errors.Is and wrap with
// fmt.Errorf("ctx: %w", ErrX) when context is essential.

package sim

import "errors"

var (
	// ErrUnknownVariant is returned when a variant name does not match any
	// traversal strategy.
	ErrUnknownVariant = errors.New("sim: unknown traversal variant")

	// ErrBadDimension is returned when any of M, N, K is not positive.
	ErrBadDimension = errors.New("sim: matrix dimensions must be > 0")

	// ErrBadBlockSize is returned when a blocked variant is configured with a
	// non-positive block size.
	ErrBadBlockSize = errors.New("sim: block size must be > 0")
)
