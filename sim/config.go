package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Config is the flat configuration record for one simulation run. The CLI
// layer fills it from flags or a preset; the core performs no parsing itself.
type Config struct {
	M int // rows of A and C (must be > 0)
	N int // cols of B and C (must be > 0)
	K int // cols of A, rows of B (must be > 0)

	Variant Variant // traversal strategy
	Block1  int     // tile side for the blocked variants
	L1      int     // sub-tile side inside Block1 tiles (0 = off; blocked-1-level only)
	Block2  int     // outer tile side (blocked-2-level only)

	Title string // caption text for rendered frames
}

// NewConfig assembles a Config without applying defaults; zero-value arguments
// stay zero and are caught by Validate.
func NewConfig(m, n, k int, variant Variant, block1, l1, block2 int, title string) Config {
	return Config{
		M:       m,
		N:       n,
		K:       k,
		Variant: variant,
		Block1:  block1,
		L1:      l1,
		Block2:  block2,
		Title:   title,
	}
}

// Validate checks the configuration and returns the first configuration error
// found. Block parameters supplied to a variant that does not consume them are
// a documented no-op, not an error; a warning is logged so a surprising flag
// combination is still visible.
func (c Config) Validate() error {
	if c.M <= 0 || c.N <= 0 || c.K <= 0 {
		return fmt.Errorf("%w: got M=%d N=%d K=%d", ErrBadDimension, c.M, c.N, c.K)
	}
	if _, err := ParseVariant(string(c.Variant)); err != nil {
		return err
	}
	if c.Variant.Blocked() && c.Block1 <= 0 {
		return fmt.Errorf("%w: block1=%d", ErrBadBlockSize, c.Block1)
	}
	if c.Variant.UsesBlock2() && c.Block2 <= 0 {
		return fmt.Errorf("%w: block2=%d", ErrBadBlockSize, c.Block2)
	}
	if c.Variant.UsesL1() && c.L1 < 0 {
		return fmt.Errorf("%w: l1=%d", ErrBadBlockSize, c.L1)
	}
	if !c.Variant.UsesL1() && c.L1 > 0 {
		logrus.Warnf("l1=%d has no effect for variant %q", c.L1, c.Variant)
	}
	if !c.Variant.UsesBlock2() && c.Block2 > 0 {
		logrus.Warnf("block2=%d has no effect for variant %q", c.Block2, c.Variant)
	}
	return nil
}
