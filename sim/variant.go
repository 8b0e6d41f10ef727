package sim

import (
	"fmt"
	"strings"
)

// Variant selects which nested-loop order and blocking strategy generates the
// event sequence.
type Variant string

const (
	// VariantNaive is the row/col/k loop nest with B accessed column-major.
	// This is the poor-locality baseline the animation exposes.
	VariantNaive Variant = "naive"
	// VariantTransposed is the same loop nest with B's storage transposed,
	// so B reads become contiguous. Event order is identical to naive.
	VariantTransposed Variant = "transposed"
	// VariantBlocked1 tiles all three index ranges at Block1, optionally with
	// a nested L1 sub-tiling.
	VariantBlocked1 Variant = "blocked-1-level"
	// VariantBlocked2 composes an outer tiling at Block2 with an inner tiling
	// at Block1.
	VariantBlocked2 Variant = "blocked-2-level"
)

// variantDescriptions maps each variant to the one-line summary shown by the
// `variants` subcommand.
var variantDescriptions = map[Variant]string{
	VariantNaive:      "row/col/k loop nest, B accessed column-major (poor locality baseline)",
	VariantTransposed: "same loop nest with B stored transposed, B reads contiguous",
	VariantBlocked1:   "single-level tiling of all index ranges at --block1 (optional --l1 sub-tiles)",
	VariantBlocked2:   "outer tiling at --block2 composed with inner tiling at --block1",
}

// ParseVariant maps a name to a Variant, returning ErrUnknownVariant with the
// valid names when it does not match.
func ParseVariant(name string) (Variant, error) {
	v := Variant(name)
	if _, ok := variantDescriptions[v]; !ok {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownVariant, name, strings.Join(ValidVariantNames(), ", "))
	}
	return v, nil
}

// ValidVariantNames returns the accepted variant names in a stable order.
func ValidVariantNames() []string {
	return []string{
		string(VariantNaive),
		string(VariantTransposed),
		string(VariantBlocked1),
		string(VariantBlocked2),
	}
}

// Describe returns the one-line summary for the variant, or "" if unknown.
func (v Variant) Describe() string {
	return variantDescriptions[v]
}

// Blocked reports whether the variant consumes the Block1 parameter.
func (v Variant) Blocked() bool {
	return v == VariantBlocked1 || v == VariantBlocked2
}

// UsesL1 reports whether the variant consumes the L1 sub-block parameter.
func (v Variant) UsesL1() bool {
	return v == VariantBlocked1
}

// UsesBlock2 reports whether the variant consumes the Block2 parameter.
func (v Variant) UsesBlock2() bool {
	return v == VariantBlocked2
}
