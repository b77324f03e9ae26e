// Package generate produces the ordered word sequences defined by a
// space.Spec. All three modes are realized the same way: a mixed-radix
// odometer over the domain plus a per-item decode, so skipping ahead is a
// digit decomposition of the global index rather than a linear discard.
package generate

import (
	"errors"
	"math/big"

	"github.com/davral/wordforge/internal/space"
)

// ErrNegativeSkip is returned when SkipAhead is called with a negative count.
var ErrNegativeSkip = errors.New("skip count must not be negative")

// Enumerator is a lazy, deterministic, finite word sequence. It yields
// exactly Size() words and then reports ok=false forever; it never cycles.
type Enumerator interface {
	// Next returns the next word in enumeration order, or ok=false once
	// the space is exhausted.
	Next() (word string, ok bool)

	// SkipAhead advances past the next n words without materializing them.
	// Skipping at or past the end of the space exhausts the enumerator;
	// that is not an error.
	SkipAhead(n *big.Int) error

	// Size returns the exact number of words in the underlying space.
	Size() *big.Int
}

// New builds the enumerator for a spec.
func New(spec *space.Spec) Enumerator {
	switch spec.Kind() {
	case space.KindPattern:
		return newProduct(spec.Tokens(), spec.Size())
	case space.KindPermutations:
		return newPermutations(spec.Symbols(), spec.Size())
	default:
		return newCombinations(spec)
	}
}
