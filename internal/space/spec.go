package space

import (
	"errors"
	"fmt"
	"math/big"
)

// Kind identifies which enumeration domain a Spec describes.
type Kind string

const (
	// KindCombinations enumerates all words of length minLen..maxLen over a charset.
	KindCombinations Kind = "combinations"
	// KindPattern enumerates the product of per-position character classes.
	KindPattern Kind = "pattern"
	// KindPermutations enumerates all arrangements of a fixed symbol multiset.
	KindPermutations Kind = "permutations"
)

var (
	// ErrEmptyCharset is returned when a combinations charset has no symbols.
	ErrEmptyCharset = errors.New("charset must not be empty")
	// ErrDuplicateSymbol is returned when a combinations charset repeats a symbol.
	ErrDuplicateSymbol = errors.New("charset symbols must be distinct")
	// ErrLengthOrder is returned when the minimum length exceeds the maximum.
	ErrLengthOrder = errors.New("minimum length cannot exceed maximum length")
	// ErrNegativeLength is returned for negative length bounds.
	ErrNegativeLength = errors.New("length bounds must not be negative")
)

// Spec is the immutable definition of a combinatorial enumeration domain.
// Its total size is computed exactly at construction time; the value is
// arbitrary precision because realistic inputs (a 95-symbol charset at
// length 20) overflow any native integer width.
type Spec struct {
	kind Kind

	// combinations
	charset        []rune
	minLen, maxLen int

	// pattern: one choice set per position, literals contribute one choice
	tokens [][]rune

	// permutations: duplicates are kept, raw arrangements are counted
	symbols []rune

	size *big.Int
}

// NewCombinations builds a spec enumerating every word of length
// minLen..maxLen over charset. Charset symbols must be distinct.
func NewCombinations(charset string, minLen, maxLen int) (*Spec, error) {
	cs := []rune(charset)
	if len(cs) == 0 {
		return nil, ErrEmptyCharset
	}
	seen := make(map[rune]bool, len(cs))
	for _, r := range cs {
		if seen[r] {
			return nil, fmt.Errorf("%w: %q repeats", ErrDuplicateSymbol, r)
		}
		seen[r] = true
	}
	if minLen < 0 || maxLen < 0 {
		return nil, ErrNegativeLength
	}
	if minLen > maxLen {
		return nil, fmt.Errorf("%w: %d > %d", ErrLengthOrder, minLen, maxLen)
	}

	s := &Spec{
		kind:    KindCombinations,
		charset: cs,
		minLen:  minLen,
		maxLen:  maxLen,
	}
	s.size = combinationsSize(len(cs), minLen, maxLen)
	return s, nil
}

// NewPattern builds a spec from a pattern string. Each rune that appears in
// classes expands to that class's charset; every other rune is a literal
// contributing exactly one choice. A nil classes map uses DefaultClasses.
func NewPattern(pattern string, classes map[rune]string) (*Spec, error) {
	if classes == nil {
		classes = DefaultClasses()
	}
	var tokens [][]rune
	for _, r := range pattern {
		if cs, ok := classes[r]; ok {
			choices := []rune(cs)
			if len(choices) == 0 {
				return nil, fmt.Errorf("pattern class %q resolves to an empty charset", r)
			}
			tokens = append(tokens, choices)
		} else {
			tokens = append(tokens, []rune{r})
		}
	}

	s := &Spec{kind: KindPattern, tokens: tokens}
	s.size = patternSize(tokens)
	return s, nil
}

// NewPermutations builds a spec enumerating every arrangement of symbols.
// Duplicate symbols are not collapsed: the size is len(symbols)! raw
// arrangements, matching standard permutation-generation semantics rather
// than distinct-string counting.
func NewPermutations(symbols string) (*Spec, error) {
	s := &Spec{
		kind:    KindPermutations,
		symbols: []rune(symbols),
	}
	s.size = new(big.Int).MulRange(1, int64(len(s.symbols)))
	return s, nil
}

// Kind returns which enumeration domain this spec describes.
func (s *Spec) Kind() Kind { return s.kind }

// Size returns the exact number of words in the domain. The result is a
// fresh value the caller may mutate.
func (s *Spec) Size() *big.Int { return new(big.Int).Set(s.size) }

// Charset returns the combinations charset.
func (s *Spec) Charset() []rune { return s.charset }

// MinLen returns the combinations minimum word length.
func (s *Spec) MinLen() int { return s.minLen }

// MaxLen returns the combinations maximum word length.
func (s *Spec) MaxLen() int { return s.maxLen }

// Tokens returns the per-position choice sets of a pattern spec.
func (s *Spec) Tokens() [][]rune { return s.tokens }

// Symbols returns the permutation symbol multiset.
func (s *Spec) Symbols() []rune { return s.symbols }

func combinationsSize(base, minLen, maxLen int) *big.Int {
	total := new(big.Int)
	b := big.NewInt(int64(base))
	for l := minLen; l <= maxLen; l++ {
		total.Add(total, new(big.Int).Exp(b, big.NewInt(int64(l)), nil))
	}
	return total
}

func patternSize(tokens [][]rune) *big.Int {
	total := big.NewInt(1)
	for _, tok := range tokens {
		total.Mul(total, big.NewInt(int64(len(tok))))
	}
	return total
}
