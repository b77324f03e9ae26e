package generate

import "math/big"

// permutations enumerates arrangements of the input symbols by counting in
// the factorial number system: digit i ranges over [0, n-i) and selects the
// i-th output symbol from the symbols not yet used, left to right. For a
// sorted input this is lexicographic order; for unsorted input it is the
// same deterministic selection order over the input as given, not a sorted
// one. Duplicate input symbols produce repeated words by design.
type permutations struct {
	symbols []rune
	size    *big.Int

	digits    []int
	remaining []rune
	buf       []rune
	done      bool
}

func newPermutations(symbols []rune, size *big.Int) *permutations {
	return &permutations{
		symbols:   symbols,
		size:      size,
		digits:    make([]int, len(symbols)),
		remaining: make([]rune, len(symbols)),
		buf:       make([]rune, len(symbols)),
	}
}

func (p *permutations) Size() *big.Int { return new(big.Int).Set(p.size) }

func (p *permutations) Next() (string, bool) {
	if p.done {
		return "", false
	}
	n := len(p.symbols)
	copy(p.remaining, p.symbols)
	left := p.remaining
	for i, d := range p.digits {
		p.buf[i] = left[d]
		left = append(left[:d], left[d+1:]...)
	}
	word := string(p.buf[:n])
	p.advance()
	return word, true
}

func (p *permutations) advance() {
	n := len(p.symbols)
	for i := n - 1; i >= 0; i-- {
		p.digits[i]++
		if p.digits[i] < n-i {
			return
		}
		p.digits[i] = 0
	}
	p.done = true
}

func (p *permutations) SkipAhead(n *big.Int) error {
	if n.Sign() < 0 {
		return ErrNegativeSkip
	}
	if p.done || n.Sign() == 0 {
		return nil
	}
	target := p.index()
	target.Add(target, n)
	if target.Cmp(p.size) >= 0 {
		p.done = true
		return nil
	}
	p.seek(target)
	return nil
}

func (p *permutations) index() *big.Int {
	n := len(p.symbols)
	v := new(big.Int)
	for i, d := range p.digits {
		v.Mul(v, big.NewInt(int64(n-i)))
		v.Add(v, big.NewInt(int64(d)))
	}
	return v
}

func (p *permutations) seek(target *big.Int) {
	n := len(p.symbols)
	rem := new(big.Int).Set(target)
	var digit big.Int
	for i := n - 1; i >= 0; i-- {
		rem.QuoRem(rem, big.NewInt(int64(n-i)), &digit)
		p.digits[i] = int(digit.Int64())
	}
}
