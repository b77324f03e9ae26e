package generate

import "math/big"

// product enumerates the cross product of per-position choice sets in
// rightmost-fastest order. Pattern specs compile to one column per token.
type product struct {
	columns [][]rune
	size    *big.Int

	digits []int
	buf    []rune
	done   bool
}

func newProduct(columns [][]rune, size *big.Int) *product {
	p := &product{
		columns: columns,
		size:    size,
		digits:  make([]int, len(columns)),
		buf:     make([]rune, len(columns)),
		done:    size.Sign() == 0,
	}
	return p
}

func (p *product) Size() *big.Int { return new(big.Int).Set(p.size) }

func (p *product) Next() (string, bool) {
	if p.done {
		return "", false
	}
	for i, col := range p.columns {
		p.buf[i] = col[p.digits[i]]
	}
	word := string(p.buf)
	p.advance()
	return word, true
}

func (p *product) advance() {
	for i := len(p.digits) - 1; i >= 0; i-- {
		p.digits[i]++
		if p.digits[i] < len(p.columns[i]) {
			return
		}
		p.digits[i] = 0
	}
	p.done = true
}

func (p *product) SkipAhead(n *big.Int) error {
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

func (p *product) index() *big.Int {
	v := new(big.Int)
	for i := range p.digits {
		v.Mul(v, big.NewInt(int64(len(p.columns[i]))))
		v.Add(v, big.NewInt(int64(p.digits[i])))
	}
	return v
}

func (p *product) seek(target *big.Int) {
	rem := new(big.Int).Set(target)
	var digit big.Int
	for i := len(p.digits) - 1; i >= 0; i-- {
		rem.QuoRem(rem, big.NewInt(int64(len(p.columns[i]))), &digit)
		p.digits[i] = int(digit.Int64())
	}
}
