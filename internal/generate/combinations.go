package generate

import (
	"math/big"

	"github.com/davral/wordforge/internal/space"
)

// combinations walks lengths minLen..maxLen in ascending order; within one
// length the digits form a base-|charset| counter with the rightmost
// position incrementing fastest.
type combinations struct {
	charset        []rune
	minLen, maxLen int
	size           *big.Int

	curLen int
	digits []int
	buf    []rune
	done   bool
}

func newCombinations(spec *space.Spec) *combinations {
	c := &combinations{
		charset: spec.Charset(),
		minLen:  spec.MinLen(),
		maxLen:  spec.MaxLen(),
		size:    spec.Size(),
		curLen:  spec.MinLen(),
	}
	c.digits = make([]int, c.curLen)
	c.buf = make([]rune, c.maxLen)
	return c
}

func (c *combinations) Size() *big.Int { return new(big.Int).Set(c.size) }

func (c *combinations) Next() (string, bool) {
	if c.done {
		return "", false
	}
	for i := 0; i < c.curLen; i++ {
		c.buf[i] = c.charset[c.digits[i]]
	}
	word := string(c.buf[:c.curLen])
	c.advance()
	return word, true
}

func (c *combinations) advance() {
	for i := c.curLen - 1; i >= 0; i-- {
		c.digits[i]++
		if c.digits[i] < len(c.charset) {
			return
		}
		c.digits[i] = 0
	}
	// Leftmost digit carried out: move to the next length block.
	c.curLen++
	if c.curLen > c.maxLen {
		c.done = true
		return
	}
	c.digits = make([]int, c.curLen)
}

func (c *combinations) SkipAhead(n *big.Int) error {
	if n.Sign() < 0 {
		return ErrNegativeSkip
	}
	if c.done || n.Sign() == 0 {
		return nil
	}
	target := c.index()
	target.Add(target, n)
	if target.Cmp(c.size) >= 0 {
		c.done = true
		return nil
	}
	c.seek(target)
	return nil
}

// index returns the global position of the word Next would emit.
func (c *combinations) index() *big.Int {
	base := big.NewInt(int64(len(c.charset)))
	idx := new(big.Int)
	for l := c.minLen; l < c.curLen; l++ {
		idx.Add(idx, new(big.Int).Exp(base, big.NewInt(int64(l)), nil))
	}
	v := new(big.Int)
	for i := 0; i < c.curLen; i++ {
		v.Mul(v, base)
		v.Add(v, big.NewInt(int64(c.digits[i])))
	}
	return idx.Add(idx, v)
}

// seek positions the odometer at global index target, which must be within
// the space. The index first selects a length block, then decomposes into
// base-|charset| digits, leftmost most significant.
func (c *combinations) seek(target *big.Int) {
	base := big.NewInt(int64(len(c.charset)))
	rem := new(big.Int).Set(target)
	for l := c.minLen; l <= c.maxLen; l++ {
		block := new(big.Int).Exp(base, big.NewInt(int64(l)), nil)
		if rem.Cmp(block) < 0 {
			c.curLen = l
			c.digits = make([]int, l)
			var digit big.Int
			for i := l - 1; i >= 0; i-- {
				rem.QuoRem(rem, base, &digit)
				c.digits[i] = int(digit.Int64())
			}
			return
		}
		rem.Sub(rem, block)
	}
	c.done = true
}
