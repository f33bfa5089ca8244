package estimator

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

const (
	prec = uint(128)
)

// DecompRNS returns the number of RNS digits of the gadget decomposition of
// a ciphertext at levelQ with levelP+1 key-switching primes.
func DecompRNS(levelQ, levelP int) int {
	return (levelQ + levelP + 1) / (levelP + 1)
}

// NewFloat returns x as a big.Float with 128 bits of precision.
func NewFloat(x interface{}) (s *big.Float) {
	switch x := x.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			panic(fmt.Errorf("x cannot be NaN or Inf, but is %f", x))
		}
		s = new(big.Float).SetPrec(prec)
		s.SetFloat64(x)
		return
	case *big.Int:
		s = new(big.Float).SetPrec(prec)
		s.SetInt(x)
		return
	case *big.Float:
		s = new(big.Float).SetPrec(prec)
		s.Set(x)
		return
	case int:
		return NewFloat(new(big.Int).SetInt64(int64(x)))
	case int64:
		return NewFloat(new(big.Int).SetInt64(x))
	case uint64:
		return NewFloat(new(big.Int).SetUint64(x))
	default:
		panic(fmt.Errorf("invalid x.(type): must be int, int64, uint64, float64, *big.Int or *big.Float but is %T", x))
	}
}

// AddSTD returns sqrt(a^2 + b^2), the standard deviation of the sum of two
// independent variables.
func AddSTD(a, b *big.Float) (c *big.Float) {
	c = NewFloat(0)
	c.Mul(a, a)
	c.Add(c, new(big.Float).Mul(b, b))
	return c.Sqrt(c)
}

// MulSTD returns sqrt(N) * a * b, the standard deviation of a coefficient of
// the product in Z[X]/(X^N+1) of two polynomials with independent coefficients.
func MulSTD(N, a, b *big.Float) (c *big.Float) {
	c = NewFloat(N)
	c.Sqrt(c)
	c.Mul(c, a)
	return c.Mul(c, b)
}

// Log2 returns log2(x) for x > 0, and -Inf otherwise.
func Log2(x *big.Float) float64 {
	if x.Sign() <= 0 {
		return math.Inf(-1)
	}
	ln := bigfloat.Log(NewFloat(x))
	ln.Quo(ln, bigfloat.Log(NewFloat(2.0)))
	f, _ := ln.Float64()
	return f
}

// BitLen returns the bit length of the integer part of x, or 0 if x < 1.
func BitLen(x *big.Float) int {
	if x.Cmp(NewFloat(1)) < 0 {
		return 0
	}
	return x.MantExp(nil)
}
