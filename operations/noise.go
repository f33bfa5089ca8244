package operations

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

// NoiseBudget returns the invariant noise budget of the ciphertext in bits.
//
// A ciphertext of the scheme decrypts to t^{-1}m + e mod Q, so the infinity
// norm of the centered t * (c0 + c1*s) mod Q bounds m + t*e. The budget is
// the number of bits left between this norm and Q/2, floored at zero.
func (c *Context) NoiseBudget(ct depth.Ciphertext) (int, error) {

	if c.dec == nil {
		return 0, fmt.Errorf("cannot NoiseBudget: keys have not been generated")
	}

	op0, err := ciphertext("NoiseBudget", ct)
	if err != nil {
		return 0, err
	}

	level := op0.Level()

	if c.pt == nil {
		c.pt = bgv.NewPlaintext(c.bgvParams, c.bgvParams.MaxLevel())
		c.coeffs = make([]*big.Int, c.bgvParams.N())
		for i := range c.coeffs {
			c.coeffs[i] = new(big.Int)
		}
	}

	pt := c.pt
	pt.Resize(0, c.bgvParams.MaxLevel())

	c.dec.Decrypt(op0, pt)

	ringQ := c.bgvParams.RingQ().AtLevel(level)

	if pt.IsNTT {
		ringQ.INTT(pt.Value, pt.Value)
	}

	ringQ.MulScalar(pt.Value, c.bgvParams.PlaintextModulus(), pt.Value)
	ringQ.PolyToBigintCentered(pt.Value, 1, c.coeffs)

	return budget(c.bgvParams.RingQ().ModulusAtLevel[level], c.coeffs), nil
}

// budget returns bitlen(Q) - bitlen(max |x_i|) - 1, floored at zero.
func budget(Q *big.Int, coeffs []*big.Int) int {

	norm := new(big.Int)
	abs := new(big.Int)
	for _, x := range coeffs {
		if abs.Abs(x).Cmp(norm) > 0 {
			norm.Set(abs)
		}
	}

	return max(Q.BitLen()-norm.BitLen()-1, 0)
}

// Noise returns the log2 of the standard deviation, minimum and maximum
// absolute value of the decrypted ciphertext before decoding.
func (c *Context) Noise(ct depth.Ciphertext) (std, min, max float64, err error) {

	if c.dec == nil {
		return 0, 0, 0, fmt.Errorf("cannot Noise: keys have not been generated")
	}

	op0, err := ciphertext("Noise", ct)
	if err != nil {
		return 0, 0, 0, err
	}

	std, min, max = rlwe.Norm(op0, c.dec)
	return
}
