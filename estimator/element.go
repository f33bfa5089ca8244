package estimator

import (
	"math/big"
)

// Element is the noise state of a simulated ciphertext.
//
// Noise is the standard deviation of a coefficient of E, where
// t * (c0 + c1*s + c2*s^2) = m + E mod Q.
type Element struct {
	Level  int
	Degree int
	Noise  *big.Float
}

// CopyNew returns a deep copy of the element.
func (el Element) CopyNew() Element {
	return Element{
		Level:  el.Level,
		Degree: el.Degree,
		Noise:  NewFloat(el.Noise),
	}
}

// Log2Std returns log2 of the standard deviation of the noise.
func (el Element) Log2Std() float64 {
	return Log2(el.Noise)
}
