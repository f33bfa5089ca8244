// Package estimator implements a depth.Backend that simulates the noise
// growth of BGV and BFV ciphertexts with an average-case variance model,
// without any cryptographic operation.
package estimator

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NoiseFresh is the standard deviation of the error distribution.
var NoiseFresh = NewFloat(3.2)

// Estimator tracks the noise of simulated ciphertexts for one set of primes.
type Estimator struct {
	N      *big.Float
	H      *big.Float
	T      *big.Float
	Q      []*big.Float
	P      *big.Float
	LevelP int

	// ScaleInvariant selects the BFV tensoring.
	ScaleInvariant bool

	// tail is sqrt(2 * ln(2N)): the ratio between the expected infinity norm
	// of N Gaussian coefficients and their standard deviation.
	tail *big.Float
}

// NewEstimator returns an Estimator for the ring degree N, the plaintext
// modulus T, the ciphertext primes Q and the key-switching primes P. The
// secret is uniform ternary.
func NewEstimator(N int, T uint64, Q, P []uint64, scaleInvariant bool) *Estimator {

	Qi := make([]*big.Float, len(Q))
	for i := range Qi {
		Qi[i] = NewFloat(Q[i])
	}

	Pi := NewFloat(1)
	for i := range P {
		Pi.Mul(Pi, NewFloat(P[i]))
	}

	// Expected Hamming weight of a uniform ternary secret
	H := NewFloat(2 * N)
	H.Quo(H, NewFloat(3))

	tail := bigfloat.Log(NewFloat(2 * N))
	tail.Mul(tail, NewFloat(2))
	tail.Sqrt(tail)

	return &Estimator{
		N:              NewFloat(N),
		H:              H,
		T:              NewFloat(T),
		Q:              Qi,
		P:              Pi,
		LevelP:         len(P) - 1,
		ScaleInvariant: scaleInvariant,
		tail:           tail,
	}
}

// MaxLevel returns the level of a fresh ciphertext.
func (e *Estimator) MaxLevel() int {
	return len(e.Q) - 1
}

// roundingNoise returns the standard deviation of r0 + r1*s with r0, r1
// uniform in [-1/2, 1/2).
func (e *Estimator) roundingNoise() *big.Float {
	v := NewFloat(1)
	v.Add(v, e.H)
	v.Quo(v, NewFloat(12))
	return v.Sqrt(v)
}

// Encrypt returns a fresh public-key encryption at the given level.
//
// The encryption error is e0 + u*e + e1*s. If key-switching primes exist,
// the encryption is carried in QP and divided by P, which replaces this error
// by the rounding error of the division.
func (e *Estimator) Encrypt(level int) Element {

	// var(e0 + u*e + e1*s) = sigma^2 * (1 + 2H)
	v := NewFloat(2)
	v.Mul(v, e.H)
	v.Add(v, NewFloat(1))
	v.Sqrt(v)
	v.Mul(v, NoiseFresh)

	if e.LevelP >= 0 {
		v.Quo(v, e.P)
		v = AddSTD(v, e.roundingNoise())
	}

	v.Mul(v, e.T)

	return Element{Level: level, Degree: 1, Noise: v}
}

// Mul returns the degree-2 tensor product of el0 and el1, at the smallest of
// their levels.
//
// Standard tensoring (BGV): t * (t^-1*m0 + e0)(t^-1*m1 + e1) gives
// E = (m0*m1 - [m0*m1]_t) + m0*E1 + m1*E0 + E0*E1.
//
// Scale-invariant tensoring (BFV): the E0*E1/Q and the carry terms vanish,
// and the rounding of the product contributes t * (r0 + r1*s + r2*s^2).
func (e *Estimator) Mul(el0, el1 Element) (el2 Element) {

	el2 = Element{
		Level:  min(el0.Level, el1.Level),
		Degree: el0.Degree + el1.Degree,
	}

	// std of a message coefficient uniform in [-t/2, t/2)
	msg := new(big.Float).Quo(e.T, NewFloat(math.Sqrt(12)))

	// m0*E1 + m1*E0
	noise := AddSTD(MulSTD(e.N, msg, el1.Noise), MulSTD(e.N, msg, el0.Noise))

	if e.ScaleInvariant {

		// r0 + r1*s + r2*s^2
		r := NewFloat(1)
		r.Add(r, e.H)
		r.Add(r, new(big.Float).Mul(e.H, e.H))
		r.Quo(r, NewFloat(12))
		r.Sqrt(r)
		r.Mul(r, e.T)

		el2.Noise = AddSTD(noise, r)

	} else {

		noise = AddSTD(noise, MulSTD(e.N, msg, msg))
		noise = AddSTD(noise, MulSTD(e.N, el0.Noise, el1.Noise))

		el2.Noise = noise
	}

	return
}

// Relinearize returns a degree-1 element, adding the key-switching noise of
// the relinearization key.
func (e *Estimator) Relinearize(el0 Element) (el1 Element) {

	el1 = el0.CopyNew()

	for i := 2; i < el0.Degree+1; i++ {
		ks := e.ModDown(e.KeySwitchRawLazy(el0.Level, NewFloat(0), NoiseFresh, e.H))
		ks.Mul(ks, e.T)
		el1.Noise = AddSTD(el1.Noise, ks)
	}

	el1.Degree = 1

	return
}

// KeySwitchRawLazy: raw output of the key-switching dot-product
// without the division by P. The error is due to the multiplication
// of the uniform decomposed digits with the error in the key, and to the
// multiplication of the error of the input by the secret scaled by P.
//
// Noise: sqrt(N * (var(noise_ct) * var(H) * P + var(noise_key) * sum(var(q_alpha_i)))
func (e *Estimator) KeySwitchRawLazy(level int, eCt, eKey, H *big.Float) (eKeySwitch *big.Float) {

	// var(noise_ct) * var(H) * P
	eKeySwitch = new(big.Float).Set(e.P)
	eKeySwitch.Mul(eKeySwitch, eCt)
	eKeySwitch.Mul(eKeySwitch, eCt)
	eKeySwitch.Mul(eKeySwitch, H)

	// var(noise_ct) * var(H) * P + var(ekey) * sum(var(q_alpha_i)))
	decompRNS := DecompRNS(level, e.LevelP)
	for i := 0; i < decompRNS; i++ {

		start := i * (e.LevelP + 1)
		end := min((i+1)*(e.LevelP+1), level+1)

		qalpha := NewFloat(1)
		for j := start; j < end; j++ {
			qalpha.Mul(qalpha, e.Q[j])
		}

		qalpha.Mul(qalpha, qalpha)
		qalpha.Quo(qalpha, NewFloat(12))
		qalpha.Mul(qalpha, eKey)
		qalpha.Mul(qalpha, eKey)

		eKeySwitch.Add(eKeySwitch, qalpha)
	}

	eKeySwitch.Mul(eKeySwitch, e.N)
	eKeySwitch.Sqrt(eKeySwitch)

	return
}

// ModDown divides a key-switching noise by P and adds the rounding noise.
func (e *Estimator) ModDown(noise *big.Float) *big.Float {
	return AddSTD(new(big.Float).Quo(noise, e.P), e.roundingNoise())
}

// Rescale divides the element by the last prime of its modulus.
func (e *Estimator) Rescale(el0 Element) (el1 Element) {
	el1 = e.DivRound(el0, e.Q[el0.Level])
	el1.Level = el0.Level - 1
	return
}

// DivRound returns round(el0 / q): E/q plus t times the rounding noise.
func (e *Estimator) DivRound(el0 Element, q *big.Float) (el1 Element) {

	el1 = el0.CopyNew()

	el1.Noise.Quo(el1.Noise, q)

	r := e.roundingNoise()
	r.Mul(r, e.T)

	el1.Noise = AddSTD(el1.Noise, r)

	return
}

// ModulusAtLevel returns the product of the primes up to level.
func (e *Estimator) ModulusAtLevel(level int) *big.Float {
	Q := NewFloat(1)
	for i := 0; i < level+1; i++ {
		Q.Mul(Q, e.Q[i])
	}
	return Q
}

// Norm returns the expected infinity norm of m + E.
func (e *Estimator) Norm(el Element) *big.Float {
	msg := new(big.Float).Quo(e.T, NewFloat(math.Sqrt(12)))
	norm := AddSTD(el.Noise, msg)
	return norm.Mul(norm, e.tail)
}

// Budget returns bitlen(Q) - bitlen(|m + E|) - 1, floored at zero.
func (e *Estimator) Budget(el Element) int {
	return max(BitLen(e.ModulusAtLevel(el.Level))-BitLen(e.Norm(el))-1, 0)
}
