// Package modulus selects the plaintext modulus and the coefficient-modulus
// chain of a parameter set: primes congruent to 1 modulo 2N with exactly the
// requested number of bits.
package modulus

import (
	"fmt"
	"slices"

	"github.com/tuneinsight/lattigo/v6/ring"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

const (
	// MinBits is the smallest supported prime bit-size.
	MinBits = 2
	// MaxBits is the largest supported prime bit-size.
	MaxBits = 60
	// MaxChainLength is the maximum number of primes of a chain.
	MaxChainLength = 64
	// MinRingDegree is the smallest supported ring degree.
	MinRingDegree = 2
	// MaxRingDegree is the largest supported ring degree.
	MaxRingDegree = 1 << 17
)

// Primes returns count distinct primes p = 1 mod 2N of exactly bits bits,
// in decreasing order, scanning down from 2^bits.
func Primes(N, bits, count int) (primes []uint64, err error) {

	if bits < MinBits || bits > MaxBits {
		return nil, fmt.Errorf("bit-size %d is not in [%d, %d]", bits, MinBits, MaxBits)
	}

	if N < MinRingDegree || N > MaxRingDegree || N&(N-1) != 0 {
		return nil, fmt.Errorf("ring degree %d is not a power of two in [%d, %d]", N, MinRingDegree, MaxRingDegree)
	}

	if count <= 0 {
		return nil, nil
	}

	factor := uint64(2 * N)
	lower := uint64(1) << (bits - 1)

	value := ((uint64(1)<<bits)-1)/factor*factor + 1

	for count > 0 && value > lower {
		if ring.IsPrime(value) {
			primes = append(primes, value)
			count--
		}
		value -= factor
	}

	if count > 0 {
		return nil, fmt.Errorf("found only %d primes of %d bits congruent to 1 mod %d", len(primes), bits, factor)
	}

	return
}

// Batching returns the largest prime t = 1 mod 2N with exactly bits bits.
// It returns a *depth.ParamError of kind depth.ErrNoSuitablePlaintextModulus
// if there is none.
func Batching(N, bits int) (uint64, error) {
	primes, err := Primes(N, bits, 1)
	if err != nil {
		return 0, depth.NewParamError(depth.ErrNoSuitablePlaintextModulus, "N=%d, bits=%d: %s", N, bits, err)
	}
	return primes[0], nil
}

// Chain returns distinct primes q_i = 1 mod 2N with len(q_i) = bits[i]. For
// every bit-size, the primes are assigned in increasing order of value
// following the order of the chain. It returns a *depth.ParamError of kind
// depth.ErrInsufficientPrimes if the chain cannot be filled.
func Chain(N int, bits []int) (chain []uint64, err error) {

	if len(bits) == 0 {
		return nil, depth.NewParamError(depth.ErrInsufficientPrimes, "empty chain")
	}

	if len(bits) > MaxChainLength {
		return nil, depth.NewParamError(depth.ErrInsufficientPrimes, "%d primes exceed the maximum of %d", len(bits), MaxChainLength)
	}

	count := map[int]int{}
	for _, b := range bits {
		count[b]++
	}

	table := map[int][]uint64{}
	for b, c := range count {
		if table[b], err = Primes(N, b, c); err != nil {
			return nil, depth.NewParamError(depth.ErrInsufficientPrimes, "N=%d: %s", N, err)
		}
	}

	chain = make([]uint64, len(bits))
	for i, b := range bits {
		primes := table[b]
		chain[i] = primes[len(primes)-1]
		table[b] = primes[:len(primes)-1]
	}

	return
}

// Coprime reports whether t is distinct from every prime of the chain.
func Coprime(t uint64, chain []uint64) bool {
	return !slices.Contains(chain, t)
}
