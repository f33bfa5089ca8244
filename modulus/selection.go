package modulus

import (
	"fmt"
)

// Selection is the plaintext modulus and the coefficient-modulus chain
// selected for a ring degree.
type Selection struct {
	N     int
	T     uint64
	Chain []uint64
}

// Select returns the plaintext modulus of tBits bits and the chain of primes
// of the given bit-sizes. It returns a *depth.ParamError if either cannot
// be found.
func Select(N, tBits int, bits []int) (s Selection, err error) {

	if s.T, err = Batching(N, tBits); err != nil {
		return Selection{}, err
	}

	if s.Chain, err = Chain(N, bits); err != nil {
		return Selection{}, err
	}

	s.N = N

	return
}

// Q returns the ciphertext modulus primes: every prime but the last one,
// unless the chain has a single prime.
func (s Selection) Q() []uint64 {
	if len(s.Chain) <= 1 {
		return append([]uint64(nil), s.Chain...)
	}
	return append([]uint64(nil), s.Chain[:len(s.Chain)-1]...)
}

// P returns the key-switching prime, the last prime of the chain, or nil
// if the chain has a single prime.
func (s Selection) P() []uint64 {
	if len(s.Chain) <= 1 {
		return nil
	}
	return append([]uint64(nil), s.Chain[len(s.Chain)-1:]...)
}

// Diagnose returns why the selection cannot be instantiated as a scheme,
// or the empty string if it is consistent.
func (s Selection) Diagnose() string {

	if len(s.Chain) == 0 {
		return "empty coefficient modulus"
	}

	if !Coprime(s.T, s.Chain) {
		return fmt.Sprintf("plaintext modulus %d is not coprime to the coefficient modulus", s.T)
	}

	if q0 := s.Chain[0]; s.T >= q0 {
		return fmt.Sprintf("plaintext modulus %d is not smaller than the first coefficient modulus prime %d", s.T, q0)
	}

	return ""
}
