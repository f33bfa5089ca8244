package depth

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/bits"
	"strings"

	"github.com/zeebo/blake3"
)

// ParameterSet is an immutable description of one candidate configuration:
// the ring degree N, the plaintext modulus bit-size, the bit-sizes of the
// coefficient-modulus chain and the scheme family.
//
// A ParameterSet is only structurally checked at construction; whether primes
// exist for it is decided by the Backend (see [Backend.Build]).
type ParameterSet struct {
	ringDegree    int
	plaintextBits int
	coeffBits     []int
	scheme        Scheme
}

// NewParameterSet returns a new ParameterSet. It returns an error wrapping
// ErrInvalidParameterSet if the ring degree is not a power of two, if the
// chain is empty, or if a bit-size is not positive, and an error wrapping
// ErrUnknownScheme if the scheme is not supported.
func NewParameterSet(ringDegree, plaintextBits int, coeffBits []int, scheme Scheme) (ps ParameterSet, err error) {

	if ringDegree < 2 || ringDegree&(ringDegree-1) != 0 {
		return ParameterSet{}, fmt.Errorf("%w: ring degree %d is not a power of two", ErrInvalidParameterSet, ringDegree)
	}

	if plaintextBits <= 0 {
		return ParameterSet{}, fmt.Errorf("%w: plaintext bit-size %d is not positive", ErrInvalidParameterSet, plaintextBits)
	}

	if len(coeffBits) == 0 {
		return ParameterSet{}, fmt.Errorf("%w: empty coefficient modulus chain", ErrInvalidParameterSet)
	}

	for i, b := range coeffBits {
		if b <= 0 {
			return ParameterSet{}, fmt.Errorf("%w: coefficient modulus bit-size [%d]=%d is not positive", ErrInvalidParameterSet, i, b)
		}
	}

	if !scheme.Valid() {
		return ParameterSet{}, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}

	return ParameterSet{
		ringDegree:    ringDegree,
		plaintextBits: plaintextBits,
		coeffBits:     append([]int(nil), coeffBits...),
		scheme:        scheme,
	}, nil
}

// RingDegree returns the polynomial ring dimension N.
func (p ParameterSet) RingDegree() int {
	return p.ringDegree
}

// LogN returns log2(N).
func (p ParameterSet) LogN() int {
	return bits.Len(uint(p.ringDegree)) - 1
}

// PlaintextBits returns the target bit-size of the plaintext modulus.
func (p ParameterSet) PlaintextBits() int {
	return p.plaintextBits
}

// CoeffBits returns a copy of the coefficient-modulus bit-size chain.
func (p ParameterSet) CoeffBits() []int {
	return append([]int(nil), p.coeffBits...)
}

// ChainLength returns the number of primes in the coefficient modulus.
func (p ParameterSet) ChainLength() int {
	return len(p.coeffBits)
}

// LogQ returns the sum of the chain bit-sizes.
func (p ParameterSet) LogQ() (logQ int) {
	for _, b := range p.coeffBits {
		logQ += b
	}
	return
}

// Scheme returns the scheme family.
func (p ParameterSet) Scheme() Scheme {
	return p.scheme
}

// IsZero reports whether p is the zero value.
func (p ParameterSet) IsZero() bool {
	return p.ringDegree == 0
}

// String renders the parameter set as ( N, t, {q0, q1, ...} ).
func (p ParameterSet) String() string {
	chain := make([]string, len(p.coeffBits))
	for i, b := range p.coeffBits {
		chain[i] = fmt.Sprintf("%d", b)
	}
	return fmt.Sprintf("( %d, %d, {%s} )", p.ringDegree, p.plaintextBits, strings.Join(chain, ", "))
}

// Fingerprint returns the hex encoded blake3 digest of the canonical encoding
// of the parameter set.
func (p ParameterSet) Fingerprint() string {
	sum := p.digest()
	return hex.EncodeToString(sum[:])
}

// Seed returns a 64-bit seed derived from the fingerprint.
func (p ParameterSet) Seed() int64 {
	sum := p.digest()
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

func (p ParameterSet) digest() [32]byte {
	buf := make([]byte, 0, 8*(3+len(p.coeffBits)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(p.ringDegree))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(p.plaintextBits))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(p.scheme))
	for _, b := range p.coeffBits {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(b))
	}
	return blake3.Sum256(buf)
}
