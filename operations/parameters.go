package operations

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/schemes/bgv"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
	"github.com/tuneinsight/leveled-depth-estimator/modulus"
)

const (
	// MinLogN is the smallest ring degree supported by the backend.
	MinLogN = 4
	// MaxLogN is the largest ring degree supported by the backend.
	MaxLogN = 17
)

// Parameters are the primes selected for a depth.ParameterSet.
//
// The last prime of a chain of length L > 1 is the special key-switching
// prime P; the ciphertext modulus is made of the L-1 first primes. A chain of
// length 1 has no key-switching prime.
type Parameters struct {
	modulus.Selection
	ps depth.ParameterSet
}

// NewParameters selects the plaintext modulus and the chain primes of ps.
// It returns a *depth.ParamError if no suitable primes exist.
func NewParameters(ps depth.ParameterSet) (*Parameters, error) {

	if logN := ps.LogN(); logN < MinLogN || logN > MaxLogN {
		return nil, depth.NewParamError(depth.ErrInsufficientPrimes, "ring degree 2^%d is not in [2^%d, 2^%d]", logN, MinLogN, MaxLogN)
	}

	s, err := modulus.Select(ps.RingDegree(), ps.PlaintextBits(), ps.CoeffBits())
	if err != nil {
		return nil, err
	}

	return &Parameters{Selection: s, ps: ps}, nil
}

// ParameterSet returns the parameter set the primes were selected for.
func (p *Parameters) ParameterSet() depth.ParameterSet {
	return p.ps
}

// Scheme returns the scheme family.
func (p *Parameters) Scheme() depth.Scheme {
	return p.ps.Scheme()
}

func (p *Parameters) literal() bgv.ParametersLiteral {
	return bgv.ParametersLiteral{
		LogN:             p.ps.LogN(),
		Q:                p.Q(),
		P:                p.P(),
		PlaintextModulus: p.T,
	}
}

// Backend is the lattigo implementation of depth.Backend.
type Backend struct{}

// NewBackend returns a new Backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Build selects the primes of ps.
func (b *Backend) Build(ps depth.ParameterSet) (depth.Parameters, error) {
	p, err := NewParameters(ps)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewContext instantiates the scheme for params, which must have been
// returned by Build.
func (b *Backend) NewContext(params depth.Parameters) (depth.Context, error) {
	p, ok := params.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("cannot NewContext: invalid parameters type %T", params)
	}
	c, err := NewContext(p)
	if err != nil {
		return nil, err
	}
	return c, nil
}
