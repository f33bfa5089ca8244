package depth

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuitablePlaintextModulus is the kind of ParamError returned when no
	// prime supporting batching exists at the requested plaintext bit-size.
	ErrNoSuitablePlaintextModulus = errors.New("cannot find a plaintext modulus for the bit-size")

	// ErrInsufficientPrimes is the kind of ParamError returned when the
	// coefficient-modulus chain cannot be filled with distinct primes.
	ErrInsufficientPrimes = errors.New("cannot find enough primes for the bit-sizes")

	// ErrInconsistentParameters is returned by a backend Context whose parameters
	// were constructed but are not internally consistent.
	ErrInconsistentParameters = errors.New("inconsistent parameters")

	// ErrEndOfChain is returned by a backend when a ciphertext at the last
	// level of the chain is asked to switch to the next modulus.
	ErrEndOfChain = errors.New("end of modulus switching chain reached")

	ErrUnknownScheme      = errors.New("unknown scheme")
	ErrUnknownDescentMode = errors.New("unknown descent mode")
	ErrUnknownStrategy    = errors.New("unknown multiplication strategy")

	// ErrInvalidParameterSet is returned by NewParameterSet on structurally
	// malformed input.
	ErrInvalidParameterSet = errors.New("invalid parameter set")
)

// ParamError is a recoverable failure to materialize a ParameterSet.
// Its Kind is either ErrNoSuitablePlaintextModulus or ErrInsufficientPrimes.
type ParamError struct {
	Kind   error
	Reason string
}

// NewParamError returns a *ParamError of the given kind.
func NewParamError(kind error, format string, args ...interface{}) *ParamError {
	return &ParamError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func (e *ParamError) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return e.Kind
}
