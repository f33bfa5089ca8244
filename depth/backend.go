package depth

// Parameters is a concrete, backend-specific parameter object materialized
// from a ParameterSet.
type Parameters interface {
	// ParameterSet returns the set the parameters were built from.
	ParameterSet() ParameterSet
}

// Plaintext is an opaque encoded message owned by a Context.
type Plaintext interface{}

// Ciphertext is an opaque ciphertext handle owned by a Context.
type Ciphertext interface{}

// Backend supplies the leveled homomorphic encryption primitives the
// estimator drives. Implementations must not share mutable state between
// the contexts they create.
type Backend interface {
	// Build materializes the parameter set. It returns a *ParamError of kind
	// ErrNoSuitablePlaintextModulus or ErrInsufficientPrimes when no suitable
	// primes exist; it never returns partially built Parameters.
	Build(ps ParameterSet) (Parameters, error)

	// NewContext instantiates the scheme for the parameters. An inconsistent
	// but constructed context is returned without error and reports its
	// inconsistency through Consistent and Diagnostic.
	NewContext(params Parameters) (Context, error)
}

// Context holds the scheme instance, and once generated, the keys of one
// estimation. Every handle it returns is released with Release.
type Context interface {
	// Consistent reports whether the parameters are internally consistent.
	Consistent() bool

	// Diagnostic returns a human readable explanation of the inconsistency,
	// or the empty string.
	Diagnostic() string

	// GenerateKeys generates the secret and public keys, and the
	// relinearization key if relin is true.
	GenerateKeys(relin bool) error

	// SlotCount returns the number of plaintext slots.
	SlotCount() int

	// PlaintextModulus returns the plaintext modulus chosen by the backend.
	PlaintextModulus() uint64

	// Encode batch-encodes values (each smaller than the plaintext modulus).
	Encode(values []uint64) (Plaintext, error)

	// Encrypt encrypts pt under the public key.
	Encrypt(pt Plaintext) (Ciphertext, error)

	// Multiply returns a*b. Operands at different levels are multiplied at the
	// lower level.
	Multiply(a, b Ciphertext) (Ciphertext, error)

	// Square returns a*a.
	Square(a Ciphertext) (Ciphertext, error)

	// Relinearize reduces a degree-2 ciphertext back to degree 1.
	Relinearize(ct Ciphertext) (Ciphertext, error)

	// ModSwitchToNext drops the last prime of the ciphertext modulus. It
	// returns an error wrapping ErrEndOfChain if ct is at the last level.
	ModSwitchToNext(ct Ciphertext) (Ciphertext, error)

	// NoiseBudget returns the invariant noise budget of ct in bits, floored at
	// zero. Decryption is correct iff the budget is strictly positive.
	NoiseBudget(ct Ciphertext) (int, error)

	// Level returns the index of the last prime of ct's modulus.
	Level(ct Ciphertext) int

	// Release drops every key and handle owned by the context.
	Release()
}
