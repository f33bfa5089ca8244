package depth

import (
	"fmt"
)

// CapabilityResult is the legacy numeric result of an estimation.
//
// MaxDepth is the number of sequential multiplications after which the
// ciphertext still decrypts correctly; -1 means that a fresh ciphertext
// already fails to decrypt (or that the parameters were rejected).
// NoiseBudgetBits is the last positive budget reading.
type CapabilityResult struct {
	MaxDepth        int
	NoiseBudgetBits int
}

// Sentinel returns the result of an unusable or rejected configuration.
func Sentinel() CapabilityResult {
	return CapabilityResult{MaxDepth: -1, NoiseBudgetBits: 0}
}

func (r CapabilityResult) String() string {
	return fmt.Sprintf("maximum depth: %d, noise budget left: %d bits", r.MaxDepth, r.NoiseBudgetBits)
}

// Verdict distinguishes the three possible outcomes of an estimation.
type Verdict int

const (
	// ConfigurationRejected means the parameters could not be materialized.
	ConfigurationRejected = Verdict(iota)
	// Unusable means a fresh ciphertext does not decrypt correctly.
	Unusable
	// Usable means a fresh ciphertext decrypts correctly; the depth may be 0.
	Usable
)

func (v Verdict) String() string {
	switch v {
	case ConfigurationRejected:
		return "rejected"
	case Unusable:
		return "unusable"
	case Usable:
		return "usable"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Step is one positive budget reading of the estimation loop.
type Step struct {
	Depth  int
	Budget int
	Level  int
}

// Outcome is the full result of an estimation.
type Outcome struct {
	Verdict Verdict

	// Result is the legacy numeric mapping of the outcome.
	Result CapabilityResult

	// Reason is the *ParamError of a rejected configuration.
	Reason error

	// Diagnostic is the consistency diagnostic of the backend context, empty
	// if the context was consistent.
	Diagnostic string

	// Trace holds the readings recorded by the loop, one per depth.
	Trace []Step

	// Descents counts the modulus switches performed.
	Descents int

	// ChainExhausted is set when a switch was requested at the last level.
	ChainExhausted bool
}

func rejected(err *ParamError) Outcome {
	return Outcome{
		Verdict: ConfigurationRejected,
		Result:  Sentinel(),
		Reason:  err,
	}
}

// Legacy returns the numeric result.
func (o Outcome) Legacy() CapabilityResult {
	return o.Result
}

// Consistent reports whether no consistency diagnostic was raised.
func (o Outcome) Consistent() bool {
	return o.Diagnostic == ""
}

func (o Outcome) String() string {
	switch o.Verdict {
	case ConfigurationRejected:
		return fmt.Sprintf("%s (%v)", o.Verdict, o.Reason)
	default:
		return fmt.Sprintf("%s: %s", o.Verdict, o.Result)
	}
}
