package depth

import (
	"fmt"
)

// SchemePolicy encodes the behavioral differences between scheme families
// that matter to the depth estimation: when the modulus is switched down and
// whether relinearization is possible at all.
type SchemePolicy struct {
	Scheme  Scheme
	Descent DescentMode
}

// defaultDescent maps every supported scheme to its default descent mode:
// switch after each step while budget remains, which only affects BGV.
var defaultDescent = map[Scheme]DescentMode{
	BFV: DescentOnDepletionOnly,
	BGV: DescentOnDepletionOnly,
}

// DefaultPolicy returns the default policy for the scheme.
func DefaultPolicy(scheme Scheme) (SchemePolicy, error) {
	mode, ok := defaultDescent[scheme]
	if !ok {
		return SchemePolicy{}, fmt.Errorf("cannot DefaultPolicy: %w: %s", ErrUnknownScheme, scheme)
	}
	return SchemePolicy{Scheme: scheme, Descent: mode}, nil
}

// NewSchemePolicy returns a validated policy.
func NewSchemePolicy(scheme Scheme, mode DescentMode) (p SchemePolicy, err error) {
	p = SchemePolicy{Scheme: scheme, Descent: mode}
	if err = p.Validate(); err != nil {
		return SchemePolicy{}, err
	}
	return
}

// Policies returns every supported (scheme, descent mode) pair.
func Policies() (policies []SchemePolicy) {
	for _, s := range []Scheme{BFV, BGV} {
		for _, m := range []DescentMode{NoDescent, DescentOnDepletionOnly, DescentEager} {
			policies = append(policies, SchemePolicy{Scheme: s, Descent: m})
		}
	}
	return
}

// Validate returns an error if the scheme or the descent mode is not supported.
func (p SchemePolicy) Validate() error {
	if !p.Scheme.Valid() {
		return fmt.Errorf("invalid policy: %w: %s", ErrUnknownScheme, p.Scheme)
	}
	if !p.Descent.Valid() {
		return fmt.Errorf("invalid policy: %w: %s", ErrUnknownDescentMode, p.Descent)
	}
	return nil
}

// CanRelinearize reports whether a chain of the given length supports
// relinearization, and therefore any multiplication: the last prime of the
// chain is reserved for key-switching.
func (p SchemePolicy) CanRelinearize(chainLength int) bool {
	return chainLength > 1
}

// DescendAfterEncryption reports whether one level is consumed right after
// the initial encryption.
func (p SchemePolicy) DescendAfterEncryption() bool {
	return p.Descent == DescentEager
}

// DescendAfterStep reports whether the modulus is switched after a
// multiplicative step that left the given budget.
func (p SchemePolicy) DescendAfterStep(budget int) bool {
	switch p.Descent {
	case DescentEager:
		return true
	case DescentOnDepletionOnly:
		return p.Scheme == BGV && budget > 0
	default:
		return false
	}
}

// Active reports whether the policy ever switches the modulus for its scheme.
func (p SchemePolicy) Active() bool {
	switch p.Descent {
	case DescentEager:
		return true
	case DescentOnDepletionOnly:
		return p.Scheme == BGV
	default:
		return false
	}
}

func (p SchemePolicy) String() string {
	return fmt.Sprintf("%s/%s", p.Scheme, p.Descent)
}
