package depth

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Scheme identifies a leveled homomorphic encryption scheme family.
type Scheme int

const (
	// BFV is the scale-invariant family: the plaintext sits in the most
	// significant bits of the ciphertext and modulus switching is optional.
	BFV = Scheme(iota)
	// BGV is the family whose noise is kept in check by switching down the
	// modulus chain after each multiplication.
	BGV
)

var schemeNames = map[string]Scheme{
	"bfv": BFV,
	"bgv": BGV,
}

// String returns the upper-case name of the scheme.
func (s Scheme) String() string {
	switch s {
	case BFV:
		return "BFV"
	case BGV:
		return "BGV"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// Valid reports whether s is a supported scheme family.
func (s Scheme) Valid() bool {
	return s == BFV || s == BGV
}

// ParseScheme returns the Scheme matching name (case insensitive).
func ParseScheme(name string) (Scheme, error) {
	if s, ok := schemeNames[strings.ToLower(name)]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownScheme, name, sortedNames(schemeNames))
}

// DescentMode selects when the running ciphertext is switched down to the
// next modulus of the chain.
type DescentMode int

const (
	// NoDescent never switches the modulus.
	NoDescent = DescentMode(iota)
	// DescentOnDepletionOnly switches after each multiplicative step, for the
	// BGV family only, and only while the ciphertext still has noise budget.
	DescentOnDepletionOnly
	// DescentEager switches once right after encryption and then after every
	// multiplicative step, regardless of the remaining budget and of the
	// scheme family.
	DescentEager
)

var descentNames = map[string]DescentMode{
	"none":      NoDescent,
	"depletion": DescentOnDepletionOnly,
	"eager":     DescentEager,
}

func (m DescentMode) String() string {
	switch m {
	case NoDescent:
		return "none"
	case DescentOnDepletionOnly:
		return "depletion"
	case DescentEager:
		return "eager"
	default:
		return fmt.Sprintf("DescentMode(%d)", int(m))
	}
}

// Valid reports whether m is a supported descent mode.
func (m DescentMode) Valid() bool {
	return m >= NoDescent && m <= DescentEager
}

// ParseDescentMode returns the DescentMode matching name (case insensitive).
func ParseDescentMode(name string) (DescentMode, error) {
	if m, ok := descentNames[strings.ToLower(name)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownDescentMode, name, sortedNames(descentNames))
}

// Strategy selects the multiplicative step applied at each depth.
type Strategy int

const (
	// Multiply multiplies the running ciphertext by a second, independently
	// encrypted, ciphertext of the same message.
	Multiply = Strategy(iota)
	// Square multiplies the running ciphertext by itself.
	Square
)

var strategyNames = map[string]Strategy{
	"multiply": Multiply,
	"square":   Square,
}

func (s Strategy) String() string {
	switch s {
	case Multiply:
		return "multiply"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Valid reports whether s is a supported strategy.
func (s Strategy) Valid() bool {
	return s == Multiply || s == Square
}

// ParseStrategy returns the Strategy matching name (case insensitive).
func ParseStrategy(name string) (Strategy, error) {
	if s, ok := strategyNames[strings.ToLower(name)]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownStrategy, name, sortedNames(strategyNames))
}

func sortedNames[V any](m map[string]V) string {
	names := maps.Keys(m)
	slices.Sort(names)
	return strings.Join(names, ", ")
}
