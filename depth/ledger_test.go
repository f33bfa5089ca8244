package depth

import (
	"fmt"
	"sync"
)

// ledgerBackend is a scripted Backend whose noise budget is an integer
// ledger: a fresh ciphertext starts with a fixed budget, each multiplicative
// step costs mulCost bits and each modulus switch costs switchCost bits.
type ledgerBackend struct {
	fresh      func(ps ParameterSet) int
	mulCost    int
	switchCost int

	reject       *ParamError
	buildErr     error
	inconsistent string
	keyErr       error
	mulErr       error

	mu       sync.Mutex
	created  int
	released int
	relin    []bool
	encoded  [][]uint64
}

func newLedger(fresh, mulCost, switchCost int) *ledgerBackend {
	return &ledgerBackend{
		fresh:      func(ParameterSet) int { return fresh },
		mulCost:    mulCost,
		switchCost: switchCost,
	}
}

type ledgerParams struct {
	ps ParameterSet
}

func (p ledgerParams) ParameterSet() ParameterSet {
	return p.ps
}

type ledgerCiphertext struct {
	budget int
	level  int
	degree int
}

func (b *ledgerBackend) Build(ps ParameterSet) (Parameters, error) {
	if b.reject != nil {
		return nil, b.reject
	}
	if b.buildErr != nil {
		return nil, b.buildErr
	}
	return ledgerParams{ps: ps}, nil
}

func (b *ledgerBackend) NewContext(params Parameters) (Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created++
	return &ledgerContext{backend: b, ps: params.ParameterSet()}, nil
}

func (b *ledgerBackend) counts() (created, released int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created, b.released
}

type ledgerContext struct {
	backend *ledgerBackend
	ps      ParameterSet
	keys    bool
}

func (c *ledgerContext) Consistent() bool {
	return c.backend.inconsistent == ""
}

func (c *ledgerContext) Diagnostic() string {
	return c.backend.inconsistent
}

func (c *ledgerContext) GenerateKeys(relin bool) error {
	c.backend.mu.Lock()
	c.backend.relin = append(c.backend.relin, relin)
	c.backend.mu.Unlock()
	if c.backend.keyErr != nil {
		return c.backend.keyErr
	}
	c.keys = true
	return nil
}

func (c *ledgerContext) SlotCount() int {
	return 8
}

func (c *ledgerContext) PlaintextModulus() uint64 {
	return 65537
}

func (c *ledgerContext) Encode(values []uint64) (Plaintext, error) {
	c.backend.mu.Lock()
	c.backend.encoded = append(c.backend.encoded, append([]uint64(nil), values...))
	c.backend.mu.Unlock()
	return values, nil
}

func (c *ledgerContext) Encrypt(pt Plaintext) (Ciphertext, error) {
	if !c.keys {
		return nil, fmt.Errorf("no public key")
	}
	level := 0
	if L := c.ps.ChainLength(); L > 1 {
		level = L - 2
	}
	return &ledgerCiphertext{budget: c.backend.fresh(c.ps), level: level, degree: 1}, nil
}

func (c *ledgerContext) Multiply(a, b Ciphertext) (Ciphertext, error) {
	if c.backend.mulErr != nil {
		return nil, c.backend.mulErr
	}
	x, y := a.(*ledgerCiphertext), b.(*ledgerCiphertext)
	return &ledgerCiphertext{
		budget: min(x.budget, y.budget) - c.backend.mulCost,
		level:  min(x.level, y.level),
		degree: 2,
	}, nil
}

func (c *ledgerContext) Square(a Ciphertext) (Ciphertext, error) {
	return c.Multiply(a, a)
}

func (c *ledgerContext) Relinearize(ct Ciphertext) (Ciphertext, error) {
	x := *ct.(*ledgerCiphertext)
	if x.degree != 2 {
		return nil, fmt.Errorf("cannot relinearize a ciphertext of degree %d", x.degree)
	}
	x.degree = 1
	return &x, nil
}

func (c *ledgerContext) ModSwitchToNext(ct Ciphertext) (Ciphertext, error) {
	x := *ct.(*ledgerCiphertext)
	if x.level == 0 {
		return nil, fmt.Errorf("cannot ModSwitchToNext: %w", ErrEndOfChain)
	}
	x.level--
	x.budget -= c.backend.switchCost
	return &x, nil
}

func (c *ledgerContext) NoiseBudget(ct Ciphertext) (int, error) {
	return max(ct.(*ledgerCiphertext).budget, 0), nil
}

func (c *ledgerContext) Level(ct Ciphertext) int {
	return ct.(*ledgerCiphertext).level
}

func (c *ledgerContext) Release() {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	c.backend.released++
}
