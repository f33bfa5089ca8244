package estimator

import (
	"fmt"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
	"github.com/tuneinsight/leveled-depth-estimator/modulus"
)

// Parameters are the primes selected for a depth.ParameterSet.
type Parameters struct {
	modulus.Selection
	ps depth.ParameterSet
}

// ParameterSet returns the parameter set the primes were selected for.
func (p *Parameters) ParameterSet() depth.ParameterSet {
	return p.ps
}

// Backend is the analytic implementation of depth.Backend.
type Backend struct{}

// NewBackend returns a new Backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Build selects the primes of ps.
func (b *Backend) Build(ps depth.ParameterSet) (depth.Parameters, error) {
	s, err := modulus.Select(ps.RingDegree(), ps.PlaintextBits(), ps.CoeffBits())
	if err != nil {
		return nil, err
	}
	return &Parameters{Selection: s, ps: ps}, nil
}

// NewContext returns a simulated scheme instance for params, which must have
// been returned by Build.
func (b *Backend) NewContext(params depth.Parameters) (depth.Context, error) {

	p, ok := params.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("cannot NewContext: invalid parameters type %T", params)
	}

	c := &Context{params: p, diagnostic: p.Diagnose()}

	if c.diagnostic == "" {
		c.est = NewEstimator(p.N, p.T, p.Q(), p.P(), p.ps.Scheme() == depth.BFV)
	}

	return c, nil
}

// Context simulates one estimation. Plaintext contents are ignored.
type Context struct {
	params     *Parameters
	est        *Estimator
	diagnostic string
	keys       bool
	relin      bool
}

// Estimator returns the noise model of the context, nil if the parameters
// are inconsistent.
func (c *Context) Estimator() *Estimator {
	return c.est
}

func (c *Context) Consistent() bool {
	return c.diagnostic == ""
}

func (c *Context) Diagnostic() string {
	return c.diagnostic
}

func (c *Context) GenerateKeys(relin bool) error {
	if !c.Consistent() {
		return fmt.Errorf("cannot GenerateKeys: %w: %s", depth.ErrInconsistentParameters, c.diagnostic)
	}
	if c.est == nil {
		return fmt.Errorf("cannot GenerateKeys: context has been released")
	}
	if relin && c.est.LevelP < 0 {
		return fmt.Errorf("cannot GenerateKeys: relinearization requires a key-switching prime")
	}
	c.keys = true
	c.relin = relin
	return nil
}

func (c *Context) SlotCount() int {
	return c.params.N
}

func (c *Context) PlaintextModulus() uint64 {
	return c.params.T
}

func (c *Context) Encode(values []uint64) (depth.Plaintext, error) {
	if len(values) > c.SlotCount() {
		return nil, fmt.Errorf("cannot Encode: %d values exceed %d slots", len(values), c.SlotCount())
	}
	return values, nil
}

func (c *Context) Encrypt(pt depth.Plaintext) (depth.Ciphertext, error) {
	if !c.keys || c.est == nil {
		return nil, fmt.Errorf("cannot Encrypt: keys have not been generated")
	}
	el := c.est.Encrypt(c.est.MaxLevel())
	return &el, nil
}

func (c *Context) Multiply(a, b depth.Ciphertext) (depth.Ciphertext, error) {
	if c.est == nil {
		return nil, fmt.Errorf("cannot Multiply: context has been released")
	}
	el0, err := element("Multiply", a)
	if err != nil {
		return nil, err
	}
	el1, err := element("Multiply", b)
	if err != nil {
		return nil, err
	}
	if el0.Degree != 1 || el1.Degree != 1 {
		return nil, fmt.Errorf("cannot Multiply: input degrees must be 1")
	}
	el2 := c.est.Mul(*el0, *el1)
	return &el2, nil
}

func (c *Context) Square(a depth.Ciphertext) (depth.Ciphertext, error) {
	return c.Multiply(a, a)
}

func (c *Context) Relinearize(ct depth.Ciphertext) (depth.Ciphertext, error) {
	if !c.relin || c.est == nil {
		return nil, fmt.Errorf("cannot Relinearize: relinearization key is missing")
	}
	el0, err := element("Relinearize", ct)
	if err != nil {
		return nil, err
	}
	if el0.Degree != 2 {
		return nil, fmt.Errorf("cannot Relinearize: input degree must be 2")
	}
	el1 := c.est.Relinearize(*el0)
	return &el1, nil
}

func (c *Context) ModSwitchToNext(ct depth.Ciphertext) (depth.Ciphertext, error) {
	if c.est == nil {
		return nil, fmt.Errorf("cannot ModSwitchToNext: context has been released")
	}
	el0, err := element("ModSwitchToNext", ct)
	if err != nil {
		return nil, err
	}
	if el0.Level == 0 {
		return nil, fmt.Errorf("cannot ModSwitchToNext: %w", depth.ErrEndOfChain)
	}
	el1 := c.est.Rescale(*el0)
	return &el1, nil
}

func (c *Context) NoiseBudget(ct depth.Ciphertext) (int, error) {
	if c.est == nil {
		return 0, fmt.Errorf("cannot NoiseBudget: context has been released")
	}
	el, err := element("NoiseBudget", ct)
	if err != nil {
		return 0, err
	}
	return c.est.Budget(*el), nil
}

func (c *Context) Level(ct depth.Ciphertext) int {
	if el, ok := ct.(*Element); ok {
		return el.Level
	}
	return -1
}

func (c *Context) Release() {
	c.est = nil
	c.keys = false
	c.relin = false
}

func element(op string, ct depth.Ciphertext) (*Element, error) {
	el, ok := ct.(*Element)
	if !ok {
		return nil, fmt.Errorf("cannot %s: invalid ciphertext type %T", op, ct)
	}
	return el, nil
}
