package depth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"
)

// DefaultDepthLimit bounds the number of multiplicative steps of a single
// estimation.
const DefaultDepthLimit = 1 << 12

// Evaluation is one estimation request.
type Evaluation struct {
	Parameters ParameterSet
	Policy     SchemePolicy
	Strategy   Strategy

	// Rand draws the plaintext residues. If nil, a fresh generator is created
	// for the evaluation. A generator must not be shared between concurrent
	// evaluations.
	Rand *rand.Rand
}

// NewEvaluation returns an Evaluation of ps using the default policy of its
// scheme and the Multiply strategy.
func NewEvaluation(ps ParameterSet) (Evaluation, error) {
	policy, err := DefaultPolicy(ps.Scheme())
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{Parameters: ps, Policy: policy, Strategy: Multiply}, nil
}

// Validate checks that the evaluation is well formed.
func (ev Evaluation) Validate() error {
	if ev.Parameters.IsZero() {
		return fmt.Errorf("%w: zero value", ErrInvalidParameterSet)
	}
	if err := ev.Policy.Validate(); err != nil {
		return err
	}
	if ev.Policy.Scheme != ev.Parameters.Scheme() {
		return fmt.Errorf("%w: policy scheme %s does not match parameter set scheme %s", ErrUnknownScheme, ev.Policy.Scheme, ev.Parameters.Scheme())
	}
	if !ev.Strategy.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, ev.Strategy)
	}
	return nil
}

// Option configures an Estimator.
type Option func(e *Estimator)

// WithLogger sets the logger of the estimator.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Estimator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDeterministicPlaintexts seeds the plaintext generator of evaluations
// without an explicit generator from the fingerprint of their parameter set.
func WithDeterministicPlaintexts() Option {
	return func(e *Estimator) {
		e.deterministic = true
	}
}

// WithDepthLimit sets the maximum number of multiplicative steps. An
// estimation reaching it returns an error.
func WithDepthLimit(limit int) Option {
	return func(e *Estimator) {
		if limit > 0 {
			e.depthLimit = limit
		}
	}
}

// Estimator measures the multiplicative depth supported by a parameter set
// by repeatedly multiplying a ciphertext until its noise budget is depleted.
//
// An Estimator holds no evaluation state and can be used concurrently.
type Estimator struct {
	backend       Backend
	logger        *slog.Logger
	deterministic bool
	depthLimit    int
}

// NewEstimator returns a new Estimator driving the given backend.
func NewEstimator(backend Backend, opts ...Option) *Estimator {
	e := &Estimator{
		backend:    backend,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		depthLimit: DefaultDepthLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capability estimates ps with the default policy of its scheme and the
// Multiply strategy, and returns the legacy numeric result.
func (e *Estimator) Capability(ps ParameterSet) (CapabilityResult, error) {
	ev, err := NewEvaluation(ps)
	if err != nil {
		return Sentinel(), err
	}
	out, err := e.Estimate(ev)
	if err != nil {
		return Sentinel(), err
	}
	return out.Legacy(), nil
}

// evaluationState is the running state of one call to Estimate.
type evaluationState struct {
	ct      Ciphertext
	operand Ciphertext
	budget  int
	depth   int
}

// Estimate runs the depth estimation of ev.
//
// A parameter set for which the backend cannot find primes yields a
// ConfigurationRejected outcome and a nil error. Any other backend failure is
// returned as an error.
func (e *Estimator) Estimate(ev Evaluation) (out Outcome, err error) {

	if err = ev.Validate(); err != nil {
		return Outcome{Verdict: ConfigurationRejected, Result: Sentinel()}, fmt.Errorf("cannot Estimate: %w", err)
	}

	ps := ev.Parameters
	logger := e.logger.With("parameters", ps.String(), "policy", ev.Policy.String(), "strategy", ev.Strategy.String())

	params, err := e.backend.Build(ps)
	if err != nil {
		var perr *ParamError
		if errors.As(err, &perr) {
			logger.Info("configuration rejected", "reason", perr.Error())
			return rejected(perr), nil
		}
		return Outcome{Verdict: ConfigurationRejected, Result: Sentinel()}, fmt.Errorf("cannot Estimate: %w", err)
	}

	ctx, err := e.backend.NewContext(params)
	if err != nil {
		return Outcome{Verdict: ConfigurationRejected, Result: Sentinel()}, fmt.Errorf("cannot Estimate: %w", err)
	}
	defer ctx.Release()

	out = Outcome{Verdict: Unusable, Result: Sentinel()}

	if !ctx.Consistent() {
		out.Diagnostic = ctx.Diagnostic()
		logger.Warn("invalid input", "diagnostic", out.Diagnostic)
	}

	L := ps.ChainLength()
	relin := ev.Policy.CanRelinearize(L)

	if err = ctx.GenerateKeys(relin); err != nil {
		return out, fmt.Errorf("cannot Estimate: %w", err)
	}

	rng := ev.Rand
	if rng == nil {
		rng = e.newRand(ps)
	}

	st := &evaluationState{depth: -1}

	if st.ct, st.operand, err = e.encryptOperands(ctx, ev.Strategy, rng); err != nil {
		return out, fmt.Errorf("cannot Estimate: %w", err)
	}

	if ev.Policy.DescendAfterEncryption() {
		if err = e.descend(ctx, st, &out); err != nil {
			return out, fmt.Errorf("cannot Estimate: %w", err)
		}
	}

	if st.budget, err = ctx.NoiseBudget(st.ct); err != nil {
		return out, fmt.Errorf("cannot Estimate: %w", err)
	}

	logger.Debug("fresh ciphertext", "budget", st.budget, "level", ctx.Level(st.ct))

	// Without relinearization no multiplication is possible: a decryptable
	// fresh ciphertext is reported as depth 1.
	if L == 1 {
		out.Result.NoiseBudgetBits = max(st.budget, 0)
		if st.budget > 0 {
			out.Verdict = Usable
			out.Result.MaxDepth = 1
			out.Trace = append(out.Trace, Step{Depth: 1, Budget: st.budget, Level: ctx.Level(st.ct)})
		}
		return out, nil
	}

	for st.budget > 0 {

		if st.depth+1 >= e.depthLimit {
			return out, fmt.Errorf("cannot Estimate: depth limit %d reached with %d bits of budget left", e.depthLimit, st.budget)
		}

		st.depth++
		out.Verdict = Usable
		out.Result = CapabilityResult{MaxDepth: st.depth, NoiseBudgetBits: st.budget}
		out.Trace = append(out.Trace, Step{Depth: st.depth, Budget: st.budget, Level: ctx.Level(st.ct)})

		if err = e.step(ctx, ev.Strategy, st); err != nil {
			return out, fmt.Errorf("cannot Estimate: %w", err)
		}

		if st.budget, err = ctx.NoiseBudget(st.ct); err != nil {
			return out, fmt.Errorf("cannot Estimate: %w", err)
		}

		if ev.Policy.DescendAfterStep(st.budget) {
			if err = e.descend(ctx, st, &out); err != nil {
				return out, fmt.Errorf("cannot Estimate: %w", err)
			}
		}

		if st.budget, err = ctx.NoiseBudget(st.ct); err != nil {
			return out, fmt.Errorf("cannot Estimate: %w", err)
		}

		logger.Debug("step", "depth", st.depth+1, "budget", st.budget, "level", ctx.Level(st.ct))
	}

	return out, nil
}

func (e *Estimator) newRand(ps ParameterSet) *rand.Rand {
	if e.deterministic {
		return rand.New(rand.NewSource(ps.Seed()))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// encryptOperands encodes SlotCount uniform residues and encrypts them. The
// second ciphertext is only produced for the Multiply strategy.
func (e *Estimator) encryptOperands(ctx Context, strategy Strategy, rng *rand.Rand) (ct, operand Ciphertext, err error) {

	t := ctx.PlaintextModulus()
	if t == 0 {
		return nil, nil, fmt.Errorf("invalid plaintext modulus 0")
	}

	values := make([]uint64, ctx.SlotCount())
	for i := range values {
		values[i] = rng.Uint64() % t
	}

	pt, err := ctx.Encode(values)
	if err != nil {
		return nil, nil, err
	}

	if ct, err = ctx.Encrypt(pt); err != nil {
		return nil, nil, err
	}

	if strategy == Multiply {
		if operand, err = ctx.Encrypt(pt); err != nil {
			return nil, nil, err
		}
	}

	return
}

// step applies one multiplicative step followed by a relinearization.
func (e *Estimator) step(ctx Context, strategy Strategy, st *evaluationState) (err error) {

	var prod Ciphertext
	switch strategy {
	case Multiply:
		prod, err = ctx.Multiply(st.ct, st.operand)
	case Square:
		prod, err = ctx.Square(st.ct)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}

	if err != nil {
		return
	}

	if st.ct, err = ctx.Relinearize(prod); err != nil {
		return
	}

	return
}

// descend switches the running ciphertext to the next modulus. At the last
// level the switch is skipped and the outcome is flagged.
func (e *Estimator) descend(ctx Context, st *evaluationState, out *Outcome) (err error) {

	ct, err := ctx.ModSwitchToNext(st.ct)

	if errors.Is(err, ErrEndOfChain) {
		if !out.ChainExhausted {
			e.logger.Debug("modulus chain exhausted", "level", ctx.Level(st.ct))
		}
		out.ChainExhausted = true
		return nil
	}

	if err != nil {
		return
	}

	st.ct = ct
	out.Descents++
	return
}
