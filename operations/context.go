// Package operations implements the depth.Backend over the lattigo v6 BGV
// scheme, used both with standard tensoring (BGV) and with scale-invariant
// tensoring (BFV).
package operations

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

// Context is the lattigo instance of one estimation. It implements
// depth.Context.
type Context struct {
	params *Parameters

	bgvParams bgv.Parameters

	kgen *rlwe.KeyGenerator
	enc  *rlwe.Encryptor
	dec  *rlwe.Decryptor
	ecd  *bgv.Encoder

	// eval performs the tensoring, scale-invariant for BFV.
	eval *bgv.Evaluator

	// rescaler switches the modulus for both schemes.
	rescaler *bgv.Evaluator

	sk *rlwe.SecretKey
	pk *rlwe.PublicKey

	diagnostic string

	// buffers of the noise budget
	pt     *rlwe.Plaintext
	coeffs []*big.Int
}

// NewContext checks the consistency of the parameters and instantiates the
// scheme if they are consistent. An inconsistent Context is returned
// without error: its key generation fails.
func NewContext(p *Parameters) (c *Context, err error) {

	c = &Context{params: p}

	if c.diagnostic = p.Diagnose(); c.diagnostic != "" {
		return c, nil
	}

	if c.bgvParams, err = bgv.NewParametersFromLiteral(p.literal()); err != nil {
		return nil, fmt.Errorf("cannot NewContext: %w", err)
	}

	c.ecd = bgv.NewEncoder(c.bgvParams)
	c.kgen = rlwe.NewKeyGenerator(c.bgvParams)

	return
}

// Parameters returns the parameters of the context.
func (c *Context) Parameters() *Parameters {
	return c.params
}

// Consistent reports whether the parameters are internally consistent.
func (c *Context) Consistent() bool {
	return c.diagnostic == ""
}

// Diagnostic explains why the parameters are inconsistent.
func (c *Context) Diagnostic() string {
	return c.diagnostic
}

// GenerateKeys generates a new key pair, and a relinearization key if relin
// is true, and instantiates the encryptor, decryptor and evaluators.
func (c *Context) GenerateKeys(relin bool) (err error) {

	if !c.Consistent() {
		return fmt.Errorf("cannot GenerateKeys: %w: %s", depth.ErrInconsistentParameters, c.diagnostic)
	}

	if c.kgen == nil {
		return fmt.Errorf("cannot GenerateKeys: context has been released")
	}

	c.sk, c.pk = c.kgen.GenKeyPairNew()
	c.enc = rlwe.NewEncryptor(c.bgvParams, c.pk)
	c.dec = rlwe.NewDecryptor(c.bgvParams, c.sk)

	var evk rlwe.EvaluationKeySet
	if relin {
		evk = rlwe.NewMemEvaluationKeySet(c.kgen.GenRelinearizationKeyNew(c.sk))
	}

	c.eval = bgv.NewEvaluator(c.bgvParams, evk, c.params.Scheme() == depth.BFV)
	c.rescaler = bgv.NewEvaluator(c.bgvParams, nil)

	return
}

// SlotCount returns the number of plaintext slots.
func (c *Context) SlotCount() int {
	if c.ecd == nil {
		return 0
	}
	return c.bgvParams.MaxSlots()
}

// PlaintextModulus returns the plaintext modulus.
func (c *Context) PlaintextModulus() uint64 {
	return c.params.T
}

// Encode batch-encodes values on a plaintext at the maximum level.
func (c *Context) Encode(values []uint64) (depth.Plaintext, error) {

	if c.ecd == nil {
		return nil, fmt.Errorf("cannot Encode: no encoder")
	}

	pt := bgv.NewPlaintext(c.bgvParams, c.bgvParams.MaxLevel())
	if err := c.ecd.Encode(values, pt); err != nil {
		return nil, fmt.Errorf("cannot Encode: %w", err)
	}

	return pt, nil
}

// Encrypt encrypts the plaintext under the public key.
func (c *Context) Encrypt(pt depth.Plaintext) (depth.Ciphertext, error) {

	if c.enc == nil {
		return nil, fmt.Errorf("cannot Encrypt: keys have not been generated")
	}

	p, ok := pt.(*rlwe.Plaintext)
	if !ok {
		return nil, fmt.Errorf("cannot Encrypt: invalid plaintext type %T", pt)
	}

	ct, err := c.enc.EncryptNew(p)
	if err != nil {
		return nil, fmt.Errorf("cannot Encrypt: %w", err)
	}

	return ct, nil
}

// Level returns the level of the ciphertext, or -1 if it is not a lattigo
// ciphertext.
func (c *Context) Level(ct depth.Ciphertext) int {
	if x, ok := ct.(*rlwe.Ciphertext); ok {
		return x.Level()
	}
	return -1
}

// Release drops the keys, the evaluators and the buffers.
func (c *Context) Release() {
	c.kgen = nil
	c.enc = nil
	c.dec = nil
	c.ecd = nil
	c.eval = nil
	c.rescaler = nil
	c.sk = nil
	c.pk = nil
	c.pt = nil
	c.coeffs = nil
}

func ciphertext(op string, ct depth.Ciphertext) (*rlwe.Ciphertext, error) {
	x, ok := ct.(*rlwe.Ciphertext)
	if !ok {
		return nil, fmt.Errorf("cannot %s: invalid ciphertext type %T", op, ct)
	}
	return x, nil
}
