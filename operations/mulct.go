package operations

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

// Multiply returns the degree-2 product of a and b, at the smallest of
// their levels.
func (c *Context) Multiply(a, b depth.Ciphertext) (depth.Ciphertext, error) {

	if c.eval == nil {
		return nil, fmt.Errorf("cannot Multiply: keys have not been generated")
	}

	op0, err := ciphertext("Multiply", a)
	if err != nil {
		return nil, err
	}

	op1, err := ciphertext("Multiply", b)
	if err != nil {
		return nil, err
	}

	var opOut *rlwe.Ciphertext
	if opOut, err = c.eval.MulNew(op0, op1); err != nil {
		return nil, fmt.Errorf("cannot Multiply: %w", err)
	}

	return opOut, nil
}

// Square returns the degree-2 square of a.
func (c *Context) Square(a depth.Ciphertext) (depth.Ciphertext, error) {

	if c.eval == nil {
		return nil, fmt.Errorf("cannot Square: keys have not been generated")
	}

	op0, err := ciphertext("Square", a)
	if err != nil {
		return nil, err
	}

	var opOut *rlwe.Ciphertext
	if opOut, err = c.eval.MulNew(op0, op0); err != nil {
		return nil, fmt.Errorf("cannot Square: %w", err)
	}

	return opOut, nil
}

// Relinearize returns a degree-1 ciphertext decrypting to the same message.
// It requires the relinearization key.
func (c *Context) Relinearize(ct depth.Ciphertext) (depth.Ciphertext, error) {

	if c.eval == nil {
		return nil, fmt.Errorf("cannot Relinearize: keys have not been generated")
	}

	op0, err := ciphertext("Relinearize", ct)
	if err != nil {
		return nil, err
	}

	var opOut *rlwe.Ciphertext
	if opOut, err = c.eval.RelinearizeNew(op0); err != nil {
		return nil, fmt.Errorf("cannot Relinearize: %w", err)
	}

	return opOut, nil
}
