package operations

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/schemes/bgv"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

// ModSwitchToNext divides the ciphertext by the last prime of its modulus
// and rounds. The scale-invariant evaluator ignores rescaling, so the
// switch always goes through the standard evaluator.
func (c *Context) ModSwitchToNext(ct depth.Ciphertext) (depth.Ciphertext, error) {

	if c.rescaler == nil {
		return nil, fmt.Errorf("cannot ModSwitchToNext: keys have not been generated")
	}

	op0, err := ciphertext("ModSwitchToNext", ct)
	if err != nil {
		return nil, err
	}

	if op0.Level() == 0 {
		return nil, fmt.Errorf("cannot ModSwitchToNext: %w", depth.ErrEndOfChain)
	}

	opOut := bgv.NewCiphertext(c.bgvParams, op0.Degree(), op0.Level()-1)

	if err = c.rescaler.Rescale(op0, opOut); err != nil {
		return nil, fmt.Errorf("cannot ModSwitchToNext: %w", err)
	}

	return opOut, nil
}
