package operations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

func TestEstimate(t *testing.T) {

	est := depth.NewEstimator(NewBackend(), depth.WithDeterministicPlaintexts())

	t.Run("SingleModulus", func(t *testing.T) {
		for _, tc := range []struct {
			tBits int
			chain []int
			want  int
		}{
			{17, []int{50}, 1},
			{20, []int{24}, -1},
		} {
			for _, scheme := range []depth.Scheme{depth.BFV, depth.BGV} {
				ps := newParameterSet(t, 1024, tc.tBits, tc.chain, scheme)
				t.Run(fmt.Sprintf("%s/%s", scheme, ps), func(t *testing.T) {
					res, err := est.Capability(ps)
					require.NoError(t, err)
					require.Equal(t, tc.want, res.MaxDepth)
					if tc.want < 0 {
						require.Equal(t, depth.Sentinel(), res)
					}
				})
			}
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		ps := newParameterSet(t, 1024, 17, []int{14, 14}, depth.BFV)
		ev, err := depth.NewEvaluation(ps)
		require.NoError(t, err)
		out, err := est.Estimate(ev)
		require.NoError(t, err)
		require.Equal(t, depth.ConfigurationRejected, out.Verdict)
		require.ErrorIs(t, out.Reason, depth.ErrInsufficientPrimes)
		require.Equal(t, depth.Sentinel(), out.Legacy())
	})

	t.Run("Inconsistent", func(t *testing.T) {
		ps := newParameterSet(t, 1024, 14, []int{14, 30}, depth.BFV)
		ev, err := depth.NewEvaluation(ps)
		require.NoError(t, err)
		out, err := est.Estimate(ev)
		require.ErrorIs(t, err, depth.ErrInconsistentParameters)
		require.NotEmpty(t, out.Diagnostic)
	})

	for _, policy := range depth.Policies() {
		for _, strategy := range []depth.Strategy{depth.Multiply, depth.Square} {
			t.Run(fmt.Sprintf("%s/%s", policy, strategy), func(t *testing.T) {

				ps := newParameterSet(t, 4096, 17, []int{60, 60, 60, 60}, policy.Scheme)
				out, err := est.Estimate(depth.Evaluation{Parameters: ps, Policy: policy, Strategy: strategy})
				require.NoError(t, err)
				require.Equal(t, depth.Usable, out.Verdict)
				require.GreaterOrEqual(t, out.Result.MaxDepth, 1)
				require.Greater(t, out.Result.NoiseBudgetBits, 0)

				if policy.Descent != depth.DescentEager {
					for i := 1; i < len(out.Trace); i++ {
						assert.Greater(t, out.Trace[i-1].Budget, out.Trace[i].Budget)
					}
				}

				if !policy.Active() {
					require.Zero(t, out.Descents)
				}
			})
		}
	}
}

// budgetTolerance bounds the deviation of the final noise budget from the
// recorded value: the keys and the encryption randomness are not seeded, so
// the last reading moves by a few bits between runs while the depth does not.
const budgetTolerance = 4

func TestEstimateDemonstrationSets(t *testing.T) {

	if testing.Short() {
		t.Skip("skipping demonstration sets in short mode")
	}

	chainA := []int{59, 59, 45, 59, 59, 24, 59, 60}
	chainB := []int{53, 53, 53, 53, 53, 53, 53, 53}
	chainC := []int{60, 30, 30, 52, 50, 56, 60, 60, 60, 60, 60, 60, 60, 60, 60}

	est := depth.NewEstimator(NewBackend(), depth.WithDeterministicPlaintexts())

	testCases := []struct {
		name      string
		N         int
		chain     []int
		scheme    depth.Scheme
		mode      depth.DescentMode
		strategy  depth.Strategy
		want      depth.CapabilityResult
		exhausted bool
	}{
		{"BFV/multiply/depletion", 16384, chainA, depth.BFV, depth.DescentOnDepletionOnly, depth.Multiply, depth.CapabilityResult{MaxDepth: 10, NoiseBudgetBits: 1}, false},
		{"BGV/multiply/depletion", 16384, chainA, depth.BGV, depth.DescentOnDepletionOnly, depth.Multiply, depth.CapabilityResult{MaxDepth: 6, NoiseBudgetBits: 31}, false},
		{"BFV/square/none", 16384, chainB, depth.BFV, depth.NoDescent, depth.Square, depth.CapabilityResult{MaxDepth: 10, NoiseBudgetBits: 8}, false},
		{"BGV/square/eager", 32768, chainC, depth.BGV, depth.DescentEager, depth.Square, depth.CapabilityResult{MaxDepth: 12, NoiseBudgetBits: 20}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {

			policy, err := depth.NewSchemePolicy(tc.scheme, tc.mode)
			require.NoError(t, err)

			ev := depth.Evaluation{
				Parameters: newParameterSet(t, tc.N, 20, tc.chain, tc.scheme),
				Policy:     policy,
				Strategy:   tc.strategy,
			}

			out, err := est.Estimate(ev)
			require.NoError(t, err)
			require.Equal(t, depth.Usable, out.Verdict)
			require.Equal(t, tc.want.MaxDepth, out.Result.MaxDepth)
			require.InDelta(t, tc.want.NoiseBudgetBits, out.Result.NoiseBudgetBits, budgetTolerance)
			require.Greater(t, out.Result.NoiseBudgetBits, 0)
			require.Equal(t, tc.exhausted, out.ChainExhausted)

			if !policy.Active() {
				require.Zero(t, out.Descents)
			}
		})
	}
}
