package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
	"github.com/tuneinsight/leveled-depth-estimator/stats"
)

func evaluation(t *testing.T, scheme depth.Scheme, chain []int) depth.Evaluation {
	ps, err := depth.NewParameterSet(16384, 20, chain, scheme)
	require.NoError(t, err)
	ev, err := depth.NewEvaluation(ps)
	require.NoError(t, err)
	return ev
}

func TestText(t *testing.T) {

	chain := []int{59, 59, 45, 59, 59, 24, 59, 60}

	testCases := []struct {
		name string
		r    depth.Report
		want string
	}{
		{
			name: "Usable",
			r: depth.Report{
				Evaluation: evaluation(t, depth.BFV, chain),
				Outcome:    depth.Outcome{Verdict: depth.Usable, Result: depth.CapabilityResult{MaxDepth: 10, NoiseBudgetBits: 1}},
			},
			want: "---BFV---\n( 16384, 20, {59, 59, 45, 59, 59, 24, 59, 60} )\t(logq = 424) maximum depth: 10, noise budget left: 1 bits\n",
		},
		{
			name: "NoPlaintextModulus",
			r: depth.Report{
				Evaluation: evaluation(t, depth.BGV, chain),
				Outcome: depth.Outcome{
					Verdict: depth.ConfigurationRejected,
					Result:  depth.Sentinel(),
					Reason:  depth.NewParamError(depth.ErrNoSuitablePlaintextModulus, "t=20"),
				},
			},
			want: "---BGV---\n( 16384, 20, {59, 59, 45, 59, 59, 24, 59, 60} )\t(logq = 424) Error: cannot find a plain_modulus for the bit size\tmaximum depth: -1, noise budget left: 0 bits\n",
		},
		{
			name: "InsufficientPrimes",
			r: depth.Report{
				Evaluation: evaluation(t, depth.BFV, []int{30}),
				Outcome: depth.Outcome{
					Verdict: depth.ConfigurationRejected,
					Result:  depth.Sentinel(),
					Reason:  depth.NewParamError(depth.ErrInsufficientPrimes, ""),
				},
			},
			want: "---BFV---\n( 16384, 20, {30} )\t(logq = 30) Error: cannot find enough primes for the bit sizes\tmaximum depth: -1, noise budget left: 0 bits\n",
		},
		{
			name: "Inconsistent",
			r: depth.Report{
				Evaluation: evaluation(t, depth.BFV, []int{30}),
				Outcome:    depth.Outcome{Verdict: depth.Unusable, Result: depth.Sentinel(), Diagnostic: "plain_modulus is not coprime"},
				Err:        errors.New("boom"),
			},
			want: "---BFV---\ninvalid input: plain_modulus is not coprime\n( 16384, 20, {30} )\t(logq = 30) Error: boom\tmaximum depth: -1, noise budget left: 0 bits\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewText(&buf, false).Write(tc.r))
			require.Equal(t, tc.want, buf.String())
		})
	}

	t.Run("Verbose", func(t *testing.T) {
		var buf bytes.Buffer
		txt := NewText(&buf, false)
		txt.Verbose = true
		r := depth.Report{
			Evaluation: evaluation(t, depth.BGV, chain),
			Outcome:    depth.Outcome{Verdict: depth.Usable, Result: depth.CapabilityResult{MaxDepth: 5, NoiseBudgetBits: 31}, Descents: 5, ChainExhausted: true},
		}
		require.NoError(t, txt.Write(r))
		require.Contains(t, buf.String(), "[BGV/depletion, multiply, descents: 5, chain exhausted]")
	})
}

func TestCSV(t *testing.T) {

	ev := evaluation(t, depth.BGV, []int{59, 59, 45})

	s := stats.NewDepthStats()
	s.Update(depth.Outcome{Verdict: depth.Usable, Result: depth.CapabilityResult{MaxDepth: 2, NoiseBudgetBits: 20}})
	require.NoError(t, s.Finalize())

	var buf bytes.Buffer
	w := NewCSV(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(ev, s))
	require.NoError(t, w.Flush())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, Header, rows[0])
	require.Len(t, rows[1], len(Header))
	require.Equal(t, []string{"BGV", "16384", "20", "59 59 45", "163", "depletion", "multiply"}, rows[1][:7])
	require.Equal(t, ev.Parameters.Fingerprint(), rows[1][7])
	require.Equal(t, s.ToCSV(), rows[1][8:])
}
