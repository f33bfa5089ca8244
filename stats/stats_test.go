package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

func usable(d, b int) depth.Outcome {
	return depth.Outcome{Verdict: depth.Usable, Result: depth.CapabilityResult{MaxDepth: d, NoiseBudgetBits: b}}
}

func TestDepthStats(t *testing.T) {

	t.Run("Usable", func(t *testing.T) {
		s := NewDepthStats()
		s.Update(usable(5, 30))
		s.Update(usable(5, 32))
		s.Update(usable(6, 1))
		s.Update(depth.Outcome{Verdict: depth.ConfigurationRejected, Result: depth.Sentinel()})

		require.NoError(t, s.Finalize())
		require.Equal(t, 3, s.Runs)
		require.Equal(t, 3, s.Usable)
		require.Equal(t, 5, s.MinDepth)
		require.Equal(t, 6, s.MaxDepth)
		require.Equal(t, 5, s.ModeDepth)
		require.InDelta(t, 21.0, s.MeanBudget, 1e-9)
		require.InDelta(t, 30.0, s.MedianBudget, 1e-9)
		require.Greater(t, s.StdBudget, 0.0)
		require.False(t, s.Stable())
		require.Equal(t, depth.CapabilityResult{MaxDepth: 5, NoiseBudgetBits: 30}, s.Result())
		require.Len(t, s.ToCSV(), len(Header))
	})

	t.Run("Single", func(t *testing.T) {
		s := NewDepthStats()
		s.Update(usable(4, 12))
		require.NoError(t, s.Finalize())
		require.True(t, s.Stable())
		require.Equal(t, 4, s.ModeDepth)
		require.Zero(t, s.StdBudget)
		require.Equal(t, []string{"1", "1", "4", "4", "4", "12.00000", "12.00000", "0.00000"}, s.ToCSV())
	})

	t.Run("Unusable", func(t *testing.T) {
		s := NewDepthStats()
		s.Update(depth.Outcome{Verdict: depth.Unusable, Result: depth.Sentinel()})
		s.Update(depth.Outcome{Verdict: depth.Unusable, Result: depth.Sentinel()})
		require.NoError(t, s.Finalize())
		require.Equal(t, 2, s.Runs)
		require.Zero(t, s.Usable)
		require.Equal(t, -1, s.MinDepth)
		require.True(t, s.Stable())
		require.Zero(t, s.MeanBudget)
		require.Equal(t, depth.Sentinel(), s.Result())
	})

	t.Run("TiedModes", func(t *testing.T) {
		s := NewDepthStats()
		for _, d := range []int{6, 4, 2, 6, 4} {
			s.Update(usable(d, 10))
		}
		require.NoError(t, s.Finalize())
		require.Equal(t, 2, s.MinDepth)
		require.Equal(t, 4, s.ModeDepth)
	})

	t.Run("Empty", func(t *testing.T) {
		s := NewDepthStats()
		require.Error(t, s.Finalize())
		require.False(t, s.Stable())
	})
}
