package depth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemePolicy(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		for _, s := range []Scheme{BFV, BGV} {
			p, err := DefaultPolicy(s)
			require.NoError(t, err)
			require.Equal(t, DescentOnDepletionOnly, p.Descent)
		}
		_, err := DefaultPolicy(Scheme(9))
		require.ErrorIs(t, err, ErrUnknownScheme)
	})

	t.Run("Validate", func(t *testing.T) {
		_, err := NewSchemePolicy(BGV, DescentMode(5))
		require.ErrorIs(t, err, ErrUnknownDescentMode)
		_, err = NewSchemePolicy(Scheme(5), NoDescent)
		require.ErrorIs(t, err, ErrUnknownScheme)
		require.Len(t, Policies(), 6)
		for _, p := range Policies() {
			require.NoError(t, p.Validate())
		}
	})

	t.Run("Descent", func(t *testing.T) {
		testCases := []struct {
			policy    SchemePolicy
			pre       bool
			positive  bool
			depleted  bool
			active    bool
			rendering string
		}{
			{SchemePolicy{BFV, NoDescent}, false, false, false, false, "BFV/none"},
			{SchemePolicy{BGV, NoDescent}, false, false, false, false, "BGV/none"},
			{SchemePolicy{BFV, DescentOnDepletionOnly}, false, false, false, false, "BFV/depletion"},
			{SchemePolicy{BGV, DescentOnDepletionOnly}, false, true, false, true, "BGV/depletion"},
			{SchemePolicy{BFV, DescentEager}, true, true, true, true, "BFV/eager"},
			{SchemePolicy{BGV, DescentEager}, true, true, true, true, "BGV/eager"},
		}
		for _, tc := range testCases {
			t.Run(tc.rendering, func(t *testing.T) {
				require.Equal(t, tc.pre, tc.policy.DescendAfterEncryption())
				require.Equal(t, tc.positive, tc.policy.DescendAfterStep(12))
				require.Equal(t, tc.depleted, tc.policy.DescendAfterStep(0))
				require.Equal(t, tc.active, tc.policy.Active())
				require.Equal(t, tc.rendering, tc.policy.String())
			})
		}
	})

	t.Run("CanRelinearize", func(t *testing.T) {
		p := SchemePolicy{BFV, NoDescent}
		require.False(t, p.CanRelinearize(1))
		require.True(t, p.CanRelinearize(2))
	})
}
