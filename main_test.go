package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

func TestDefaultConfig(t *testing.T) {
	evals, err := DefaultConfig().Evaluations()
	require.NoError(t, err)
	require.Len(t, evals, 12)

	for i, ev := range evals {
		want := depth.BFV
		if i >= 6 {
			want = depth.BGV
		}
		require.Equal(t, want, ev.Parameters.Scheme())
		require.Equal(t, 20, ev.Parameters.PlaintextBits())
		require.Equal(t, depth.DescentOnDepletionOnly, ev.Policy.Descent)
		require.Equal(t, depth.Multiply, ev.Strategy)
	}

	require.Equal(t, 424, evals[0].Parameters.LogQ())
	require.Equal(t, 880, evals[11].Parameters.LogQ())
}

func TestLoadConfig(t *testing.T) {

	t.Run("Valid", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(`
strategy: square
sets:
  - scheme: bgv
    n: 4096
    t: 17
    chain: [40, 40, 40]
    descent: eager
  - scheme: BFV
    n: 8192
    t: 20
    chain: [50, 50]
    strategy: multiply
`))
		require.NoError(t, err)

		evals, err := cfg.Evaluations()
		require.NoError(t, err)
		require.Len(t, evals, 2)

		require.Equal(t, depth.BGV, evals[0].Parameters.Scheme())
		require.Equal(t, depth.DescentEager, evals[0].Policy.Descent)
		require.Equal(t, depth.Square, evals[0].Strategy)
		require.Equal(t, []int{40, 40, 40}, evals[0].Parameters.CoeffBits())

		require.Equal(t, depth.BFV, evals[1].Parameters.Scheme())
		require.Equal(t, depth.DescentOnDepletionOnly, evals[1].Policy.Descent)
		require.Equal(t, depth.Multiply, evals[1].Strategy)
	})

	for name, doc := range map[string]string{
		"UnknownField": "sets:\n  - scheme: bfv\n    n: 4096\n    t: 17\n    chain: [40]\n    depth: 3\n",
		"Empty":        "sets: []\n",
		"Malformed":    "sets: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(doc))
			require.Error(t, err)
		})
	}

	for name, set := range map[string]SetConfig{
		"Scheme":   {Scheme: "ckks", N: 4096, T: 17, Chain: []int{40}},
		"N":        {Scheme: "bfv", N: 4000, T: 17, Chain: []int{40}},
		"Chain":    {Scheme: "bfv", N: 4096, T: 17},
		"Descent":  {Scheme: "bfv", N: 4096, T: 17, Chain: []int{40}, Descent: "lazy"},
		"Strategy": {Scheme: "bfv", N: 4096, T: 17, Chain: []int{40}, Strategy: "cube"},
	} {
		t.Run("Invalid"+name, func(t *testing.T) {
			_, err := Config{Sets: []SetConfig{set}}.Evaluations()
			require.Error(t, err)
		})
	}
}

func TestParseChain(t *testing.T) {
	chain, err := parseChain("60, 40,40")
	require.NoError(t, err)
	require.Equal(t, []int{60, 40, 40}, chain)

	_, err = parseChain("60,x")
	require.Error(t, err)
}

func TestNewBackend(t *testing.T) {
	for _, name := range []string{"lattigo", "model", "Model"} {
		b, err := newBackend(name)
		require.NoError(t, err)
		require.NotNil(t, b)
	}
	_, err := newBackend("seal")
	require.Error(t, err)
}
