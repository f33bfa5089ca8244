package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

// SetConfig is one entry of a parameter table. Empty Descent and Strategy
// fields fall back to the table defaults.
type SetConfig struct {
	Scheme   string `yaml:"scheme"`
	N        int    `yaml:"n"`
	T        int    `yaml:"t"`
	Chain    []int  `yaml:"chain"`
	Descent  string `yaml:"descent,omitempty"`
	Strategy string `yaml:"strategy,omitempty"`
}

// Config is a parameter table.
type Config struct {
	Descent  string      `yaml:"descent,omitempty"`
	Strategy string      `yaml:"strategy,omitempty"`
	Sets     []SetConfig `yaml:"sets"`
}

// DefaultConfig returns the demonstration table: six chains evaluated under
// both scheme families.
func DefaultConfig() (cfg Config) {

	chains := []struct {
		N     int
		Chain []int
	}{
		{16384, []int{59, 59, 45, 59, 59, 24, 59, 60}},
		{16384, []int{59, 59, 36, 59, 59, 59, 60}},
		{32768, []int{60, 30, 30, 50, 55, 60, 60, 60, 60, 60, 60}},
		{32768, []int{60, 30, 30, 50, 52, 50, 50, 60, 60, 60, 60}},
		{65536, []int{60, 58, 50, 50, 52, 50, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60}},
		{65536, []int{60, 58, 40, 50, 52, 50, 30, 60, 60, 60, 60, 60, 60, 60, 60, 60}},
	}

	for _, scheme := range []string{"bfv", "bgv"} {
		for _, c := range chains {
			cfg.Sets = append(cfg.Sets, SetConfig{Scheme: scheme, N: c.N, T: 20, Chain: c.Chain})
		}
	}

	return
}

// LoadConfig decodes a YAML parameter table. Unknown fields are rejected.
func LoadConfig(r io.Reader) (cfg Config, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot LoadConfig: %w", err)
	}
	if len(cfg.Sets) == 0 {
		return Config{}, fmt.Errorf("cannot LoadConfig: empty parameter table")
	}
	return
}

// Evaluations returns the evaluations of the table, in order.
func (c Config) Evaluations() (evals []depth.Evaluation, err error) {

	for i, s := range c.Sets {

		scheme, err := depth.ParseScheme(s.Scheme)
		if err != nil {
			return nil, fmt.Errorf("cannot Evaluations: set %d: %w", i, err)
		}

		ps, err := depth.NewParameterSet(s.N, s.T, s.Chain, scheme)
		if err != nil {
			return nil, fmt.Errorf("cannot Evaluations: set %d: %w", i, err)
		}

		ev, err := depth.NewEvaluation(ps)
		if err != nil {
			return nil, fmt.Errorf("cannot Evaluations: set %d: %w", i, err)
		}

		if name := firstNonEmpty(s.Descent, c.Descent); name != "" {
			if ev.Policy.Descent, err = depth.ParseDescentMode(name); err != nil {
				return nil, fmt.Errorf("cannot Evaluations: set %d: %w", i, err)
			}
		}

		if name := firstNonEmpty(s.Strategy, c.Strategy); name != "" {
			if ev.Strategy, err = depth.ParseStrategy(name); err != nil {
				return nil, fmt.Errorf("cannot Evaluations: set %d: %w", i, err)
			}
		}

		evals = append(evals, ev)
	}

	return
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
