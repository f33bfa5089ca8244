package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/profile"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
	"github.com/tuneinsight/leveled-depth-estimator/estimator"
	"github.com/tuneinsight/leveled-depth-estimator/operations"
	"github.com/tuneinsight/leveled-depth-estimator/report"
	"github.com/tuneinsight/leveled-depth-estimator/stats"
)

var (
	flagBackend       = flag.String("backend", "lattigo", "evaluation backend: lattigo or model")
	flagConfig        = flag.String("config", "", "YAML parameter table (default: built-in demonstration table)")
	flagScheme        = flag.String("scheme", "bfv", "scheme of the parameter set given by -n, -t and -chain")
	flagN             = flag.Int("n", 16384, "ring degree of the parameter set given by -chain")
	flagT             = flag.Int("t", 20, "plaintext modulus bit-size of the parameter set given by -chain")
	flagChain         = flag.String("chain", "", "comma separated coefficient modulus bit-sizes; overrides the table")
	flagDescent       = flag.String("descent", "", "descent mode: none, depletion or eager (default: scheme default)")
	flagStrategy      = flag.String("strategy", "", "multiplication strategy: multiply or square (default: multiply)")
	flagRuns          = flag.Int("runs", 1, "number of estimations per parameter set")
	flagWorkers       = flag.Int("workers", 1, "number of concurrent estimations; each holds a full context in memory (up to ~1 GB at N=65536)")
	flagCSV           = flag.String("csv", "", "write the aggregated results to this CSV file")
	flagDeterministic = flag.Bool("deterministic", false, "derive the plaintexts from the parameter set fingerprint")
	flagProfile       = flag.String("profile", "", "profile the run: cpu or mem")
	flagVerbose       = flag.Bool("v", false, "debug logging and detailed report lines")
	flagColor         = flag.Bool("color", true, "colored scheme headers")
)

func main() {

	flag.Parse()

	switch *flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		panic(fmt.Errorf("invalid -profile %q", *flagProfile))
	}

	level := slog.LevelWarn
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	evals, err := cfg.Evaluations()
	if err != nil {
		panic(err)
	}

	backend, err := newBackend(*flagBackend)
	if err != nil {
		panic(err)
	}

	opts := []depth.Option{depth.WithLogger(logger)}
	if *flagDeterministic {
		opts = append(opts, depth.WithDeterministicPlaintexts())
	}

	est := depth.NewEstimator(backend, opts...)

	txt := report.NewText(os.Stdout, *flagColor)
	txt.Verbose = *flagVerbose

	runs := max(*flagRuns, 1)

	repeated := make([]depth.Evaluation, 0, runs*len(evals))
	for _, ev := range evals {
		for i := 0; i < runs; i++ {
			repeated = append(repeated, ev)
		}
	}

	reports := depth.Sweep(est, repeated, *flagWorkers)

	aggregates := make([]*stats.DepthStats, len(evals))

	for i, ev := range evals {

		s := stats.NewDepthStats()

		for _, r := range reports[i*runs : (i+1)*runs] {

			if runs == 1 {
				if err := txt.Write(r); err != nil {
					panic(err)
				}
			}

			if r.Err != nil {
				logger.Error("estimation failed", "parameters", ev.Parameters.String(), "error", r.Err)
				continue
			}

			s.Update(r.Outcome)
		}

		if s.Runs == 0 {
			continue
		}

		if err := s.Finalize(); err != nil {
			panic(err)
		}

		aggregates[i] = s

		if runs > 1 {
			if err := txt.WriteStats(ev, s); err != nil {
				panic(err)
			}
		}
	}

	if *flagCSV != "" {
		if err := writeCSV(*flagCSV, evals, aggregates); err != nil {
			panic(err)
		}
	}
}

func loadConfig() (cfg Config, err error) {

	switch {
	case *flagChain != "":
		chain, err := parseChain(*flagChain)
		if err != nil {
			return Config{}, err
		}
		cfg = Config{Sets: []SetConfig{{Scheme: *flagScheme, N: *flagN, T: *flagT, Chain: chain}}}
	case *flagConfig != "":
		f, err := os.Open(*flagConfig)
		if err != nil {
			return Config{}, err
		}
		defer f.Close()
		if cfg, err = LoadConfig(f); err != nil {
			return Config{}, err
		}
	default:
		cfg = DefaultConfig()
	}

	if *flagDescent != "" {
		cfg.Descent = *flagDescent
	}

	if *flagStrategy != "" {
		cfg.Strategy = *flagStrategy
	}

	return
}

func newBackend(name string) (depth.Backend, error) {
	switch strings.ToLower(name) {
	case "lattigo":
		return operations.NewBackend(), nil
	case "model":
		return estimator.NewBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected lattigo or model)", name)
	}
}

func parseChain(s string) (chain []int, err error) {
	for _, f := range strings.Split(s, ",") {
		b, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid -chain %q: %w", s, err)
		}
		chain = append(chain, b)
	}
	return
}

func writeCSV(path string, evals []depth.Evaluation, aggregates []*stats.DepthStats) (err error) {

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()

	w := report.NewCSV(f)

	if err = w.WriteHeader(); err != nil {
		return
	}

	for i, s := range aggregates {
		if s == nil {
			continue
		}
		if err = w.Write(evals[i], s); err != nil {
			return
		}
	}

	return w.Flush()
}
