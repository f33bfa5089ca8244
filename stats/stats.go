package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
)

var Header = []string{
	"RUNS",
	"USABLE",
	"MIN_DEPTH",
	"MAX_DEPTH",
	"MODE_DEPTH",
	"AVG_BUDGET",
	"MED_BUDGET",
	"STD_BUDGET",
}

// DepthStats is a struct storing statistics about repeated estimations of the
// same evaluation. Depths include unusable runs (-1); budgets are taken over
// the usable runs only.
type DepthStats struct {
	Runs   int
	Usable int

	MinDepth  int
	MaxDepth  int
	ModeDepth int

	MeanBudget   float64
	MedianBudget float64
	StdBudget    float64

	depths  []float64
	budgets []float64
}

func NewDepthStats() (s *DepthStats) {
	return &DepthStats{
		depths:  []float64{},
		budgets: []float64{},
	}
}

// Update records the outcome of one run. Rejected outcomes are not recorded.
func (s *DepthStats) Update(out depth.Outcome) {

	if out.Verdict == depth.ConfigurationRejected {
		return
	}

	s.Runs++
	s.depths = append(s.depths, float64(out.Result.MaxDepth))

	if out.Verdict == depth.Usable {
		s.Usable++
		s.budgets = append(s.budgets, float64(out.Result.NoiseBudgetBits))
	}
}

// Finalize computes the statistics of the recorded runs. It returns an error
// if no run was recorded.
func (s *DepthStats) Finalize() (err error) {

	if s.Runs == 0 {
		return fmt.Errorf("cannot Finalize: no run recorded")
	}

	var v float64

	if v, err = mstats.Min(s.depths); err != nil {
		return fmt.Errorf("cannot Finalize: %w", err)
	}
	s.MinDepth = int(v)

	if v, err = mstats.Max(s.depths); err != nil {
		return fmt.Errorf("cannot Finalize: %w", err)
	}
	s.MaxDepth = int(v)

	mode, err := mstats.Mode(s.depths)
	if err != nil {
		return fmt.Errorf("cannot Finalize: %w", err)
	}

	// Tied modes are returned sorted: report the smallest one. An empty mode
	// means every depth is equally frequent, the smallest being MinDepth.
	if len(mode) > 0 {
		s.ModeDepth = int(mode[0])
	} else {
		s.ModeDepth = s.MinDepth
	}

	s.MeanBudget, s.MedianBudget, s.StdBudget = 0, 0, 0

	if s.Usable == 0 {
		return nil
	}

	if s.MeanBudget, err = mstats.Mean(s.budgets); err != nil {
		return fmt.Errorf("cannot Finalize: %w", err)
	}

	if s.MedianBudget, err = mstats.Median(s.budgets); err != nil {
		return fmt.Errorf("cannot Finalize: %w", err)
	}

	if s.Usable > 1 {
		if s.StdBudget, err = mstats.StandardDeviationSample(s.budgets); err != nil {
			return fmt.Errorf("cannot Finalize: %w", err)
		}
	}

	return nil
}

// Stable reports whether every recorded run reached the same depth.
func (s *DepthStats) Stable() bool {
	return s.Runs > 0 && s.MinDepth == s.MaxDepth
}

// Result returns the conservative numeric result of the runs: the smallest
// depth, with the smallest budget observed among the runs reaching it.
func (s *DepthStats) Result() depth.CapabilityResult {

	if s.Usable == 0 || s.MinDepth < 0 {
		return depth.Sentinel()
	}

	budget := math.MaxInt
	for i, d := range s.depths {
		if int(d) == s.MinDepth {
			budget = min(budget, int(s.budgets[i]))
		}
	}

	return depth.CapabilityResult{MaxDepth: s.MinDepth, NoiseBudgetBits: budget}
}

func (s *DepthStats) ToCSV() []string {
	return []string{
		fmt.Sprintf("%d", s.Runs),
		fmt.Sprintf("%d", s.Usable),
		fmt.Sprintf("%d", s.MinDepth),
		fmt.Sprintf("%d", s.MaxDepth),
		fmt.Sprintf("%d", s.ModeDepth),
		fmt.Sprintf("%.5f", s.MeanBudget),
		fmt.Sprintf("%.5f", s.MedianBudget),
		fmt.Sprintf("%.5f", s.StdBudget),
	}
}
