package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
	"github.com/tuneinsight/leveled-depth-estimator/stats"
)

// Text prints estimation results in the console format
//
//	---BFV---
//	( 16384, 20, {59, 59, 45, 59, 59, 24, 59, 60} )	(logq = 424) maximum depth: 10, noise budget left: 1 bits
type Text struct {
	w       io.Writer
	header  *color.Color
	failure *color.Color

	// Verbose appends the policy, the strategy and the modulus switching
	// summary to each line.
	Verbose bool
}

// NewText returns a Text reporter writing to w. Colors are only emitted if
// colored is true and the terminal supports them.
func NewText(w io.Writer, colored bool) *Text {
	t := &Text{
		w:       w,
		header:  color.New(color.FgCyan, color.Bold),
		failure: color.New(color.FgRed),
	}
	if !colored {
		t.header.DisableColor()
		t.failure.DisableColor()
	}
	return t
}

// Write prints the result of one estimation.
func (t *Text) Write(r depth.Report) (err error) {

	ps := r.Evaluation.Parameters

	if _, err = t.header.Fprintf(t.w, "---%s---\n", ps.Scheme()); err != nil {
		return
	}

	if r.Outcome.Diagnostic != "" {
		if _, err = t.failure.Fprintf(t.w, "invalid input: %s\n", r.Outcome.Diagnostic); err != nil {
			return
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\t(logq = %d) ", ps, ps.LogQ())

	switch {
	case r.Err != nil:
		fmt.Fprintf(&b, "%s\t", t.failure.Sprintf("Error: %v", r.Err))
	case r.Outcome.Verdict == depth.ConfigurationRejected:
		fmt.Fprintf(&b, "%s\t", t.failure.Sprint(rejectionMessage(r.Outcome.Reason)))
	}

	b.WriteString(r.Outcome.Result.String())

	if t.Verbose {
		fmt.Fprintf(&b, " [%s, %s, descents: %d", r.Evaluation.Policy, r.Evaluation.Strategy, r.Outcome.Descents)
		if r.Outcome.ChainExhausted {
			b.WriteString(", chain exhausted")
		}
		b.WriteString("]")
	}

	b.WriteString("\n")

	_, err = io.WriteString(t.w, b.String())
	return
}

// WriteStats prints the aggregate of repeated estimations of the same
// evaluation.
func (t *Text) WriteStats(ev depth.Evaluation, s *stats.DepthStats) (err error) {

	ps := ev.Parameters

	if _, err = t.header.Fprintf(t.w, "---%s---\n", ps.Scheme()); err != nil {
		return
	}

	_, err = fmt.Fprintf(t.w, "%s\t(logq = %d) %s (runs: %d, usable: %d, depth: [%d, %d], budget: %.2f +/- %.2f bits)\n",
		ps, ps.LogQ(), s.Result(), s.Runs, s.Usable, s.MinDepth, s.MaxDepth, s.MeanBudget, s.StdBudget)

	return
}

func rejectionMessage(reason error) string {
	switch {
	case errors.Is(reason, depth.ErrNoSuitablePlaintextModulus):
		return "Error: cannot find a plain_modulus for the bit size"
	case errors.Is(reason, depth.ErrInsufficientPrimes):
		return "Error: cannot find enough primes for the bit sizes"
	default:
		return fmt.Sprintf("Error: %v", reason)
	}
}
