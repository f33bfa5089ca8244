package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tuneinsight/leveled-depth-estimator/depth"
	"github.com/tuneinsight/leveled-depth-estimator/stats"
)

// Header is the header of the CSV reporter: the evaluation columns followed
// by stats.Header.
var Header = append([]string{
	"SCHEME",
	"N",
	"T_BITS",
	"CHAIN",
	"LOGQ",
	"DESCENT",
	"STRATEGY",
	"FINGERPRINT",
}, stats.Header...)

// CSV writes one row per aggregated evaluation.
type CSV struct {
	w *csv.Writer
}

// NewCSV returns a CSV reporter writing to w.
func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (c *CSV) WriteHeader() error {
	return c.w.Write(Header)
}

// Write writes the row of ev.
func (c *CSV) Write(ev depth.Evaluation, s *stats.DepthStats) error {

	ps := ev.Parameters

	chain := make([]string, 0, ps.ChainLength())
	for _, b := range ps.CoeffBits() {
		chain = append(chain, fmt.Sprintf("%d", b))
	}

	row := append([]string{
		ps.Scheme().String(),
		fmt.Sprintf("%d", ps.RingDegree()),
		fmt.Sprintf("%d", ps.PlaintextBits()),
		strings.Join(chain, " "),
		fmt.Sprintf("%d", ps.LogQ()),
		ev.Policy.Descent.String(),
		ev.Strategy.String(),
		ps.Fingerprint(),
	}, s.ToCSV()...)

	return c.w.Write(row)
}

// Flush flushes the underlying writer and returns its error, if any.
func (c *CSV) Flush() error {
	c.w.Flush()
	return c.w.Error()
}
