package depth

import (
	"math/rand"
	"sync"
)

// Report is the result of one evaluation of a sweep.
type Report struct {
	Evaluation Evaluation
	Outcome    Outcome
	Err        error
}

type sweepJob struct {
	i  int
	ev Evaluation
}

// Sweep estimates every evaluation on a pool of at most workers goroutines
// and returns the reports in input order. If workers is not positive, the
// evaluations are estimated sequentially.
//
// Each worker holds a live backend context, so peak memory grows linearly
// with workers (several hundred MB per context at N = 2^16).
//
// An evaluation carrying a generator is estimated with a private generator
// seeded from it, so generators shared between evaluations are never used
// concurrently. The seeds are drawn in input order.
func Sweep(est *Estimator, evals []Evaluation, workers int) []Report {

	reports := make([]Report, len(evals))

	workers = min(max(workers, 1), len(evals))

	jobs := make(chan sweepJob)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				out, err := est.Estimate(job.ev)
				reports[job.i] = Report{Evaluation: evals[job.i], Outcome: out, Err: err}
			}
		}()
	}

	for i, ev := range evals {
		if ev.Rand != nil {
			ev.Rand = rand.New(rand.NewSource(ev.Rand.Int63()))
		}
		jobs <- sweepJob{i: i, ev: ev}
	}
	close(jobs)

	wg.Wait()

	return reports
}
