package main

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// latencySummary condenses sampled acquire latencies.
type latencySummary struct {
	mean   float64
	stddev float64
	p50    float64
	p99    float64
	max    float64
}

// summarize computes the latency summary. samples is consumed: it is
// sorted in place, as the quantile estimator requires.
func summarize(samples []float64) latencySummary {
	if len(samples) == 0 {
		return latencySummary{}
	}
	sort.Float64s(samples)

	return latencySummary{
		mean:   stat.Mean(samples, nil),
		stddev: stat.StdDev(samples, nil),
		p50:    stat.Quantile(0.50, stat.Empirical, samples, nil),
		p99:    stat.Quantile(0.99, stat.Empirical, samples, nil),
		max:    samples[len(samples)-1],
	}
}

// printReport writes one scenario's verdict and statistics to stdout.
func printReport(label string, s *Scenario, res *result) {
	ops := s.Goroutines * s.Iterations
	throughput := float64(ops) / res.elapsed.Seconds()
	sum := summarize(res.samplesNs)

	fmt.Printf("scenario %-16s lock=%-5s goroutines=%-3d iterations=%d\n",
		label, s.Lock, s.Goroutines, s.Iterations)
	fmt.Printf("  ok: counter = %d, elapsed = %s, %.0f ops/s\n",
		res.counter, res.elapsed.Round(time.Millisecond), throughput)
	fmt.Printf("  acquire latency (n=%d): mean=%.0fns stddev=%.0fns p50=%.0fns p99=%.0fns max=%.0fns\n",
		len(res.samplesNs), sum.mean, sum.stddev, sum.p50, sum.p99, sum.max)
}
