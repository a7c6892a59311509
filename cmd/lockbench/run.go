package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/posutsai/MemConsistency/futexlock"
)

var runOpts = struct {
	scenarios  string
	name       string
	goroutines int
	iterations int
	hold       time.Duration
	lock       string
}{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run contention scenarios",
	Long: "Run one or more contention scenarios against the selected lock, " +
		"verify the counter invariant, and print latency statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := gatherScenarios()
		if err != nil {
			return err
		}

		for i := range scenarios {
			res, err := runScenario(&scenarios[i])
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenarios[i].label(i), err)
			}
			printReport(scenarios[i].label(i), &scenarios[i], res)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runOpts.scenarios, "scenarios", "",
		"YAML scenario file; overrides the single-scenario flags")
	runCmd.Flags().StringVar(&runOpts.name, "name", "adhoc",
		"scenario name for the report")
	runCmd.Flags().IntVar(&runOpts.goroutines, "goroutines", 4,
		"number of concurrent lockers")
	runCmd.Flags().IntVar(&runOpts.iterations, "iterations", 100000,
		"lock/unlock cycles per goroutine")
	runCmd.Flags().DurationVar(&runOpts.hold, "hold", 0,
		"time to hold the lock per iteration")
	runCmd.Flags().StringVar(&runOpts.lock, "lock", "futex",
		"lock implementation: futex or sync")
}

func gatherScenarios() ([]Scenario, error) {
	if runOpts.scenarios != "" {
		return loadScenarios(runOpts.scenarios)
	}
	s := Scenario{
		Name:       runOpts.name,
		Goroutines: runOpts.goroutines,
		Iterations: runOpts.iterations,
		Hold:       Duration(runOpts.hold),
		Lock:       runOpts.lock,
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return []Scenario{s}, nil
}

// result carries the measurements of one scenario run.
type result struct {
	elapsed   time.Duration
	counter   int
	samplesNs []float64 // sampled acquire latencies, nanoseconds
}

// sampleTarget bounds the number of latency samples kept per scenario
// so huge runs don't hold every measurement in memory.
const sampleTarget = 100000

// runScenario executes one workload and verifies the counter invariant.
func runScenario(s *Scenario) (*result, error) {
	var locker sync.Locker
	switch s.Lock {
	case "futex":
		mu := &futexlock.Mutex{}
		if err := mu.Init(nil); err != nil {
			return nil, err
		}
		locker = mu
	case "sync":
		locker = &sync.Mutex{}
	}

	// Sample every stride-th acquire per goroutine.
	stride := s.Goroutines * s.Iterations / sampleTarget
	if stride < 1 {
		stride = 1
	}

	counter := 0
	perWorker := make([][]float64, s.Goroutines)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for g := 0; g < s.Goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			samples := make([]float64, 0, s.Iterations/stride+1)
			<-start
			for i := 0; i < s.Iterations; i++ {
				sampled := i%stride == 0
				var t0 time.Time
				if sampled {
					t0 = time.Now()
				}
				locker.Lock()
				if sampled {
					samples = append(samples, float64(time.Since(t0).Nanoseconds()))
				}
				counter++
				if s.Hold > 0 {
					spinFor(time.Duration(s.Hold))
				}
				locker.Unlock()
			}
			perWorker[id] = samples
		}(g)
	}

	begin := time.Now()
	close(start)
	wg.Wait()
	elapsed := time.Since(begin)

	res := &result{elapsed: elapsed, counter: counter}
	for _, s := range perWorker {
		res.samplesNs = append(res.samplesNs, s...)
	}

	if want := s.Goroutines * s.Iterations; counter != want {
		log.Printf("FAIL %s: counter = %d, want %d", s.Name, counter, want)
		return nil, fmt.Errorf("lost updates: counter = %d, want %d", counter, want)
	}
	return res, nil
}

// spinFor busy-waits for roughly d without sleeping, so the lock stays
// held by a running thread the way a real short critical section would.
func spinFor(d time.Duration) {
	t0 := time.Now()
	for time.Since(t0) < d {
	}
}
