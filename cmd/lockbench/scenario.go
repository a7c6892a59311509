package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so scenario files can spell durations
// the Go way ("500ns", "1ms"); yaml.v3 has no native duration support.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Scenario describes one contention workload.
type Scenario struct {
	// Name labels the scenario in reports.
	Name string `yaml:"name"`

	// Goroutines is the number of concurrent lockers.
	Goroutines int `yaml:"goroutines"`

	// Iterations is the number of lock/unlock cycles per goroutine.
	Iterations int `yaml:"iterations"`

	// Hold is how long each goroutine keeps the lock per iteration.
	// Zero means the critical section is just the counter increment.
	Hold Duration `yaml:"hold"`

	// Lock selects the implementation: "futex" (default) or "sync"
	// for the stdlib baseline.
	Lock string `yaml:"lock"`
}

// scenarioFile is the on-disk YAML shape:
//
//	scenarios:
//	  - name: uncontended
//	    goroutines: 1
//	    iterations: 1000000
//	  - name: bursty
//	    goroutines: 8
//	    iterations: 100000
//	    hold: 500ns
type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// loadScenarios reads and validates a YAML scenario file.
func loadScenarios(path string) ([]Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var f scenarioFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s contains no scenarios", path)
	}

	for i := range f.Scenarios {
		if err := f.Scenarios[i].validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", f.Scenarios[i].label(i), err)
		}
	}
	return f.Scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Goroutines <= 0 {
		return fmt.Errorf("goroutines must be positive, got %d", s.Goroutines)
	}
	if s.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", s.Iterations)
	}
	if s.Hold < 0 {
		return fmt.Errorf("hold must not be negative, got %s", time.Duration(s.Hold))
	}
	switch s.Lock {
	case "":
		s.Lock = "futex"
	case "futex", "sync":
	default:
		return fmt.Errorf("unknown lock %q (want \"futex\" or \"sync\")", s.Lock)
	}
	return nil
}

func (s *Scenario) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", i)
}
