// Command regionpool-inspect runs a scripted alloc/free scenario
// against a single pool and prints the resulting segment layout. It
// exercises the public regionpool API the same way any embedder would;
// it is not part of the library's contract.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cellarius-io/regionpool"
	"github.com/cellarius-io/regionpool/internal/clihelp"
)

// Scenario describes a pool to open and a sequence of alloc/free steps
// to run against it.
type Scenario struct {
	PoolSize int    `json:"pool_size"`
	Policy   string `json:"policy"`
	Steps    []Step `json:"steps"`
}

// Step is one alloc or free operation. Alloc steps carry Size; free
// steps carry Alloc, the index (in issue order) of the allocation being
// freed.
type Step struct {
	Op    string `json:"op"`
	Size  int    `json:"size,omitempty"`
	Alloc int    `json:"alloc,omitempty"`
}

func main() {
	var (
		scenarioPath string
		jsonOutput   bool
		verbose      bool
		debug        bool
	)

	flag.StringVar(&scenarioPath, "scenario", "", "path to a JSON scenario file (required)")
	flag.BoolVar(&jsonOutput, "json", false, "print the final segment layout as JSON")
	flag.BoolVar(&verbose, "verbose", false, "log each alloc/free step")
	flag.BoolVar(&debug, "debug", false, "log internal detail")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -scenario FILE [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Runs a scripted alloc/free scenario against one region pool.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEXAMPLE SCENARIO:\n")
		fmt.Fprintf(os.Stderr, `  {
    "pool_size": 100,
    "policy": "FirstFit",
    "steps": [
      {"op": "alloc", "size": 40},
      {"op": "alloc", "size": 60},
      {"op": "free", "alloc": 0}
    ]
  }
`)
	}

	flag.Parse()

	if scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := clihelp.NewLogger(verbose, debug)

	scenario, err := clihelp.LoadJSONFile[Scenario](scenarioPath)
	if err != nil {
		clihelp.ExitWithError("loading scenario: %v", err)
	}

	policy, err := parsePolicy(scenario.Policy)
	if err != nil {
		clihelp.ExitWithError("%v", err)
	}

	logger.Debug("opening pool of %d bytes under %v", scenario.PoolSize, policy)

	p, err := regionpool.Open(regionpool.NewSystemAllocator(), scenario.PoolSize, policy)
	if err != nil {
		clihelp.ExitWithError("open: %v", err)
	}

	allocs := make([]*regionpool.Allocation, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		switch step.Op {
		case "alloc":
			a, err := regionpool.Alloc(p, step.Size)
			if err != nil {
				clihelp.ExitWithError("step %d: alloc(%d): %v", i, step.Size, err)
			}

			logger.Info("step %d: alloc(%d) -> offset %d", i, step.Size, a.Offset)
			allocs = append(allocs, a)
		case "free":
			if step.Alloc < 0 || step.Alloc >= len(allocs) || allocs[step.Alloc] == nil {
				clihelp.ExitWithError("step %d: free references unknown allocation %d", i, step.Alloc)
			}

			if err := regionpool.Free(p, allocs[step.Alloc]); err != nil {
				clihelp.ExitWithError("step %d: free(%d): %v", i, step.Alloc, err)
			}

			logger.Info("step %d: free(%d)", i, step.Alloc)
			allocs[step.Alloc] = nil
		default:
			clihelp.ExitWithError("step %d: unknown op %q", i, step.Op)
		}
	}

	segs := regionpool.Inspect(p)
	stats := p.Stats()

	if jsonOutput {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"segments": segs,
			"stats":    stats,
		}, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("pool: total=%d alloc=%d gaps=%d policy=%v\n", stats.TotalSize, stats.AllocSize, stats.NumGaps, stats.Policy)

		for _, s := range segs {
			fmt.Printf("  [%6d, %6d) size=%-6d allocated=%v\n", s.Offset, s.Offset+s.Size, s.Size, s.Allocated)
		}
	}

	if err := regionpool.Close(p); err != nil {
		logger.Warn("close: %v", err)
	}
}

func parsePolicy(name string) (regionpool.Policy, error) {
	switch name {
	case "FirstFit":
		return regionpool.FirstFit, nil
	case "BestFit":
		return regionpool.BestFit, nil
	default:
		return 0, fmt.Errorf("unknown policy %q: must be FirstFit or BestFit", name)
	}
}
