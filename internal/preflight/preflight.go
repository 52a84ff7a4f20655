package preflight

import (
	"os"

	"famtree/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckGEDCOM(cfg.Paths.GEDCOMFile),
		CheckDirectoryTarget("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryTarget("State directory", cfg.Paths.StateDir),
	}

	// The lock can only be probed once the state directory exists.
	if info, err := os.Stat(cfg.Paths.StateDir); err == nil && info.IsDir() {
		results = append(results, CheckLock(cfg.LockPath()))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
