package cli

import (
	"time"

	"difftest/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ShowTestList    bool
	Fixtures        string
	Out             string
	Matrix          string
	Patch           string
	Timeout         time.Duration
	Jobs            int
	NameFilter      string
	FailFast        bool
	FailExit        bool
	StrictExitCodes bool
	Verbose         bool
}

// ToConfigFlags converts CLI flags to config flags.
// timeoutSet tells an explicit --timeout 0 apart from the default.
func (f *Flags) ToConfigFlags(timeoutSet bool) config.Flags {
	return config.Flags{
		ShowTestList:    f.ShowTestList,
		Fixtures:        f.Fixtures,
		Out:             f.Out,
		Matrix:          f.Matrix,
		Patch:           f.Patch,
		Timeout:         f.Timeout,
		TimeoutSet:      timeoutSet,
		Jobs:            f.Jobs,
		NameFilter:      f.NameFilter,
		FailFast:        f.FailFast,
		FailExit:        f.FailExit,
		StrictExitCodes: f.StrictExitCodes,
		Verbose:         f.Verbose,
	}
}
