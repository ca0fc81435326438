package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/fatih/color"

	"difftest/internal/domain"
)

// Formatter formats and displays inventories and run summaries
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintTestList prints every discovered group with its before/after pairs
func (f *Formatter) PrintTestList(inv *domain.Inventory) error {
	if inv == nil || len(inv.Groups) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No test cases found")
		return nil
	}

	color.New(color.FgGreen).Fprintf(f.out, "Found %d test case(s) in %d group(s):\n\n", inv.CaseCount(), len(inv.Groups))

	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	for i, group := range inv.Groups {
		cyan.Fprintf(f.out, "%s", group.Name)
		fmt.Fprintf(f.out, "  (%s)\n", group.Dir)

		for j, tc := range group.Cases {
			prefix := "├── "
			if j == len(group.Cases)-1 {
				prefix = "└── "
			}
			fmt.Fprint(f.out, prefix)
			yellow.Fprintf(f.out, "%s", tc.Name)
			fmt.Fprintf(f.out, "  (%s, %s)\n", filepath.Base(tc.Before.Path), filepath.Base(tc.After.Path))
		}

		// Add spacing between groups (except for the last one)
		if i < len(inv.Groups)-1 {
			fmt.Fprintln(f.out)
		}
	}
	return nil
}

// PrintSummary prints run statistics followed by the failures grouped by configuration
func (f *Formatter) PrintSummary(output *domain.TestResultsOutput) {
	meta := output.Meta
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintln(f.out)
	color.New(color.FgCyan).Fprintln(f.out, "Run Statistics")
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")

	row := func(name string, c *color.Color, value string) {
		fmt.Fprintf(f.out, "│ %-31s │ ", name)
		c.Fprintf(f.out, "%-27s", value)
		fmt.Fprintln(f.out, " │")
	}
	sep := func() {
		fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	}

	row("Configurations", white, fmt.Sprint(meta.Configurations))
	sep()
	row("Test Cases", white, fmt.Sprint(meta.TestCases))
	sep()
	row("Passed", green, fmt.Sprint(meta.PassedJobs))
	sep()
	row("Failed", red, fmt.Sprint(meta.FailedJobs))
	sep()
	if meta.SkippedJobs > 0 {
		row("Skipped", white, fmt.Sprint(meta.SkippedJobs))
		sep()
	}
	row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	sep()
	row("Workers", white, fmt.Sprint(meta.Workers))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedJobs == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d test(s) failed\n\n", meta.FailedJobs)
	f.printFailures(output.Details)
}

// printFailures lists failures as label -> group/test, sorted for stable output
func (f *Formatter) printFailures(failures []domain.TestFailure) {
	byLabel := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		key := string(failure.Mode) + " " + failure.Label
		byLabel[key] = append(byLabel[key], failure)
	}

	keys := make([]string, 0, len(byLabel))
	for k := range byLabel {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)
	for _, key := range keys {
		cyan.Fprintln(f.out, key)
		items := byLabel[key]
		for i, failure := range items {
			prefix := "  ├── "
			if i == len(items)-1 {
				prefix = "  └── "
			}
			red.Fprintf(f.out, "%s%s/%s", prefix, failure.Group, failure.TestName)
			fmt.Fprintf(f.out, "  %s", failure.Outcome)
			if failure.ArchivePath != "" {
				fmt.Fprintf(f.out, "  -> %s", failure.ArchivePath)
			}
			fmt.Fprintln(f.out)
		}
	}
}
