package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"difftest/internal/domain"
)

// Reporter prints per-test failures as they happen. Safe for concurrent use.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewReporter creates a Reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// ConfigurationStarted announces the next configuration
func (r *Reporter) ConfigurationStarted(mode domain.Mode, cfg domain.Configuration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mode == domain.ModeCrash {
		color.New(color.FgCyan).Fprintf(r.out, "Test crashiness for configuration '%s'\n", cfg.String())
		return
	}
	color.New(color.FgCyan).Fprintf(r.out, "Running tests for configuration '%s'\n", cfg.String())
}

// TestFailed prints the identity of a failed test and what is known about the failure
func (r *Reporter) TestFailed(res domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	red := color.New(color.FgRed)
	id := res.Job.ID()

	if res.Job.Mode == domain.ModeCrash {
		switch res.Outcome {
		case domain.OutcomeTimedOut:
			red.Fprintf(r.out, "  Test '%s' TIMED OUT\n", id)
		default:
			red.Fprintf(r.out, "  Test '%s' FAILED to execute properly\n", id)
		}
		fmt.Fprintf(r.out, "    %s\n", res.Command)
		if res.Err != nil {
			fmt.Fprintf(r.out, "    %v\n", res.Err)
		}
		if res.Output != "" {
			fmt.Fprint(r.out, ensureNewline(res.Output))
		}
		return
	}

	red.Fprintf(r.out, "  Test '%s' FAILED (%s)\n", id, describeOutcome(res.Outcome))
	if res.Err != nil {
		fmt.Fprintf(r.out, "    %v\n", res.Err)
	}
	if res.Note != "" {
		color.New(color.FgYellow).Fprintf(r.out, "    note: %s\n", res.Note)
	}
}

// ArchiveFailed reports a workspace that could not be copied into the archive
func (r *Reporter) ArchiveFailed(res domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	yellow := color.New(color.FgYellow)
	yellow.Fprintf(r.out, "  Failed to archive workspace for '%s'\n", res.Job.ID())
	fmt.Fprintf(r.out, "    to DEST ('%s')\n", res.ArchivePath)
	if res.ArchiveErr != nil {
		fmt.Fprintf(r.out, "    %v\n", res.ArchiveErr)
	}
}

func describeOutcome(o domain.Outcome) string {
	return strings.ReplaceAll(string(o), "_", " ")
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
