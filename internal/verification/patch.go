package verification

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"difftest/internal/archive"
	"difftest/internal/config"
	"difftest/internal/domain"
	"difftest/internal/execution"
	"difftest/internal/parser"
)

// MismatchFile is written into a failing workspace before it is archived
const MismatchFile = "mismatch.diff"

// PatchVerifier checks that the diff program's output, applied by patch,
// reconstructs the after file byte for byte
type PatchVerifier struct {
	diffProgram  string
	patchProgram string
	scratchRoot  string
	strict       bool
	runner       ProcessRunner
	archiver     Archiver
	parser       parser.Parser
	reporter     Reporter
	logger       *zap.Logger
}

// NewPatchVerifier creates a new PatchVerifier
func NewPatchVerifier(
	cfg *config.Config,
	runner ProcessRunner,
	archiver Archiver,
	patchParser parser.Parser,
	reporter Reporter,
	logger *zap.Logger,
) *PatchVerifier {
	return &PatchVerifier{
		diffProgram:  cfg.DiffProgram,
		patchProgram: cfg.PatchProgram,
		scratchRoot:  cfg.GetScratchPath(),
		strict:       cfg.StrictExitCodes,
		runner:       runner,
		archiver:     archiver,
		parser:       patchParser,
		reporter:     reporter,
		logger:       logger,
	}
}

// Run performs one round trip for job
func (v *PatchVerifier) Run(ctx context.Context, job domain.Job) (res domain.Result) {
	start := time.Now()
	res = domain.Result{Job: job}
	defer func() { res.Duration = time.Since(start) }()

	if ctx.Err() != nil {
		res.Outcome = domain.OutcomeSkipped
		return res
	}

	ws, err := NewWorkspace(v.scratchRoot, job)
	if err != nil {
		return v.harnessError(res, err)
	}
	defer func() {
		if err := ws.Remove(); err != nil {
			v.logger.Warn("failed to remove workspace", zap.String("dir", ws.Dir), zap.Error(err))
		}
	}()

	before, err := ws.CopyIn(job.Case.Before.Path)
	if err != nil {
		return v.harnessError(res, err)
	}
	after, err := ws.CopyIn(job.Case.After.Path)
	if err != nil {
		return v.harnessError(res, err)
	}

	// Diff: stdout becomes the patch file
	patchName := job.Case.Name + ".patch"
	patchFile, err := os.Create(ws.Path(patchName))
	if err != nil {
		return v.harnessError(res, fmt.Errorf("create patch file: %w", err))
	}
	diffCmd := execution.Command{
		Name:   v.diffProgram,
		Args:   append(job.Config.Args(), before, after),
		Dir:    ws.Dir,
		Stdout: patchFile,
	}
	res.Command = diffCmd.String()
	diffResult, err := v.runner.Run(ctx, diffCmd)
	if closeErr := patchFile.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close patch file: %w", closeErr)
	}
	if err != nil {
		if cancelled(ctx, err) {
			res.Outcome = domain.OutcomeSkipped
			return res
		}
		return v.harnessError(res, err)
	}
	res.DiffExit = diffResult.ExitCode
	res.Output = diffResult.Output
	if diffResult.TimedOut {
		res.Outcome = domain.OutcomeTimedOut
		return v.fail(res, ws)
	}

	v.inspectPatch(&res, ws.Path(patchName))

	// Apply the patch to the before copy in place
	patchCmd := execution.Command{
		Name: v.patchProgram,
		Args: []string{"-u", "-p0", "--input=" + patchName, before},
		Dir:  ws.Dir,
	}
	patchResult, err := v.runner.Run(ctx, patchCmd)
	if err != nil {
		if cancelled(ctx, err) {
			res.Outcome = domain.OutcomeSkipped
			return res
		}
		return v.harnessError(res, err)
	}
	res.PatchExit = patchResult.ExitCode
	res.PatchOutput = patchResult.Output
	if patchResult.TimedOut {
		res.Outcome = domain.OutcomeTimedOut
		return v.fail(res, ws)
	}

	res.Expected, err = sha1File(ws.Path(after))
	if err != nil {
		return v.harnessError(res, fmt.Errorf("hash expected file: %w", err))
	}
	res.Actual, err = sha1File(ws.Path(before))
	if err != nil {
		// patch may have removed or renamed the target; that is a mismatch, not a harness fault
		res.Note = appendNote(res.Note, fmt.Sprintf("patched file unreadable: %v", err))
	}

	if v.strict && !exitCodesOK(res.DiffExit, res.PatchExit) {
		res.Outcome = domain.OutcomeAbnormalExit
		return v.fail(res, ws)
	}

	if res.Actual != res.Expected {
		res.Outcome = domain.OutcomeChecksumMismatch
		v.writeMismatch(ws, before, after)
		return v.fail(res, ws)
	}

	res.Outcome = domain.OutcomePassed
	v.logger.Debug("round trip passed",
		zap.String("config", job.Config.Label()),
		zap.String("test", job.ID()),
		zap.Int("hunks", res.Stats.Fragments))
	return res
}

// exitCodesOK accepts the diff convention of 0 (same) and 1 (different)
func exitCodesOK(diffExit, patchExit int) bool {
	return (diffExit == 0 || diffExit == 1) && patchExit == 0
}

func (v *PatchVerifier) inspectPatch(res *domain.Result, path string) {
	if v.parser == nil {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		res.Note = appendNote(res.Note, fmt.Sprintf("patch unreadable: %v", err))
		return
	}
	defer f.Close()

	stats, err := v.parser.ParseStats(f)
	if err != nil {
		res.Note = appendNote(res.Note, err.Error())
		return
	}
	res.Stats = stats
}

// writeMismatch stores a unified diff from the patched before copy to the expected after file
func (v *PatchVerifier) writeMismatch(ws *Workspace, before, after string) {
	actual, _ := os.ReadFile(ws.Path(before))
	expected, err := os.ReadFile(ws.Path(after))
	if err != nil {
		return
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(actual)),
		B:        difflib.SplitLines(string(expected)),
		FromFile: "patched/" + before,
		ToFile:   "expected/" + after,
		Context:  3,
	})
	if err != nil {
		v.logger.Warn("failed to render mismatch diff", zap.Error(err))
		return
	}
	if err := os.WriteFile(ws.Path(MismatchFile), []byte(text), 0644); err != nil {
		v.logger.Warn("failed to write mismatch diff", zap.Error(err))
	}
}

// fail reports the failure and archives the workspace
func (v *PatchVerifier) fail(res domain.Result, ws *Workspace) domain.Result {
	v.reporter.TestFailed(res)

	dest, err := v.archiver.Archive(ws.Dir, archive.KeyFor(res.Job))
	res.ArchivePath = dest
	if err != nil {
		res.ArchiveErr = err
		v.reporter.ArchiveFailed(res)
	}
	return res
}

func (v *PatchVerifier) harnessError(res domain.Result, err error) domain.Result {
	res.Outcome = domain.OutcomeError
	res.Err = err
	v.logger.Error("patch test could not run", zap.String("test", res.Job.ID()), zap.Error(err))
	v.reporter.TestFailed(res)
	return res
}

func appendNote(note, msg string) string {
	if note == "" {
		return msg
	}
	return note + "; " + msg
}
