package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"difftest/internal/domain"
	"difftest/internal/storage"
	"difftest/internal/verification"
)

// maxArtifactBytes caps how much of an archived file is shown in the details pane
const maxArtifactBytes = 16 * 1024

// ErrorViewer displays run failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View displays run failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		failure := results.Details[index]
		name := tview.Escape(fmt.Sprintf("%s %s/%s", failure.Label, failure.Group, failure.TestName))
		if failure.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	for i := range results.Details {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for _, f := range results.Details {
			if !f.Resolved {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ", len(results.Details), unresolved))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]
			statsView.SetText(formatFailureStats(failure))
			detailsView.SetText(formatFailureDetails(failure))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					results.Details[index].Resolved = !results.Details[index].Resolved
					list.SetItemText(index, getListItemText(index), "")
					updateHeader()
					updateDetails()
					_ = ev.storage.SaveOutput(results)
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatFailureStats formats the header line for a failure
func formatFailureStats(failure domain.TestFailure) string {
	return fmt.Sprintf("[cyan]%s:[white] [yellow]%s[white] :: [yellow]%s/%s[white]\n[cyan]outcome:[white] [red]%s[white]",
		failure.Mode, tview.Escape(failure.Config), tview.Escape(failure.Group), tview.Escape(failure.TestName), failure.Outcome)
}

// formatFailureDetails formats a failure for display using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow]Command:[white]\n%s\n\n", tview.Escape(failure.Command))
	fmt.Fprintf(&b, "[cyan]Before:[white] %s\n[cyan]After:[white]  %s\n", tview.Escape(failure.Before), tview.Escape(failure.After))
	if failure.Expected != "" || failure.Actual != "" {
		fmt.Fprintf(&b, "[cyan]Expected SHA-1:[white] %s\n[cyan]Actual SHA-1:[white]   %s\n", failure.Expected, failure.Actual)
	}
	b.WriteString("\n")

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}
	if failure.Output != "" {
		fmt.Fprintf(&b, "[yellow]Diff Output:[white]\n%s\n\n", tview.Escape(failure.Output))
	}
	if failure.PatchOutput != "" {
		fmt.Fprintf(&b, "[yellow]Patch Output:[white]\n%s\n\n", tview.Escape(failure.PatchOutput))
	}

	if failure.ArchivePath != "" {
		fmt.Fprintf(&b, "[cyan]Archive:[white] %s\n", tview.Escape(failure.ArchivePath))
		if failure.ArchiveError != "" {
			fmt.Fprintf(&b, "[red]Archive Error:[white] %s\n", tview.Escape(failure.ArchiveError))
		}
		b.WriteString("\n")
		for _, name := range []string{failure.TestName + ".patch", verification.MismatchFile} {
			if text, ok := readArtifact(filepath.Join(failure.ArchivePath, name)); ok {
				fmt.Fprintf(&b, "[yellow]%s:[white]\n%s\n\n", tview.Escape(name), tview.Escape(text))
			}
		}
	}
	return b.String()
}

func readArtifact(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if len(data) == 0 {
		return "(empty)", true
	}
	if len(data) > maxArtifactBytes {
		return string(data[:maxArtifactBytes]) + "\n... (truncated)", true
	}
	return string(data), true
}
