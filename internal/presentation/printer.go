package presentation

import (
	"fmt"
	"io"
	"strings"

	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintCatalog(title string, entries []domain.SaveEntry) {
	fmt.Fprintf(p.Writer, "%s:\n\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(p.Writer, "No saves found.")
		return
	}
	for _, line := range formatEntryLines(entries, p.Verbose) {
		fmt.Fprintln(p.Writer, line)
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "%d saves.\n", len(entries))
}

func (p Printer) PrintOutcome(label string, outcome domain.Outcome) {
	fmt.Fprintf(p.Writer, "%s: %s\n", label, StatusLine(outcome))

	if len(outcome.Skipped) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Skipped:")
	for _, line := range formatSkipLines(outcome.Skipped, p.Verbose) {
		fmt.Fprintln(p.Writer, line)
	}
}

func (p Printer) PrintPreview(preview domain.Preview) {
	bounds := preview.Bounds()
	fmt.Fprintf(p.Writer, "Preview:  %s\n", preview.Path)
	fmt.Fprintf(p.Writer, "Format:   %s\n", preview.Format)
	fmt.Fprintf(p.Writer, "Size:     %dx%d\n", bounds.Dx(), bounds.Dy())
	if preview.CapturedAt != nil {
		fmt.Fprintf(p.Writer, "Captured: %s\n", preview.CapturedAt.Format("2006-01-02 15:04"))
	}
}

// StatusLine renders an outcome as the one-line status the shells display.
func StatusLine(outcome domain.Outcome) string {
	if outcome.Status == domain.Failed && outcome.Err != nil {
		return "Failed! " + appErrors.UserMessage(outcome.Err)
	}
	return outcome.String()
}

func formatEntryLines(entries []domain.SaveEntry, verbose bool) []string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		date := entry.ModifiedAt.Format("2006-01-02 15:04")
		if verbose {
			lines = append(lines, fmt.Sprintf("%s  %s  %s", date, entry.Name, entry.Path))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %s", date, entry.Name))
	}
	return lines
}

func formatSkipLines(skipped []domain.Skip, verbose bool) []string {
	lines := make([]string, 0, len(skipped))
	for _, skip := range skipped {
		if verbose && skip.Err != nil {
			lines = append(lines, fmt.Sprintf("- %s (%v)", skip.RelativePath, errorCause(skip.Err)))
			continue
		}
		lines = append(lines, "- "+skip.RelativePath)
	}

	if verbose || len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	more := fmt.Sprintf("... %d more", len(lines)-4)
	return append(append(append([]string{}, head...), more), tail...)
}

func errorCause(err error) error {
	if appErr, ok := err.(*appErrors.AppError); ok {
		return appErr.Err
	}
	return err
}

func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
