package sync

import (
	"fmt"
	"io"
	"strings"

	"github.com/buger/goterm"
)

// PresentOptions control how a plan is printed.
type PresentOptions struct {
	// ShowDiff prints the diff of every modified file.
	ShowDiff bool

	// Color highlights added and removed diff lines.
	Color bool
}

// Present writes a human readable description of plan to w.
func Present(w io.Writer, plan Plan, opts PresentOptions) {
	if plan.Empty() {
		fmt.Fprintf(w, "No files to %s.\n", plan.Direction)
	}

	if newFiles := plan.New(); len(newFiles) != 0 {
		fmt.Fprintf(w, "New files to %s (%d):\n", plan.Direction, len(newFiles))
		for _, entry := range newFiles {
			fmt.Fprintf(w, "  + %s\n", entry.Path)
		}
		fmt.Fprintln(w)
	}

	if modified := plan.Modified(); len(modified) != 0 {
		fmt.Fprintf(w, "Modified files to %s (%d):\n", plan.Direction, len(modified))
		for _, entry := range modified {
			fmt.Fprintf(w, "  ~ %s\n", entry.Path)
		}
		fmt.Fprintln(w)

		if opts.ShowDiff {
			for _, entry := range modified {
				writeDiff(w, entry, opts.Color)
			}
		}
	}

	if len(plan.DestinationOnly) != 0 {
		fmt.Fprintf(w, "Files that only exist %s will be left untouched (%d):\n",
			destinationName(plan.Direction), len(plan.DestinationOnly))
		for _, path := range plan.DestinationOnly {
			fmt.Fprintf(w, "  %s\n", path)
		}
		fmt.Fprintln(w)
	}
}

func writeDiff(w io.Writer, entry DiffEntry, color bool) {
	if entry.DiffText == "" {
		fmt.Fprintf(w, "%s differs only in its trailing newline.\n\n", entry.Path)
		return
	}

	for _, line := range strings.SplitAfter(entry.DiffText, "\n") {
		if line == "" {
			continue
		}

		if color {
			line = colorDiffLine(line)
		}
		fmt.Fprint(w, line)
	}
	fmt.Fprintln(w)
}

func colorDiffLine(line string) string {
	text := strings.TrimSuffix(line, "\n")
	switch {
	case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
		return goterm.Bold(text) + "\n"
	case strings.HasPrefix(text, "@@"):
		return goterm.Color(text, goterm.CYAN) + "\n"
	case strings.HasPrefix(text, "+"):
		return goterm.Color(text, goterm.GREEN) + "\n"
	case strings.HasPrefix(text, "-"):
		return goterm.Color(text, goterm.RED) + "\n"
	}
	return line
}

func destinationName(direction Direction) string {
	if direction == Push {
		return "on the remote"
	}
	return "locally"
}
