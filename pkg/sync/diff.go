package sync

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

// UnifiedDiff returns a unified diff that transforms the remote contents of
// path into the local contents. It's empty if the contents are identical.
func UnifiedDiff(path, remote, local string) string {
	if remote == local {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(remote),
		B:        splitLines(local),
		FromFile: "remote/" + path,
		ToFile:   "local/" + path,
		Context:  diffContext,
	})
	if err != nil {
		// The diff is written to an in-memory buffer, which never fails.
		return ""
	}
	return diff
}

// splitLines splits s into lines that each end with a newline, so that the
// last line of a file without a trailing newline still prints on its own.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
