package sync

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/bolt-sync/pkg/errors"
	"github.com/sidkik/bolt-sync/pkg/remote"
)

const (
	reasonDryRun   = "dry run"
	reasonDeclined = "declined"
)

// Options control how a plan is applied.
type Options struct {
	// DryRun prints the plan without changing anything.
	DryRun bool

	// AutoConfirm applies the plan without prompting the user.
	AutoConfirm bool

	// ShowDiff prints the diff of every modified file.
	ShowDiff bool

	// Color highlights the printed diffs.
	Color bool
}

// Action is the change made to a file on the destination.
type Action string

const (
	// ActionCreate writes a file that didn't exist on the destination.
	ActionCreate Action = "create"

	// ActionUpdate overwrites the destination's contents.
	ActionUpdate Action = "update"
)

// Outcome is the result of applying a single entry.
type Outcome string

const (
	// OutcomeApplied means the file was written to the destination.
	OutcomeApplied Outcome = "applied"

	// OutcomeSkipped means the file wasn't written because of a dry run or
	// because the user declined.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the write was attempted and failed, or wasn't
	// attempted because a prerequisite such as the backup failed.
	OutcomeFailed Outcome = "failed"
)

// ReportEntry is the result of applying a single DiffEntry.
type ReportEntry struct {
	Path    string
	Action  Action
	Outcome Outcome
	Reason  string
}

// Report describes what happened to each entry in a plan.
type Report struct {
	Direction Direction
	Entries   []ReportEntry

	// Declined is true if the user didn't confirm the plan.
	Declined bool

	// DryRun is true if the plan was only printed.
	DryRun bool
}

// Applied returns the number of files that were written.
func (report Report) Applied() int {
	return report.count(OutcomeApplied)
}

// Skipped returns the number of files that weren't attempted.
func (report Report) Skipped() int {
	return report.count(OutcomeSkipped)
}

// Failed returns the number of files that couldn't be written.
func (report Report) Failed() int {
	return report.count(OutcomeFailed)
}

// Failures returns the entries for the files that couldn't be written.
func (report Report) Failures() (failures []ReportEntry) {
	for _, entry := range report.Entries {
		if entry.Outcome == OutcomeFailed {
			failures = append(failures, entry)
		}
	}
	return failures
}

// Summary returns a one line description of the report.
func (report Report) Summary() string {
	return fmt.Sprintf("Applied %d, skipped %d, failed %d.",
		report.Applied(), report.Skipped(), report.Failed())
}

func (report Report) count(outcome Outcome) (n int) {
	for _, entry := range report.Entries {
		if entry.Outcome == outcome {
			n++
		}
	}
	return n
}

// Prompt asks the user a yes or no question.
type Prompt func(question string) (bool, error)

// Executor applies plans to the destination.
type Executor struct {
	Direction Direction
	ProjectID string

	// LocalDir is the root of the local project.
	LocalDir string

	Remote remote.Client

	// Backups stores the remote contents of files before they're
	// overwritten. It's required for pushes.
	Backups BackupStore

	// Prompt is used to confirm the plan unless it's auto confirmed.
	Prompt Prompt

	// Out is where the plan is printed.
	Out io.Writer

	Log logrus.FieldLogger
}

// Apply prints the plan, and then writes each entry to the destination.
// Failures to write individual files are recorded in the report, and the
// remaining files are still processed. An authentication failure aborts the
// run, and is returned.
func (e Executor) Apply(ctx context.Context, plan Plan, opts Options) (Report, error) {
	if plan.Direction != e.Direction {
		return Report{}, errors.New("cannot apply %s plan with %s executor",
			plan.Direction, e.Direction)
	}

	out := e.Out
	if out == nil {
		out = ioutil.Discard
	}
	if e.Log == nil {
		e.Log = logrus.StandardLogger()
	}

	report := Report{Direction: plan.Direction, DryRun: opts.DryRun}
	Present(out, plan, PresentOptions{ShowDiff: opts.ShowDiff, Color: opts.Color})
	if plan.Empty() {
		return report, nil
	}

	if opts.DryRun {
		fmt.Fprintln(out, "Dry run: no files were changed.")
		report.Entries = skipAll(plan.Entries, reasonDryRun)
		return report, nil
	}

	if e.Direction == Push && e.Backups == nil {
		return Report{}, errors.New("no backup store for push")
	}

	if !opts.AutoConfirm {
		if e.Prompt == nil {
			return Report{}, errors.New("no prompt to confirm the plan")
		}

		confirmed, err := e.Prompt(confirmQuestion(plan))
		if err != nil {
			return Report{}, errors.WithContext(err, "prompt")
		}

		if !confirmed {
			report.Declined = true
			report.Entries = skipAll(plan.Entries, reasonDeclined)
			return report, nil
		}
	}

	for i, entry := range plan.Entries {
		action := actionFor(entry)
		fileLog := e.Log.WithField("path", entry.Path)

		err := e.applyEntry(ctx, entry)
		if err == nil {
			fileLog.WithField("action", action).Debug("Applied file")
			report.Entries = append(report.Entries, ReportEntry{
				Path:    entry.Path,
				Action:  action,
				Outcome: OutcomeApplied,
			})
			continue
		}

		reason := errors.GetPrintableMessage(err)
		fileLog.WithError(err).Warn("Failed to sync file")

		var authErr errors.AuthError
		if errors.As(err, &authErr) {
			for _, remaining := range plan.Entries[i:] {
				report.Entries = append(report.Entries, ReportEntry{
					Path:    remaining.Path,
					Action:  actionFor(remaining),
					Outcome: OutcomeFailed,
					Reason:  reason,
				})
			}
			return report, err
		}

		report.Entries = append(report.Entries, ReportEntry{
			Path:    entry.Path,
			Action:  action,
			Outcome: OutcomeFailed,
			Reason:  reason,
		})
	}
	return report, nil
}

func (e Executor) applyEntry(ctx context.Context, entry DiffEntry) error {
	if e.Direction == Push {
		return e.push(ctx, entry)
	}
	return e.pull(entry)
}

func (e Executor) pull(entry DiffEntry) error {
	dst, err := localPath(e.LocalDir, entry.Path)
	if err != nil {
		return err
	}

	// Keep the permissions of files that are being updated.
	mode := os.FileMode(0644)
	if fi, err := fs.Stat(dst); err == nil {
		mode = fi.Mode().Perm()
	}

	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.FilesystemError{Op: "create directory", Path: filepath.Dir(dst), Err: err}
	}

	if err := afero.WriteFile(fs, dst, []byte(entry.RemoteContents), mode); err != nil {
		return errors.FilesystemError{Op: "write", Path: dst, Err: err}
	}
	return nil
}

func (e Executor) push(ctx context.Context, entry DiffEntry) error {
	if entry.Status == StatusModified {
		// The snapshot may be stale, so back up what's on the server now.
		current, err := e.Remote.FetchFile(ctx, e.ProjectID, entry.Path)
		if err != nil {
			return errors.WithContext(err, "read current remote contents")
		}

		backupPath, err := e.Backups.Backup(entry.Path, current)
		if err != nil {
			return errors.WithContext(err, "back up remote contents")
		}

		e.Log.WithField("path", entry.Path).WithField("backup", backupPath).
			Debug("Backed up remote file")
	}

	if err := e.Remote.WriteFile(ctx, e.ProjectID, entry.Path, entry.LocalContents); err != nil {
		return errors.WithContext(err, "write remote file")
	}
	return nil
}

func skipAll(entries []DiffEntry, reason string) (skipped []ReportEntry) {
	for _, entry := range entries {
		skipped = append(skipped, ReportEntry{
			Path:    entry.Path,
			Action:  actionFor(entry),
			Outcome: OutcomeSkipped,
			Reason:  reason,
		})
	}
	return skipped
}

func actionFor(entry DiffEntry) Action {
	if entry.Status == StatusNew {
		return ActionCreate
	}
	return ActionUpdate
}

func confirmQuestion(plan Plan) string {
	noun := "files"
	if len(plan.Entries) == 1 {
		noun = "file"
	}

	switch plan.Direction {
	case Push:
		return fmt.Sprintf("Push %d %s to the remote project?", len(plan.Entries), noun)
	default:
		return fmt.Sprintf("Pull %d %s into the local directory?", len(plan.Entries), noun)
	}
}

// localPath joins the slash separated path onto root, and ensures that the
// result is still within root.
func localPath(root, path string) (string, error) {
	joined := filepath.Join(root, filepath.FromSlash(path))
	relative, err := filepath.Rel(root, joined)
	if err != nil || relative == ".." || relative == "." ||
		strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", errors.FilesystemError{Op: "resolve", Path: path,
			Err: errors.New("path escapes %s", root)}
	}
	return joined, nil
}
