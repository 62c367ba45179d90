package sync

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/bolt-sync/cmd/util"
	"github.com/sidkik/bolt-sync/pkg/config"
	"github.com/sidkik/bolt-sync/pkg/errors"
	"github.com/sidkik/bolt-sync/pkg/remote"
	boltsync "github.com/sidkik/bolt-sync/pkg/sync"
)

// Mocked out for unit testing.
var (
	fs                        = afero.NewOsFs()
	stdout          io.Writer = os.Stdout
	newRemoteClient           = remote.New
	clock                     = clockwork.NewRealClock()
	promptYesOrNo             = util.PromptYesOrNo
	colorEnabled              = util.ColorEnabled
)

// runOptions are the options of a single pull, push, or compare.
type runOptions struct {
	direction boltsync.Direction
	projectID string
	localDir  string

	existingOnly bool
	dryRun       bool
	autoConfirm  bool
	noDiff       bool
	backupDir    string

	// compareOnly prints the plan and returns without applying it.
	compareOnly bool
}

// run snapshots both sides, computes the plan, and applies it. Errors that
// prevent the plan from being computed or applied are returned, while
// failures to sync individual files are only recorded in the report.
func run(ctx context.Context, global util.GlobalOptions, opts runOptions) (boltsync.Report, error) {
	cfg, err := config.Parse(global.ConfigPath)
	if err != nil {
		return boltsync.Report{}, errors.WithContext(err, "load config")
	}

	apiKey, err := global.GetAPIKey()
	if err != nil {
		return boltsync.Report{}, errors.WithContext(err, "get api key")
	}
	client := newRemoteClient(global.GetAPIURL(), apiKey)

	local, err := scanLocal(opts, cfg)
	if err != nil {
		return boltsync.Report{}, errors.WithContext(err, "scan local directory")
	}

	remoteFiles, err := boltsync.SnapshotRemote(ctx, client, opts.projectID, cfg)
	if err != nil {
		return boltsync.Report{}, errors.WithContext(err, "snapshot remote project")
	}

	log.WithFields(log.Fields{
		"direction": opts.direction,
		"local":     len(local),
		"remote":    len(remoteFiles),
	}).Debug("Took snapshots")

	plan := boltsync.Compute(local, remoteFiles, cfg, opts.direction,
		boltsync.PlanOptions{ExistingOnly: opts.existingOnly})

	if opts.compareOnly {
		boltsync.Present(stdout, plan, boltsync.PresentOptions{
			ShowDiff: !opts.noDiff,
			Color:    colorEnabled(),
		})
		return boltsync.Report{Direction: opts.direction, DryRun: true}, nil
	}

	executor := boltsync.Executor{
		Direction: opts.direction,
		ProjectID: opts.projectID,
		LocalDir:  opts.localDir,
		Remote:    client,
		Prompt:    promptYesOrNo,
		Out:       stdout,
		Log:       log.StandardLogger(),
	}

	var backups *boltsync.Backuper
	if opts.direction == boltsync.Push {
		backups, err = boltsync.NewBackuper(opts.backupDir, opts.projectID, clock)
		if err != nil {
			return boltsync.Report{}, errors.WithContext(err, "create backup directory")
		}
		executor.Backups = backups
	}

	report, err := executor.Apply(ctx, plan, boltsync.Options{
		DryRun:      opts.dryRun,
		AutoConfirm: opts.autoConfirm,
		ShowDiff:    !opts.noDiff,
		Color:       colorEnabled(),
	})
	printReport(report, plan, backups)
	if err != nil {
		return report, errors.WithContext(err, "apply")
	}
	return report, nil
}

// scanLocal reads the local tree. The local directory doesn't have to exist
// yet when pulling, since it's created by the first write.
func scanLocal(opts runOptions, cfg config.SyncConfig) (boltsync.FileTree, error) {
	if opts.direction == boltsync.Pull {
		exists, err := afero.DirExists(fs, opts.localDir)
		if err != nil {
			return nil, errors.WithContext(err, "stat")
		}

		if !exists {
			log.WithField("path", opts.localDir).Info(
				"Local directory doesn't exist. It will be created.")
			return boltsync.FileTree{}, nil
		}
	}
	return boltsync.ScanLocal(opts.localDir, cfg)
}

func printReport(report boltsync.Report, plan boltsync.Plan, backups *boltsync.Backuper) {
	switch {
	case plan.Empty(), report.DryRun:
		return
	case report.Declined:
		fmt.Fprintln(stdout, "Aborted. No files were changed.")
		return
	}

	fmt.Fprintln(stdout, report.Summary())
	for _, failure := range report.Failures() {
		fmt.Fprintf(stdout, "  %s: %s\n", failure.Path, failure.Reason)
	}

	if backups != nil && len(plan.Modified()) != 0 {
		fmt.Fprintf(stdout, "Overwritten remote files were backed up to %s\n", backups.Dir())
	}
}

// handleResult exits with an error if the sync failed, or if any file
// couldn't be synced.
func handleResult(report boltsync.Report, err error) {
	if err != nil {
		util.HandleFatalError(err)
		return
	}

	if n := report.Failed(); n != 0 {
		util.HandleFatalError(errors.NewFriendlyError(
			"Failed to %s %d file(s).", report.Direction, n))
	}
}
