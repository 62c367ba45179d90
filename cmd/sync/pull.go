package sync

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sidkik/bolt-sync/cmd/util"
	boltsync "github.com/sidkik/bolt-sync/pkg/sync"
)

// NewPull creates a new `pull` command.
func NewPull(global *util.GlobalOptions) *cobra.Command {
	opts := runOptions{direction: boltsync.Pull}
	cmd := &cobra.Command{
		Use:   "pull <project-id> <local-dir>",
		Short: "Copy files from the remote project into a local directory",
		Long: "Copy the text files that are new or modified in the remote project into\n" +
			"the local directory. Local files that don't exist remotely are left untouched.",
		Args: cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			opts.projectID, opts.localDir = args[0], args[1]
			handleResult(run(context.Background(), *global, opts))
		},
	}
	cmd.Flags().BoolVar(&opts.existingOnly, "existing-only", false,
		"Only update files that already exist locally.")
	registerApplyFlags(cmd, &opts)
	return cmd
}

func registerApplyFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"Print the changes without applying them.")
	cmd.Flags().BoolVarP(&opts.autoConfirm, "yes", "y", false,
		"Apply the changes without asking for confirmation.")
	cmd.Flags().BoolVar(&opts.noDiff, "no-diff", false,
		"Don't print the diff of modified files.")
	cmd.Flags().StringVar(&opts.backupDir, "backup-dir", boltsync.DefaultBackupRoot,
		"The directory that remote files are backed up to before they're overwritten.")
}
