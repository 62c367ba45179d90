package sync

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sidkik/bolt-sync/cmd/util"
	boltsync "github.com/sidkik/bolt-sync/pkg/sync"
)

// NewPush creates a new `push` command.
func NewPush(global *util.GlobalOptions) *cobra.Command {
	opts := runOptions{direction: boltsync.Push}
	cmd := &cobra.Command{
		Use:   "push <project-id> <local-dir>",
		Short: "Copy files from a local directory into the remote project",
		Long: "Copy the text files that are new or modified in the local directory into\n" +
			"the remote project. Remote files are backed up before they're overwritten,\n" +
			"and remote files that don't exist locally are left untouched.",
		Args: cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			opts.projectID, opts.localDir = args[0], args[1]
			handleResult(run(context.Background(), *global, opts))
		},
	}
	registerApplyFlags(cmd, &opts)
	return cmd
}
