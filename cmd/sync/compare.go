package sync

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sidkik/bolt-sync/cmd/util"
	boltsync "github.com/sidkik/bolt-sync/pkg/sync"
)

const compareLong = `Print the files that a pull or push would change, without changing them.

The skip rules of a push are used unless --direction=pull is given, since push
is the direction that overwrites remote files.`

// NewCompare creates a new `compare` command.
func NewCompare(global *util.GlobalOptions) *cobra.Command {
	var direction string
	opts := runOptions{compareOnly: true}
	cmd := &cobra.Command{
		Use:   "compare <project-id> <local-dir>",
		Short: "Print the differences between the remote project and a local directory",
		Long:  compareLong,
		Args:  cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			var err error
			if opts.direction, err = boltsync.ParseDirection(direction); err != nil {
				util.HandleFatalError(err)
				return
			}

			opts.projectID, opts.localDir = args[0], args[1]
			handleResult(run(context.Background(), *global, opts))
		},
	}
	cmd.Flags().StringVar(&direction, "direction", "push",
		"The direction to compare for, either \"pull\" or \"push\". "+
			"It decides which skip rules apply. Defaults to push.")
	cmd.Flags().BoolVar(&opts.noDiff, "no-diff", false,
		"Don't print the diff of modified files.")
	cmd.Flags().BoolVar(&opts.existingOnly, "existing-only", false,
		"When comparing for a pull, only show files that already exist locally.")
	return cmd
}
