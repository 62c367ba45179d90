package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/bolt-sync/cmd/createconfig"
	syncCmd "github.com/sidkik/bolt-sync/cmd/sync"
	"github.com/sidkik/bolt-sync/cmd/util"
	"github.com/sidkik/bolt-sync/cmd/version"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "BOLT_SYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		util.HandleFatalError(err)
	}
}

func newRootCommand() *cobra.Command {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	var global util.GlobalOptions
	rootCmd := &cobra.Command{
		Use:   "bolt-sync",
		Short: "Sync files between a local directory and a remote bolt.new project",
		Long: "bolt-sync compares the text files in a local directory with a remote\n" +
			"bolt.new (StackBlitz) project, and copies the differences in one direction.",
		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if global.Verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	global.RegisterFlags(rootCmd)

	rootCmd.AddCommand(
		syncCmd.NewPull(&global),
		syncCmd.NewPush(&global),
		syncCmd.NewCompare(&global),
		createconfig.New(),
		version.New(),
	)
	return rootCmd
}
