package createconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidkik/bolt-sync/cmd/util"
	"github.com/sidkik/bolt-sync/pkg/config"
	"github.com/sidkik/bolt-sync/pkg/errors"
)

// Mocked out for unit testing.
var (
	stdout       io.Writer = os.Stdout
	writeDefault           = config.WriteDefault
)

// New creates a new `create-config` command.
func New() *cobra.Command {
	var output string
	var force bool
	cmd := &cobra.Command{
		Use:   "create-config",
		Short: "Write the default sync rules to a file",
		Long: "Write the default sync rules to a file, so that they can be customized\n" +
			"and passed to other commands with --config.",
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(output, force); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultPath,
		"The path to write the rules to. Paths ending in .yaml or .yml are written as YAML.")
	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite the file if it already exists.")
	return cmd
}

func run(output string, force bool) error {
	if err := writeDefault(output, force); err != nil {
		return errors.WithContext(err, "write config")
	}

	fmt.Fprintf(stdout, "Wrote the default sync rules to %s\n", output)
	return nil
}
