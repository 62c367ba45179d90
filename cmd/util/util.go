package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/sidkik/bolt-sync/pkg/errors"
	"github.com/sidkik/bolt-sync/pkg/remote"
)

const (
	// APIKeyEnv is the environment variable that holds the API key when it's
	// not passed with --api-key.
	APIKeyEnv = "BOLT_API_KEY"

	// APIURLEnv overrides the address of the API server.
	APIURLEnv = "BOLT_API_URL"

	// noColorEnv disables colored output when set to any value.
	noColorEnv = "NO_COLOR"
)

// Mocked out for unit testing.
var (
	stdin      io.Reader = os.Stdin
	stdout     io.Writer = os.Stdout
	stderr     io.Writer = os.Stderr
	exit                 = os.Exit
	getenv               = os.Getenv
	isTerminal           = func() bool { return terminal.IsTerminal(int(os.Stdout.Fd())) }
)

// GlobalOptions are the flags shared by all commands.
type GlobalOptions struct {
	APIKey     string
	APIURL     string
	ConfigPath string
	Verbose    bool
}

// RegisterFlags adds the global flags to cmd. They're inherited by all of
// its subcommands.
func (opts *GlobalOptions) RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.APIKey, "api-key", "",
		fmt.Sprintf("The API key for the remote service. Defaults to $%s.", APIKeyEnv))
	flags.StringVar(&opts.APIURL, "api-url", "",
		fmt.Sprintf("The address of the API server. Defaults to $%s, or %s.",
			APIURLEnv, remote.DefaultBaseURL))
	flags.StringVar(&opts.ConfigPath, "config", "",
		"The path to the sync rules. The built-in rules are used if it's not set.")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug information.")
}

// GetAPIKey returns the API key from the flags or the environment. It
// returns an AuthError if neither is set.
func (opts GlobalOptions) GetAPIKey() (string, error) {
	if opts.APIKey != "" {
		return opts.APIKey, nil
	}

	if key := strings.TrimSpace(getenv(APIKeyEnv)); key != "" {
		return key, nil
	}
	return "", errors.AuthError{Message: "no API key provided"}
}

// GetAPIURL returns the address of the API server.
func (opts GlobalOptions) GetAPIURL() string {
	if opts.APIURL != "" {
		return opts.APIURL
	}

	if url := getenv(APIURLEnv); url != "" {
		return url
	}
	return remote.DefaultBaseURL
}

// ColorEnabled returns whether output should be colored.
func ColorEnabled() bool {
	return getenv(noColorEnv) == "" && isTerminal()
}

// HandleFatalError prints the error and exits.
func HandleFatalError(err error) {
	log.WithError(err).Debug("Fatal error")
	fmt.Fprintln(stderr, errors.GetPrintableMessage(err))
	exit(1)
}

// HandlePanic logs a panic before the process exits. It must be deferred
// directly.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).Debug("Panic stack trace")
		fmt.Fprintf(stderr, "Unexpected error: %v\n", r)
		exit(1)
	}
}

// PromptYesOrNo asks the user a yes or no question. Anything other than an
// explicit yes is treated as no.
func PromptYesOrNo(prompt string) (bool, error) {
	fmt.Fprintf(stdout, "%s (y/N) ", prompt)

	resp, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.WithContext(err, "read response")
	}

	switch strings.ToLower(strings.TrimSpace(resp)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
