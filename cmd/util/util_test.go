package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/sidkik/bolt-sync/pkg/errors"
	"github.com/sidkik/bolt-sync/pkg/remote"
)

func mockEnv(env map[string]string) {
	getenv = func(key string) string { return env[key] }
}

func TestGetAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      map[string]string
		expKey   string
		expError error
	}{
		{
			name:   "Flag",
			flag:   "from-flag",
			env:    map[string]string{APIKeyEnv: "from-env"},
			expKey: "from-flag",
		},
		{
			name:   "Environment",
			env:    map[string]string{APIKeyEnv: " from-env\n"},
			expKey: "from-env",
		},
		{
			name:     "Missing",
			env:      map[string]string{},
			expError: errors.AuthError{Message: "no API key provided"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			mockEnv(test.env)
			key, err := GlobalOptions{APIKey: test.flag}.GetAPIKey()
			assert.Equal(t, test.expError, err)
			assert.Equal(t, test.expKey, key)
		})
	}
}

func TestGetAPIURL(t *testing.T) {
	mockEnv(map[string]string{})
	assert.Equal(t, remote.DefaultBaseURL, GlobalOptions{}.GetAPIURL())

	mockEnv(map[string]string{APIURLEnv: "http://env"})
	assert.Equal(t, "http://env", GlobalOptions{}.GetAPIURL())
	assert.Equal(t, "http://flag", GlobalOptions{APIURL: "http://flag"}.GetAPIURL())
}

func TestColorEnabled(t *testing.T) {
	isTerminal = func() bool { return true }
	mockEnv(map[string]string{})
	assert.True(t, ColorEnabled())

	mockEnv(map[string]string{noColorEnv: "1"})
	assert.False(t, ColorEnabled())

	isTerminal = func() bool { return false }
	mockEnv(map[string]string{})
	assert.False(t, ColorEnabled())
}

func TestRegisterFlags(t *testing.T) {
	var opts GlobalOptions
	root := &cobra.Command{Use: "root", Run: func(*cobra.Command, []string) {}}
	opts.RegisterFlags(root)

	root.SetArgs([]string{"--api-key", "key", "--api-url", "http://url", "--config", "cfg.json", "-v"})
	assert.NoError(t, root.Execute())
	assert.Equal(t, GlobalOptions{
		APIKey:     "key",
		APIURL:     "http://url",
		ConfigPath: "cfg.json",
		Verbose:    true,
	}, opts)
}

func TestPromptYesOrNo(t *testing.T) {
	tests := []struct {
		input string
		exp   bool
	}{
		{input: "y\n", exp: true},
		{input: "YES\n", exp: true},
		{input: " yes \n", exp: true},
		{input: "n\n", exp: false},
		{input: "\n", exp: false},
		{input: "", exp: false},
		{input: "maybe\n", exp: false},
		{input: "y", exp: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.input, func(t *testing.T) {
			var out bytes.Buffer
			stdin = strings.NewReader(test.input)
			stdout = &out

			resp, err := PromptYesOrNo("Continue?")
			assert.NoError(t, err)
			assert.Equal(t, test.exp, resp)
			assert.Equal(t, "Continue? (y/N) ", out.String())
		})
	}
}

func TestHandleFatalError(t *testing.T) {
	var out bytes.Buffer
	var exitCode int
	stderr = &out
	exit = func(code int) { exitCode = code }

	HandleFatalError(errors.WithContext(errors.AuthError{}, "get api key"))
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "No API key was provided.\n"+
		"Set the BOLT_API_KEY environment variable or pass --api-key.\n", out.String())

	out.Reset()
	HandleFatalError(errors.WithContext(errors.New("boom"), "sync"))
	assert.Equal(t, "sync: boom\n", out.String())
}

func TestHandlePanic(t *testing.T) {
	var out bytes.Buffer
	var exitCode int
	stderr = &out
	exit = func(code int) { exitCode = code }

	func() {
		defer HandlePanic()
		panic("oops")
	}()
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "Unexpected error: oops\n", out.String())
}
