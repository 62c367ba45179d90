package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/sidkik/bolt-sync/pkg/errors"
)

// DefaultPath is the path `create-config` writes to when no output is given.
const DefaultPath = ".bolt-sync.json"

// parseConfigErrTemplate is a template for when the CLI fails to parse the
// configuration file. The decoder constructs errors in a way that loses
// context, so we can only pass the error message on.
const parseConfigErrTemplate = "Configuration file could not be parsed. " +
	"Please review %q.\n" +
	"Every key must be an array of strings, for example:\n" +
	"  {\"exclude_dirs\": [\"node_modules\"]}\n\n" +
	"For reference, here is the error from the parser:\n" +
	"%s"

var (
	defaultExcludeDirs     = []string{"venv", "__pycache__", "node_modules", ".next", ".idea"}
	defaultIgnoreFiles     = []string{}
	defaultSkipWhenPushing = []string{"next-env.d.ts", "yarn.lock", ".dockerignore", "package.json", "next.config.js"}
	defaultSkipWhenPulling = []string{".env", "package-lock.json", "package.json", "next.config.js"}
)

// SyncConfig contains the rules that decide which files are considered when
// comparing the local directory with the remote project.
type SyncConfig struct {
	// ExcludeDirs are directory names that are never descended into, at any
	// depth, on either side.
	ExcludeDirs []string `json:"exclude_dirs"`

	// IgnoreFiles are never pushed, pulled, or reported as different.
	IgnoreFiles []string `json:"ignore_files"`

	// SkipWhenPushing and SkipWhenPulling only apply to their direction.
	SkipWhenPushing []string `json:"skip_when_pushing"`
	SkipWhenPulling []string `json:"skip_when_pulling"`
}

// rawSyncConfig is the on-disk form of SyncConfig. Pointers distinguish keys
// that are absent from keys set to an empty list.
type rawSyncConfig struct {
	ExcludeDirs     *[]string `json:"exclude_dirs"`
	IgnoreFiles     *[]string `json:"ignore_files"`
	SkipWhenPushing *[]string `json:"skip_when_pushing"`
	SkipWhenPulling *[]string `json:"skip_when_pulling"`
}

// Mocked out for unit testing.
var (
	fs            = afero.NewOsFs()
	homedirExpand = homedir.Expand
)

// Default returns the built-in rules.
func Default() SyncConfig {
	return SyncConfig{
		ExcludeDirs:     copyStrings(defaultExcludeDirs),
		IgnoreFiles:     copyStrings(defaultIgnoreFiles),
		SkipWhenPushing: copyStrings(defaultSkipWhenPushing),
		SkipWhenPulling: copyStrings(defaultSkipWhenPulling),
	}
}

// Parse loads the rules at path. An empty path returns the defaults. Keys
// that are missing from the file fall back to their default individually.
func Parse(path string) (SyncConfig, error) {
	if path == "" {
		return Default(), nil
	}

	expanded, err := homedirExpand(path)
	if err != nil {
		return SyncConfig{}, errors.ConfigError{Path: path,
			Err: errors.WithContext(err, "expand path")}
	}

	configBytes, err := afero.ReadFile(fs, expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return SyncConfig{}, errors.ConfigError{Path: expanded,
				Err: errors.FileNotFound{Path: expanded}}
		}
		return SyncConfig{}, errors.ConfigError{Path: expanded,
			Err: errors.WithContext(err, "read file")}
	}

	var raw rawSyncConfig
	if err := unmarshal(expanded, configBytes, &raw); err != nil {
		return SyncConfig{}, errors.ConfigError{Path: expanded,
			Err: errors.NewFriendlyError(parseConfigErrTemplate, expanded, err)}
	}
	return raw.resolve(), nil
}

// WriteDefault writes the default rules to path. It refuses to replace an
// existing file unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	expanded, err := homedirExpand(path)
	if err != nil {
		return errors.ConfigError{Path: path, Err: errors.WithContext(err, "expand path")}
	}

	exists, err := afero.Exists(fs, expanded)
	if err != nil {
		return errors.ConfigError{Path: expanded, Err: errors.WithContext(err, "stat")}
	}
	if exists && !overwrite {
		return errors.ConfigError{Path: expanded, Err: errors.NewFriendlyError(
			"Config file %s already exists. Use --force to overwrite.", expanded)}
	}

	configBytes, err := marshal(expanded, Default())
	if err != nil {
		return errors.ConfigError{Path: expanded, Err: errors.WithContext(err, "marshal")}
	}

	if dir := filepath.Dir(expanded); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.ConfigError{Path: expanded, Err: errors.WithContext(err, "create directory")}
		}
	}

	if err := afero.WriteFile(fs, expanded, configBytes, 0644); err != nil {
		return errors.ConfigError{Path: expanded, Err: errors.WithContext(err, "write")}
	}
	return nil
}

func (raw rawSyncConfig) resolve() SyncConfig {
	pick := func(value *[]string, def []string) []string {
		if value == nil || *value == nil {
			return copyStrings(def)
		}
		return *value
	}

	return SyncConfig{
		ExcludeDirs:     pick(raw.ExcludeDirs, defaultExcludeDirs),
		IgnoreFiles:     pick(raw.IgnoreFiles, defaultIgnoreFiles),
		SkipWhenPushing: pick(raw.SkipWhenPushing, defaultSkipWhenPushing),
		SkipWhenPulling: pick(raw.SkipWhenPulling, defaultSkipWhenPulling),
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(path string, data []byte, out interface{}) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, out)
	}
	return json.Unmarshal(data, out)
}

func marshal(path string, cfg SyncConfig) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(jsonBytes, '\n'), nil
}

func copyStrings(strs []string) []string {
	return append([]string{}, strs...)
}
