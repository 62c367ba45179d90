package config

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidkik/bolt-sync/pkg/errors"
)

func TestParse(t *testing.T) {
	path := "/project/.bolt-sync.json"

	tests := []struct {
		name      string
		path      string
		input     string
		expConfig SyncConfig
		expError  bool
	}{
		{
			name:      "NoPath",
			expConfig: Default(),
		},
		{
			name: "FullOverride",
			path: path,
			input: `{
  "exclude_dirs": ["dist"],
  "ignore_files": ["package.json"],
  "skip_when_pushing": ["a"],
  "skip_when_pulling": ["b"]
}`,
			expConfig: SyncConfig{
				ExcludeDirs:     []string{"dist"},
				IgnoreFiles:     []string{"package.json"},
				SkipWhenPushing: []string{"a"},
				SkipWhenPulling: []string{"b"},
			},
		},
		{
			name:  "PartialOverride",
			path:  path,
			input: `{"ignore_files": ["package.json"]}`,
			expConfig: SyncConfig{
				ExcludeDirs:     defaultExcludeDirs,
				IgnoreFiles:     []string{"package.json"},
				SkipWhenPushing: defaultSkipWhenPushing,
				SkipWhenPulling: defaultSkipWhenPulling,
			},
		},
		{
			name:  "EmptyListIsNotDefault",
			path:  path,
			input: `{"exclude_dirs": []}`,
			expConfig: SyncConfig{
				ExcludeDirs:     []string{},
				IgnoreFiles:     []string{},
				SkipWhenPushing: defaultSkipWhenPushing,
				SkipWhenPulling: defaultSkipWhenPulling,
			},
		},
		{
			name:      "NullUsesDefault",
			path:      path,
			input:     `{"exclude_dirs": null}`,
			expConfig: Default(),
		},
		{
			name:      "UnknownKeysIgnored",
			path:      path,
			input:     `{"extra": true, "version": 2}`,
			expConfig: Default(),
		},
		{
			name:     "InvalidJSON",
			path:     path,
			input:    `{"exclude_dirs": [`,
			expError: true,
		},
		{
			name:     "WrongType",
			path:     path,
			input:    `{"exclude_dirs": "node_modules"}`,
			expError: true,
		},
		{
			name:     "NotAnObject",
			path:     path,
			input:    `["node_modules"]`,
			expError: true,
		},
		{
			name: "YAML",
			path: "/project/.bolt-sync.yaml",
			input: `exclude_dirs:
- dist
skip_when_pulling: []
`,
			expConfig: SyncConfig{
				ExcludeDirs:     []string{"dist"},
				IgnoreFiles:     []string{},
				SkipWhenPushing: defaultSkipWhenPushing,
				SkipWhenPulling: []string{},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			fs = afero.NewMemMapFs()
			if test.path != "" {
				require.NoError(t, afero.WriteFile(fs, test.path, []byte(test.input), 0644))
			}

			cfg, err := Parse(test.path)
			if test.expError {
				var configErr errors.ConfigError
				assert.True(t, errors.As(err, &configErr), "expected ConfigError, got %v", err)
				assert.Equal(t, test.path, configErr.Path)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expConfig, cfg)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	fs = afero.NewMemMapFs()

	_, err := Parse("/does/not/exist.json")
	assert.Equal(t, errors.ConfigError{
		Path: "/does/not/exist.json",
		Err:  errors.FileNotFound{Path: "/does/not/exist.json"},
	}, err)
}

func TestParseExpandsHome(t *testing.T) {
	fs = afero.NewMemMapFs()
	origExpand := homedirExpand
	homedirExpand = func(path string) (string, error) {
		return "/home/user/" + path[2:], nil
	}
	defer func() { homedirExpand = origExpand }()

	require.NoError(t, afero.WriteFile(fs, "/home/user/sync.json",
		[]byte(`{"exclude_dirs": ["build"]}`), 0644))

	cfg, err := Parse("~/sync.json")
	assert.NoError(t, err)
	assert.Equal(t, []string{"build"}, cfg.ExcludeDirs)
}

func TestDefaultIsCopied(t *testing.T) {
	cfg := Default()
	cfg.ExcludeDirs[0] = "changed"
	assert.Equal(t, "venv", Default().ExcludeDirs[0])
}

func TestWriteDefault(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		existing  bool
		overwrite bool
		expError  bool
	}{
		{name: "New", path: "/out/.bolt-sync.json"},
		{name: "NestedDirectory", path: "/out/nested/dir/config.json"},
		{name: "ExistsWithoutForce", path: "/out/.bolt-sync.json", existing: true, expError: true},
		{name: "ExistsWithForce", path: "/out/.bolt-sync.json", existing: true, overwrite: true},
		{name: "YAML", path: "/out/config.yml"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			fs = afero.NewMemMapFs()
			if test.existing {
				require.NoError(t, afero.WriteFile(fs, test.path, []byte("old"), 0644))
			}

			err := WriteDefault(test.path, test.overwrite)
			if test.expError {
				var configErr errors.ConfigError
				assert.True(t, errors.As(err, &configErr))
				assert.Equal(t,
					fmt.Sprintf("The configuration file %q could not be used.\n"+
						"Config file %s already exists. Use --force to overwrite.",
						test.path, test.path),
					errors.GetPrintableMessage(err))

				contents, err := afero.ReadFile(fs, test.path)
				assert.NoError(t, err)
				assert.Equal(t, "old", string(contents))
				return
			}
			assert.NoError(t, err)

			// The written file should parse back into the defaults.
			cfg, err := Parse(test.path)
			assert.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestWriteDefaultFormat(t *testing.T) {
	fs = afero.NewMemMapFs()
	assert.NoError(t, WriteDefault("/.bolt-sync.json", false))

	contents, err := afero.ReadFile(fs, "/.bolt-sync.json")
	assert.NoError(t, err)
	assert.Equal(t, `{
  "exclude_dirs": [
    "venv",
    "__pycache__",
    "node_modules",
    ".next",
    ".idea"
  ],
  "ignore_files": [],
  "skip_when_pushing": [
    "next-env.d.ts",
    "yarn.lock",
    ".dockerignore",
    "package.json",
    "next.config.js"
  ],
  "skip_when_pulling": [
    ".env",
    "package-lock.json",
    "package.json",
    "next.config.js"
  ]
}
`, string(contents))
}
