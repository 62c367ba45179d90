package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSetMatches(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		path    string
		exp     bool
	}{
		{name: "Exact", entries: []string{"package.json"}, path: "package.json", exp: true},
		{name: "ExactIsFullPath", entries: []string{"package.json"}, path: "web/package.json", exp: false},
		{name: "NestedExact", entries: []string{"web/package.json"}, path: "web/package.json", exp: true},
		{name: "LeadingDotSlash", entries: []string{"./.env"}, path: ".env", exp: true},
		{name: "Glob", entries: []string{"*.lock"}, path: "yarn.lock", exp: true},
		{name: "GlobStopsAtSeparator", entries: []string{"*.lock"}, path: "web/yarn.lock", exp: false},
		{name: "SuperAsterisk", entries: []string{"**.lock"}, path: "web/yarn.lock", exp: true},
		{name: "Alternatives", entries: []string{"{a,b}.txt"}, path: "b.txt", exp: true},
		{name: "InvalidGlobIsExact", entries: []string{"[unclosed"}, path: "[unclosed", exp: true},
		{name: "NoEntries", path: "anything", exp: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, newRuleSet(test.entries).Matches(test.path))
		})
	}
}

func TestUnderExcludedDir(t *testing.T) {
	excludeDirs := newRuleSet([]string{"node_modules", ".next"})

	assert.True(t, underExcludedDir(excludeDirs, "node_modules/react/index.js"))
	assert.True(t, underExcludedDir(excludeDirs, "web/.next/build.js"))
	assert.False(t, underExcludedDir(excludeDirs, "node_modules"))
	assert.False(t, underExcludedDir(excludeDirs, "src/node_modules.txt"))
	assert.False(t, underExcludedDir(excludeDirs, "index.js"))
}
