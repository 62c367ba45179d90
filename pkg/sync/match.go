package sync

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
	log "github.com/sirupsen/logrus"
)

// globChars are the characters that make a rule entry a glob pattern rather
// than a literal path.
const globChars = "*?[{"

// ruleSet matches paths against the entries of a config list. An entry
// matches a path if it's exactly equal to it, or if it's a glob pattern that
// matches it.
type ruleSet struct {
	exact map[string]struct{}
	globs []glob.Glob
}

func newRuleSet(entries []string) ruleSet {
	rules := ruleSet{exact: map[string]struct{}{}}
	for _, entry := range entries {
		entry = strings.TrimPrefix(entry, "./")
		rules.exact[entry] = struct{}{}

		if !strings.ContainsAny(entry, globChars) {
			continue
		}

		g, err := glob.Compile(entry, '/')
		if err != nil {
			log.WithError(err).WithField("pattern", entry).Warn(
				"Failed to compile pattern. It will only match paths exactly.")
			continue
		}
		rules.globs = append(rules.globs, g)
	}
	return rules
}

// Matches returns whether any entry matches path.
func (rules ruleSet) Matches(path string) bool {
	if _, ok := rules.exact[path]; ok {
		return true
	}

	for _, g := range rules.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// underExcludedDir returns whether any parent directory of the slash
// separated path has a name that's matched by excludeDirs.
func underExcludedDir(excludeDirs ruleSet, filePath string) bool {
	dir := path.Dir(filePath)
	for dir != "." && dir != "/" {
		if excludeDirs.Matches(path.Base(dir)) {
			return true
		}
		dir = path.Dir(dir)
	}
	return false
}
