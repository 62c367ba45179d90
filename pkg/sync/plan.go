package sync

import (
	"sort"
	"strings"

	"github.com/sidkik/bolt-sync/pkg/config"
	"github.com/sidkik/bolt-sync/pkg/errors"
)

// Direction is the direction that files are copied in.
type Direction int

const (
	// Pull copies files from the remote project to the local directory.
	Pull Direction = iota

	// Push copies files from the local directory to the remote project.
	Push
)

func (direction Direction) String() string {
	if direction == Push {
		return "push"
	}
	return "pull"
}

// ParseDirection converts the user facing name of a direction.
func ParseDirection(str string) (Direction, error) {
	switch strings.ToLower(str) {
	case "pull":
		return Pull, nil
	case "push":
		return Push, nil
	}
	return 0, errors.NewFriendlyError("Unknown direction %q. It must be either \"pull\" or \"push\".", str)
}

// Status describes how a path differs between the local and remote trees.
type Status string

const (
	// StatusNew means the path only exists on the source side.
	StatusNew Status = "new"

	// StatusModified means the path exists on both sides with different
	// contents.
	StatusModified Status = "modified"

	// StatusRemoved means the path only exists on the destination side.
	StatusRemoved Status = "removed"

	// StatusUnchanged means the contents are identical on both sides.
	StatusUnchanged Status = "unchanged"
)

// DiffEntry is a single path that needs to be synced.
type DiffEntry struct {
	Path   string
	Status Status

	LocalContents  string
	RemoteContents string

	// DiffText is the unified diff from the remote contents to the local
	// contents. It's only set for modified files.
	DiffText string
}

// SourceContents returns the contents that will be written to the
// destination.
func (entry DiffEntry) SourceContents(direction Direction) string {
	if direction == Push {
		return entry.LocalContents
	}
	return entry.RemoteContents
}

// Plan is the set of changes required to sync the destination with the
// source.
type Plan struct {
	Direction Direction

	// Entries are the new and modified files, sorted by path.
	Entries []DiffEntry

	// DestinationOnly are the paths that only exist on the destination. They
	// are left untouched.
	DestinationOnly []string
}

// Empty returns whether there's nothing to sync.
func (plan Plan) Empty() bool {
	return len(plan.Entries) == 0
}

// New returns the entries for files that don't exist on the destination yet.
func (plan Plan) New() []DiffEntry {
	return plan.withStatus(StatusNew)
}

// Modified returns the entries for files whose contents differ.
func (plan Plan) Modified() []DiffEntry {
	return plan.withStatus(StatusModified)
}

func (plan Plan) withStatus(status Status) (entries []DiffEntry) {
	for _, entry := range plan.Entries {
		if entry.Status == status {
			entries = append(entries, entry)
		}
	}
	return entries
}

// PlanOptions modify how the plan is computed.
type PlanOptions struct {
	// ExistingOnly drops new files from pull plans, so that only files that
	// already exist locally are updated.
	ExistingOnly bool
}

// Compute compares the local and remote trees, and returns the changes
// required to make the destination of direction match its source.
func Compute(local, remote FileTree, cfg config.SyncConfig, direction Direction,
	opts PlanOptions) Plan {

	ignored := newRuleSet(cfg.IgnoreFiles)
	skipped := newRuleSet(cfg.SkipWhenPulling)
	if direction == Push {
		skipped = newRuleSet(cfg.SkipWhenPushing)
	}

	plan := Plan{Direction: direction}
	for _, path := range unionPaths(local, remote) {
		if ignored.Matches(path) || skipped.Matches(path) {
			continue
		}

		localFile, inLocal := local[path]
		remoteFile, inRemote := remote[path]
		entry := DiffEntry{
			Path:           path,
			Status:         classify(direction, inLocal, inRemote, localFile, remoteFile),
			LocalContents:  localFile.Contents,
			RemoteContents: remoteFile.Contents,
		}

		switch entry.Status {
		case StatusUnchanged:
			continue
		case StatusRemoved:
			plan.DestinationOnly = append(plan.DestinationOnly, path)
			continue
		case StatusNew:
			if direction == Pull && opts.ExistingOnly {
				continue
			}
		case StatusModified:
			entry.DiffText = UnifiedDiff(path, remoteFile.Contents, localFile.Contents)
		}
		plan.Entries = append(plan.Entries, entry)
	}
	return plan
}

func classify(direction Direction, inLocal, inRemote bool, localFile, remoteFile FileRecord) Status {
	inSource, inDestination := inRemote, inLocal
	if direction == Push {
		inSource, inDestination = inLocal, inRemote
	}

	switch {
	case inSource && !inDestination:
		return StatusNew
	case !inSource && inDestination:
		return StatusRemoved
	case localFile.Contents != remoteFile.Contents:
		return StatusModified
	default:
		return StatusUnchanged
	}
}

func unionPaths(trees ...FileTree) []string {
	set := map[string]struct{}{}
	for _, tree := range trees {
		for path := range tree {
			set[path] = struct{}{}
		}
	}

	var paths []string
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
