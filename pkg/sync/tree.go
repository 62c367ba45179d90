package sync

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/bolt-sync/pkg/config"
	"github.com/sidkik/bolt-sync/pkg/errors"
	"github.com/sidkik/bolt-sync/pkg/remote"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// Origin is the side of the sync that a file was read from.
type Origin int

const (
	// Local files are read from the user's machine.
	Local Origin = iota

	// Remote files are read from the remote project.
	Remote
)

func (origin Origin) String() string {
	if origin == Remote {
		return "remote"
	}
	return "local"
}

// FileRecord is a text file read from one side of the sync.
type FileRecord struct {
	// Path is the slash separated path relative to the project root.
	Path     string
	Contents string
	Origin   Origin
}

// FileTree is a collection of files from one side, keyed by Path.
type FileTree map[string]FileRecord

// Add inserts f into the tree.
func (tree FileTree) Add(f FileRecord) {
	tree[f.Path] = f
}

// Paths returns the paths in the tree in sorted order.
func (tree FileTree) Paths() []string {
	var paths []string
	for path := range tree {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ScanLocal reads all the text files under root. Directories matched by the
// config's ExcludeDirs are skipped at any depth.
func ScanLocal(root string, cfg config.SyncConfig) (FileTree, error) {
	fi, err := fs.Stat(root)
	if err != nil {
		return nil, errors.FilesystemError{Op: "scan", Path: root, Err: err}
	}
	if !fi.IsDir() {
		return nil, errors.FilesystemError{Op: "scan", Path: root,
			Err: errors.New("not a directory")}
	}

	// Walk doesn't follow a symlinked root.
	resolved, err := resolveRoot(root)
	if err != nil {
		return nil, errors.FilesystemError{Op: "resolve", Path: root, Err: err}
	}
	root = resolved

	excludeDirs := newRuleSet(cfg.ExcludeDirs)
	tree := FileTree{}
	err = afero.Walk(fs, root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return errors.FilesystemError{Op: "scan", Path: path, Err: err}
		}

		if fi.IsDir() {
			if path != root && excludeDirs.Matches(fi.Name()) {
				log.WithField("path", path).Debug("Skipping excluded directory")
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks, sockets, and other special files aren't synced.
		if !fi.Mode().IsRegular() {
			return nil
		}

		relativePath, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(relativePath, "..") {
			return errors.FilesystemError{Op: "normalize", Path: path,
				Err: errors.WithContext(err, "relative path")}
		}
		relativePath = filepath.ToSlash(relativePath)

		contents, err := afero.ReadFile(fs, path)
		if err != nil {
			return errors.FilesystemError{Op: "read", Path: path, Err: err}
		}

		if !utf8.Valid(contents) {
			log.WithField("path", relativePath).Debug("Skipping file that isn't UTF-8 text")
			return nil
		}

		tree.Add(FileRecord{
			Path:     relativePath,
			Contents: string(contents),
			Origin:   Local,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func resolveRoot(root string) (string, error) {
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return root, nil
	}

	fi, lstatCalled, err := lstater.LstatIfPossible(root)
	if err != nil || !lstatCalled || fi.Mode()&os.ModeSymlink == 0 {
		return root, err
	}
	return filepath.EvalSymlinks(root)
}

// SnapshotRemote reads all the text files in the remote project. Files under
// directories matched by the config's ExcludeDirs aren't read.
func SnapshotRemote(ctx context.Context, client remote.Client, projectID string,
	cfg config.SyncConfig) (FileTree, error) {

	entries, err := client.ListFiles(ctx, projectID)
	if err != nil {
		return nil, errors.WithContext(err, "list remote files")
	}

	excludeDirs := newRuleSet(cfg.ExcludeDirs)
	tree := FileTree{}
	for _, entry := range remote.FilterFiles(entries) {
		path := entry.Path
		if underExcludedDir(excludeDirs, path) {
			continue
		}

		contents, err := client.ReadFile(ctx, projectID, path)
		if err != nil {
			var decodeErr errors.DecodeError
			if errors.As(err, &decodeErr) {
				log.WithField("path", path).Debug("Skipping remote file that isn't UTF-8 text")
				continue
			}
			return nil, errors.WithContext(err, "read remote file "+path)
		}

		tree.Add(FileRecord{
			Path:     path,
			Contents: contents,
			Origin:   Remote,
		})
	}
	return tree, nil
}
