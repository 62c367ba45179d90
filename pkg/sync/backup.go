package sync

import (
	"path/filepath"

	"github.com/jonboulle/clockwork"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/sidkik/bolt-sync/pkg/errors"
)

// DefaultBackupRoot is where remote files are backed up to before they're
// overwritten, unless another directory is configured.
const DefaultBackupRoot = "~/.bolt-sync/backups"

// backupTimeFormat is used to name the directory of each run. It sorts
// chronologically.
const backupTimeFormat = "20060102T150405.000000000Z"

// Mocked out for unit testing.
var homedirExpand = homedir.Expand

// BackupStore saves the remote contents of a file before it's overwritten.
type BackupStore interface {
	// Backup stores contents, and returns where it was stored.
	Backup(path, contents string) (string, error)
}

// Backuper stores backups on the local filesystem. All the backups made by
// the same Backuper share a directory named after the time it was created:
// <root>/<projectID>/<timestamp>/<path>.
type Backuper struct {
	dir string
}

// NewBackuper creates a Backuper for a single run against projectID.
func NewBackuper(root, projectID string, clock clockwork.Clock) (*Backuper, error) {
	if root == "" {
		root = DefaultBackupRoot
	}

	expanded, err := homedirExpand(root)
	if err != nil {
		return nil, errors.WithContext(err, "expand backup directory")
	}

	projectDir, err := localPath(expanded, projectID)
	if err != nil {
		return nil, errors.WithContext(err, "project backup directory")
	}

	timestamp := clock.Now().UTC().Format(backupTimeFormat)
	return &Backuper{dir: filepath.Join(projectDir, timestamp)}, nil
}

// Dir returns the directory that backups are written to.
func (b *Backuper) Dir() string {
	return b.dir
}

// Backup writes contents to the backup directory, at the same relative path
// as the file in the project.
func (b *Backuper) Backup(path, contents string) (string, error) {
	dst, err := localPath(b.dir, path)
	if err != nil {
		return "", err
	}

	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.FilesystemError{Op: "create backup directory", Path: dst, Err: err}
	}

	if err := afero.WriteFile(fs, dst, []byte(contents), 0644); err != nil {
		return "", errors.FilesystemError{Op: "write backup", Path: dst, Err: err}
	}
	return dst, nil
}
