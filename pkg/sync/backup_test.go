package sync

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backupTime = time.Date(2023, 11, 14, 22, 13, 20, 5, time.UTC)

func TestBackuper(t *testing.T) {
	fs = afero.NewMemMapFs()

	backuper, err := NewBackuper("/backups", "proj", clockwork.NewFakeClockAt(backupTime))
	require.NoError(t, err)
	assert.Equal(t, "/backups/proj/20231114T221320.000000005Z", backuper.Dir())

	path, err := backuper.Backup("src/app.ts", "old contents")
	require.NoError(t, err)
	assert.Equal(t, "/backups/proj/20231114T221320.000000005Z/src/app.ts", path)

	contents, err := afero.ReadFile(fs, path)
	assert.NoError(t, err)
	assert.Equal(t, "old contents", string(contents))

	_, err = backuper.Backup("../../escape", "contents")
	assert.Error(t, err)
}

func TestBackuperDefaultRoot(t *testing.T) {
	origExpand := homedirExpand
	homedirExpand = func(path string) (string, error) {
		assert.Equal(t, DefaultBackupRoot, path)
		return "/home/user/.bolt-sync/backups", nil
	}
	defer func() { homedirExpand = origExpand }()

	backuper, err := NewBackuper("", "proj", clockwork.NewFakeClockAt(backupTime))
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.bolt-sync/backups/proj/20231114T221320.000000005Z", backuper.Dir())
}

func TestBackuperInvalidProject(t *testing.T) {
	_, err := NewBackuper("/backups", "../other", clockwork.NewFakeClockAt(backupTime))
	assert.Error(t, err)
}
