package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	good := document(`
  <keys>
    <key name="BTN_TRIGGER"><action type="simple"><keyCombination>KEY_A</keyCombination></action></key>
  </keys>`)

	writeFile(t, dir, "b.profile", good)
	writeFile(t, dir, "a.profile", good)
	writeFile(t, dir, "broken.profile", document(`<keys><key/></keys>`))
	writeFile(t, dir, "notes.txt", "not a profile")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.profile"), 0o755))

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	loaded, failures, err := LoadDir(dir, WithLogger(logger))
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	assert.Equal(t, filepath.Join(dir, "a.profile"), loaded[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.profile"), loaded[1].Path)
	assert.Equal(t, "Test profile", loaded[0].Profile.Name)

	require.Len(t, failures, 1)
	assert.Equal(t, filepath.Join(dir, "broken.profile"), failures[0].Path)
	assert.ErrorIs(t, failures[0].Err, ErrMissingAttribute)

	var warnings int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
			assert.Equal(t, filepath.Join(dir, "broken.profile"), entry.Data["document"])
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestLoadDirExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pad.xml", document(""))
	writeFile(t, dir, "pad.profile", document(""))

	loaded, failures, err := LoadDir(dir, WithExtension("xml"))
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, loaded, 1)
	assert.Equal(t, filepath.Join(dir, "pad.xml"), loaded[0].Path)
}

func TestLoadDirMissing(t *testing.T) {
	_, _, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.profile"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
