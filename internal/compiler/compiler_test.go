package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/joyprog/internal/profile/parser"
)

const goodProfile = `<?xml version="1.0" encoding="utf-8"?>
<joystickProfile name="Flight" autoLoad="yes">
  <identity>
    <inputID busType="usb" vendor="046d" product="c215" version="0111"/>
    <name>Logitech Extreme 3D</name>
    <phys>usb-0000:00:14.0-2/input0</phys>
  </identity>
  <shiftLevels>
    <shiftLevel>
      <shiftState/>
      <shiftState><key name="BTN_PINKIE" value="1"/></shiftState>
    </shiftLevel>
  </shiftLevels>
  <keys>
    <key name="BTN_TRIGGER">
      <shift fromState="0" toState="0">
        <action type="simple"><keyCombination>KEY_A</keyCombination></action>
      </shift>
      <shift fromState="1" toState="1">
        <action type="mouseMove" direction="vertical" a="2"/>
      </shift>
    </key>
  </keys>
</joystickProfile>
`

const badProfile = `<?xml version="1.0" encoding="utf-8"?>
<joystickProfile>
</joystickProfile>
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompileFile(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "compiled")
	path := writeDoc(t, src, "flight.profile", goodProfile)

	c := New(WithOutputDir(out))
	res := c.CompileFile(path)
	require.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.Equal(t, filepath.Join(out, "flight.xml"), res.Output)
	assert.Equal(t, "Flight", res.Profile.Name)

	data, err := os.ReadFile(res.Output)
	require.NoError(t, err)
	payload := string(data)
	assert.True(t, strings.HasPrefix(payload, "<?xml"))
	assert.Contains(t, payload, `<key code="288" name="BTN_TRIGGER">`)
	assert.Contains(t, payload, "jsprog_moverel(1, ")
	assert.Contains(t, payload, "jsprog_cancelprevious()")

	_, err = os.Stat(res.Output + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestCompileWithoutWrite(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "compiled")
	path := writeDoc(t, src, "flight.profile", goodProfile)

	res := New(WithOutputDir(out), WithWrite(false)).CompileFile(path)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Output)

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestCompileIsolatesFailures(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeDoc(t, src, "a.profile", goodProfile)
	writeDoc(t, src, "b.profile", badProfile)
	writeDoc(t, src, "c.profile", goodProfile)
	writeDoc(t, src, "readme.txt", "ignored")

	logger, hook := test.NewNullLogger()
	c := New(WithOutputDir(out), WithLogger(logger))

	results, err := c.Compile(context.Background(), []string{src})
	require.ErrorIs(t, err, ErrFailed)
	require.Len(t, results, 3)

	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.ErrorIs(t, results[1].Err, parser.ErrMissingAttribute)
	assert.True(t, results[2].OK())

	assert.FileExists(t, filepath.Join(out, "a.xml"))
	assert.NoFileExists(t, filepath.Join(out, "b.xml"))
	assert.FileExists(t, filepath.Join(out, "c.xml"))

	var errorsLogged int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errorsLogged++
			assert.Equal(t, filepath.Join(src, "b.profile"), e.Data["document"])
		}
	}
	assert.Equal(t, 1, errorsLogged)
}

func TestCompileMixedPaths(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "more")
	require.NoError(t, os.Mkdir(sub, 0o755))
	file := writeDoc(t, dir, "single.xml", goodProfile)
	writeDoc(t, sub, "pad.jsp", goodProfile)
	writeDoc(t, sub, "pad.profile", goodProfile)

	c := New(WithOutputDir(t.TempDir()), WithExtension("jsp"))
	sources, err := c.Expand([]string{file, sub})
	require.NoError(t, err)
	assert.Equal(t, []string{file, filepath.Join(sub, "pad.jsp")}, sources)
}

func TestCompileErrors(t *testing.T) {
	c := New(WithOutputDir(t.TempDir()))

	_, err := c.Compile(context.Background(), []string{t.TempDir()})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = c.Compile(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	writeDoc(t, dir, "a.profile", goodProfile)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Compile(ctx, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemove(t *testing.T) {
	out := t.TempDir()
	c := New(WithOutputDir(out))

	payload := filepath.Join(out, "pad.xml")
	require.NoError(t, os.WriteFile(payload, []byte("x"), 0o644))

	require.NoError(t, c.Remove("/profiles/pad.profile"))
	assert.NoFileExists(t, payload)
	require.NoError(t, c.Remove("/profiles/pad.profile"))
}
