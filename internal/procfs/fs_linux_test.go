//go:build linux

package procfs

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	return dir
}

func TestIterateFiles_DotFilter(t *testing.T) {
	dir := mkTree(t, ".hidden", "visible")

	var seen []string
	n, err := IterateFiles(dir, false, func(name string) { seen = append(seen, name) })
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"visible"}, seen)

	seen = nil
	n, err = IterateFiles(dir, true, func(name string) { seen = append(seen, name) })
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.ElementsMatch(t, []string{".", "..", ".hidden", "visible"}, seen)

	files, err := EnumerateFiles(dir, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{".": {}, "..": {}, ".hidden": {}, "visible": {}}, files)

	n, err = CountFiles(dir, true)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestIterateFiles_ReleasesHandleOnPanic(t *testing.T) {
	dir := mkTree(t, "a")
	before := openFDs(t)

	assert.Panics(t, func() {
		_, _ = IterateFiles(dir, false, func(string) { panic("boom") })
	})
	assert.Equal(t, before, openFDs(t))
}

func openFDs(t *testing.T) int {
	t.Helper()
	n, err := CountFiles("/proc/self/fd", false)
	require.NoError(t, err)
	return n
}

func TestIterateFiles_MissingDir(t *testing.T) {
	_, err := IterateFiles(filepath.Join(t.TempDir(), "nope"), false, nil)
	require.Error(t, err)

	var oe *OSError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "open", oe.Op)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorIs(t, err, syscall.ENOENT)
	assert.False(t, IsParseError(err))
}

func TestEnumerateFiles(t *testing.T) {
	dir := mkTree(t, "b", "a", ".c")
	files, err := EnumerateFiles(dir, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, files)
}

func TestEnumerateNumericFiles(t *testing.T) {
	dir := mkTree(t, "1", "2", "foo", "3bar")

	n, err := CountFiles(dir, false)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	files, err := EnumerateNumericFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, map[int]struct{}{1: {}, 2: {}}, files)
}

func TestEnumerateNumericFiles_Self(t *testing.T) {
	pids, err := EnumerateNumericFiles("/proc")
	require.NoError(t, err)
	assert.Contains(t, pids, os.Getpid())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("hello\n\n"), 0o644))

	got, err := ReadFile(path, 4096, true)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = ReadFile(path, 4096, false)
	require.NoError(t, err)
	assert.Equal(t, "hello\n\n", got)

	got, err = ReadFile(path, 3, true)
	require.NoError(t, err)
	assert.Equal(t, "hel", got)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err = ReadFile(empty, 16, true)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"), 16, true)
	assert.True(t, IsOSError(err))
}

func TestReadFile_ProcFile(t *testing.T) {
	got, err := ReadFile("/proc/self/comm", 64, true)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, "\n")
}

func TestReadLine(t *testing.T) {
	dir := t.TempDir()
	for _, tt := range []struct {
		content string
		want    string
	}{
		{"first\nsecond\n", "first"},
		{"only", "only"},
		{"\n", ""},
	} {
		path := filepath.Join(dir, "f")
		require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
		got, err := ReadLine(path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err := ReadLine(empty)
	assert.ErrorIs(t, err, ErrNoLine)

	_, err = ReadLine(filepath.Join(dir, "missing"))
	assert.True(t, IsOSError(err))
	assert.NotErrorIs(t, err, ErrNoLine)
}

func TestReadlinkAndGetInode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.WriteFile(target, nil, 0o644))
	require.NoError(t, os.Symlink("target", filepath.Join(dir, "link")))

	d, err := OpenDir(dir)
	require.NoError(t, err)
	defer d.Close()

	got, err := Readlink("link", d)
	require.NoError(t, err)
	assert.Equal(t, "target", got)

	_, err = Readlink("target", d)
	var oe *OSError
	require.ErrorAs(t, err, &oe)
	assert.ErrorIs(t, err, syscall.EINVAL)

	var st syscall.Stat_t
	require.NoError(t, syscall.Stat(target, &st))
	ino, err := GetInode("link", d)
	require.NoError(t, err)
	assert.Equal(t, st.Ino, ino)

	_, err = GetInode("missing", d)
	assert.True(t, IsOSError(err))
}

func TestReadlink_NilDirUsesWorkingDirectory(t *testing.T) {
	got, err := Readlink("/proc/self/exe", nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestOpenDir_NotADirectory(t *testing.T) {
	path := filepath.Join(mkTree(t, "file"), "file")
	_, err := OpenDir(path)
	assert.ErrorIs(t, err, syscall.ENOTDIR)
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func TestEnumerateNumericFiles_Sorted(t *testing.T) {
	files, err := EnumerateNumericFiles(mkTree(t, "10", "9", "100"))
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10, 100}, sortedKeys(files))
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n\nc"), 0o644))

	var lines []string
	err := ReadLines(path, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "", "c"}, lines)

	stop := NewParseError("stop", "b", nil)
	err = ReadLines(path, func(line string) error {
		if line == "b" {
			return stop
		}
		return nil
	})
	assert.Same(t, stop, err)

	err = ReadLines(filepath.Join(t.TempDir(), "missing"), func(string) error { return nil })
	assert.True(t, IsOSError(err))
}

func TestReadLines_LineTooLong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	long := strings.Repeat("x", 1<<20+1)
	require.NoError(t, os.WriteFile(path, []byte("ok\n"+long+"\n"), 0o644))

	var lines []string
	err := ReadLines(path, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.False(t, IsOSError(err))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Equal(t, []string{"ok"}, lines)
}
