//go:build linux

package proc

import (
	"path/filepath"
	"slices"
	"strconv"

	"github.com/pranshuparmar/procfs/internal/procfs"
)

const (
	DefaultRoot = "/proc"
	// DefaultMaxRead bounds whole-file reads such as cmdline and stat.
	DefaultMaxRead = 1 << 16
)

// FS resolves /proc paths under a root, so parsers can be pointed at a
// fixture tree or at another mount of procfs.
type FS struct {
	root    string
	maxRead int
}

func New(root string, maxRead int) FS {
	if root == "" {
		root = DefaultRoot
	}
	if maxRead <= 0 {
		maxRead = DefaultMaxRead
	}
	return FS{root: root, maxRead: maxRead}
}

func Default() FS { return New(DefaultRoot, DefaultMaxRead) }

func (fsys FS) Root() string { return fsys.root }

func (fsys FS) path(elems ...string) string {
	return filepath.Join(append([]string{fsys.root}, elems...)...)
}

func (fsys FS) pidPath(pid int, elems ...string) string {
	return fsys.path(append([]string{strconv.Itoa(pid)}, elems...)...)
}

// readPID reads a whole per-process file, newline trimmed.
func (fsys FS) readPID(pid int, name string) (string, error) {
	return procfs.ReadFile(fsys.pidPath(pid, name), fsys.maxRead, true)
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
