//go:build linux

package procfs

import (
	"bufio"
	"errors"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	dotPrefix = '.'
	// pathMax matches PATH_MAX from linux/limits.h.
	pathMax = 4096
	// readdirBatch bounds how many names are pulled per getdents round.
	readdirBatch = 256
)

// IterateFiles calls visit with the name of every entry in dir, skipping
// names that start with '.' unless includeDots is set. It returns how many
// entries passed that filter; visit may be nil to only count them.
//
// With includeDots, "." and ".." are reported first. getdents results are
// read through Readdirnames, which drops them, so they are added back here.
func IterateFiles(dir string, includeDots bool, visit func(name string)) (int, error) {
	f, err := os.Open(dir)
	if err != nil {
		return 0, osError("open", dir, err)
	}
	defer f.Close()

	count := 0
	if includeDots {
		for _, name := range [...]string{".", ".."} {
			count++
			if visit != nil {
				visit(name)
			}
		}
	}
	for {
		names, err := f.Readdirnames(readdirBatch)
		for _, name := range names {
			if !includeDots && strings.HasPrefix(name, string(dotPrefix)) {
				continue
			}
			count++
			if visit != nil {
				visit(name)
			}
		}
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, osError("readdir", dir, err)
		}
	}
}

func CountFiles(dir string, includeDots bool) (int, error) {
	return IterateFiles(dir, includeDots, nil)
}

func EnumerateFiles(dir string, includeDots bool) (map[string]struct{}, error) {
	files := make(map[string]struct{})
	_, err := IterateFiles(dir, includeDots, func(name string) {
		files[name] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// EnumerateNumericFiles collects the entries of dir whose whole name is a
// base-10 integer, which is how PIDs and TIDs are discovered. Other names
// are skipped without error.
func EnumerateNumericFiles(dir string) (map[int]struct{}, error) {
	files := make(map[int]struct{})
	_, err := IterateFiles(dir, false, func(name string) {
		n, err := strconv.Atoi(name)
		if err != nil {
			return
		}
		files[n] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Dir is an open directory used as the anchor for *at lookups. A nil *Dir
// resolves paths against the current working directory.
type Dir struct {
	f *os.File
}

func OpenDir(path string) (*Dir, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, osError("open", path, err)
	}
	return &Dir{f: os.NewFile(uintptr(fd), path)}, nil
}

func (d *Dir) Name() string {
	if d == nil {
		return "."
	}
	return d.f.Name()
}

func (d *Dir) Close() error {
	if d == nil {
		return nil
	}
	return d.f.Close()
}

func (d *Dir) fd() int {
	if d == nil {
		return unix.AT_FDCWD
	}
	return int(d.f.Fd())
}

// GetInode returns the inode number of path, resolved relative to dir.
// Symlinks are followed, so GetInode("ns/net", d) names the namespace.
func GetInode(path string, dir *Dir) (uint64, error) {
	var st unix.Stat_t
	err := unix.Fstatat(dir.fd(), path, &st, 0)
	runtime.KeepAlive(dir)
	if err != nil {
		return 0, osError("stat", path, err)
	}
	return st.Ino, nil
}

// Readlink returns the target of link, resolved relative to dir, exactly as
// the kernel reports it.
func Readlink(link string, dir *Dir) (string, error) {
	buf := make([]byte, pathMax+1)
	n, err := unix.Readlinkat(dir.fd(), link, buf)
	runtime.KeepAlive(dir)
	if err != nil {
		return "", osError("readlink", link, err)
	}
	return string(buf[:n]), nil
}

// ReadFile reads at most maxBytes from the start of path with a single read.
// Most /proc files report a size of zero, so a short read is normal. When
// trimNewline is set every trailing '\n' is removed.
func ReadFile(path string, maxBytes int, trimNewline bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", osError("open", path, err)
	}
	defer f.Close()

	buf := make([]byte, max(maxBytes, 0))
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", osError("read", path, err)
	}

	content := string(buf[:n])
	if trimNewline {
		content = strings.TrimRight(content, "\n")
	}
	return content, nil
}

// ReadLine returns the first line of path without its newline. An empty file
// fails with a *ParseError wrapping ErrNoLine.
func ReadLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", osError("open", path, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	switch {
	case err == nil:
		return strings.TrimSuffix(line, "\n"), nil
	case errors.Is(err, io.EOF) && line != "":
		return line, nil
	case errors.Is(err, io.EOF):
		return "", NewParseError("expected a line in "+path, "", ErrNoLine)
	}
	return "", osError("read", path, err)
}

// ReadLines calls visit for each line of path, without the newline, and
// stops at the first error visit returns. Lines are limited to maxLine bytes.
func ReadLines(path string, visit func(line string) error) error {
	const maxLine = 1 << 20

	f, err := os.Open(path)
	if err != nil {
		return osError("open", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLine)
	for scanner.Scan() {
		if err := visit(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return NewParseError("line too long", path, err)
		}
		return osError("read", path, err)
	}
	return nil
}
