//go:build linux

// Package target turns a process name into PIDs.
package target

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pranshuparmar/procfs/internal/proc"
)

// ResolveName returns the processes whose comm or command line matches name,
// case-insensitively, in ascending PID order. With exact, comm must equal
// name or one argument must equal it; otherwise a substring is enough.
//
// The caller and its ancestors are left out so that "procfs find bash" does
// not report the shell running it. Processes that exit during the scan are
// skipped.
func ResolveName(fsys proc.FS, name string, exact bool) ([]int, error) {
	pids, err := fsys.PIDs()
	if err != nil {
		return nil, err
	}

	ignored := map[int]bool{os.Getpid(): true}
	if chain, err := fsys.Ancestry(os.Getpid()); err == nil {
		for _, p := range chain {
			ignored[int(p.PID)] = true
		}
	}

	lowerName := strings.ToLower(name)
	var matches []int
	for _, pid := range pids {
		// a numeric name is a pid, not a comm
		if ignored[pid] || lowerName == strconv.Itoa(pid) {
			continue
		}
		if matchComm(fsys, pid, lowerName, exact) || matchCmdline(fsys, pid, lowerName, exact) {
			matches = append(matches, pid)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no running process named %q", name)
	}
	return matches, nil
}

func matchComm(fsys proc.FS, pid int, name string, exact bool) bool {
	comm, err := fsys.Comm(pid)
	if err != nil {
		return false
	}
	comm = strings.ToLower(comm)
	if exact {
		return comm == name
	}
	return strings.Contains(comm, name)
}

func matchCmdline(fsys proc.FS, pid int, name string, exact bool) bool {
	args, err := fsys.Cmdline(pid)
	if err != nil {
		return false
	}
	for _, arg := range args {
		arg = strings.ToLower(arg)
		if exact && arg == name {
			return true
		}
		if !exact && strings.Contains(arg, name) {
			return true
		}
	}
	return false
}
