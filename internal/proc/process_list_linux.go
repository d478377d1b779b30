//go:build linux

package proc

import (
	"errors"
	"io/fs"
	"slices"
	"syscall"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// PIDs lists the processes visible under the root, in ascending order.
func (fsys FS) PIDs() ([]int, error) {
	pids, err := procfs.EnumerateNumericFiles(fsys.root)
	if err != nil {
		return nil, err
	}
	return sortedKeys(pids), nil
}

// TIDs lists the threads of pid, in ascending order.
func (fsys FS) TIDs(pid int) ([]int, error) {
	tids, err := procfs.EnumerateNumericFiles(fsys.pidPath(pid, "task"))
	if err != nil {
		return nil, err
	}
	return sortedKeys(tids), nil
}

// Snapshot reads the stat record of every process. Processes that exit
// between listing and reading are skipped; any other failure is returned.
func (fsys FS) Snapshot() ([]model.TaskStat, error) {
	pids, err := fsys.PIDs()
	if err != nil {
		return nil, err
	}

	stats := make([]model.TaskStat, 0, len(pids))
	for _, pid := range pids {
		st, err := fsys.Stat(pid)
		if isGone(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// isGone reports whether err means the process exited under us.
func isGone(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ESRCH)
}

// maxAncestry bounds the parent walk in case a corrupt tree loops.
const maxAncestry = 1024

// Ancestry returns pid and its ancestors, oldest first. The walk stops at a
// task whose parent is 0 or no longer exists.
func (fsys FS) Ancestry(pid int) ([]model.TaskStat, error) {
	st, err := fsys.Stat(pid)
	if err != nil {
		return nil, err
	}

	chain := []model.TaskStat{st}
	seen := map[int32]bool{st.PID: true}
	for len(chain) < maxAncestry {
		ppid := chain[len(chain)-1].PPID
		if ppid <= 0 || seen[ppid] {
			break
		}
		parent, err := fsys.Stat(int(ppid))
		if isGone(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		seen[ppid] = true
		chain = append(chain, parent)
	}
	slices.Reverse(chain)
	return chain, nil
}

// Children lists the direct children of pid, by ascending PID.
func (fsys FS) Children(pid int) ([]model.TaskStat, error) {
	all, err := fsys.Snapshot()
	if err != nil {
		return nil, err
	}
	var kids []model.TaskStat
	for _, st := range all {
		if int(st.PPID) == pid && int(st.PID) != pid {
			kids = append(kids, st)
		}
	}
	return kids, nil
}
