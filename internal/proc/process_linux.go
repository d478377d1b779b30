//go:build linux

package proc

import (
	"strconv"
	"strings"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// statMandatoryFields counts the tokens after comm that every supported
// kernel prints (state through cnswap). Anything past that is optional.
const statMandatoryFields = 35

// Stat reads /proc/<pid>/stat.
func (fsys FS) Stat(pid int) (model.TaskStat, error) {
	raw, err := fsys.readPID(pid, "stat")
	if err != nil {
		return model.TaskStat{}, err
	}
	return ParseTaskStat(raw)
}

// ParseTaskStat decodes one /proc/<pid>/stat line. The command name sits
// between the first '(' and the last ')' and may itself contain both
// parentheses and spaces.
func ParseTaskStat(raw string) (model.TaskStat, error) {
	lparen := strings.IndexByte(raw, '(')
	rparen := strings.LastIndexByte(raw, ')')
	if lparen < 0 || rparen < lparen {
		return model.TaskStat{}, procfs.NewParseError("corrupted stat - missing command name", raw, nil)
	}

	var st model.TaskStat
	pid, err := procfs.ParseInt[int32](procfs.Trim(raw[:lparen]), procfs.Decimal)
	if err != nil {
		return model.TaskStat{}, procfs.NewParseError("corrupted stat - bad pid", raw, err)
	}
	st.PID = pid
	st.Comm = raw[lparen+1 : rparen]

	s := newFieldScanner("stat", raw, procfs.Fields(raw[rparen+1:]))
	if !s.need(statMandatoryFields) {
		return model.TaskStat{}, s.err
	}

	st.State, err = parseTaskState(s.fields[0])
	if err != nil {
		return model.TaskStat{}, procfs.NewParseError("corrupted stat - bad state", raw, err)
	}

	const d = procfs.Decimal
	scanInt(s, &st.PPID, 1, d)
	scanInt(s, &st.PGrp, 2, d)
	scanInt(s, &st.Session, 3, d)
	scanInt(s, &st.TTYNr, 4, d)
	scanInt(s, &st.TPGid, 5, d)
	scanInt(s, &st.Flags, 6, d)
	scanInt(s, &st.MinFlt, 7, d)
	scanInt(s, &st.CMinFlt, 8, d)
	scanInt(s, &st.MajFlt, 9, d)
	scanInt(s, &st.CMajFlt, 10, d)
	scanInt(s, &st.UTime, 11, d)
	scanInt(s, &st.STime, 12, d)
	scanInt(s, &st.CUTime, 13, d)
	scanInt(s, &st.CSTime, 14, d)
	scanInt(s, &st.Priority, 15, d)
	scanInt(s, &st.Nice, 16, d)
	scanInt(s, &st.NumThreads, 17, d)
	scanInt(s, &st.ItRealValue, 18, d)
	scanInt(s, &st.StartTime, 19, d)
	scanInt(s, &st.VSize, 20, d)
	scanInt(s, &st.RSS, 21, d)
	scanInt(s, &st.RSSLim, 22, d)
	scanInt(s, &st.StartCode, 23, d)
	scanInt(s, &st.EndCode, 24, d)
	scanInt(s, &st.StartStack, 25, d)
	scanInt(s, &st.KStkESP, 26, d)
	scanInt(s, &st.KStkEIP, 27, d)
	scanInt(s, &st.Signal, 28, d)
	scanInt(s, &st.Blocked, 29, d)
	scanInt(s, &st.SigIgnore, 30, d)
	scanInt(s, &st.SigCatch, 31, d)
	scanInt(s, &st.WChan, 32, d)
	scanInt(s, &st.NSwap, 33, d)
	scanInt(s, &st.CNSwap, 34, d)
	scanInt(s, &st.ExitSignal, 35, d)
	scanInt(s, &st.Processor, 36, d)
	scanInt(s, &st.RTPriority, 37, d)
	scanInt(s, &st.Policy, 38, d)
	scanInt(s, &st.DelayacctBlkioTicks, 39, d)
	scanInt(s, &st.GuestTime, 40, d)
	scanInt(s, &st.CGuestTime, 41, d)
	scanInt(s, &st.StartData, 42, d)
	scanInt(s, &st.EndData, 43, d)
	scanInt(s, &st.StartBrk, 44, d)
	scanInt(s, &st.ArgStart, 45, d)
	scanInt(s, &st.ArgEnd, 46, d)
	scanInt(s, &st.EnvStart, 47, d)
	scanInt(s, &st.EnvEnd, 48, d)
	scanInt(s, &st.ExitCode, 49, d)
	if s.err != nil {
		return model.TaskStat{}, s.err
	}
	return st, nil
}

// The kernel emits the state as a single letter; only its first byte matters.
func parseTaskState(token string) (model.TaskState, error) {
	if token == "" {
		return 0, procfs.NewParseError("empty task state", token, nil)
	}
	switch token[0] {
	case 'R':
		return model.TaskRunning, nil
	case 'S':
		return model.TaskSleeping, nil
	case 'D':
		return model.TaskDiskSleep, nil
	case 'T':
		return model.TaskStopped, nil
	case 't':
		return model.TaskTracingStop, nil
	case 'Z':
		return model.TaskZombie, nil
	case 'X', 'x':
		return model.TaskDead, nil
	case 'K':
		return model.TaskWakeKill, nil
	case 'W':
		return model.TaskWaking, nil
	case 'P':
		return model.TaskParked, nil
	case 'I':
		return model.TaskIdle, nil
	}
	return 0, procfs.NewParseError("unknown task state", token, nil)
}

// Comm reads /proc/<pid>/comm.
func (fsys FS) Comm(pid int) (string, error) {
	return procfs.ReadLine(fsys.pidPath(pid, "comm"))
}

// Cmdline reads the NUL separated argument vector. Kernel threads have none.
func (fsys FS) Cmdline(pid int) ([]string, error) {
	raw, err := procfs.ReadFile(fsys.pidPath(pid, "cmdline"), fsys.maxRead, false)
	if err != nil {
		return nil, err
	}
	return procfs.Split(raw, 0, false), nil
}

// Exe resolves /proc/<pid>/exe. Deleted binaries carry a " (deleted)" suffix.
func (fsys FS) Exe(pid int) (string, error) {
	return fsys.pidLink(pid, "exe")
}

func (fsys FS) Cwd(pid int) (string, error) {
	return fsys.pidLink(pid, "cwd")
}

// RootDir resolves /proc/<pid>/root, the process's filesystem root.
func (fsys FS) RootDir(pid int) (string, error) {
	return fsys.pidLink(pid, "root")
}

func (fsys FS) pidLink(pid int, name string) (string, error) {
	dir, err := procfs.OpenDir(fsys.pidPath(pid))
	if err != nil {
		return "", err
	}
	defer dir.Close()
	return procfs.Readlink(name, dir)
}

// FDs maps each open descriptor of pid to its link target. Descriptors that
// close while being listed are left out.
func (fsys FS) FDs(pid int) (map[int]string, error) {
	path := fsys.pidPath(pid, "fd")
	dir, err := procfs.OpenDir(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	fds := make(map[int]string)
	var linkErr error
	_, err = procfs.IterateFiles(path, false, func(name string) {
		fd, err := strconv.Atoi(name)
		if err != nil || linkErr != nil {
			return
		}
		target, err := procfs.Readlink(name, dir)
		if isGone(err) {
			return
		}
		if err != nil {
			linkErr = err
			return
		}
		fds[fd] = target
	})
	if err != nil {
		return nil, err
	}
	if linkErr != nil {
		return nil, linkErr
	}
	return fds, nil
}

// NamespaceInode returns the inode identifying namespace ns ("net", "mnt",
// "pid", ...) of pid. Two tasks share a namespace when the inodes match.
func (fsys FS) NamespaceInode(pid int, ns string) (uint64, error) {
	dir, err := procfs.OpenDir(fsys.pidPath(pid, "ns"))
	if err != nil {
		return 0, err
	}
	defer dir.Close()
	return procfs.GetInode(ns, dir)
}

// Namespaces maps every entry of /proc/<pid>/ns to its inode. Kernels differ
// in which namespace types they expose, so the directory is listed rather
// than probed by name.
func (fsys FS) Namespaces(pid int) (map[string]uint64, error) {
	path := fsys.pidPath(pid, "ns")
	dir, err := procfs.OpenDir(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	nss := make(map[string]uint64)
	var statErr error
	_, err = procfs.IterateFiles(path, false, func(name string) {
		if statErr != nil {
			return
		}
		inode, err := procfs.GetInode(name, dir)
		if isGone(err) {
			return
		}
		if err != nil {
			statErr = err
			return
		}
		nss[name] = inode
	})
	if err != nil {
		return nil, err
	}
	if statErr != nil {
		return nil, statErr
	}
	return nss, nil
}

// SocketInodeFromLink extracts N from a "socket:[N]" descriptor target.
func SocketInodeFromLink(target string) (uint64, bool) {
	if !strings.HasPrefix(target, "socket:[") || !strings.HasSuffix(target, "]") {
		return 0, false
	}
	inode, err := procfs.ParseInt[uint64](target[len("socket:["):len(target)-1], procfs.Decimal)
	if err != nil {
		return 0, false
	}
	return inode, true
}

// IO reads /proc/<pid>/io. Reading another user's file needs ptrace access.
func (fsys FS) IO(pid int) (model.IOStats, error) {
	raw, err := fsys.readPID(pid, "io")
	if err != nil {
		return model.IOStats{}, err
	}
	return ParseIO(raw)
}

func ParseIO(raw string) (model.IOStats, error) {
	var st model.IOStats
	for _, line := range procfs.Split(raw, '\n', false) {
		key, value := procfs.SplitOnce(line, ':')
		var dst *uint64
		switch key {
		case "rchar":
			dst = &st.RChar
		case "wchar":
			dst = &st.WChar
		case "syscr":
			dst = &st.SyscR
		case "syscw":
			dst = &st.SyscW
		case "read_bytes":
			dst = &st.ReadBytes
		case "write_bytes":
			dst = &st.WriteBytes
		case "cancelled_write_bytes":
			dst = &st.CancelledWriteBytes
		default:
			continue
		}
		v, err := procfs.ParseInt[uint64](procfs.Trim(value), procfs.Decimal)
		if err != nil {
			return model.IOStats{}, procfs.NewParseError("corrupted io - bad "+key, line, err)
		}
		*dst = v
	}
	return st, nil
}
