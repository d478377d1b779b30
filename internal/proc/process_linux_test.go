//go:build linux

package proc

import (
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// statLine builds a stat line with the first 23 post-comm fields given and
// the rest zero, up to n fields in total.
func statLine(pid, comm string, n int) string {
	head := "S 1 1234 1234 0 -1 4194560 100 0 0 0 5 3 0 0 20 0 1 0 500 10000000 250 18446744073709551615"
	fields := strings.Fields(head)
	for len(fields) < n {
		fields = append(fields, "0")
	}
	return pid + " (" + comm + ") " + strings.Join(fields[:n], " ")
}

func TestParseTaskStat(t *testing.T) {
	st, err := ParseTaskStat(statLine("1234", "my (weird) proc)", 52))
	require.NoError(t, err)

	assert.Equal(t, int32(1234), st.PID)
	assert.Equal(t, "my (weird) proc)", st.Comm)
	assert.Equal(t, model.TaskSleeping, st.State)
	assert.Equal(t, int32(1), st.PPID)
	assert.Equal(t, int64(0), st.TTYNr)
	assert.Equal(t, int32(-1), st.TPGid)
	assert.Equal(t, uint64(4194560), st.Flags)
	assert.Equal(t, uint64(5), st.UTime)
	assert.Equal(t, uint64(3), st.STime)
	assert.Equal(t, int64(20), st.Priority)
	assert.Equal(t, uint64(500), st.StartTime)
	assert.Equal(t, uint64(250), st.RSS)
	assert.Equal(t, uint64(18446744073709551615), st.RSSLim)
}

func TestParseTaskStat_OldKernel(t *testing.T) {
	st, err := ParseTaskStat(statLine("7", "kthreadd", statMandatoryFields))
	require.NoError(t, err)
	assert.Equal(t, "kthreadd", st.Comm)
	assert.Zero(t, st.ExitCode)

	_, err = ParseTaskStat(statLine("7", "kthreadd", statMandatoryFields-1))
	assert.True(t, procfs.IsParseError(err))
}

func TestParseTaskStat_Corrupt(t *testing.T) {
	for _, raw := range []string{
		"",
		"1234 no parens S 1",
		"x (a) " + strings.Repeat("0 ", 40),
		"1 (a) Q " + strings.Repeat("0 ", 40),
		statLine("1", "a", 52) + "x",
	} {
		_, err := ParseTaskStat(raw)
		assert.True(t, procfs.IsParseError(err), "%q", raw)
	}
}

func TestFS_PIDsAndTIDs(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"42/stat":         "",
		"7/stat":          "",
		"7/task/7/stat":   "",
		"7/task/9/stat":   "",
		"self/stat":       "",
		"meminfo":         "",
		"1000/task/x/foo": "",
	})

	pids, err := fsys.PIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{7, 42, 1000}, pids)

	tids, err := fsys.TIDs(7)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 9}, tids)

	_, err = fsys.TIDs(42)
	assert.True(t, procfs.IsOSError(err))
}

func TestFS_Snapshot(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"1/stat": statLine("1", "init", 52) + "\n",
		"2/stat": statLine("2", "kthreadd", 52) + "\n",
		"3/comm": "gone\n",
	})

	stats, err := fsys.Snapshot()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "init", stats[0].Comm)
	assert.Equal(t, "kthreadd", stats[1].Comm)
}

func TestFS_CommAndCmdline(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"5/comm":    "nginx\n",
		"5/cmdline": "nginx\x00-g\x00daemon off;\x00",
		"6/comm":    "",
	})

	comm, err := fsys.Comm(5)
	require.NoError(t, err)
	assert.Equal(t, "nginx", comm)

	args, err := fsys.Cmdline(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"nginx", "-g", "daemon off;"}, args)

	_, err = fsys.Comm(6)
	assert.ErrorIs(t, err, procfs.ErrNoLine)
}

func TestFS_Links(t *testing.T) {
	fsys := fixture(t, map[string]string{"9/ns/net": ""})
	symlink(t, fsys, "/usr/bin/sleep (deleted)", "9", "exe")
	symlink(t, fsys, "/home/user", "9", "cwd")
	symlink(t, fsys, "/", "9", "root")
	symlink(t, fsys, "/dev/null", "9", "fd", "0")
	symlink(t, fsys, "socket:[31337]", "9", "fd", "3")
	symlink(t, fsys, "pipe:[777]", "9", "fd", "12")

	exe, err := fsys.Exe(9)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/sleep (deleted)", exe)

	cwd, err := fsys.Cwd(9)
	require.NoError(t, err)
	assert.Equal(t, "/home/user", cwd)

	root, err := fsys.RootDir(9)
	require.NoError(t, err)
	assert.Equal(t, "/", root)

	fds, err := fsys.FDs(9)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "/dev/null", 3: "socket:[31337]", 12: "pipe:[777]"}, fds)

	_, err = fsys.FDs(10)
	assert.True(t, procfs.IsOSError(err))
}

func TestFS_NamespaceInode(t *testing.T) {
	fsys := fixture(t, map[string]string{"9/ns/net": ""})

	info, err := os.Stat(fsys.pidPath(9, "ns", "net"))
	require.NoError(t, err)

	inode, err := fsys.NamespaceInode(9, "net")
	require.NoError(t, err)
	assert.Equal(t, info.Sys().(*syscall.Stat_t).Ino, inode)

	_, err = fsys.NamespaceInode(9, "mnt")
	assert.True(t, procfs.IsOSError(err))
}

func TestFS_Namespaces(t *testing.T) {
	fsys := fixture(t, map[string]string{"9/ns/net": "", "9/ns/pid": "x"})

	nss, err := fsys.Namespaces(9)
	require.NoError(t, err)
	require.Len(t, nss, 2)
	for name, inode := range nss {
		info, err := os.Stat(fsys.pidPath(9, "ns", name))
		require.NoError(t, err)
		assert.Equal(t, info.Sys().(*syscall.Stat_t).Ino, inode, name)
	}
	assert.NotEqual(t, nss["net"], nss["pid"])

	_, err = fsys.Namespaces(10)
	assert.True(t, procfs.IsOSError(err))
}

func TestSocketInodeFromLink(t *testing.T) {
	inode, ok := SocketInodeFromLink("socket:[28474]")
	assert.True(t, ok)
	assert.Equal(t, uint64(28474), inode)

	for _, target := range []string{"pipe:[1]", "socket:[]", "socket:[x]", "socket:[1", "/dev/null"} {
		_, ok := SocketInodeFromLink(target)
		assert.False(t, ok, target)
	}
}

func TestParseIO(t *testing.T) {
	io, err := ParseIO("rchar: 100\nwchar: 200\nsyscr: 3\nsyscw: 4\nread_bytes: 4096\nwrite_bytes: 8192\ncancelled_write_bytes: 0\n")
	require.NoError(t, err)
	assert.Equal(t, model.IOStats{RChar: 100, WChar: 200, SyscR: 3, SyscW: 4, ReadBytes: 4096, WriteBytes: 8192}, io)

	_, err = ParseIO("rchar: lots\n")
	assert.True(t, procfs.IsParseError(err))
}

func TestFS_AncestryAndChildren(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"1/stat":   "1 (systemd) S 0 1 1 0 -1" + strings.Repeat(" 0", 30),
		"812/stat": "812 (sshd) S 1 812 812 0 -1" + strings.Repeat(" 0", 30),
		"900/stat": "900 (sshd) S 812 900 900 0 -1" + strings.Repeat(" 0", 30),
		"901/stat": "901 (bash) S 812 901 901 0 -1" + strings.Repeat(" 0", 30),
		"950/stat": "950 (orphan) S 4000 950 950 0 -1" + strings.Repeat(" 0", 30),
	})

	chain, err := fsys.Ancestry(900)
	require.NoError(t, err)
	var pids []int32
	for _, st := range chain {
		pids = append(pids, st.PID)
	}
	assert.Equal(t, []int32{1, 812, 900}, pids)

	chain, err = fsys.Ancestry(950)
	require.NoError(t, err)
	assert.Len(t, chain, 1)

	kids, err := fsys.Children(812)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, "sshd", kids[0].Comm)
	assert.Equal(t, "bash", kids[1].Comm)

	_, err = fsys.Ancestry(4000)
	assert.True(t, procfs.IsOSError(err))
}
