//go:build linux

package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

func TestParseMapsLine(t *testing.T) {
	r, err := ParseMapsLine("00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/dbus-daemon")
	require.NoError(t, err)
	assert.Equal(t, model.MemRegion{
		StartAddress: 0x400000,
		EndAddress:   0x452000,
		Perm:         model.MemPerm{CanRead: true, CanExecute: true, IsPrivate: true},
		DevMajor:     8,
		DevMinor:     2,
		Inode:        173521,
		Pathname:     "/usr/bin/dbus-daemon",
	}, r)
	assert.Equal(t, uint64(0x52000), r.Size())

	r, err = ParseMapsLine("7f1c2c000000-7f1c2c021000 rw-s 00001000 fd:01 0 ")
	require.NoError(t, err)
	assert.Empty(t, r.Pathname)
	assert.True(t, r.Perm.IsShared)
	assert.True(t, r.Perm.CanWrite)
	assert.Equal(t, uint64(0x1000), r.Offset)
	assert.Equal(t, uint32(0xfd), r.DevMajor)

	r, err = ParseMapsLine("7f1c2c000000-7f1c2c021000 r--p 00000000 08:02 99 /tmp/my file (deleted)")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/my file (deleted)", r.Pathname)
}

func TestParseMapsLine_Corrupt(t *testing.T) {
	for _, line := range []string{
		"",
		"00400000-00452000 r-xp 00000000",
		"00400000 r-xp 00000000 08:02 1",
		"00400000-00452000 rwxq 00000000 08:02 1",
		"00400000-00452000 r-x 00000000 08:02 1",
		"00400000-00452000 a-xp 00000000 08:02 1",
		"00400000-00452000 r-xp 00000000 0802 1",
		"00400000-00452000 r-xp 00000000 08:02 -1",
	} {
		_, err := ParseMapsLine(line)
		assert.True(t, procfs.IsParseError(err), "%q", line)
	}
}

const dbusSMaps = `00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/dbus-daemon
Size:                328 kB
KernelPageSize:        4 kB
Rss:                 200 kB
Pss:                 100 kB
Private_Dirty:        12 kB
THPeligible:    0
ProtectionKey:         0
VmFlags: rd ex mr mw me dw
7ffd5a3c2000-7ffd5a3e3000 rw-p 00000000 00:00 0                          [stack]
Size:                132 kB
Swap:                  8 kB
THPeligible:    1
`

func TestFS_MapsAndSMaps(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"77/maps": "00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/dbus-daemon\n" +
			"7ffd5a3c2000-7ffd5a3e3000 rw-p 00000000 00:00 0                          [stack]\n",
		"77/smaps": dbusSMaps,
		"78/smaps": "Size: 4 kB\n",
	})

	regions, err := fsys.Maps(77)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "[stack]", regions[1].Pathname)

	maps, err := fsys.SMaps(77)
	require.NoError(t, err)
	require.Len(t, maps, 2)
	assert.Equal(t, regions[0], maps[0].Region)
	assert.Equal(t, uint64(328), maps[0].Size)
	assert.Equal(t, uint64(200), maps[0].RSS)
	assert.Equal(t, uint64(12), maps[0].PrivateDirty)
	assert.False(t, maps[0].THPEligible)
	assert.Equal(t, []string{"rd", "ex", "mr", "mw", "me", "dw"}, maps[0].VMFlags)
	assert.Equal(t, uint64(8), maps[1].Swap)
	assert.True(t, maps[1].THPEligible)

	_, err = fsys.SMaps(78)
	assert.True(t, procfs.IsParseError(err))
}

func TestParseMountInfoLine(t *testing.T) {
	m, err := ParseMountInfoLine(`36 35 98:0 /mnt1 /mnt\040two rw,noatime master:1 shared:7 - ext3 /dev/root rw,errors=continue`)
	require.NoError(t, err)
	assert.Equal(t, model.Mount{
		ID:             36,
		ParentID:       35,
		DevMajor:       98,
		DevMinor:       0,
		Root:           "/mnt1",
		Point:          "/mnt two",
		Options:        []string{"rw", "noatime"},
		Optional:       []string{"master:1", "shared:7"},
		FilesystemType: "ext3",
		Source:         "/dev/root",
		SuperOptions:   []string{"rw", "errors=continue"},
	}, m)

	m, err = ParseMountInfoLine("22 1 8:1 / / rw - ext4 /dev/sda1 rw")
	require.NoError(t, err)
	assert.Empty(t, m.Optional)
	assert.Equal(t, "/", m.Point)

	for _, line := range []string{
		"",
		"22 1 8:1 / / rw ext4 /dev/sda1 rw",
		"22 1 8:1 / / rw shared:1 - ext4 /dev/sda1",
		"x 1 8:1 / / rw - ext4 /dev/sda1 rw",
		"22 1 81 / / rw - ext4 /dev/sda1 rw",
	} {
		_, err := ParseMountInfoLine(line)
		assert.True(t, procfs.IsParseError(err), "%q", line)
	}
}

func TestFS_MountInfo(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"1/mountinfo": "22 1 8:1 / / rw - ext4 /dev/sda1 rw\n23 22 0:5 / /proc rw,nosuid - proc proc rw\n",
	})
	mounts, err := fsys.MountInfo(1)
	require.NoError(t, err)
	require.Len(t, mounts, 2)
	assert.Equal(t, "/proc", mounts[1].Point)
	assert.Equal(t, uint32(22), mounts[1].ParentID)
}

func TestParseCgroupLine(t *testing.T) {
	tests := []struct {
		line string
		want model.Cgroup
	}{
		{"0::/init.scope", model.Cgroup{Hierarchy: 0, Pathname: "/init.scope"}},
		{"12:cpu,cpuacct:/user.slice", model.Cgroup{Hierarchy: 12, Controllers: []string{"cpu", "cpuacct"}, Pathname: "/user.slice"}},
		{"1:name=systemd:/a:b", model.Cgroup{Hierarchy: 1, Controllers: []string{"name=systemd"}, Pathname: "/a:b"}},
	}
	for _, tc := range tests {
		got, err := ParseCgroupLine(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, got, tc.line)
	}

	for _, line := range []string{"", "foo", "1:cpu", "1:cpu:", "x::/"} {
		_, err := ParseCgroupLine(line)
		assert.True(t, procfs.IsParseError(err), "%q", line)
	}
}

func TestFS_CgroupsAndIDMaps(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"5/cgroup":  "0::/system.slice/sshd.service\n",
		"5/uid_map": "         0     100000      65536\n",
		"5/gid_map": "         0          0 4294967295\n",
		"6/uid_map": "0 1\n",
	})

	groups, err := fsys.Cgroups(5)
	require.NoError(t, err)
	assert.Equal(t, []model.Cgroup{{Pathname: "/system.slice/sshd.service"}}, groups)

	uids, err := fsys.UIDMap(5)
	require.NoError(t, err)
	assert.Equal(t, []model.IDMap{{InsideNS: 0, OutsideNS: 100000, Length: 65536}}, uids)

	gids, err := fsys.GIDMap(5)
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), gids[0].Length)

	_, err = fsys.UIDMap(6)
	assert.True(t, procfs.IsParseError(err))
}
