//go:build linux

package proc

import (
	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

const (
	mntID = iota
	mntParentID
	mntDevice
	mntRoot
	mntPoint
	mntOptions
	mntOptional
)

// ParseMountInfoLine decodes one line of /proc/<pid>/mountinfo:
//
//	36 35 98:0 /mnt1 /mnt2 rw,noatime master:1 - ext3 /dev/root rw,errors=continue
//
// The optional fields run up to the lone "-" separator.
func ParseMountInfoLine(line string) (model.Mount, error) {
	var m model.Mount

	fields := procfs.Fields(line)
	s := newFieldScanner("mountinfo", line, fields)
	if !s.need(mntOptional + 3) {
		return m, s.err
	}

	sep := -1
	for i := mntOptional; i < len(fields); i++ {
		if fields[i] == "-" {
			sep = i
			break
		}
	}
	if sep < 0 || len(fields) < sep+4 {
		return m, procfs.NewParseError("corrupted mountinfo - missing separator", line, nil)
	}

	scanInt(s, &m.ID, mntID, procfs.Decimal)
	scanInt(s, &m.ParentID, mntParentID, procfs.Decimal)
	scanPair(s, &m.DevMajor, &m.DevMinor, mntDevice, ':', procfs.Decimal)
	if s.err != nil {
		return model.Mount{}, s.err
	}

	m.Root = unescapeOctal(fields[mntRoot])
	m.Point = unescapeOctal(fields[mntPoint])
	m.Options = procfs.Split(fields[mntOptions], ',', false)
	m.Optional = append([]string(nil), fields[mntOptional:sep]...)
	m.FilesystemType = fields[sep+1]
	m.Source = unescapeOctal(fields[sep+2])
	m.SuperOptions = procfs.Split(fields[sep+3], ',', false)
	return m, nil
}

// MountInfo reads /proc/<pid>/mountinfo, the mounts visible in pid's mount
// namespace.
func (fsys FS) MountInfo(pid int) ([]model.Mount, error) {
	var mounts []model.Mount
	err := procfs.ReadLines(fsys.pidPath(pid, "mountinfo"), func(line string) error {
		if procfs.Trim(line) == "" {
			return nil
		}
		m, err := ParseMountInfoLine(line)
		if err != nil {
			return err
		}
		mounts = append(mounts, m)
		return nil
	})
	return mounts, err
}
