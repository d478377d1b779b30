//go:build linux

package proc

import (
	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// ParseCgroupLine decodes "hierarchy-ID:controller-list:cgroup-path". The
// v2 entry has ID 0 and an empty controller list. The path may itself
// contain ':' and must not be empty.
func ParseCgroupLine(line string) (model.Cgroup, error) {
	if len(procfs.Split(line, ':', true)) < 3 {
		return model.Cgroup{}, procfs.NewParseError("corrupted cgroup - expected 3 fields", line, nil)
	}
	id, rest := procfs.SplitOnce(line, ':')
	controllers, path := procfs.SplitOnce(rest, ':')

	h, err := procfs.ParseInt[uint32](id, procfs.Decimal)
	if err != nil {
		return model.Cgroup{}, procfs.NewParseError("corrupted cgroup - bad hierarchy", line, err)
	}
	return model.Cgroup{
		Hierarchy:   h,
		Controllers: procfs.Split(controllers, ',', false),
		Pathname:    path,
	}, nil
}

// Cgroups reads /proc/<pid>/cgroup.
func (fsys FS) Cgroups(pid int) ([]model.Cgroup, error) {
	var groups []model.Cgroup
	err := procfs.ReadLines(fsys.pidPath(pid, "cgroup"), func(line string) error {
		if line == "" {
			return nil
		}
		g, err := ParseCgroupLine(line)
		if err != nil {
			return err
		}
		groups = append(groups, g)
		return nil
	})
	return groups, err
}

// ParseIDMapLine decodes one line of uid_map or gid_map.
func ParseIDMapLine(line string) (model.IDMap, error) {
	var m model.IDMap
	s := newFieldScanner("id map", line, procfs.Fields(line))
	if !s.need(3) {
		return m, s.err
	}
	scanInt(s, &m.InsideNS, 0, procfs.Decimal)
	scanInt(s, &m.OutsideNS, 1, procfs.Decimal)
	scanInt(s, &m.Length, 2, procfs.Decimal)
	if s.err != nil {
		return model.IDMap{}, s.err
	}
	return m, nil
}

// UIDMap reads /proc/<pid>/uid_map.
func (fsys FS) UIDMap(pid int) ([]model.IDMap, error) { return fsys.idMap(pid, "uid_map") }

// GIDMap reads /proc/<pid>/gid_map.
func (fsys FS) GIDMap(pid int) ([]model.IDMap, error) { return fsys.idMap(pid, "gid_map") }

func (fsys FS) idMap(pid int, name string) ([]model.IDMap, error) {
	var maps []model.IDMap
	err := procfs.ReadLines(fsys.pidPath(pid, name), func(line string) error {
		if procfs.Trim(line) == "" {
			return nil
		}
		m, err := ParseIDMapLine(line)
		if err != nil {
			return err
		}
		maps = append(maps, m)
		return nil
	})
	return maps, err
}
