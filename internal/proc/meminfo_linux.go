//go:build linux

package proc

import (
	"github.com/pranshuparmar/procfs/internal/procfs"
)

// ParseMeminfoLine decodes a "Name:   1024 kB" line into the name and the
// value in bytes. Lines without a unit (HugePages_Total and friends) are
// plain counts and are returned as is.
func ParseMeminfoLine(line string) (string, uint64, error) {
	name, value := procfs.SplitOnce(line, ':')
	name = procfs.Trim(name)
	value = procfs.Trim(value)
	if name == "" || value == "" {
		return "", 0, procfs.NewParseError("corrupted meminfo - expected \"name: value\"", line, nil)
	}

	if len(procfs.Fields(value)) == 1 {
		n, err := procfs.ParseInt[uint64](value, procfs.Decimal)
		if err != nil {
			return "", 0, procfs.NewParseError("corrupted meminfo - bad count", line, err)
		}
		return name, n, nil
	}

	size, unit, err := procfs.ParseMemorySize(value)
	if err != nil {
		return "", 0, err
	}
	mult, err := procfs.MemoryUnitMultiplier(unit)
	if err != nil {
		return "", 0, err
	}
	if size > ^uint64(0)/mult {
		return "", 0, procfs.NewParseError("corrupted meminfo - out of range", line, procfs.ErrOutOfRange)
	}
	return name, size * mult, nil
}

// MemInfo reads /proc/meminfo into a name to bytes (or count) map.
func (fsys FS) MemInfo() (map[string]uint64, error) {
	info := make(map[string]uint64)
	err := procfs.ReadLines(fsys.path("meminfo"), func(line string) error {
		if procfs.Trim(line) == "" {
			return nil
		}
		name, v, err := ParseMeminfoLine(line)
		if err != nil {
			return err
		}
		info[name] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}
