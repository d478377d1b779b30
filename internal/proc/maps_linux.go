//go:build linux

package proc

import (
	"strings"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

const (
	mapAddress = iota
	mapPerm
	mapOffset
	mapDevice
	mapInode
	mapPathname
)

// ParseMapsLine decodes one line of /proc/<pid>/maps:
//
//	00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/dbus-daemon
//
// The pathname may contain spaces and is taken verbatim.
func ParseMapsLine(line string) (model.MemRegion, error) {
	var r model.MemRegion

	fields, path := cutFields(line, mapPathname)
	s := newFieldScanner("maps", line, fields)
	if !s.need(mapPathname) {
		return r, s.err
	}

	scanPair(s, &r.StartAddress, &r.EndAddress, mapAddress, '-', procfs.Hex)

	perm, err := parseMemPerm(fields[mapPerm])
	if err != nil {
		s.fail(mapPerm, err)
	}
	r.Perm = perm

	scanInt(s, &r.Offset, mapOffset, procfs.Hex)
	scanPair(s, &r.DevMajor, &r.DevMinor, mapDevice, ':', procfs.Hex)
	scanInt(s, &r.Inode, mapInode, procfs.Decimal)
	if s.err != nil {
		return model.MemRegion{}, s.err
	}
	r.Pathname = procfs.RTrim(path)
	return r, nil
}

// parseMemPerm decodes "rwxp": read, write, execute, then s(hared) or
// p(rivate). Unset flags are '-'.
func parseMemPerm(token string) (model.MemPerm, error) {
	bad := procfs.NewParseError("corrupted maps - bad permissions", token, nil)
	if len(token) != 4 {
		return model.MemPerm{}, bad
	}

	var p model.MemPerm
	for i, dst := range []*bool{&p.CanRead, &p.CanWrite, &p.CanExecute} {
		switch token[i] {
		case "rwx"[i]:
			*dst = true
		case '-':
		default:
			return model.MemPerm{}, bad
		}
	}
	switch token[3] {
	case 's':
		p.IsShared = true
	case 'p':
		p.IsPrivate = true
	case '-':
	default:
		return model.MemPerm{}, bad
	}
	return p, nil
}

// Maps reads /proc/<pid>/maps.
func (fsys FS) Maps(pid int) ([]model.MemRegion, error) {
	var regions []model.MemRegion
	err := procfs.ReadLines(fsys.pidPath(pid, "maps"), func(line string) error {
		if line == "" {
			return nil
		}
		r, err := ParseMapsLine(line)
		if err != nil {
			return err
		}
		regions = append(regions, r)
		return nil
	})
	return regions, err
}

// SMaps reads /proc/<pid>/smaps: each maps line followed by "Key: value"
// attribute lines for that region.
func (fsys FS) SMaps(pid int) ([]model.MemMap, error) {
	var maps []model.MemMap
	err := procfs.ReadLines(fsys.pidPath(pid, "smaps"), func(line string) error {
		if line == "" {
			return nil
		}
		key, value := procfs.SplitOnce(line, ':')
		if !isSMapsKey(key) {
			r, err := ParseMapsLine(line)
			if err != nil {
				return err
			}
			maps = append(maps, model.MemMap{Region: r})
			return nil
		}
		if len(maps) == 0 {
			return procfs.NewParseError("corrupted smaps - attribute before region", line, nil)
		}
		if err := decodeSMapsField(&maps[len(maps)-1], key, procfs.Trim(value)); err != nil {
			return procfs.NewParseError("corrupted smaps - bad "+key, line, err)
		}
		return nil
	})
	return maps, err
}

// Attribute keys are single words; region lines start with an address range.
func isSMapsKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, " -")
}

func decodeSMapsField(m *model.MemMap, key, value string) error {
	var dst *uint64
	switch key {
	case "Size":
		dst = &m.Size
	case "KernelPageSize":
		dst = &m.KernelPageSize
	case "MMUPageSize":
		dst = &m.MMUPageSize
	case "Rss":
		dst = &m.RSS
	case "Pss":
		dst = &m.PSS
	case "Pss_Dirty":
		dst = &m.PSSDirty
	case "Shared_Clean":
		dst = &m.SharedClean
	case "Shared_Dirty":
		dst = &m.SharedDirty
	case "Private_Clean":
		dst = &m.PrivateClean
	case "Private_Dirty":
		dst = &m.PrivateDirty
	case "Referenced":
		dst = &m.Referenced
	case "Anonymous":
		dst = &m.Anonymous
	case "KSM":
		dst = &m.KSM
	case "LazyFree":
		dst = &m.LazyFree
	case "AnonHugePages":
		dst = &m.AnonHugePages
	case "ShmemPmdMapped":
		dst = &m.ShmemPmdMapped
	case "FilePmdMapped":
		dst = &m.FilePmdMapped
	case "Shared_Hugetlb":
		dst = &m.SharedHugetlb
	case "Private_Hugetlb":
		dst = &m.PrivateHugetlb
	case "Swap":
		dst = &m.Swap
	case "SwapPss":
		dst = &m.SwapPSS
	case "Locked":
		dst = &m.Locked
	case "THPeligible":
		v, err := parseBool(value)
		m.THPEligible = v
		return err
	case "VmFlags":
		m.VMFlags = procfs.Fields(value)
		return nil
	default:
		return nil
	}
	v, err := parseKB(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
