//go:build linux

package proc

import (
	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// Status reads /proc/<pid>/status.
func (fsys FS) Status(pid int) (model.TaskStatus, error) {
	raw, err := fsys.readPID(pid, "status")
	if err != nil {
		return model.TaskStatus{}, err
	}
	return ParseTaskStatus(raw)
}

// ParseTaskStatus decodes the "Key:\tvalue" lines of a status file. Keys
// this package doesn't know are skipped, so newer kernels parse fine.
func ParseTaskStatus(raw string) (model.TaskStatus, error) {
	st := model.TaskStatus{
		TGid:      model.InvalidPID,
		NGid:      model.InvalidPID,
		PID:       model.InvalidPID,
		PPID:      model.InvalidPID,
		TracerPID: model.InvalidPID,
		UID:       invalidIDSet(),
		GID:       invalidIDSet(),
		Threads:   1,
	}

	for _, line := range procfs.Split(raw, '\n', false) {
		key, value := procfs.SplitOnce(line, ':')
		value = procfs.Trim(value)
		if err := decodeStatusField(&st, key, value); err != nil {
			return model.TaskStatus{}, procfs.NewParseError("corrupted status - bad "+key, line, err)
		}
	}
	return st, nil
}

func invalidIDSet() model.IDSet {
	return model.IDSet{
		Real:       model.InvalidUID,
		Effective:  model.InvalidUID,
		SavedSet:   model.InvalidUID,
		Filesystem: model.InvalidUID,
	}
}

func decodeStatusField(st *model.TaskStatus, key, value string) error {
	var err error
	switch key {
	case "Name":
		st.Name = value
	case "Umask":
		st.Umask, err = procfs.ParseInt[uint32](value, procfs.Octal)
	case "State":
		st.State, err = parseTaskState(value)
	case "Tgid":
		st.TGid, err = procfs.ParseInt[int32](value, procfs.Decimal)
	case "Ngid":
		st.NGid, err = procfs.ParseInt[int32](value, procfs.Decimal)
	case "Pid":
		st.PID, err = procfs.ParseInt[int32](value, procfs.Decimal)
	case "PPid":
		st.PPID, err = procfs.ParseInt[int32](value, procfs.Decimal)
	case "TracerPid":
		st.TracerPID, err = procfs.ParseInt[int32](value, procfs.Decimal)
	case "Uid":
		st.UID, err = parseIDSet(value)
	case "Gid":
		st.GID, err = parseIDSet(value)
	case "FDSize":
		st.FDSize, err = procfs.ParseInt[uint64](value, procfs.Decimal)
	case "Groups":
		st.Groups, err = parseList[uint32](value)
	case "NStgid":
		st.NSTGid, err = parseList[int32](value)
	case "NSpid":
		st.NSPid, err = parseList[int32](value)
	case "NSpgid":
		st.NSPGid, err = parseList[int32](value)
	case "NSsid":
		st.NSSid, err = parseList[int32](value)
	case "VmPeak":
		st.VMPeak, err = parseKB(value)
	case "VmSize":
		st.VMSize, err = parseKB(value)
	case "VmLck":
		st.VMLck, err = parseKB(value)
	case "VmPin":
		st.VMPin, err = parseKB(value)
	case "VmHWM":
		st.VMHWM, err = parseKB(value)
	case "VmRSS":
		st.VMRSS, err = parseKB(value)
	case "RssAnon":
		st.RSSAnon, err = parseKB(value)
	case "RssFile":
		st.RSSFile, err = parseKB(value)
	case "RssShmem":
		st.RSSShmem, err = parseKB(value)
	case "VmData":
		st.VMData, err = parseKB(value)
	case "VmStk":
		st.VMStk, err = parseKB(value)
	case "VmExe":
		st.VMExe, err = parseKB(value)
	case "VmLib":
		st.VMLib, err = parseKB(value)
	case "VmPTE":
		st.VMPTE, err = parseKB(value)
	case "VmSwap":
		st.VMSwap, err = parseKB(value)
	case "HugetlbPages":
		st.HugeTLBPages, err = parseKB(value)
	case "CoreDumping":
		st.CoreDumping, err = parseBool(value)
	case "Threads":
		st.Threads, err = procfs.ParseInt[uint64](value, procfs.Decimal)
	case "SigQ":
		head, rest := procfs.SplitOnce(value, '/')
		if st.SigQ[0], err = procfs.ParseInt[uint64](head, procfs.Decimal); err == nil {
			st.SigQ[1], err = procfs.ParseInt[uint64](rest, procfs.Decimal)
		}
	case "SigPnd":
		st.SigPnd.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "ShdPnd":
		st.ShdPnd.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "SigBlk":
		st.SigBlk.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "SigIgn":
		st.SigIgn.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "SigCgt":
		st.SigCgt.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "CapInh":
		st.CapInh.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "CapPrm":
		st.CapPrm.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "CapEff":
		st.CapEff.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "CapBnd":
		st.CapBnd.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "CapAmb":
		st.CapAmb.Raw, err = procfs.ParseInt[uint64](value, procfs.Hex)
	case "NoNewPrivs":
		st.NoNewPrivs, err = parseBool(value)
	case "Seccomp":
		st.SeccompMode, err = procfs.ParseInt[model.Seccomp](value, procfs.Decimal)
	case "voluntary_ctxt_switches":
		st.VoluntaryCtxtSwitches, err = procfs.ParseInt[uint64](value, procfs.Decimal)
	case "nonvoluntary_ctxt_switches":
		st.NonvoluntaryCtxtSwitches, err = procfs.ParseInt[uint64](value, procfs.Decimal)
	}
	return err
}

func parseIDSet(value string) (model.IDSet, error) {
	ids, err := parseList[uint32](value)
	if err != nil {
		return model.IDSet{}, err
	}
	if len(ids) != 4 {
		return model.IDSet{}, procfs.NewParseError("expected 4 ids", value, nil)
	}
	return model.IDSet{Real: ids[0], Effective: ids[1], SavedSet: ids[2], Filesystem: ids[3]}, nil
}

func parseList[T procfs.Integer](value string) ([]T, error) {
	fields := procfs.Fields(value)
	out := make([]T, 0, len(fields))
	for _, f := range fields {
		v, err := procfs.ParseInt[T](f, procfs.Decimal)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseKB decodes an "N kB" field, keeping the value in kB.
func parseKB(value string) (uint64, error) {
	size, unit, err := procfs.ParseMemorySize(value)
	if err != nil {
		return 0, err
	}
	if unit != "kB" {
		return 0, procfs.NewParseError("expected kB", value, nil)
	}
	return size, nil
}

func parseBool(value string) (bool, error) {
	v, err := procfs.ParseInt[uint8](value, procfs.Decimal)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
