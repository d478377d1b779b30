//go:build linux

package proc

import (
	"strconv"
	"strings"
	"time"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

const (
	modName = iota
	modSize
	modInstances
	modDependencies
	modState
	modOffset
	modTaint
)

// ParseModuleLine decodes one line of /proc/modules:
//
//	nf_tables 270336 183 nft_ct,nft_chain_nat, Live 0xffffffffc0a5f000 (OE)
func ParseModuleLine(line string) (model.Module, error) {
	var mod model.Module

	s := newFieldScanner("module", line, procfs.Fields(line))
	if !s.need(modOffset + 1) {
		return mod, s.err
	}
	mod.Name = s.fields[modName]
	scanInt(s, &mod.Size, modSize, procfs.Decimal)
	scanInt(s, &mod.Instances, modInstances, procfs.Decimal)

	if deps := s.fields[modDependencies]; deps != "-" {
		mod.Dependencies = procfs.Split(deps, ',', false)
	}

	switch s.fields[modState] {
	case "Live":
		mod.State = model.ModuleLive
	case "Loading":
		mod.State = model.ModuleLoading
	case "Unloading":
		mod.State = model.ModuleUnloading
	default:
		s.fail(modState, nil)
	}

	offset, ok := strings.CutPrefix(s.fields[modOffset], "0x")
	if !ok {
		s.fail(modOffset, nil)
	} else {
		v, err := procfs.ParseInt[uint64](offset, procfs.Hex)
		if err != nil {
			s.fail(modOffset, err)
		}
		mod.Offset = v
	}

	if s.has(modTaint) {
		taint := s.fields[modTaint]
		if !strings.HasPrefix(taint, "(") || !strings.HasSuffix(taint, ")") {
			s.fail(modTaint, nil)
		}
		mod.IsOutOfTree = strings.Contains(taint, "O")
		mod.IsUnsigned = strings.Contains(taint, "E")
	}

	if s.err != nil {
		return model.Module{}, s.err
	}
	return mod, nil
}

// Modules reads /proc/modules.
func (fsys FS) Modules() ([]model.Module, error) {
	var mods []model.Module
	err := procfs.ReadLines(fsys.path("modules"), func(line string) error {
		if procfs.Trim(line) == "" {
			return nil
		}
		mod, err := ParseModuleLine(line)
		if err != nil {
			return err
		}
		mods = append(mods, mod)
		return nil
	})
	return mods, err
}

// ParseLoadAvg decodes /proc/loadavg, e.g. "0.52 0.58 0.59 2/1234 56789".
func ParseLoadAvg(raw string) (model.LoadAverage, error) {
	var la model.LoadAverage

	fields := procfs.Fields(raw)
	if len(fields) != 5 {
		return la, procfs.NewParseError("corrupted loadavg - unexpected token count", raw, nil)
	}
	for i, dst := range []*float64{&la.Last1Min, &la.Last5Min, &la.Last15Min} {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return model.LoadAverage{}, procfs.NewParseError("corrupted loadavg - bad average", raw, err)
		}
		*dst = v
	}

	s := newFieldScanner("loadavg", raw, fields)
	scanPair(s, &la.RunnableTasks, &la.TotalTasks, 3, '/', procfs.Decimal)
	scanInt(s, &la.LastCreatedTask, 4, procfs.Decimal)
	if s.err != nil {
		return model.LoadAverage{}, s.err
	}
	return la, nil
}

func (fsys FS) LoadAvg() (model.LoadAverage, error) {
	raw, err := procfs.ReadLine(fsys.path("loadavg"))
	if err != nil {
		return model.LoadAverage{}, err
	}
	return ParseLoadAvg(raw)
}

// ParseUptime decodes /proc/uptime: seconds since boot and aggregate idle
// seconds across CPUs, both with centisecond precision.
func ParseUptime(raw string) (model.Uptime, error) {
	fields := procfs.Fields(raw)
	if len(fields) != 2 {
		return model.Uptime{}, procfs.NewParseError("corrupted uptime - unexpected token count", raw, nil)
	}
	system, err := parseSeconds(fields[0])
	if err != nil {
		return model.Uptime{}, procfs.NewParseError("corrupted uptime - bad system time", raw, err)
	}
	idle, err := parseSeconds(fields[1])
	if err != nil {
		return model.Uptime{}, procfs.NewParseError("corrupted uptime - bad idle time", raw, err)
	}
	return model.Uptime{SystemTime: system, IdleTime: idle}, nil
}

func parseSeconds(token string) (time.Duration, error) {
	if token == "" || token[0] < '0' || token[0] > '9' {
		return 0, procfs.ErrMalformed
	}
	return time.ParseDuration(token + "s")
}

func (fsys FS) Uptime() (model.Uptime, error) {
	raw, err := procfs.ReadLine(fsys.path("uptime"))
	if err != nil {
		return model.Uptime{}, err
	}
	return ParseUptime(raw)
}

// ParseProcStat decodes /proc/stat. Unknown keys are skipped.
func ParseProcStat(raw string) (model.ProcStat, error) {
	var st model.ProcStat
	for _, line := range procfs.Split(raw, '\n', false) {
		fields := procfs.Fields(line)
		if len(fields) < 2 {
			continue
		}
		key := fields[0]

		var err error
		switch {
		case key == "cpu":
			st.CPU, err = parseCPUTimes(line, fields)
		case strings.HasPrefix(key, "cpu"):
			var cpu model.CPUTimes
			cpu, err = parseCPUTimes(line, fields)
			st.PerCPU = append(st.PerCPU, cpu)
		case key == "intr":
			st.Intr, st.PerIntr, err = parseCounters(fields[1:])
		case key == "softirq":
			st.SoftIRQ, st.PerSoftIRQ, err = parseCounters(fields[1:])
		case key == "ctxt":
			st.Ctxt, err = procfs.ParseInt[uint64](fields[1], procfs.Decimal)
		case key == "btime":
			var sec int64
			sec, err = procfs.ParseInt[int64](fields[1], procfs.Decimal)
			st.BootTime = time.Unix(sec, 0)
		case key == "processes":
			st.Processes, err = procfs.ParseInt[uint64](fields[1], procfs.Decimal)
		case key == "procs_running":
			st.ProcsRunning, err = procfs.ParseInt[uint64](fields[1], procfs.Decimal)
		case key == "procs_blocked":
			st.ProcsBlocked, err = procfs.ParseInt[uint64](fields[1], procfs.Decimal)
		}
		if err != nil {
			return model.ProcStat{}, procfs.NewParseError("corrupted stat - bad "+key, line, err)
		}
	}
	return st, nil
}

func parseCPUTimes(line string, fields []string) (model.CPUTimes, error) {
	var t model.CPUTimes
	s := newFieldScanner("cpu times", line, fields)
	if !s.need(5) {
		return t, s.err
	}
	scanInt(s, &t.User, 1, procfs.Decimal)
	scanInt(s, &t.Nice, 2, procfs.Decimal)
	scanInt(s, &t.System, 3, procfs.Decimal)
	scanInt(s, &t.Idle, 4, procfs.Decimal)
	scanInt(s, &t.IOWait, 5, procfs.Decimal)
	scanInt(s, &t.IRQ, 6, procfs.Decimal)
	scanInt(s, &t.SoftIRQ, 7, procfs.Decimal)
	scanInt(s, &t.Steal, 8, procfs.Decimal)
	scanInt(s, &t.Guest, 9, procfs.Decimal)
	scanInt(s, &t.GuestNice, 10, procfs.Decimal)
	return t, s.err
}

func parseCounters(fields []string) (uint64, []uint64, error) {
	total, err := procfs.ParseInt[uint64](fields[0], procfs.Decimal)
	if err != nil {
		return 0, nil, err
	}
	per := make([]uint64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := procfs.ParseInt[uint64](f, procfs.Decimal)
		if err != nil {
			return 0, nil, err
		}
		per = append(per, v)
	}
	return total, per, nil
}

// procStatMinRead is the smallest read ProcStat makes. The intr line alone
// outgrows DefaultMaxRead on machines with many interrupt sources.
const procStatMinRead = 1 << 20

// ProcStat reads /proc/stat with the FS read limit, raised to
// procStatMinRead when it is smaller.
func (fsys FS) ProcStat() (model.ProcStat, error) {
	raw, err := procfs.ReadFile(fsys.path("stat"), max(fsys.maxRead, procStatMinRead), false)
	if err != nil {
		return model.ProcStat{}, err
	}
	return ParseProcStat(raw)
}

// ParseCgroupControllerLine decodes one data row of /proc/cgroups.
func ParseCgroupControllerLine(line string) (model.CgroupController, error) {
	var c model.CgroupController
	s := newFieldScanner("cgroup controller", line, procfs.Fields(line))
	if !s.need(4) {
		return c, s.err
	}
	c.SubsysName = s.fields[0]
	scanInt(s, &c.Hierarchy, 1, procfs.Decimal)
	scanInt(s, &c.NumCgroups, 2, procfs.Decimal)
	var enabled uint8
	scanInt(s, &enabled, 3, procfs.Decimal)
	if s.err != nil {
		return model.CgroupController{}, s.err
	}
	c.Enabled = enabled != 0
	return c, nil
}

func (fsys FS) CgroupControllers() ([]model.CgroupController, error) {
	var out []model.CgroupController
	err := procfs.ReadLines(fsys.path("cgroups"), func(line string) error {
		if strings.HasPrefix(line, "#") || procfs.Trim(line) == "" {
			return nil
		}
		c, err := ParseCgroupControllerLine(line)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}
