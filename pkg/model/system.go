package model

import "time"

type ModuleState int

const (
	ModuleLive ModuleState = iota
	ModuleLoading
	ModuleUnloading
)

func (s ModuleState) String() string {
	switch s {
	case ModuleLive:
		return "Live"
	case ModuleLoading:
		return "Loading"
	case ModuleUnloading:
		return "Unloading"
	}
	return "Unknown"
}

// Module is one line of /proc/modules.
type Module struct {
	Name         string
	Size         uint64
	Instances    uint64
	Dependencies []string
	State        ModuleState
	Offset       uint64
	IsOutOfTree  bool
	IsUnsigned   bool
}

// Mount is one line of /proc/<pid>/mountinfo.
type Mount struct {
	ID             uint32
	ParentID       uint32
	DevMajor       uint32
	DevMinor       uint32
	Root           string
	Point          string
	Options        []string
	Optional       []string
	FilesystemType string
	Source         string
	SuperOptions   []string
}

type LoadAverage struct {
	Last1Min        float64
	Last5Min        float64
	Last15Min       float64
	RunnableTasks   int64
	TotalTasks      int64
	LastCreatedTask int64
}

type Uptime struct {
	SystemTime time.Duration
	IdleTime   time.Duration
}

// Cgroup is one line of /proc/<pid>/cgroup. Hierarchy 0 with no controllers
// is the unified (v2) hierarchy.
type Cgroup struct {
	Hierarchy   uint32
	Controllers []string
	Pathname    string
}

// CgroupController is one row of /proc/cgroups.
type CgroupController struct {
	SubsysName string
	Hierarchy  uint32
	NumCgroups uint32
	Enabled    bool
}

// IDMap is one line of /proc/<pid>/{uid,gid}_map.
type IDMap struct {
	InsideNS  uint32
	OutsideNS uint32
	Length    uint32
}

// CPUTimes are the clock ticks a CPU spent in each mode.
type CPUTimes struct {
	User      uint64
	Nice      uint64
	System    uint64
	Idle      uint64
	IOWait    uint64
	IRQ       uint64
	SoftIRQ   uint64
	Steal     uint64
	Guest     uint64
	GuestNice uint64
}

// ProcStat is the content of /proc/stat.
type ProcStat struct {
	CPU          CPUTimes
	PerCPU       []CPUTimes
	Intr         uint64
	PerIntr      []uint64
	Ctxt         uint64
	BootTime     time.Time
	Processes    uint64
	ProcsRunning uint64
	ProcsBlocked uint64
	SoftIRQ      uint64
	PerSoftIRQ   []uint64
}
