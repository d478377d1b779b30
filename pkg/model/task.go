package model

const (
	InvalidPID   int32  = -1
	InvalidUID   uint32 = ^uint32(0)
	InvalidInode uint64 = 0
)

// TaskState is the scheduler state of a task. Only states that exist since
// 2.6.32 are represented.
type TaskState int

const (
	TaskRunning TaskState = iota
	TaskSleeping
	TaskDiskSleep
	TaskStopped
	TaskTracingStop
	TaskZombie
	TaskDead
	TaskWakeKill
	TaskWaking
	TaskParked
	TaskIdle
)

var taskStateNames = [...]string{
	"running", "sleeping", "disk-sleep", "stopped", "tracing-stop", "zombie",
	"dead", "wakekill", "waking", "parked", "idle",
}

func (s TaskState) String() string {
	if s < 0 || int(s) >= len(taskStateNames) {
		return "unknown"
	}
	return taskStateNames[s]
}

// TaskStat mirrors /proc/<pid>/stat.
//
// Field types changed throughout kernel history. Every field here uses the
// widest type any kernel has used for it, so older kernels (e.g. an int
// session on 2.6.32) widen losslessly. Fields a kernel does not print keep
// their zero value.
type TaskStat struct {
	PID                 int32
	Comm                string
	State               TaskState
	PPID                int32
	PGrp                int32
	Session             int64
	TTYNr               int64
	TPGid               int32
	Flags               uint64
	MinFlt              uint64
	CMinFlt             uint64
	MajFlt              uint64
	CMajFlt             uint64
	UTime               uint64
	STime               uint64
	CUTime              int64
	CSTime              int64
	Priority            int64
	Nice                int64
	NumThreads          int64
	ItRealValue         uint64
	StartTime           uint64
	VSize               uint64 // bytes
	RSS                 uint64 // pages
	RSSLim              uint64
	StartCode           uint64 // ptrace access mode
	EndCode             uint64 // ptrace access mode
	StartStack          uint64 // ptrace access mode
	KStkESP             uint64 // ptrace access mode
	KStkEIP             uint64 // ptrace access mode
	Signal              uint64
	Blocked             uint64
	SigIgnore           uint64
	SigCatch            uint64
	WChan               uint64 // ptrace access mode
	NSwap               uint64
	CNSwap              uint64
	ExitSignal          int64  // since 2.1.22
	Processor           int64  // since 2.2.8
	RTPriority          uint64 // since 2.5.19
	Policy              uint64 // since 2.5.19
	DelayacctBlkioTicks uint64 // since 2.6.18
	GuestTime           uint64 // since 2.6.24
	CGuestTime          int64  // since 2.6.24
	StartData           uint64 // since 3.3
	EndData             uint64 // since 3.3
	StartBrk            uint64 // since 3.3
	ArgStart            uint64 // since 3.5
	ArgEnd              uint64 // since 3.5
	EnvStart            uint64 // since 3.5
	EnvEnd              uint64 // since 3.5
	ExitCode            int64  // since 3.5
}

// Seccomp is the Seccomp mode reported in /proc/<pid>/status.
type Seccomp int

const (
	SeccompDisabled Seccomp = 0
	SeccompStrict   Seccomp = 1
	SeccompFilter   Seccomp = 2
)

// IDSet is one Uid: or Gid: line.
type IDSet struct {
	Real       uint32
	Effective  uint32
	SavedSet   uint32
	Filesystem uint32
}

// TaskStatus mirrors /proc/<pid>/status. Memory fields are in kB as printed.
type TaskStatus struct {
	Name      string
	Umask     uint32
	State     TaskState
	TGid      int32
	NGid      int32
	PID       int32
	PPID      int32
	TracerPID int32
	UID       IDSet
	GID       IDSet
	FDSize    uint64
	Groups    []uint32
	NSTGid    []int32
	NSPid     []int32
	NSPGid    []int32
	NSSid     []int32

	VMPeak       uint64
	VMSize       uint64
	VMLck        uint64
	VMPin        uint64
	VMHWM        uint64
	VMRSS        uint64
	RSSAnon      uint64
	RSSFile      uint64
	RSSShmem     uint64
	VMData       uint64
	VMStk        uint64
	VMExe        uint64
	VMLib        uint64
	VMPTE        uint64
	VMSwap       uint64
	HugeTLBPages uint64

	CoreDumping bool
	Threads     uint64
	SigQ        [2]uint64

	SigPnd SignalMask
	ShdPnd SignalMask
	SigBlk SignalMask
	SigIgn SignalMask
	SigCgt SignalMask

	CapInh CapabilitiesMask
	CapPrm CapabilitiesMask
	CapEff CapabilitiesMask
	CapBnd CapabilitiesMask
	CapAmb CapabilitiesMask

	NoNewPrivs  bool
	SeccompMode Seccomp

	VoluntaryCtxtSwitches    uint64
	NonvoluntaryCtxtSwitches uint64
}

// IOStats mirrors /proc/<pid>/io.
type IOStats struct {
	RChar               uint64
	WChar               uint64
	SyscR               uint64
	SyscW               uint64
	ReadBytes           uint64
	WriteBytes          uint64
	CancelledWriteBytes uint64
}
