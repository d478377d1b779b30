package model

// Capability is a bit position in a capability set (see capabilities(7)).
type Capability uint

const (
	CapChown Capability = iota
	CapDacOverride
	CapDacReadSearch
	CapFowner
	CapFsetid
	CapKill
	CapSetgid
	CapSetuid
	CapSetpcap
	CapLinuxImmutable
	CapNetBindService
	CapNetBroadcast
	CapNetAdmin
	CapNetRaw
	CapIpcLock
	CapIpcOwner
	CapSysModule
	CapSysRawio
	CapSysChroot
	CapSysPtrace
	CapSysPacct
	CapSysAdmin
	CapSysBoot
	CapSysNice
	CapSysResource
	CapSysTime
	CapSysTtyConfig
	CapMknod
	CapLease
	CapAuditWrite
	CapAuditControl
	CapSetfcap
	CapMacOverride
	CapMacAdmin
	CapSyslog
	CapWakeAlarm
	CapBlockSuspend
	CapAuditRead
	CapPerfmon
	CapBPF
	CapCheckpointRestore

	capCount
)

var capabilityNames = [capCount]string{
	"chown", "dac_override", "dac_read_search", "fowner", "fsetid", "kill",
	"setgid", "setuid", "setpcap", "linux_immutable", "net_bind_service",
	"net_broadcast", "net_admin", "net_raw", "ipc_lock", "ipc_owner",
	"sys_module", "sys_rawio", "sys_chroot", "sys_ptrace", "sys_pacct",
	"sys_admin", "sys_boot", "sys_nice", "sys_resource", "sys_time",
	"sys_tty_config", "mknod", "lease", "audit_write", "audit_control",
	"setfcap", "mac_override", "mac_admin", "syslog", "wake_alarm",
	"block_suspend", "audit_read", "perfmon", "bpf", "checkpoint_restore",
}

func (c Capability) String() string {
	if c >= capCount {
		return "unknown"
	}
	return capabilityNames[c]
}

// CapabilitiesMask is a raw CapInh/CapPrm/CapEff/CapBnd/CapAmb value.
type CapabilitiesMask struct {
	Raw uint64
}

// IsSet reports whether cap is in the mask. Bits the table doesn't name are
// never set, whatever the raw value says.
func (m CapabilitiesMask) IsSet(c Capability) bool {
	if c >= capCount || c >= 64 {
		return false
	}
	return m.Raw&(1<<c) != 0
}

// Names lists the named capabilities present in the mask, lowest bit first.
func (m CapabilitiesMask) Names() []string {
	var names []string
	for c := Capability(0); c < capCount; c++ {
		if m.IsSet(c) {
			names = append(names, c.String())
		}
	}
	return names
}

// Signal numbers on x86/ARM and most other architectures.
type Signal uint

const (
	SIGHUP Signal = iota + 1
	SIGINT
	SIGQUIT
	SIGILL
	SIGTRAP
	SIGABRT
	SIGBUS
	SIGFPE
	SIGKILL
	SIGUSR1
	SIGSEGV
	SIGUSR2
	SIGPIPE
	SIGALRM
	SIGTERM
	SIGSTKFLT
	SIGCHLD
	SIGCONT
	SIGSTOP
	SIGTSTP
	SIGTTIN
	SIGTTOU
	SIGURG
	SIGXCPU
	SIGXFSZ
	SIGVTALRM
	SIGPROF
	SIGWINCH
	SIGIO
	SIGPWR
	SIGSYS

	sigCount

	SIGIOT    = SIGABRT
	SIGPOLL   = SIGIO
	SIGUNUSED = SIGSYS
)

// SignalMask is a raw SigPnd/ShdPnd/SigBlk/SigIgn/SigCgt value. Signal N is
// stored in bit N-1.
type SignalMask struct {
	Raw uint64
}

// IsSet reports whether sig is in the mask. Signals outside the named range
// (including real-time signals) are never set.
func (m SignalMask) IsSet(sig Signal) bool {
	if sig == 0 || sig >= sigCount || sig > 64 {
		return false
	}
	return m.Raw&(1<<(sig-1)) != 0
}
