package model

import "fmt"

// NetState is the TCP state column ("st") of /proc/net/{tcp,udp,raw}.
// See include/net/tcp_states.h.
type NetState int

const (
	StateEstablished NetState = iota + 1
	StateSynSent
	StateSynRecv
	StateFinWait1
	StateFinWait2
	StateTimeWait
	StateClose
	StateCloseWait
	StateLastAck
	StateListen
	StateClosing
	StateNewSynRecv
)

// TimerState is the first half of the "tr:tm->when" column.
type TimerState int

const (
	TimerNone       TimerState = 0 // no timer is pending
	TimerRetransmit TimerState = 1
	TimerAnother    TimerState = 2 // delayed ack or keepalive
	TimerTimeWait   TimerState = 3 // not all fields are meaningful
	TimerZeroWindow TimerState = 4 // zero window probe
)

// NetSocket is one row of /proc/net/{tcp,udp,raw}{,6}.
// See get_tcp4_sock in tcp_ipv4.c.
type NetSocket struct {
	Slot               uint64
	LocalIP            IP
	LocalPort          uint16
	RemoteIP           IP
	RemotePort         uint16
	State              NetState
	TxQueue            uint64
	RxQueue            uint64
	Timer              TimerState
	TimerExpireJiffies uint64
	Retransmits        uint64
	UID                uint32
	Timeouts           uint64
	Inode              uint64
	RefCount           int64
	SKBuff             uint64
}

// UnixSocketType is the Type column of /proc/net/unix.
type UnixSocketType int

const (
	UnixStream    UnixSocketType = 1
	UnixDatagram  UnixSocketType = 2
	UnixRaw       UnixSocketType = 3
	UnixRDM       UnixSocketType = 4
	UnixSeqPacket UnixSocketType = 5
	UnixDCCP      UnixSocketType = 6
	UnixPacket    UnixSocketType = 10
)

// UnixSocketState follows the kernel's socket_state enum.
type UnixSocketState int

const (
	UnixFree UnixSocketState = iota
	UnixUnconnected
	UnixConnecting
	UnixConnected
	UnixDisconnecting
)

// UnixSocket is one row of /proc/net/unix. See unix_seq_show in af_unix.c.
type UnixSocket struct {
	SKBuff   uint64
	RefCount int64
	Protocol int64
	Flags    int64
	Type     UnixSocketType
	State    UnixSocketState
	Inode    uint64
	Path     string
}

// String returns the kernel's name for the state, e.g. "LISTEN".
func (s NetState) String() string {
	if s >= StateEstablished && s <= StateNewSynRecv {
		return netStateNames[s-StateEstablished]
	}
	return fmt.Sprintf("UNKNOWN (%02X)", int(s))
}

var netStateNames = [...]string{
	"ESTABLISHED",
	"SYN_SENT",
	"SYN_RECV",
	"FIN_WAIT1",
	"FIN_WAIT2",
	"TIME_WAIT",
	"CLOSE",
	"CLOSE_WAIT",
	"LAST_ACK",
	"LISTEN",
	"CLOSING",
	"NEW_SYN_RECV",
}

// OpenPort ties a socket row to a process holding it open.
type OpenPort struct {
	PID      int
	Protocol string
	Socket   NetSocket
}

// NetDevice is one interface row of /proc/net/dev.
type NetDevice struct {
	Interface    string
	RxBytes      uint64
	RxPackets    uint64
	RxErrs       uint64
	RxDrop       uint64
	RxFifo       uint64
	RxFrame      uint64
	RxCompressed uint64
	RxMulticast  uint64
	TxBytes      uint64
	TxPackets    uint64
	TxErrs       uint64
	TxDrop       uint64
	TxFifo       uint64
	TxColls      uint64
	TxCarrier    uint64
	TxCompressed uint64
}

// NetRoute is one IPv4 route of /proc/net/route. See fib_route_seq_show.
type NetRoute struct {
	Iface       string
	Destination IP
	Gateway     IP
	Flags       uint32
	RefCnt      int32
	Use         uint32
	Metric      int32
	Mask        IP
	MTU         int32
	Window      uint32
	IRTT        uint32
}
