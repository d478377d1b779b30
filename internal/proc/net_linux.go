//go:build linux

package proc

import (
	"maps"
	"slices"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// SocketTables are the /proc/net files holding NetSocket rows.
var SocketTables = []string{"tcp", "tcp6", "udp", "udp6", "raw", "raw6"}

const (
	sockSlot = iota
	sockLocal
	sockRemote
	sockState
	sockQueues
	sockTimer
	sockRetransmits
	sockUID
	sockTimeouts
	sockInode
	sockRefCount
	sockSKBuff
)

// ParseNetSocketLine decodes one data row of /proc/net/{tcp,udp,raw}{,6}.
func ParseNetSocketLine(line string) (model.NetSocket, error) {
	var sock model.NetSocket

	s := newFieldScanner("net socket", line, procfs.Fields(line))
	if !s.need(sockInode + 1) {
		return sock, s.err
	}

	slot, _ := procfs.SplitOnce(s.fields[sockSlot], ':')
	v, err := procfs.ParseInt[uint64](slot, procfs.Decimal)
	if err != nil {
		s.fail(sockSlot, err)
	}
	sock.Slot = v

	s.address(&sock.LocalIP, &sock.LocalPort, sockLocal)
	s.address(&sock.RemoteIP, &sock.RemotePort, sockRemote)
	scanInt(s, &sock.State, sockState, procfs.Hex)
	scanPair(s, &sock.TxQueue, &sock.RxQueue, sockQueues, ':', procfs.Hex)
	scanTimer(s, &sock.Timer, &sock.TimerExpireJiffies, sockTimer)
	scanInt(s, &sock.Retransmits, sockRetransmits, procfs.Hex)
	scanInt(s, &sock.UID, sockUID, procfs.Decimal)
	scanInt(s, &sock.Timeouts, sockTimeouts, procfs.Decimal)
	scanInt(s, &sock.Inode, sockInode, procfs.Decimal)
	scanInt(s, &sock.RefCount, sockRefCount, procfs.Decimal)
	scanInt(s, &sock.SKBuff, sockSKBuff, procfs.Hex)
	if s.err != nil {
		return model.NetSocket{}, s.err
	}
	return sock, nil
}

func (s *fieldScanner) address(ip *model.IP, port *uint16, i int) {
	if !s.has(i) {
		return
	}
	a, p, err := procfs.ParseAddress(s.fields[i])
	if err != nil {
		s.fail(i, err)
		return
	}
	*ip, *port = a, p
}

func scanTimer(s *fieldScanner, timer *model.TimerState, expires *uint64, i int) {
	var t uint64
	scanPair(s, &t, expires, i, ':', procfs.Hex)
	*timer = model.TimerState(t)
}

// NetSockets reads /proc/net/<table>, e.g. "tcp6". The header row is skipped.
func (fsys FS) NetSockets(table string) ([]model.NetSocket, error) {
	var out []model.NetSocket
	err := fsys.readTable(fsys.path("net", table), func(line string) error {
		sock, err := ParseNetSocketLine(line)
		if err != nil {
			return err
		}
		out = append(out, sock)
		return nil
	})
	return out, err
}

const (
	unixSKBuff = iota
	unixRefCount
	unixProtocol
	unixFlags
	unixType
	unixState
	unixInode
	unixPath
)

// ParseUnixSocketLine decodes one data row of /proc/net/unix. Path is empty
// for unbound sockets and starts with '@' for abstract ones.
func ParseUnixSocketLine(line string) (model.UnixSocket, error) {
	var sock model.UnixSocket

	fields, path := cutFields(line, unixPath)
	s := newFieldScanner("unix socket", line, fields)
	if !s.need(unixPath) {
		return sock, s.err
	}

	skb, _ := procfs.SplitOnce(fields[unixSKBuff], ':')
	v, err := procfs.ParseInt[uint64](skb, procfs.Hex)
	if err != nil {
		s.fail(unixSKBuff, err)
	}
	sock.SKBuff = v

	scanInt(s, &sock.RefCount, unixRefCount, procfs.Hex)
	scanInt(s, &sock.Protocol, unixProtocol, procfs.Hex)
	scanInt(s, &sock.Flags, unixFlags, procfs.Hex)
	scanInt(s, &sock.Type, unixType, procfs.Hex)
	scanInt(s, &sock.State, unixState, procfs.Hex)
	scanInt(s, &sock.Inode, unixInode, procfs.Decimal)
	if s.err != nil {
		return model.UnixSocket{}, s.err
	}
	sock.Path = procfs.Trim(path)
	return sock, nil
}

// UnixSockets reads /proc/net/unix.
func (fsys FS) UnixSockets() ([]model.UnixSocket, error) {
	var out []model.UnixSocket
	err := fsys.readTable(fsys.path("net", "unix"), func(line string) error {
		sock, err := ParseUnixSocketLine(line)
		if err != nil {
			return err
		}
		out = append(out, sock)
		return nil
	})
	return out, err
}

// OpenPorts joins every socket table with the descriptors of every process.
// Sockets no process holds (or that we may not inspect) are omitted, and a
// socket shared by several processes is reported once per process.
func (fsys FS) OpenPorts() ([]model.OpenPort, error) {
	byInode := make(map[uint64][]model.OpenPort)
	for _, table := range SocketTables {
		socks, err := fsys.NetSockets(table)
		if isGone(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, sock := range socks {
			byInode[sock.Inode] = append(byInode[sock.Inode], model.OpenPort{Protocol: table, Socket: sock})
		}
	}

	pids, err := fsys.PIDs()
	if err != nil {
		return nil, err
	}

	var out []model.OpenPort
	for _, pid := range pids {
		fds, err := fsys.FDs(pid)
		if err != nil {
			continue
		}
		seen := make(map[uint64]bool)
		for _, fd := range slices.Sorted(maps.Keys(fds)) {
			inode, ok := SocketInodeFromLink(fds[fd])
			if !ok || seen[inode] {
				continue
			}
			seen[inode] = true
			for _, p := range byInode[inode] {
				p.PID = pid
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// readTable feeds visit every non-blank line of path after the header.
func (fsys FS) readTable(path string, visit func(line string) error) error {
	header := true
	return procfs.ReadLines(path, func(line string) error {
		if header {
			header = false
			return nil
		}
		if procfs.Trim(line) == "" {
			return nil
		}
		return visit(line)
	})
}
