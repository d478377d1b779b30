//go:build linux

package proc

import (
	"github.com/pranshuparmar/procfs/pkg/model"
)

// TCPStateName is the display name of a socket state, e.g. "LISTEN".
func TCPStateName(state model.NetState) string {
	return state.String()
}

// StateExplanation describes what a TCP state means for the local side and,
// for states that commonly hold a port hostage, what to do about it.
func StateExplanation(state model.NetState) (explanation, workaround string) {
	switch state {
	case model.StateListen:
		return "Actively listening for connections", ""
	case model.StateTimeWait:
		return "Connection closed, waiting for delayed packets",
			"Wait for timeout (usually 60s) or use SO_REUSEADDR"
	case model.StateCloseWait:
		return "Remote side closed connection, local side has not closed yet",
			"The application should call close() on the socket"
	case model.StateFinWait1:
		return "Local side initiated close, waiting for acknowledgment", ""
	case model.StateFinWait2:
		return "Local close acknowledged, waiting for remote close", ""
	case model.StateEstablished:
		return "Active connection", ""
	case model.StateSynSent:
		return "Connection request sent, waiting for response", ""
	case model.StateSynRecv, model.StateNewSynRecv:
		return "Connection request received, sending acknowledgment", ""
	case model.StateClosing:
		return "Both sides initiated close simultaneously", ""
	case model.StateLastAck:
		return "Waiting for final acknowledgment of close", ""
	}
	return "Socket in " + state.String() + " state", ""
}

func isProblematicState(state model.NetState) bool {
	switch state {
	case model.StateTimeWait, model.StateCloseWait, model.StateFinWait1, model.StateFinWait2:
		return true
	}
	return false
}

// PortState picks the most telling TCP socket bound locally to port: a
// lingering close state first, then a listener, then whatever came first.
func (fsys FS) PortState(port uint16) (model.NetSocket, bool, error) {
	var states []model.NetSocket
	for _, table := range []string{"tcp", "tcp6"} {
		socks, err := fsys.NetSockets(table)
		if isGone(err) {
			continue
		}
		if err != nil {
			return model.NetSocket{}, false, err
		}
		for _, sock := range socks {
			if sock.LocalPort == port {
				states = append(states, sock)
			}
		}
	}
	if len(states) == 0 {
		return model.NetSocket{}, false, nil
	}

	for _, s := range states {
		if isProblematicState(s.State) {
			return s, true, nil
		}
	}
	for _, s := range states {
		if s.State == model.StateListen {
			return s, true, nil
		}
	}
	return states[0], true, nil
}
