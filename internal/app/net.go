//go:build linux

package app

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procfs/internal/output"
	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/pkg/model"
)

func newSocketsCmd(s *session) *cobra.Command {
	tables := append(slices.Clone(proc.SocketTables), "unix")
	return &cobra.Command{
		Use:       "sockets [" + strings.Join(tables, "|") + "]",
		Short:     "List sockets from /proc/net (default: all inet tables)",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: tables,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == "unix" {
				return s.unixSockets(cmd)
			}
			names := proc.SocketTables
			if len(args) == 1 {
				names = args
			}

			type tableSocket struct {
				Protocol string
				model.NetSocket
			}
			var all []tableSocket
			var rows [][]string
			for _, name := range names {
				socks, err := s.fsys.NetSockets(name)
				if err != nil {
					if len(args) == 0 {
						// ipv6 or raw may be compiled out
						s.log.Debugln("skipping", name+":", err)
						continue
					}
					return err
				}
				for _, sock := range socks {
					all = append(all, tableSocket{Protocol: name, NetSocket: sock})
					rows = append(rows, []string{
						name,
						output.Endpoint(sock.LocalIP, sock.LocalPort),
						output.Endpoint(sock.RemoteIP, sock.RemotePort),
						sock.State.String(),
						fmt.Sprintf("%d/%d", sock.TxQueue, sock.RxQueue),
						strconv.FormatUint(uint64(sock.UID), 10),
						strconv.FormatUint(sock.Inode, 10),
					})
				}
			}
			return s.emit(cmd.OutOrStdout(), all,
				[]string{"PROTO", "LOCAL", "REMOTE", "STATE", "TX/RX", "UID", "INODE"}, rows)
		},
	}
}

func (s *session) unixSockets(cmd *cobra.Command) error {
	socks, err := s.fsys.UnixSockets()
	if err != nil {
		return err
	}
	rows := make([][]string, len(socks))
	for i, sock := range socks {
		rows[i] = []string{
			strconv.Itoa(int(sock.Type)),
			strconv.Itoa(int(sock.State)),
			strconv.FormatUint(sock.Inode, 10),
			sock.Path,
		}
	}
	return s.emit(cmd.OutOrStdout(), socks, []string{"TYPE", "STATE", "INODE", "PATH"}, rows)
}

func newPortsCmd(s *session) *cobra.Command {
	var port uint16
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "Map sockets to the processes holding them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				return s.portState(cmd, port)
			}
			ports, err := s.fsys.OpenPorts()
			if err != nil {
				return err
			}
			rows := make([][]string, len(ports))
			for i, p := range ports {
				rows[i] = []string{
					strconv.Itoa(p.PID),
					p.Protocol,
					output.Endpoint(p.Socket.LocalIP, p.Socket.LocalPort),
					output.Endpoint(p.Socket.RemoteIP, p.Socket.RemotePort),
					p.Socket.State.String(),
					strconv.FormatUint(p.Socket.Inode, 10),
				}
			}
			return s.emit(cmd.OutOrStdout(), ports,
				[]string{"PID", "PROTO", "LOCAL", "REMOTE", "STATE", "INODE"}, rows)
		},
	}
	cmd.Flags().Uint16Var(&port, "port", 0, "explain the TCP state of one local port")
	return cmd
}

func (s *session) portState(cmd *cobra.Command, port uint16) error {
	sock, ok, err := s.fsys.PortState(port)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no TCP socket on port %d", port)
	}
	explanation, workaround := proc.StateExplanation(sock.State)
	if s.opts.json {
		return s.emit(cmd.OutOrStdout(), struct {
			Socket      model.NetSocket
			State       string
			Explanation string
			Workaround  string `json:",omitempty"`
		}{sock, proc.TCPStateName(sock.State), explanation, workaround}, nil, nil)
	}
	rows := [][]string{
		{"local", output.Endpoint(sock.LocalIP, sock.LocalPort)},
		{"remote", output.Endpoint(sock.RemoteIP, sock.RemotePort)},
		{"state", proc.TCPStateName(sock.State)},
		{"meaning", explanation},
	}
	if workaround != "" {
		rows = append(rows, []string{"workaround", workaround})
	}
	return s.emit(cmd.OutOrStdout(), sock, []string{"FIELD", "VALUE"}, rows)
}

func newNetDevCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "netdev",
		Short: "Show per-interface traffic counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			devs, err := s.fsys.NetDevices()
			if err != nil {
				return err
			}
			rows := make([][]string, len(devs))
			for i, d := range devs {
				rows[i] = []string{
					d.Interface,
					output.FormatBytes(d.RxBytes),
					strconv.FormatUint(d.RxPackets, 10),
					strconv.FormatUint(d.RxErrs+d.RxDrop, 10),
					output.FormatBytes(d.TxBytes),
					strconv.FormatUint(d.TxPackets, 10),
					strconv.FormatUint(d.TxErrs+d.TxDrop, 10),
				}
			}
			return s.emit(cmd.OutOrStdout(), devs,
				[]string{"IFACE", "RX", "RX PKTS", "RX ERR+DROP", "TX", "TX PKTS", "TX ERR+DROP"}, rows)
		},
	}
}

func newRoutesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Show the IPv4 routing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			routes, err := s.fsys.NetRoutes()
			if err != nil {
				return err
			}
			rows := make([][]string, len(routes))
			for i, r := range routes {
				rows[i] = []string{
					r.Iface,
					r.Destination.String(),
					r.Gateway.String(),
					r.Mask.String(),
					fmt.Sprintf("%04X", r.Flags),
					strconv.Itoa(int(r.Metric)),
				}
			}
			return s.emit(cmd.OutOrStdout(), routes,
				[]string{"IFACE", "DESTINATION", "GATEWAY", "MASK", "FLAGS", "METRIC"}, rows)
		},
	}
}
