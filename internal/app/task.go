//go:build linux

package app

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procfs/internal/output"
	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// pidCmd builds a subcommand that takes exactly one pid argument.
func pidCmd(use, short string, run func(cmd *cobra.Command, pid int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <pid>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, pid)
		},
	}
}

func idRows(ids []int) [][]string {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{strconv.Itoa(id)}
	}
	return rows
}

func newPIDsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "pids",
		Short: "List process ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pids, err := s.fsys.PIDs()
			if err != nil {
				return err
			}
			s.log.Debugf("%d processes under %s", len(pids), s.fsys.Root())
			return s.emit(cmd.OutOrStdout(), pids, []string{"PID"}, idRows(pids))
		},
	}
}

func newTIDsCmd(s *session) *cobra.Command {
	return pidCmd("tids", "List the thread ids of a process", func(cmd *cobra.Command, pid int) error {
		tids, err := s.fsys.TIDs(pid)
		if err != nil {
			return err
		}
		return s.emit(cmd.OutOrStdout(), tids, []string{"TID"}, idRows(tids))
	})
}

func newPsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "Show one line per process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := s.fsys.Snapshot()
			if err != nil {
				return err
			}
			up, err := s.fsys.Uptime()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(stats))
			for _, st := range stats {
				u := proc.ComputeUsage(st, up)
				rows = append(rows, []string{
					strconv.Itoa(int(st.PID)),
					strconv.Itoa(int(st.PPID)),
					st.State.String(),
					strconv.FormatInt(st.NumThreads, 10),
					fmt.Sprintf("%.1f", u.CPUPercent),
					output.FormatBytes(u.RSSBytes),
					st.Comm,
				})
			}
			return s.emit(cmd.OutOrStdout(), stats,
				[]string{"PID", "PPID", "STATE", "THREADS", "CPU%", "RSS", "COMM"}, rows)
		},
	}
}

func newStatCmd(s *session) *cobra.Command {
	return pidCmd("stat", "Show /proc/<pid>/stat", func(cmd *cobra.Command, pid int) error {
		st, err := s.fsys.Stat(pid)
		if err != nil {
			return err
		}
		rows := [][]string{
			{"pid", strconv.Itoa(int(st.PID))},
			{"comm", st.Comm},
			{"state", st.State.String()},
			{"ppid", strconv.Itoa(int(st.PPID))},
			{"pgrp", strconv.Itoa(int(st.PGrp))},
			{"session", strconv.FormatInt(st.Session, 10)},
			{"tty_nr", strconv.FormatInt(st.TTYNr, 10)},
			{"tpgid", strconv.Itoa(int(st.TPGid))},
			{"utime", strconv.FormatUint(st.UTime, 10)},
			{"stime", strconv.FormatUint(st.STime, 10)},
			{"priority", strconv.FormatInt(st.Priority, 10)},
			{"nice", strconv.FormatInt(st.Nice, 10)},
			{"num_threads", strconv.FormatInt(st.NumThreads, 10)},
			{"starttime", strconv.FormatUint(st.StartTime, 10)},
			{"vsize", output.FormatBytes(st.VSize)},
			{"rss", strconv.FormatUint(st.RSS, 10) + " pages"},
			{"processor", strconv.FormatInt(st.Processor, 10)},
			{"exit_code", strconv.FormatInt(st.ExitCode, 10)},
		}
		return s.emit(cmd.OutOrStdout(), st, []string{"FIELD", "VALUE"}, rows)
	})
}

func idSet(ids model.IDSet) string {
	return fmt.Sprintf("%d %d %d %d", ids.Real, ids.Effective, ids.SavedSet, ids.Filesystem)
}

func kB(n uint64) string { return output.FormatBytes(n * 1024) }

func newStatusCmd(s *session) *cobra.Command {
	return pidCmd("status", "Show /proc/<pid>/status", func(cmd *cobra.Command, pid int) error {
		st, err := s.fsys.Status(pid)
		if err != nil {
			return err
		}
		caps := strings.Join(st.CapEff.Names(), ",")
		if caps == "" {
			caps = "-"
		}
		rows := [][]string{
			{"Name", st.Name},
			{"State", st.State.String()},
			{"Umask", fmt.Sprintf("%04o", st.Umask)},
			{"Pid", strconv.Itoa(int(st.PID))},
			{"PPid", strconv.Itoa(int(st.PPID))},
			{"TracerPid", strconv.Itoa(int(st.TracerPID))},
			{"Uid", idSet(st.UID)},
			{"Gid", idSet(st.GID)},
			{"Threads", strconv.FormatUint(st.Threads, 10)},
			{"VmSize", kB(st.VMSize)},
			{"VmRSS", kB(st.VMRSS)},
			{"VmSwap", kB(st.VMSwap)},
			{"CapEff", caps},
			{"NoNewPrivs", strconv.FormatBool(st.NoNewPrivs)},
			{"Seccomp", strconv.Itoa(int(st.SeccompMode))},
			{"voluntary_ctxt_switches", strconv.FormatUint(st.VoluntaryCtxtSwitches, 10)},
			{"nonvoluntary_ctxt_switches", strconv.FormatUint(st.NonvoluntaryCtxtSwitches, 10)},
		}
		return s.emit(cmd.OutOrStdout(), st, []string{"FIELD", "VALUE"}, rows)
	})
}

func newIOCmd(s *session) *cobra.Command {
	return pidCmd("io", "Show /proc/<pid>/io", func(cmd *cobra.Command, pid int) error {
		st, err := s.fsys.IO(pid)
		if err != nil {
			return err
		}
		rows := [][]string{
			{"rchar", strconv.FormatUint(st.RChar, 10)},
			{"wchar", strconv.FormatUint(st.WChar, 10)},
			{"syscr", strconv.FormatUint(st.SyscR, 10)},
			{"syscw", strconv.FormatUint(st.SyscW, 10)},
			{"read_bytes", strconv.FormatUint(st.ReadBytes, 10)},
			{"write_bytes", strconv.FormatUint(st.WriteBytes, 10)},
			{"cancelled_write_bytes", strconv.FormatUint(st.CancelledWriteBytes, 10)},
		}
		return s.emit(cmd.OutOrStdout(), st, []string{"FIELD", "VALUE"}, rows)
	})
}

func newUsageCmd(s *session) *cobra.Command {
	return pidCmd("usage", "Summarize CPU and memory use of a process", func(cmd *cobra.Command, pid int) error {
		u, err := s.fsys.Usage(pid)
		if err != nil {
			return err
		}
		rows := [][]string{
			{"cpu_time", output.FormatDuration(u.CPUTime)},
			{"age", output.FormatDuration(u.Age)},
			{"cpu_percent", fmt.Sprintf("%.1f", u.CPUPercent)},
			{"rss", output.FormatBytes(u.RSSBytes)},
			{"stopped", strconv.FormatBool(u.Stopped)},
			{"energy_impact", proc.EnergyImpact(u.CPUPercent)},
		}
		return s.emit(cmd.OutOrStdout(), u, []string{"FIELD", "VALUE"}, rows)
	})
}

func regionRow(r model.MemRegion) []string {
	return []string{
		fmt.Sprintf("%x-%x", r.StartAddress, r.EndAddress),
		permString(r.Perm),
		fmt.Sprintf("%08x", r.Offset),
		fmt.Sprintf("%02x:%02x", r.DevMajor, r.DevMinor),
		strconv.FormatUint(r.Inode, 10),
		r.Pathname,
	}
}

func permString(p model.MemPerm) string {
	b := []byte("---p")
	if p.CanRead {
		b[0] = 'r'
	}
	if p.CanWrite {
		b[1] = 'w'
	}
	if p.CanExecute {
		b[2] = 'x'
	}
	if p.IsShared {
		b[3] = 's'
	}
	return string(b)
}

func newMapsCmd(s *session) *cobra.Command {
	return pidCmd("maps", "Show the memory mappings of a process", func(cmd *cobra.Command, pid int) error {
		regions, err := s.fsys.Maps(pid)
		if err != nil {
			return err
		}
		rows := make([][]string, len(regions))
		for i, r := range regions {
			rows[i] = regionRow(r)
		}
		return s.emit(cmd.OutOrStdout(), regions,
			[]string{"ADDRESS", "PERMS", "OFFSET", "DEV", "INODE", "PATH"}, rows)
	})
}

func newSMapsCmd(s *session) *cobra.Command {
	return pidCmd("smaps", "Show per-mapping memory use of a process", func(cmd *cobra.Command, pid int) error {
		mm, err := s.fsys.SMaps(pid)
		if err != nil {
			return err
		}
		rows := make([][]string, len(mm))
		for i, m := range mm {
			rows[i] = []string{
				fmt.Sprintf("%x-%x", m.Region.StartAddress, m.Region.EndAddress),
				permString(m.Region.Perm),
				kB(m.Size),
				kB(m.RSS),
				kB(m.PSS),
				kB(m.Swap),
				m.Region.Pathname,
			}
		}
		return s.emit(cmd.OutOrStdout(), mm,
			[]string{"ADDRESS", "PERMS", "SIZE", "RSS", "PSS", "SWAP", "PATH"}, rows)
	})
}

func newFDsCmd(s *session) *cobra.Command {
	return pidCmd("fds", "List the open file descriptors of a process", func(cmd *cobra.Command, pid int) error {
		fds, err := s.fsys.FDs(pid)
		if err != nil {
			return err
		}
		keys := slices.Sorted(maps.Keys(fds))
		rows := make([][]string, len(keys))
		for i, fd := range keys {
			rows[i] = []string{strconv.Itoa(fd), fds[fd]}
		}
		return s.emit(cmd.OutOrStdout(), fds, []string{"FD", "TARGET"}, rows)
	})
}

func newMountsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "mounts [pid]",
		Short: "Show the mount table of a process (default: this process)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid := os.Getpid()
			if len(args) == 1 {
				var err error
				if pid, err = parsePID(args[0]); err != nil {
					return err
				}
			}
			mounts, err := s.fsys.MountInfo(pid)
			if err != nil {
				return err
			}
			rows := make([][]string, len(mounts))
			for i, m := range mounts {
				rows[i] = []string{
					strconv.FormatUint(uint64(m.ID), 10),
					strconv.FormatUint(uint64(m.ParentID), 10),
					m.Point,
					m.FilesystemType,
					m.Source,
					strings.Join(m.Options, ","),
				}
			}
			return s.emit(cmd.OutOrStdout(), mounts,
				[]string{"ID", "PARENT", "POINT", "TYPE", "SOURCE", "OPTIONS"}, rows)
		},
	}
}

func newCgroupsCmd(s *session) *cobra.Command {
	return pidCmd("cgroups", "Show the cgroup membership of a process", func(cmd *cobra.Command, pid int) error {
		groups, err := s.fsys.Cgroups(pid)
		if err != nil {
			return err
		}
		rows := make([][]string, len(groups))
		for i, g := range groups {
			rows[i] = []string{
				strconv.FormatUint(uint64(g.Hierarchy), 10),
				strings.Join(g.Controllers, ","),
				g.Pathname,
			}
		}
		return s.emit(cmd.OutOrStdout(), groups, []string{"HIERARCHY", "CONTROLLERS", "PATH"}, rows)
	})
}

func newNamespacesCmd(s *session) *cobra.Command {
	return pidCmd("ns", "Show the namespace inodes of a process", func(cmd *cobra.Command, pid int) error {
		nss, err := s.fsys.Namespaces(pid)
		if err != nil {
			return err
		}
		names := slices.Sorted(maps.Keys(nss))
		rows := make([][]string, len(names))
		for i, name := range names {
			rows[i] = []string{name, strconv.FormatUint(nss[name], 10)}
		}
		return s.emit(cmd.OutOrStdout(), nss, []string{"NAMESPACE", "INODE"}, rows)
	})
}

func newIDMapCmd(s *session) *cobra.Command {
	return pidCmd("idmap", "Show the user namespace id mappings of a process", func(cmd *cobra.Command, pid int) error {
		uids, err := s.fsys.UIDMap(pid)
		if err != nil {
			return err
		}
		gids, err := s.fsys.GIDMap(pid)
		if err != nil {
			return err
		}
		var rows [][]string
		for _, set := range []struct {
			kind string
			ids  []model.IDMap
		}{{"uid", uids}, {"gid", gids}} {
			for _, m := range set.ids {
				rows = append(rows, []string{
					set.kind,
					strconv.FormatUint(uint64(m.InsideNS), 10),
					strconv.FormatUint(uint64(m.OutsideNS), 10),
					strconv.FormatUint(uint64(m.Length), 10),
				})
			}
		}
		v := map[string][]model.IDMap{"uid": uids, "gid": gids}
		return s.emit(cmd.OutOrStdout(), v, []string{"KIND", "INSIDE", "OUTSIDE", "LENGTH"}, rows)
	})
}

func newTreeCmd(s *session) *cobra.Command {
	var short bool
	cmd := pidCmd("tree", "Show the ancestry and children of a process", func(cmd *cobra.Command, pid int) error {
		chain, err := s.fsys.Ancestry(pid)
		if err != nil {
			return err
		}
		if s.opts.json {
			return s.emit(cmd.OutOrStdout(), chain, nil, nil)
		}
		if short {
			output.RenderShort(cmd.OutOrStdout(), chain, s.cfg.Color)
			return nil
		}
		children, err := s.fsys.Children(pid)
		if err != nil {
			return err
		}
		output.PrintTree(cmd.OutOrStdout(), chain, children, s.cfg.Color)
		return nil
	})
	cmd.Flags().BoolVar(&short, "short", false, "print the ancestry on one line")
	return cmd
}
