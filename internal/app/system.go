//go:build linux

package app

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procfs/internal/output"
)

// systemCmd builds an argument-less subcommand.
func systemCmd(use, short string, run func(cmd *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
}

func newMeminfoCmd(s *session) *cobra.Command {
	return systemCmd("meminfo", "Show /proc/meminfo in bytes", func(cmd *cobra.Command) error {
		info, err := s.fsys.MemInfo()
		if err != nil {
			return err
		}
		names := slices.Sorted(maps.Keys(info))
		rows := make([][]string, len(names))
		for i, name := range names {
			rows[i] = []string{name, strconv.FormatUint(info[name], 10), output.FormatBytes(info[name])}
		}
		return s.emit(cmd.OutOrStdout(), info, []string{"NAME", "BYTES", "HUMAN"}, rows)
	})
}

func newModulesCmd(s *session) *cobra.Command {
	return systemCmd("modules", "List loaded kernel modules", func(cmd *cobra.Command) error {
		mods, err := s.fsys.Modules()
		if err != nil {
			return err
		}
		rows := make([][]string, len(mods))
		for i, m := range mods {
			var taint string
			if m.IsOutOfTree {
				taint += "O"
			}
			if m.IsUnsigned {
				taint += "E"
			}
			deps := strings.Join(m.Dependencies, ",")
			if deps == "" {
				deps = "-"
			}
			rows[i] = []string{
				m.Name,
				strconv.FormatUint(m.Size, 10),
				strconv.FormatUint(m.Instances, 10),
				deps,
				m.State.String(),
				taint,
			}
		}
		return s.emit(cmd.OutOrStdout(), mods,
			[]string{"NAME", "SIZE", "USED", "DEPS", "STATE", "TAINT"}, rows)
	})
}

func newLoadAvgCmd(s *session) *cobra.Command {
	return systemCmd("loadavg", "Show the load averages", func(cmd *cobra.Command) error {
		la, err := s.fsys.LoadAvg()
		if err != nil {
			return err
		}
		rows := [][]string{{
			fmt.Sprintf("%.2f", la.Last1Min),
			fmt.Sprintf("%.2f", la.Last5Min),
			fmt.Sprintf("%.2f", la.Last15Min),
			fmt.Sprintf("%d/%d", la.RunnableTasks, la.TotalTasks),
			strconv.FormatInt(la.LastCreatedTask, 10),
		}}
		return s.emit(cmd.OutOrStdout(), la, []string{"1MIN", "5MIN", "15MIN", "RUNNABLE", "LAST PID"}, rows)
	})
}

func newUptimeCmd(s *session) *cobra.Command {
	return systemCmd("uptime", "Show the system uptime", func(cmd *cobra.Command) error {
		up, err := s.fsys.Uptime()
		if err != nil {
			return err
		}
		rows := [][]string{{output.FormatDuration(up.SystemTime), output.FormatDuration(up.IdleTime)}}
		return s.emit(cmd.OutOrStdout(), up, []string{"UP", "IDLE"}, rows)
	})
}

func newProcStatCmd(s *session) *cobra.Command {
	return systemCmd("procstat", "Show kernel activity counters from /proc/stat", func(cmd *cobra.Command) error {
		st, err := s.fsys.ProcStat()
		if err != nil {
			return err
		}
		rows := [][]string{
			{"boot_time", st.BootTime.UTC().Format(time.RFC3339)},
			{"cpus", strconv.Itoa(len(st.PerCPU))},
			{"cpu_user", strconv.FormatUint(st.CPU.User, 10)},
			{"cpu_system", strconv.FormatUint(st.CPU.System, 10)},
			{"cpu_idle", strconv.FormatUint(st.CPU.Idle, 10)},
			{"cpu_iowait", strconv.FormatUint(st.CPU.IOWait, 10)},
			{"interrupts", strconv.FormatUint(st.Intr, 10)},
			{"context_switches", strconv.FormatUint(st.Ctxt, 10)},
			{"processes", strconv.FormatUint(st.Processes, 10)},
			{"procs_running", strconv.FormatUint(st.ProcsRunning, 10)},
			{"procs_blocked", strconv.FormatUint(st.ProcsBlocked, 10)},
			{"softirqs", strconv.FormatUint(st.SoftIRQ, 10)},
		}
		return s.emit(cmd.OutOrStdout(), st, []string{"FIELD", "VALUE"}, rows)
	})
}

func newControllersCmd(s *session) *cobra.Command {
	return systemCmd("controllers", "List cgroup v1 controllers", func(cmd *cobra.Command) error {
		ctrls, err := s.fsys.CgroupControllers()
		if err != nil {
			return err
		}
		rows := make([][]string, len(ctrls))
		for i, c := range ctrls {
			rows[i] = []string{
				c.SubsysName,
				strconv.FormatUint(uint64(c.Hierarchy), 10),
				strconv.FormatUint(uint64(c.NumCgroups), 10),
				strconv.FormatBool(c.Enabled),
			}
		}
		return s.emit(cmd.OutOrStdout(), ctrls, []string{"SUBSYS", "HIERARCHY", "CGROUPS", "ENABLED"}, rows)
	})
}
