//go:build linux

package app

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procfs/internal/output"
	"github.com/pranshuparmar/procfs/internal/pipeline"
	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/internal/target"
)

func newFindCmd(s *session) *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "find <name>",
		Short: "List processes whose name or command line matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, err := target.ResolveName(s.fsys, args[0], exact)
			if err != nil {
				return err
			}
			return s.emit(cmd.OutOrStdout(), pids, []string{"PID"}, idRows(pids))
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "require a whole-word match")
	return cmd
}

// resolveTarget accepts a pid or a name that matches exactly one process.
func (s *session) resolveTarget(arg string) (int, error) {
	if _, err := strconv.Atoi(arg); err == nil {
		return parsePID(arg)
	}
	pids, err := target.ResolveName(s.fsys, arg, true)
	if err != nil {
		return 0, err
	}
	if len(pids) > 1 {
		ids := make([]string, len(pids))
		for i, pid := range pids {
			ids[i] = strconv.Itoa(pid)
		}
		return 0, fmt.Errorf("%q matches several processes (%s), pass a pid", arg, strings.Join(ids, ", "))
	}
	return pids[0], nil
}

func newInspectCmd(s *session) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "inspect <pid|name>",
		Short: "Explain where a process comes from and what it uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := s.resolveTarget(args[0])
			if err != nil {
				return err
			}
			r, err := pipeline.AnalyzePID(s.fsys, pipeline.AnalyzeConfig{PID: pid, Verbose: verbose})
			if err != nil {
				return err
			}

			var chain strings.Builder
			output.RenderShort(&chain, r.Ancestry, false)
			origin := string(r.Origin.Type)
			if r.Origin.Name != "" {
				origin += " (" + r.Origin.Name + ")"
			}
			rows := [][]string{
				{"process", fmt.Sprintf("%s (pid %d)", r.Stat.Comm, r.Stat.PID)},
				{"command", strings.Join(r.Cmdline, " ")},
				{"exe", r.Exe},
				{"state", r.Stat.State.String()},
				{"started by", origin},
				{"ancestry", strings.TrimSuffix(chain.String(), "\n")},
				{"age", output.FormatDuration(r.Usage.Age)},
				{"cpu", fmt.Sprintf("%.1f%% (%s)", r.Usage.CPUPercent, proc.EnergyImpact(r.Usage.CPUPercent))},
				{"rss", output.FormatBytes(r.Usage.RSSBytes)},
			}
			if verbose {
				rows = append(rows,
					[]string{"open fds", strconv.Itoa(r.FDCount)},
					[]string{"children", strconv.Itoa(len(r.Children))},
				)
				for _, g := range r.Cgroups {
					rows = append(rows, []string{"cgroup", g.Pathname})
				}
				if r.Root != "" {
					rows = append(rows, []string{"root", r.Root})
				}
				for _, name := range slices.Sorted(maps.Keys(r.Namespaces)) {
					rows = append(rows, []string{"ns " + name, strconv.FormatUint(r.Namespaces[name], 10)})
				}
			}
			return s.emit(cmd.OutOrStdout(), r, []string{"FIELD", "VALUE"}, rows)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also read descriptors, cgroups, children, root and namespaces")
	return cmd
}
