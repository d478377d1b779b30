//go:build linux

// Package pipeline gathers everything procfs knows about one process.
package pipeline

import (
	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/internal/source"
	"github.com/pranshuparmar/procfs/pkg/model"
)

type AnalyzeConfig struct {
	PID int
	// Verbose adds open descriptors, cgroups, children, the root directory
	// and namespaces.
	Verbose bool
}

// Report is the combined view of one process.
type Report struct {
	Stat     model.TaskStat
	Status   model.TaskStatus
	Cmdline  []string
	Exe      string `json:",omitempty"`
	Ancestry []model.TaskStat
	Origin   model.Origin
	Usage    proc.Usage

	FDCount    int               `json:",omitempty"`
	Cgroups    []model.Cgroup    `json:",omitempty"`
	Children   []model.TaskStat  `json:",omitempty"`
	Root       string            `json:",omitempty"`
	Namespaces map[string]uint64 `json:",omitempty"`
}

// AnalyzePID builds a Report. stat, status and ancestry are required; the
// other sources are often unreadable for other users' processes and are
// left empty when they fail.
func AnalyzePID(fsys proc.FS, cfg AnalyzeConfig) (Report, error) {
	ancestry, err := fsys.Ancestry(cfg.PID)
	if err != nil {
		return Report{}, err
	}
	status, err := fsys.Status(cfg.PID)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Stat:     ancestry[len(ancestry)-1],
		Status:   status,
		Ancestry: ancestry,
		Origin:   source.Detect(fsys, ancestry),
	}
	r.Cmdline, _ = fsys.Cmdline(cfg.PID)
	r.Exe, _ = fsys.Exe(cfg.PID)
	if up, err := fsys.Uptime(); err == nil {
		r.Usage = proc.ComputeUsage(r.Stat, up)
	}

	if !cfg.Verbose {
		return r, nil
	}
	if fds, err := fsys.FDs(cfg.PID); err == nil {
		r.FDCount = len(fds)
	}
	r.Cgroups, _ = fsys.Cgroups(cfg.PID)
	r.Children, _ = fsys.Children(cfg.PID)
	r.Root, _ = fsys.RootDir(cfg.PID)
	r.Namespaces, _ = fsys.Namespaces(cfg.PID)
	return r, nil
}
