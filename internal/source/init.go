//go:build linux

package source

import (
	"path"
	"strconv"
	"strings"

	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// launchers are process supervisors other than init. comm is truncated to
// 15 bytes by the kernel, so names here must fit.
var launchers = map[string]model.OriginType{
	"cron":         model.OriginCron,
	"crond":        model.OriginCron,
	"anacron":      model.OriginCron,
	"supervisord":  model.OriginSupervisor,
	"runsv":        model.OriginSupervisor,
	"s6-supervise": model.OriginSupervisor,
	"pm2":          model.OriginSupervisor,
}

// detectLauncher walks the ancestors of the target, nearest first. A
// supervisor anywhere above wins over a shell, so cron jobs run through
// "sh -c" still count as cron.
func detectLauncher(chain []model.TaskStat) (model.Origin, bool) {
	var shell *model.TaskStat
	for i := len(chain) - 2; i >= 0; i-- {
		p := chain[i]
		if t, ok := launchers[p.Comm]; ok {
			return model.Origin{
				Type:    t,
				Name:    p.Comm,
				Details: map[string]string{"pid": strconv.Itoa(int(p.PID))},
			}, true
		}
		if shell == nil && isShell(p.Comm) {
			shell = &chain[i]
		}
	}
	if shell != nil {
		return model.Origin{
			Type:    model.OriginShell,
			Name:    strings.TrimPrefix(shell.Comm, "-"),
			Details: map[string]string{"pid": strconv.Itoa(int(shell.PID))},
		}, true
	}
	return model.Origin{}, false
}

// detectInit handles tasks started directly by PID 1. Under systemd the
// unit name is taken from the target's cgroup path when it has one.
func detectInit(fsys proc.FS, chain []model.TaskStat) (model.Origin, bool) {
	root := chain[0]
	if root.PID != 1 {
		return model.Origin{}, false
	}
	if root.Comm != "systemd" {
		return model.Origin{
			Type:    model.OriginInit,
			Name:    "init",
			Details: map[string]string{"comm": root.Comm},
		}, true
	}

	o := model.Origin{Type: model.OriginSystemd, Name: "systemd"}
	target := chain[len(chain)-1]
	if groups, err := fsys.Cgroups(int(target.PID)); err == nil {
		for _, g := range groups {
			if unit := path.Base(g.Pathname); strings.HasSuffix(unit, ".service") {
				o.Name = unit
				o.Details = map[string]string{"cgroup": g.Pathname}
				break
			}
		}
	}
	return o, true
}
