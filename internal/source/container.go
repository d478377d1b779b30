//go:build linux

package source

import (
	"strings"

	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// containerMarkers are matched against cgroup paths in order. containerd
// comes last because docker and kubernetes paths often mention it too.
var containerMarkers = []struct {
	marker string
	name   string
}{
	{"docker", "docker"},
	{"libpod", "podman"},
	{"podman", "podman"},
	{"kubepods", "kubernetes"},
	{"colima", "colima"},
	{"lxc", "lxc"},
	{"containerd", "containerd"},
}

// detectContainer checks the cgroups of the target first and then its
// ancestors. Tasks whose cgroup file cannot be read are skipped.
func detectContainer(fsys proc.FS, chain []model.TaskStat) (model.Origin, bool) {
	for i := len(chain) - 1; i >= 0; i-- {
		groups, err := fsys.Cgroups(int(chain[i].PID))
		if err != nil {
			continue
		}
		for _, g := range groups {
			for _, m := range containerMarkers {
				if strings.Contains(g.Pathname, m.marker) {
					return model.Origin{
						Type:    model.OriginContainer,
						Name:    m.name,
						Details: map[string]string{"cgroup": g.Pathname},
					}, true
				}
			}
		}
	}
	return model.Origin{}, false
}
