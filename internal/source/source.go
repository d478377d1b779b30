//go:build linux

// Package source guesses what launched a process from its ancestry and its
// cgroup membership.
package source

import (
	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/pkg/model"
)

// Detect classifies the last task of chain (oldest first, as returned by
// proc.FS.Ancestry). Container membership is checked first, then the
// launchers found in the ancestry, then the init process.
func Detect(fsys proc.FS, chain []model.TaskStat) model.Origin {
	if len(chain) == 0 {
		return model.Origin{Type: model.OriginUnknown}
	}
	if o, ok := detectContainer(fsys, chain); ok {
		return o
	}
	if o, ok := detectLauncher(chain); ok {
		return o
	}
	if o, ok := detectInit(fsys, chain); ok {
		return o
	}
	return model.Origin{Type: model.OriginUnknown, Name: "manual"}
}
