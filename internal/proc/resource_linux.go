//go:build linux

package proc

import (
	"os"
	"time"

	"github.com/pranshuparmar/procfs/pkg/model"
)

// userHZ is the tick rate of the clock fields in /proc/<pid>/stat. The kernel
// always exports USER_HZ=100 to userspace, whatever CONFIG_HZ is.
const userHZ = 100

var pageSize = uint64(os.Getpagesize())

// Usage summarizes a process's resource consumption from stat and uptime.
type Usage struct {
	CPUTime    time.Duration
	Age        time.Duration
	CPUPercent float64
	RSSBytes   uint64
	Stopped    bool
}

// Usage reads the counters needed to compute pid's average CPU share since
// it started.
func (fsys FS) Usage(pid int) (Usage, error) {
	st, err := fsys.Stat(pid)
	if err != nil {
		return Usage{}, err
	}
	up, err := fsys.Uptime()
	if err != nil {
		return Usage{}, err
	}
	return ComputeUsage(st, up), nil
}

// ComputeUsage derives Usage from one stat record and the system uptime.
func ComputeUsage(st model.TaskStat, up model.Uptime) Usage {
	u := Usage{
		CPUTime:  ticks(st.UTime + st.STime),
		RSSBytes: uint64(st.RSS) * pageSize,
		Stopped:  st.State == model.TaskStopped || st.State == model.TaskTracingStop,
	}
	if started := ticks(st.StartTime); up.SystemTime > started {
		u.Age = up.SystemTime - started
		u.CPUPercent = 100 * u.CPUTime.Seconds() / u.Age.Seconds()
	}
	return u
}

func ticks(n uint64) time.Duration {
	return time.Duration(n) * time.Second / userHZ
}

// EnergyImpact buckets a CPU percentage into a coarse label.
func EnergyImpact(cpu float64) string {
	switch {
	case cpu > 50:
		return "Very High"
	case cpu > 25:
		return "High"
	case cpu > 10:
		return "Medium"
	case cpu > 2:
		return "Low"
	case cpu > 0:
		return "Very Low"
	default:
		return ""
	}
}
