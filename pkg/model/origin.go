package model

// OriginType names what launched a process.
type OriginType string

const (
	OriginContainer  OriginType = "container"
	OriginSystemd    OriginType = "systemd"
	OriginSupervisor OriginType = "supervisor"
	OriginCron       OriginType = "cron"
	OriginShell      OriginType = "shell"
	OriginInit       OriginType = "init"
	OriginUnknown    OriginType = "unknown"
)

// Origin is a best-effort guess at what started a process, from its
// ancestry and cgroup membership.
type Origin struct {
	Type    OriginType
	Name    string
	Details map[string]string `json:",omitempty"`
}
