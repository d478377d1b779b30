//go:build linux

package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/pkg/model"
)

func fixtureFS(t *testing.T, cgroups map[string]string) proc.FS {
	t.Helper()
	root := t.TempDir()
	for pid, content := range cgroups {
		path := filepath.Join(root, pid, "cgroup")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return proc.New(root, 0)
}

func chain(tasks ...any) []model.TaskStat {
	var out []model.TaskStat
	for i := 0; i < len(tasks); i += 2 {
		out = append(out, model.TaskStat{PID: int32(tasks[i].(int)), Comm: tasks[i+1].(string)})
	}
	return out
}

func TestDetect(t *testing.T) {
	fsys := fixtureFS(t, map[string]string{
		"600": "0::/system.slice/docker-0123abcd.scope\n",
		"700": "0::/system.slice/nginx.service\n",
		"800": "12:pids:/user.slice\n0::/user.slice/user-1000.slice/session-2.scope\n",
	})

	tests := []struct {
		name  string
		chain []model.TaskStat
		want  model.Origin
	}{
		{
			name:  "container",
			chain: chain(1, "systemd", 500, "containerd-shim", 600, "nginx"),
			want: model.Origin{Type: model.OriginContainer, Name: "docker",
				Details: map[string]string{"cgroup": "/system.slice/docker-0123abcd.scope"}},
		},
		{
			name:  "systemd unit",
			chain: chain(1, "systemd", 700, "nginx"),
			want: model.Origin{Type: model.OriginSystemd, Name: "nginx.service",
				Details: map[string]string{"cgroup": "/system.slice/nginx.service"}},
		},
		{
			name:  "interactive shell",
			chain: chain(1, "systemd", 10, "sshd", 11, "-bash", 800, "vim"),
			want:  model.Origin{Type: model.OriginShell, Name: "bash", Details: map[string]string{"pid": "11"}},
		},
		{
			name:  "cron job through sh",
			chain: chain(1, "init", 5, "cron", 6, "sh", 7, "backup"),
			want:  model.Origin{Type: model.OriginCron, Name: "cron", Details: map[string]string{"pid": "5"}},
		},
		{
			name:  "sysv init",
			chain: chain(1, "init", 9, "sshd"),
			want:  model.Origin{Type: model.OriginInit, Name: "init", Details: map[string]string{"comm": "init"}},
		},
		{
			name:  "systemd without unit",
			chain: chain(1, "systemd", 42, "agetty"),
			want:  model.Origin{Type: model.OriginSystemd, Name: "systemd"},
		},
		{
			name:  "orphan in a pid namespace",
			chain: chain(42, "app"),
			want:  model.Origin{Type: model.OriginUnknown, Name: "manual"},
		},
		{
			name: "empty",
			want: model.Origin{Type: model.OriginUnknown},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(fsys, tt.chain))
		})
	}
}

func TestIsShell(t *testing.T) {
	assert.True(t, isShell("zsh"))
	assert.True(t, isShell("-bash"))
	assert.False(t, isShell("bashful"))
}
