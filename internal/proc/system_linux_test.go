//go:build linux

package proc

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procfs/internal/procfs"
	"github.com/pranshuparmar/procfs/pkg/model"
)

func TestParseModuleLine(t *testing.T) {
	mod, err := ParseModuleLine("nf_tables 270336 183 nft_ct,nft_chain_nat, Live 0xffffffffc0a5f000 (OE)")
	require.NoError(t, err)
	assert.Equal(t, model.Module{
		Name:         "nf_tables",
		Size:         270336,
		Instances:    183,
		Dependencies: []string{"nft_ct", "nft_chain_nat"},
		State:        model.ModuleLive,
		Offset:       0xffffffffc0a5f000,
		IsOutOfTree:  true,
		IsUnsigned:   true,
	}, mod)

	mod, err = ParseModuleLine("loop 32768 0 - Unloading 0x0000000000000000")
	require.NoError(t, err)
	assert.Empty(t, mod.Dependencies)
	assert.Equal(t, model.ModuleUnloading, mod.State)
	assert.False(t, mod.IsOutOfTree)
	assert.Zero(t, mod.Offset)
}

func TestParseModuleLine_Corrupt(t *testing.T) {
	for _, line := range []string{
		"loop 32768 0 -",
		"loop big 0 - Live 0x0",
		"loop 32768 0 - Dead 0x0",
		"loop 32768 0 - Live 1234",
		"loop 32768 0 - Live 0xzz",
		"loop 32768 0 - Live 0x0 OE",
	} {
		_, err := ParseModuleLine(line)
		assert.True(t, procfs.IsParseError(err), line)
	}
}

func TestParseLoadAvg(t *testing.T) {
	la, err := ParseLoadAvg("0.52 0.58 0.59 2/1234 56789\n")
	require.NoError(t, err)
	assert.Equal(t, model.LoadAverage{
		Last1Min:        0.52,
		Last5Min:        0.58,
		Last15Min:       0.59,
		RunnableTasks:   2,
		TotalTasks:      1234,
		LastCreatedTask: 56789,
	}, la)

	for _, raw := range []string{"", "0.52 0.58 0.59 2/1234", "x 0.58 0.59 2/1234 1", "0.5 0.5 0.5 2 1"} {
		_, err := ParseLoadAvg(raw)
		assert.True(t, procfs.IsParseError(err), raw)
	}
}

func TestParseUptime(t *testing.T) {
	up, err := ParseUptime("12345.67 23456.78")
	require.NoError(t, err)
	assert.Equal(t, 12345*time.Second+670*time.Millisecond, up.SystemTime)
	assert.Equal(t, 23456*time.Second+780*time.Millisecond, up.IdleTime)

	for _, raw := range []string{"", "1.0", "-1.0 2.0", "1.0 x", "1h 2.0"} {
		_, err := ParseUptime(raw)
		assert.True(t, procfs.IsParseError(err), raw)
	}
}

func TestParseProcStat(t *testing.T) {
	raw := `cpu  100 2 30 4000 5 0 6 0 0 0
cpu0 50 1 15 2000 2 0 3 0 0 0
cpu1 50 1 15 2000 3 0 3 0 0 0
intr 1000 10 0 990
ctxt 123456
btime 1700000000
processes 4321
procs_running 2
procs_blocked 1
softirq 500 1 2 3
`
	st, err := ParseProcStat(raw)
	require.NoError(t, err)
	assert.Equal(t, model.CPUTimes{User: 100, Nice: 2, System: 30, Idle: 4000, IOWait: 5, SoftIRQ: 6}, st.CPU)
	require.Len(t, st.PerCPU, 2)
	assert.Equal(t, uint64(3), st.PerCPU[1].IOWait)
	assert.Equal(t, uint64(1000), st.Intr)
	assert.Equal(t, []uint64{10, 0, 990}, st.PerIntr)
	assert.Equal(t, uint64(123456), st.Ctxt)
	assert.Equal(t, time.Unix(1700000000, 0), st.BootTime)
	assert.Equal(t, uint64(4321), st.Processes)
	assert.Equal(t, uint64(2), st.ProcsRunning)
	assert.Equal(t, uint64(1), st.ProcsBlocked)
	assert.Equal(t, []uint64{1, 2, 3}, st.PerSoftIRQ)

	_, err = ParseProcStat("ctxt lots\n")
	assert.True(t, procfs.IsParseError(err))
	_, err = ParseProcStat("cpu 1 2\n")
	assert.True(t, procfs.IsParseError(err))
}

func TestFS_ProcStatReadLimit(t *testing.T) {
	intr := "intr 1" + strings.Repeat(" 0", procStatMinRead/2) + "\n"
	files := map[string]string{"stat": "cpu  1 2 3 4\n" + intr + "procs_running 7\n"}

	// the floor applies to small limits
	st, err := fixture(t, files).ProcStat()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), st.CPU.Idle)
	assert.Zero(t, st.ProcsRunning)

	big := fixture(t, files)
	st, err = New(big.Root(), 2*procStatMinRead).ProcStat()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), st.ProcsRunning)
	assert.Len(t, st.PerIntr, procStatMinRead/2)
}

func TestFS_SystemFiles(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"modules": "loop 32768 0 - Live 0x0000000000000000\n\nzfs 3932160 6 zunicode,zcommon, Live 0xffffffffc0400000 (POE)\n",
		"loadavg": "0.00 0.01 0.05 1/100 42\n",
		"uptime":  "10.50 40.00\n",
		"stat":    "cpu  1 2 3 4\nbtime 1\n",
		"cgroups": "#subsys_name\thierarchy\tnum_cgroups\tenabled\ncpuset\t0\t1\t1\nmemory\t3\t120\t0\n",
	})

	mods, err := fsys.Modules()
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "zfs", mods[1].Name)
	assert.True(t, mods[1].IsOutOfTree)

	la, err := fsys.LoadAvg()
	require.NoError(t, err)
	assert.Equal(t, int64(42), la.LastCreatedTask)

	up, err := fsys.Uptime()
	require.NoError(t, err)
	assert.Equal(t, 10500*time.Millisecond, up.SystemTime)

	st, err := fsys.ProcStat()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), st.CPU.Idle)

	ctrls, err := fsys.CgroupControllers()
	require.NoError(t, err)
	assert.Equal(t, []model.CgroupController{
		{SubsysName: "cpuset", Hierarchy: 0, NumCgroups: 1, Enabled: true},
		{SubsysName: "memory", Hierarchy: 3, NumCgroups: 120, Enabled: false},
	}, ctrls)
}
