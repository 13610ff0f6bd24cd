package snapshot

import (
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"squaretop/internal/procmodel"
)

// GopsutilSource is the concrete ProcessSource backed by gopsutil/v3, the
// same library the teacher repo uses for its own sampler (internal/sampler
// in the teacher's tree). It absorbs platform differences for CPU, memory,
// and process enumeration; Linux-only group/priority/IO enrichment lives in
// platform_linux.go / platform_other.go behind build tags.
type GopsutilSource struct{}

// NewGopsutilSource constructs a ready-to-use ProcessSource.
func NewGopsutilSource() *GopsutilSource { return &GopsutilSource{} }

func (g *GopsutilSource) Collect() ([]RawProcess, SystemTotals, error) {
	totals, err := g.systemTotals()
	if err != nil {
		return nil, SystemTotals{}, err
	}

	procs, err := process.Processes()
	if err != nil {
		return nil, totals, err
	}

	raw := make([]RawProcess, 0, len(procs))
	for _, p := range procs {
		name, _ := p.Name()
		if name == "" {
			continue
		}
		ppid, _ := p.Ppid()
		cmdline, _ := p.Cmdline()
		if cmdline == "" {
			cmdline = name
		}
		memInfo, _ := p.MemoryInfo()
		var memBytes uint64
		if memInfo != nil {
			memBytes = memInfo.RSS
		}
		cpuPct, _ := p.CPUPercent()
		username, _ := p.Username()
		statuses, _ := p.Status()
		state := mapState(statuses)

		rp := RawProcess{
			PID:         uint32(p.Pid),
			PPID:        uint32(ppid),
			Name:        name,
			Command:     cmdline,
			MemoryBytes: memBytes,
			CPUPercent:  float32(cpuPct),
			User:        username,
			State:       state,
		}
		enrichPlatform(&rp)
		raw = append(raw, rp)
	}

	return raw, totals, nil
}

func (g *GopsutilSource) systemTotals() (SystemTotals, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return SystemTotals{}, err
	}
	swap, _ := mem.SwapMemory()

	perCore, _ := cpu.Percent(0, true)

	totals := SystemTotals{
		CPUPerCore: perCore,
		MemTotal:   vm.Total,
		MemUsed:    vm.Used,
		MemFree:    vm.Free,
	}
	if swap != nil {
		totals.SwapTotal = swap.Total
		totals.SwapUsed = swap.Used
	}

	if avg, err := load.Avg(); err == nil && avg != nil {
		totals.LoadAverage = [3]float64{avg.Load1, avg.Load5, avg.Load15}
		totals.HasLoad = true
	}

	return totals, nil
}

func mapState(statuses []string) procmodel.State {
	if len(statuses) == 0 {
		return procmodel.StateUnknown
	}
	switch strings.ToUpper(statuses[0]) {
	case "R", "RUNNING":
		return procmodel.StateRunning
	case "S", "SLEEP", "SLEEPING":
		return procmodel.StateSleeping
	case "T", "STOP", "STOPPED":
		return procmodel.StateStopped
	case "Z", "ZOMBIE":
		return procmodel.StateZombie
	case "I", "IDLE":
		return procmodel.StateIdle
	default:
		return procmodel.StateUnknown
	}
}
