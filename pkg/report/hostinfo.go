package report

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a benchmark ran on. Latency numbers are
// meaningless without it once reports get shared around.
type HostInfo struct {
	CPUModel     string
	LogicalCores int
	TotalMemory  uint64 // bytes
	GOOS         string
	GOARCH       string
}

func (h HostInfo) String() string {
	return fmt.Sprintf("%s, %d cores, %s RAM, %s/%s",
		h.CPUModel, h.LogicalCores, formatBytes(h.TotalMemory), h.GOOS, h.GOARCH)
}

// CollectHostInfo gathers CPU and memory facts for the report header. The
// caller should treat failure as cosmetic: a run without the header is still
// a valid run.
func CollectHostInfo() (*HostInfo, error) {
	infos, err := cpu.Info()
	if err != nil {
		return nil, fmt.Errorf("cpu info: %w", err)
	}
	if len(infos) == 0 {
		return nil, errors.New("cpu info: no CPUs reported")
	}

	cores, err := cpu.Counts(true)
	if err != nil {
		return nil, fmt.Errorf("cpu counts: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}

	return &HostInfo{
		CPUModel:     infos[0].ModelName,
		LogicalCores: cores,
		TotalMemory:  vm.Total,
		GOOS:         runtime.GOOS,
		GOARCH:       runtime.GOARCH,
	}, nil
}

func formatBytes(n uint64) string {
	const gib = 1 << 30
	if n >= gib {
		return fmt.Sprintf("%.1f GiB", float64(n)/float64(gib))
	}
	const mib = 1 << 20
	return fmt.Sprintf("%.0f MiB", float64(n)/float64(mib))
}
