package internal

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats reports the planner's own RSS and CPU usage for the debug
// dashboard.
func ProcessStats() (rssMb uint64, cpuPercent float64, err error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return mem.RSS / 1024 / 1024, cpu, nil
}
