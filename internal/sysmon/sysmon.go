// Package sysmon provides system-wide CPU and memory usage sampling and a
// description of the host the series is computed on.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	syscpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Environment describes the host for the verbose execution report.
type Environment struct {
	LogicalCPUs  int
	PhysicalCPUs int // 0 when unknown
	GOMAXPROCS   int
	GoVersion    string
	Arch         string
	// FMA reports hardware fused multiply-add. The compiler may fuse
	// x*y+z on such hosts, which changes naive sums in the last ulp.
	FMA   bool
	Stats Stats
}

// Describe gathers the host environment.
func Describe() Environment {
	env := Environment{
		LogicalCPUs: runtime.NumCPU(),
		GOMAXPROCS:  runtime.GOMAXPROCS(0),
		GoVersion:   runtime.Version(),
		Arch:        runtime.GOARCH,
		FMA:         hasFMA(),
		Stats:       Sample(),
	}
	if n, err := cpu.Counts(false); err == nil {
		env.PhysicalCPUs = n
	}
	return env
}

// Oversubscribed reports whether threads exceeds the logical CPU count.
func (e Environment) Oversubscribed(threads uint64) bool {
	return e.LogicalCPUs > 0 && threads > uint64(e.LogicalCPUs)
}

func hasFMA() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return syscpu.X86.HasFMA
	case "arm64", "ppc64le", "s390x", "riscv64":
		return true
	}
	return false
}
