// Package winquery enriches the service control manager's status view
// with WMI service records and per-process resource usage.
package winquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// ServiceDetail is the enriched view of one installed service.
type ServiceDetail struct {
	Name        string
	DisplayName string
	State       string
	StartMode   string
	StartName   string
	PathName    string
	ProcessID   uint32

	// Process fields are populated only when the service is running.
	Process *ProcessUsage
}

// ProcessUsage summarizes the hosting process.
type ProcessUsage struct {
	PID        int32
	CPUPercent float64
	MemoryRSS  uint64
	NumThreads int32
}

// Describe returns the enriched WMI view of the named service.
// Available on Windows only.
func Describe(ctx context.Context, serviceName string) (*ServiceDetail, error) {
	return describe(ctx, serviceName)
}

// wqlEscaper escapes a value for use inside a double-quoted WQL string
// literal. WQL uses backslash escaping.
var wqlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func wqlString(s string) string {
	return `"` + wqlEscaper.Replace(s) + `"`
}

// processUsage collects resource usage for a service's hosting
// process.
func processUsage(ctx context.Context, pid uint32) (*ProcessUsage, error) {
	if pid == 0 {
		return nil, fmt.Errorf("service has no hosting process")
	}
	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil, fmt.Errorf("open process %d: %w", pid, err)
	}

	usage := &ProcessUsage{PID: proc.Pid}
	if cpu, err := proc.CPUPercentWithContext(ctx); err == nil {
		usage.CPUPercent = cpu
	}
	if mem, err := proc.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		usage.MemoryRSS = mem.RSS
	}
	if threads, err := proc.NumThreadsWithContext(ctx); err == nil {
		usage.NumThreads = threads
	}
	return usage, nil
}
