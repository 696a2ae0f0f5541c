// Package sysinfo provides cross-platform system information retrieval capabilities.
// It defines the accessor interface over the host's metric sources and the
// collectors that reshape raw readings into ordered label/value groups.
package sysinfo

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// ErrNoFrequency is returned when the host exposes no CPU clock frequency at all.
var ErrNoFrequency = errors.New("cpu frequency not available")

// HostInfo identifies the operating system and the machine it runs on.
type HostInfo struct {
	// System is the operating system name (e.g. "Linux", "Darwin", "Windows")
	System string

	// Node is the computer's network name
	Node string

	// Release is the kernel or OS release (e.g. "6.8.0-45-generic")
	Release string

	// Version is the full kernel or OS version string
	Version string

	// Machine is the hardware architecture (e.g. "x86_64")
	Machine string

	// Processor is the processor model description
	Processor string
}

// CPUFreq holds clock frequencies in MHz. Zero means the value is not exposed.
type CPUFreq struct {
	Current float64
	Min     float64
	Max     float64
}

// Source is the capability interface over the operating system's metric
// accessors. Host binds it to the real machine; tests substitute canned values.
type Source interface {
	HostInfo(ctx context.Context) (HostInfo, error)
	BootTime(ctx context.Context) (time.Time, error)

	CPUCounts(ctx context.Context, logical bool) (int, error)
	CPUFreq(ctx context.Context) (CPUFreq, error)
	// CPUPercent blocks for interval when it is positive. A zero interval
	// compares against the previous call.
	CPUPercent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error)

	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error)

	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error)
	DiskIOCounters(ctx context.Context) (map[string]disk.IOCountersStat, error)

	Interfaces(ctx context.Context) (net.InterfaceStatList, error)
	NetIOCounters(ctx context.Context) (net.IOCountersStat, error)
}
