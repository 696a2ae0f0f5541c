package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// Host reads metrics from the machine the process runs on.
type Host struct {
	// SysfsRoot is where Linux cpufreq files are read from. Empty means "/sys".
	SysfsRoot string
}

// NewHost returns a Source bound to the local machine.
func NewHost() *Host {
	return &Host{}
}

var _ Source = (*Host)(nil)

// HostInfo combines the kernel's uname data with the processor model name.
func (h *Host) HostInfo(ctx context.Context) (HostInfo, error) {
	info, err := uname(ctx)
	if err != nil {
		return HostInfo{}, err
	}
	if info.Processor == "" {
		info.Processor = processorName(ctx)
	}
	if info.Processor == "" {
		// Same fallback as uname -p on hosts without a model string.
		info.Processor = info.Machine
	}
	return info, nil
}

func processorName(ctx context.Context) string {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		return ""
	}
	return strings.TrimSpace(infos[0].ModelName)
}

// BootTime returns when the host last booted, to the second.
func (h *Host) BootTime(ctx context.Context) (time.Time, error) {
	secs, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0), nil
}

// CPUCounts returns the number of logical CPUs, or physical cores when logical is false.
func (h *Host) CPUCounts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

// CPUFreq prefers the platform's frequency interface and falls back to the
// nominal clock advertised by the processor.
func (h *Host) CPUFreq(ctx context.Context) (CPUFreq, error) {
	freq, err := h.platformFreq(ctx)
	if err == nil && freq.Current > 0 {
		return freq, nil
	}

	infos, ierr := cpu.InfoWithContext(ctx)
	if ierr != nil {
		return CPUFreq{}, fmt.Errorf("%w: %v", ErrNoFrequency, ierr)
	}
	for _, info := range infos {
		if info.Mhz > 0 {
			// Keep whatever bounds the platform did expose.
			freq.Current = info.Mhz
			if freq.Max == 0 {
				freq.Max = info.Mhz
			}
			return freq, nil
		}
	}
	return CPUFreq{}, ErrNoFrequency
}

// CPUPercent returns utilization percentages, one per CPU when perCPU is set.
// A zero interval measures against gopsutil's previous reading, which before
// any earlier zero-interval call is the one taken when the package loaded.
func (h *Host) CPUPercent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error) {
	return cpu.PercentWithContext(ctx, interval, perCPU)
}

// VirtualMemory returns physical memory usage.
func (h *Host) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

// SwapMemory returns swap usage.
func (h *Host) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	return mem.SwapMemoryWithContext(ctx)
}

// Partitions lists physical mounts only, leaving out pseudo filesystems.
func (h *Host) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

// DiskUsage returns usage of the filesystem mounted at path.
func (h *Host) DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

// DiskIOCounters returns cumulative I/O per block device, keyed by device name.
func (h *Host) DiskIOCounters(ctx context.Context) (map[string]disk.IOCountersStat, error) {
	return disk.IOCountersWithContext(ctx)
}

// Interfaces lists network interfaces with their addresses and flags.
func (h *Host) Interfaces(ctx context.Context) (net.InterfaceStatList, error) {
	return net.InterfacesWithContext(ctx)
}

// NetIOCounters returns the counters summed over every interface.
func (h *Host) NetIOCounters(ctx context.Context) (net.IOCountersStat, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return net.IOCountersStat{}, err
	}
	if len(counters) == 0 {
		return net.IOCountersStat{}, errors.New("no network counters reported")
	}
	return counters[0], nil
}
