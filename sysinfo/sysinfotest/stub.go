// Package sysinfotest provides a canned sysinfo.Source for tests.
package sysinfotest

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"

	"sysoverview/sysinfo"
)

// Stub returns its fields verbatim. Errs, keyed by method name, makes a
// method fail; UsageErrs does the same per mountpoint for DiskUsage.
type Stub struct {
	Info          sysinfo.HostInfo
	Boot          time.Time
	PhysicalCores int
	LogicalCores  int
	Freq          sysinfo.CPUFreq
	PerCore       []float64
	Total         float64
	Virtual       mem.VirtualMemoryStat
	Swap          mem.SwapMemoryStat
	Parts         []disk.PartitionStat
	Usage         map[string]disk.UsageStat
	UsageErrs     map[string]error
	DiskIO        map[string]disk.IOCountersStat
	Ifaces        net.InterfaceStatList
	NetIO         net.IOCountersStat
	Errs          map[string]error

	// Intervals records every interval CPUPercent was asked to sample over.
	Intervals []time.Duration
}

var _ sysinfo.Source = (*Stub)(nil)

// New returns a stub describing a small Linux machine: 4 physical and 8
// logical cores, 16 GiB of memory, one partition "/" and a loopback interface.
func New() *Stub {
	const gib = 1 << 30
	return &Stub{
		Info: sysinfo.HostInfo{
			System:    "Linux",
			Node:      "testbox",
			Release:   "6.8.0-45-generic",
			Version:   "#45-Ubuntu SMP PREEMPT_DYNAMIC",
			Machine:   "x86_64",
			Processor: "Test CPU @ 2.40GHz",
		},
		Boot:          time.Date(2024, time.March, 5, 9, 7, 3, 0, time.Local),
		PhysicalCores: 4,
		LogicalCores:  8,
		Freq:          sysinfo.CPUFreq{Current: 2400, Min: 800, Max: 4200},
		PerCore:       []float64{10, 20, 30, 40, 50, 60, 70, 80},
		Total:         45,
		Virtual: mem.VirtualMemoryStat{
			Total:       16 * gib,
			Available:   8 * gib,
			Used:        8 * gib,
			UsedPercent: 50,
		},
		Swap: mem.SwapMemoryStat{
			Total:       2 * gib,
			Free:        2 * gib,
			Used:        0,
			UsedPercent: 0,
		},
		Parts: []disk.PartitionStat{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		},
		Usage: map[string]disk.UsageStat{
			"/": {Path: "/", Total: 100 * gib, Used: 25 * gib, Free: 75 * gib, UsedPercent: 25},
		},
		DiskIO: map[string]disk.IOCountersStat{
			"sda1": {Name: "sda1", ReadBytes: 1024, WriteBytes: 1500000},
		},
		Ifaces: net.InterfaceStatList{
			{
				Index: 1,
				Name:  "lo",
				Flags: []string{"up", "loopback", "running"},
				Addrs: net.InterfaceAddrList{{Addr: "127.0.0.1/8"}, {Addr: "::1/128"}},
			},
		},
		NetIO: net.IOCountersStat{Name: "all", BytesSent: 2048, BytesRecv: 4096},
	}
}

func (s *Stub) err(method string) error {
	return s.Errs[method]
}

func (s *Stub) HostInfo(context.Context) (sysinfo.HostInfo, error) {
	return s.Info, s.err("HostInfo")
}

func (s *Stub) BootTime(context.Context) (time.Time, error) {
	return s.Boot, s.err("BootTime")
}

func (s *Stub) CPUCounts(_ context.Context, logical bool) (int, error) {
	if logical {
		return s.LogicalCores, s.err("CPUCounts")
	}
	return s.PhysicalCores, s.err("CPUCounts")
}

func (s *Stub) CPUFreq(context.Context) (sysinfo.CPUFreq, error) {
	return s.Freq, s.err("CPUFreq")
}

func (s *Stub) CPUPercent(_ context.Context, interval time.Duration, perCPU bool) ([]float64, error) {
	s.Intervals = append(s.Intervals, interval)
	if err := s.err("CPUPercent"); err != nil {
		return nil, err
	}
	if perCPU {
		return append([]float64(nil), s.PerCore...), nil
	}
	return []float64{s.Total}, nil
}

func (s *Stub) VirtualMemory(context.Context) (*mem.VirtualMemoryStat, error) {
	if err := s.err("VirtualMemory"); err != nil {
		return nil, err
	}
	vm := s.Virtual
	return &vm, nil
}

func (s *Stub) SwapMemory(context.Context) (*mem.SwapMemoryStat, error) {
	if err := s.err("SwapMemory"); err != nil {
		return nil, err
	}
	sm := s.Swap
	return &sm, nil
}

func (s *Stub) Partitions(context.Context) ([]disk.PartitionStat, error) {
	return s.Parts, s.err("Partitions")
}

func (s *Stub) DiskUsage(_ context.Context, path string) (*disk.UsageStat, error) {
	if err := s.UsageErrs[path]; err != nil {
		return nil, err
	}
	u := s.Usage[path]
	return &u, nil
}

func (s *Stub) DiskIOCounters(context.Context) (map[string]disk.IOCountersStat, error) {
	return s.DiskIO, s.err("DiskIOCounters")
}

func (s *Stub) Interfaces(context.Context) (net.InterfaceStatList, error) {
	return s.Ifaces, s.err("Interfaces")
}

func (s *Stub) NetIOCounters(context.Context) (net.IOCountersStat, error) {
	return s.NetIO, s.err("NetIOCounters")
}
