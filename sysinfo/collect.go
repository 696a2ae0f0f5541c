package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
)

// CollectIdentity returns the operating system and machine identity.
func CollectIdentity(ctx context.Context, src Source) (*MetricGroup, error) {
	info, err := src.HostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}
	return NewMetricGroup(
		"system", info.System,
		"node name", info.Node,
		"release", info.Release,
		"version", info.Version,
		"machine", info.Machine,
		"processor", info.Processor,
	), nil
}

// BootTime is a boot timestamp broken into local calendar fields.
type BootTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

// String renders the fields without zero padding, e.g. "2024/3/5 9:7:3".
func (b BootTime) String() string {
	return fmt.Sprintf("%d/%d/%d %d:%d:%d", b.Year, b.Month, b.Day, b.Hour, b.Minute, b.Second)
}

// CollectBootTime returns the host boot time in the local time zone.
func CollectBootTime(ctx context.Context, src Source) (BootTime, error) {
	t, err := src.BootTime(ctx)
	if err != nil {
		return BootTime{}, fmt.Errorf("boot time: %w", err)
	}
	t = t.Local()
	return BootTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}, nil
}

// CollectCPU returns core counts, clock frequencies and utilization.
// Per-core utilization is sampled over interval, blocking for that long. The
// total is a non-blocking reading against gopsutil's previous whole-CPU
// sample, which on the first call is the one taken when the package loaded,
// so it covers roughly the time since the process started.
func CollectCPU(ctx context.Context, src Source, interval time.Duration) (*MetricGroup, error) {
	physical, err := src.CPUCounts(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("physical cpu count: %w", err)
	}
	logical, err := src.CPUCounts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("logical cpu count: %w", err)
	}
	freq, err := src.CPUFreq(ctx)
	if err != nil {
		return nil, fmt.Errorf("cpu frequency: %w", err)
	}
	perCore, err := src.CPUPercent(ctx, interval, true)
	if err != nil {
		return nil, fmt.Errorf("per-core cpu usage: %w", err)
	}
	total, err := src.CPUPercent(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("total cpu usage: %w", err)
	}
	if len(total) == 0 {
		return nil, errors.New("total cpu usage: no sample returned")
	}

	cores := make([]string, len(perCore))
	for i, p := range perCore {
		cores[i] = fmt.Sprintf("Core %d: %s", i+1, FormatPercent(p))
	}

	return NewMetricGroup(
		"physical cores", fmt.Sprint(physical),
		"total cores", fmt.Sprint(logical),
		"max frequency", FormatMHz(freq.Max),
		"min frequency", FormatMHz(freq.Min),
		"current frequency", FormatMHz(freq.Current),
		"CPU usage per core", strings.Join(cores, "\n"),
		"total CPU usage", FormatPercent(total[0]),
	), nil
}

// MemoryReport holds the physical and swap memory groups.
type MemoryReport struct {
	Physical *MetricGroup
	Swap     *MetricGroup
}

// CollectMemory returns physical and swap memory usage.
func CollectMemory(ctx context.Context, src Source) (*MemoryReport, error) {
	vm, err := src.VirtualMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}
	sm, err := src.SwapMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("swap memory: %w", err)
	}
	return &MemoryReport{
		Physical: NewMetricGroup(
			"total", FormatBytes(vm.Total),
			"available", FormatBytes(vm.Available),
			"used", FormatBytes(vm.Used),
			"percent", FormatPercent(vm.UsedPercent),
		),
		Swap: NewMetricGroup(
			"total", FormatBytes(sm.Total),
			"free", FormatBytes(sm.Free),
			"used", FormatBytes(sm.Used),
			"percent", FormatPercent(sm.UsedPercent),
		),
	}, nil
}

// PartitionReport is one mounted partition.
type PartitionReport struct {
	Device string

	// Stats is nil when the partition's usage could not be read for lack of permission.
	Stats *MetricGroup
}

// DiskReport holds every partition and the aggregate I/O group.
type DiskReport struct {
	Partitions []PartitionReport
	IO         *MetricGroup
}

// CollectDisk returns per-partition usage and the bytes read and written
// since boot across the host's block devices.
//
// A partition whose usage is denied keeps its entry with nil Stats and its
// device is left out of the I/O totals. Any other failure aborts the collection.
//
// Only whole devices are summed so a disk and its partitions are not counted
// twice. Partition names are tied to their disk by suffix ("sda1", "nvme0n1p2");
// names that follow no such scheme (Darwin's disk3s1s1, dm-N) stand alone.
func CollectDisk(ctx context.Context, src Source) (*DiskReport, error) {
	parts, err := src.Partitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("disk partitions: %w", err)
	}

	report := &DiskReport{}
	denied := make(map[string]bool)
	for _, p := range parts {
		entry := PartitionReport{Device: p.Device}
		usage, err := src.DiskUsage(ctx, p.Mountpoint)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				report.Partitions = append(report.Partitions, entry)
				denied[deviceKey(p.Device)] = true
				continue
			}
			return nil, fmt.Errorf("disk usage %s: %w", p.Mountpoint, err)
		}
		entry.Stats = NewMetricGroup(
			"mountpoint", p.Mountpoint,
			"file system type", p.Fstype,
			"total size", FormatBytes(usage.Total),
			"used", FormatBytes(usage.Used),
			"free", FormatBytes(usage.Free),
			"percentage", FormatPercent(usage.UsedPercent),
		)
		report.Partitions = append(report.Partitions, entry)
	}

	counters, err := src.DiskIOCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("disk io counters: %w", err)
	}
	// Device-mapper volumes are mounted by label but counted under dm-N.
	isDenied := func(name string, c disk.IOCountersStat) bool {
		return denied[name] || (c.Label != "" && denied[c.Label])
	}
	var read, write, deniedRead, deniedWrite uint64
	for name, c := range counters {
		parent, ok := partitionParent(name, counters)
		switch {
		case !ok:
			if !isDenied(name, c) {
				read += c.ReadBytes
				write += c.WriteBytes
			}
		case isDenied(name, c) && !isDenied(parent, counters[parent]):
			// The parent disk's counters include this partition's traffic.
			deniedRead += c.ReadBytes
			deniedWrite += c.WriteBytes
		}
	}
	report.IO = NewMetricGroup(
		"total read", FormatBytes(subFloor(read, deniedRead)),
		"total write", FormatBytes(subFloor(write, deniedWrite)),
	)
	return report, nil
}

// partitionParent reports the whole-disk counter a partition counter belongs
// to. "sda1" belongs to "sda"; "nvme0n1p1" and "mmcblk0p1" belong to the name
// before the "p", which itself ends in a digit.
func partitionParent(name string, counters map[string]disk.IOCountersStat) (string, bool) {
	for i := len(name) - 1; i > 0; i-- {
		parent, rest := name[:i], name[i:]
		if _, ok := counters[parent]; !ok {
			continue
		}
		last := parent[len(parent)-1]
		switch {
		case isDigits(rest) && !isDigit(last):
			return parent, true
		case len(rest) > 1 && rest[0] == 'p' && isDigits(rest[1:]) && isDigit(last):
			return parent, true
		}
	}
	return "", false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func subFloor(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// deviceKey reduces a device path to the name I/O counters are keyed by:
// "/dev/sda1" and "sda1" give "sda1", "/dev/mapper/vg-root" gives "vg-root".
func deviceKey(device string) string {
	if i := strings.LastIndexByte(device, '/'); i >= 0 {
		return device[i+1:]
	}
	return device
}
