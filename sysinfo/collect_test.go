package sysinfo_test

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysoverview/sysinfo"
	"sysoverview/sysinfo/sysinfotest"
)

func labels(g *sysinfo.MetricGroup) []string {
	var out []string
	for _, p := range g.Pairs() {
		out = append(out, p.Label)
	}
	return out
}

func value(t *testing.T, g *sysinfo.MetricGroup, label string) string {
	t.Helper()
	v, ok := g.Get(label)
	require.True(t, ok, "missing label %q", label)
	return v
}

func TestCollectIdentity(t *testing.T) {
	g, err := sysinfo.CollectIdentity(context.Background(), sysinfotest.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"system", "node name", "release", "version", "machine", "processor"}, labels(g))
	assert.Equal(t, "Linux", value(t, g, "system"))
	assert.Equal(t, "testbox", value(t, g, "node name"))
	assert.Equal(t, "x86_64", value(t, g, "machine"))
}

func TestCollectIdentityError(t *testing.T) {
	stub := sysinfotest.New()
	boom := errors.New("boom")
	stub.Errs = map[string]error{"HostInfo": boom}

	_, err := sysinfo.CollectIdentity(context.Background(), stub)
	require.ErrorIs(t, err, boom)
}

func TestCollectBootTime(t *testing.T) {
	bt, err := sysinfo.CollectBootTime(context.Background(), sysinfotest.New())
	require.NoError(t, err)

	assert.Equal(t, sysinfo.BootTime{Year: 2024, Month: 3, Day: 5, Hour: 9, Minute: 7, Second: 3}, bt)
	assert.Equal(t, "2024/3/5 9:7:3", bt.String())
}

func TestCollectCPU(t *testing.T) {
	stub := sysinfotest.New()
	stub.PerCore = []float64{12.5, 100}

	g, err := sysinfo.CollectCPU(context.Background(), stub, time.Second)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"physical cores", "total cores",
		"max frequency", "min frequency", "current frequency",
		"CPU usage per core", "total CPU usage",
	}, labels(g))
	assert.Equal(t, "4", value(t, g, "physical cores"))
	assert.Equal(t, "8", value(t, g, "total cores"))
	assert.Equal(t, "4200.00Mhz", value(t, g, "max frequency"))
	assert.Equal(t, "800.00Mhz", value(t, g, "min frequency"))
	assert.Equal(t, "2400.00Mhz", value(t, g, "current frequency"))
	assert.Equal(t, "Core 1: 12.5%\nCore 2: 100.0%", value(t, g, "CPU usage per core"))
	assert.Equal(t, "45.0%", value(t, g, "total CPU usage"))

	// Per-core sample blocks for the window; the total does not block.
	assert.Equal(t, []time.Duration{time.Second, 0}, stub.Intervals)
}

func TestCollectCPUFrequencyUnavailable(t *testing.T) {
	stub := sysinfotest.New()
	stub.Errs = map[string]error{"CPUFreq": sysinfo.ErrNoFrequency}

	_, err := sysinfo.CollectCPU(context.Background(), stub, 0)
	require.ErrorIs(t, err, sysinfo.ErrNoFrequency)
}

func TestCollectMemory(t *testing.T) {
	m, err := sysinfo.CollectMemory(context.Background(), sysinfotest.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"total", "available", "used", "percent"}, labels(m.Physical))
	assert.Equal(t, "16.00GB", value(t, m.Physical, "total"))
	assert.Equal(t, "8.00GB", value(t, m.Physical, "available"))
	assert.Equal(t, "50.0%", value(t, m.Physical, "percent"))

	assert.Equal(t, []string{"total", "free", "used", "percent"}, labels(m.Swap))
	assert.Equal(t, "2.00GB", value(t, m.Swap, "total"))
	assert.Equal(t, "0.00B", value(t, m.Swap, "used"))
	assert.Equal(t, "0.0%", value(t, m.Swap, "percent"))
}

func TestCollectDisk(t *testing.T) {
	d, err := sysinfo.CollectDisk(context.Background(), sysinfotest.New())
	require.NoError(t, err)

	require.Len(t, d.Partitions, 1)
	p := d.Partitions[0]
	assert.Equal(t, "/dev/sda1", p.Device)
	require.NotNil(t, p.Stats)
	assert.Equal(t, []string{"mountpoint", "file system type", "total size", "used", "free", "percentage"}, labels(p.Stats))
	assert.Equal(t, "/", value(t, p.Stats, "mountpoint"))
	assert.Equal(t, "ext4", value(t, p.Stats, "file system type"))
	assert.Equal(t, "100.00GB", value(t, p.Stats, "total size"))
	assert.Equal(t, "25.0%", value(t, p.Stats, "percentage"))

	assert.Equal(t, "1.00KB", value(t, d.IO, "total read"))
	assert.Equal(t, "1.43MB", value(t, d.IO, "total write"))
}

func TestCollectDiskSkipsDeniedPartition(t *testing.T) {
	stub := sysinfotest.New()
	stub.Parts = append(stub.Parts,
		disk.PartitionStat{Device: "/dev/sdb1", Mountpoint: "/secret", Fstype: "xfs"},
		disk.PartitionStat{Device: "/dev/mapper/vg-data", Mountpoint: "/data", Fstype: "ext4"},
	)
	stub.Usage["/data"] = disk.UsageStat{Total: 1 << 20}
	stub.UsageErrs = map[string]error{
		"/secret": &fs.PathError{Op: "statfs", Path: "/secret", Err: syscall.EACCES},
	}
	stub.DiskIO["sdb1"] = disk.IOCountersStat{Name: "sdb1", ReadBytes: 1 << 40, WriteBytes: 1 << 40}
	stub.DiskIO["dm-0"] = disk.IOCountersStat{Name: "dm-0", Label: "vg-data", ReadBytes: 1024, WriteBytes: 0}

	d, err := sysinfo.CollectDisk(context.Background(), stub)
	require.NoError(t, err)

	require.Len(t, d.Partitions, 3)
	assert.Equal(t, "/dev/sdb1", d.Partitions[1].Device)
	assert.Nil(t, d.Partitions[1].Stats)
	assert.NotNil(t, d.Partitions[0].Stats)
	assert.NotNil(t, d.Partitions[2].Stats)

	// sda1 and dm-0 only: the denied sdb1 is excluded.
	assert.Equal(t, "2.00KB", value(t, d.IO, "total read"))
	assert.Equal(t, "1.43MB", value(t, d.IO, "total write"))
}

func TestCollectDiskDarwinNames(t *testing.T) {
	stub := sysinfotest.New()
	stub.Parts = []disk.PartitionStat{{Device: "/dev/disk3s1s1", Mountpoint: "/", Fstype: "apfs"}}
	stub.DiskIO = map[string]disk.IOCountersStat{
		"disk0": {Name: "disk0", ReadBytes: 5 << 30, WriteBytes: 3 << 30},
	}

	d, err := sysinfo.CollectDisk(context.Background(), stub)
	require.NoError(t, err)

	assert.Equal(t, "5.00GB", value(t, d.IO, "total read"))
	assert.Equal(t, "3.00GB", value(t, d.IO, "total write"))
}

func TestCollectDiskCountsWholeDevices(t *testing.T) {
	tests := []struct {
		name      string
		counters  map[string]disk.IOCountersStat
		wantRead  string
		wantWrite string
	}{
		{
			name: "sata disk with partitions",
			counters: map[string]disk.IOCountersStat{
				"sda":  {ReadBytes: 3072, WriteBytes: 2048},
				"sda1": {ReadBytes: 1024, WriteBytes: 1024},
				"sda2": {ReadBytes: 2048, WriteBytes: 1024},
			},
			wantRead:  "3.00KB",
			wantWrite: "2.00KB",
		},
		{
			name: "nvme and mmc partitions",
			counters: map[string]disk.IOCountersStat{
				"nvme0n1":   {ReadBytes: 1024},
				"nvme0n1p1": {ReadBytes: 1024},
				"mmcblk0":   {WriteBytes: 1024},
				"mmcblk0p1": {WriteBytes: 1024},
			},
			wantRead:  "1.00KB",
			wantWrite: "1.00KB",
		},
		{
			name: "device-mapper volumes stand alone",
			counters: map[string]disk.IOCountersStat{
				"dm-1":  {ReadBytes: 1024},
				"dm-10": {ReadBytes: 1024},
			},
			wantRead:  "2.00KB",
			wantWrite: "0.00B",
		},
		{
			name: "unmounted devices count too",
			counters: map[string]disk.IOCountersStat{
				"sda1":  {ReadBytes: 1024},
				"loop0": {ReadBytes: 1024},
			},
			wantRead:  "2.00KB",
			wantWrite: "0.00B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := sysinfotest.New()
			stub.DiskIO = tt.counters

			d, err := sysinfo.CollectDisk(context.Background(), stub)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRead, value(t, d.IO, "total read"))
			assert.Equal(t, tt.wantWrite, value(t, d.IO, "total write"))
		})
	}
}

func TestCollectDiskDeniedPartitionLeavesParent(t *testing.T) {
	stub := sysinfotest.New()
	stub.Parts = append(stub.Parts, disk.PartitionStat{Device: "/dev/sda2", Mountpoint: "/secret", Fstype: "xfs"})
	stub.UsageErrs = map[string]error{
		"/secret": &fs.PathError{Op: "statfs", Path: "/secret", Err: syscall.EACCES},
	}
	stub.DiskIO = map[string]disk.IOCountersStat{
		"sda":  {ReadBytes: 3072, WriteBytes: 3072},
		"sda1": {ReadBytes: 1024, WriteBytes: 2048},
		"sda2": {ReadBytes: 2048, WriteBytes: 1024},
	}

	d, err := sysinfo.CollectDisk(context.Background(), stub)
	require.NoError(t, err)

	assert.Equal(t, "1.00KB", value(t, d.IO, "total read"))
	assert.Equal(t, "2.00KB", value(t, d.IO, "total write"))
}

func TestCollectDiskOtherUsageErrorIsFatal(t *testing.T) {
	stub := sysinfotest.New()
	stub.UsageErrs = map[string]error{"/": syscall.EIO}

	_, err := sysinfo.CollectDisk(context.Background(), stub)
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EIO)
	assert.Contains(t, err.Error(), "disk usage /")
}

func TestCollectNetworkLoopback(t *testing.T) {
	n, err := sysinfo.CollectNetwork(context.Background(), sysinfotest.New())
	require.NoError(t, err)

	require.Len(t, n.Interfaces, 1)
	lo := n.Interfaces[0]
	assert.Equal(t, "lo", lo.Name)
	require.Len(t, lo.Groups, 2)

	v4 := lo.Groups[0]
	assert.Equal(t, []string{"IP address", "Netmask", "Broadcast IP"}, labels(v4))
	assert.Equal(t, "127.0.0.1", value(t, v4, "IP address"))
	assert.Equal(t, "255.0.0.0", value(t, v4, "Netmask"))
	assert.Equal(t, "", value(t, v4, "Broadcast IP"))

	v6 := lo.Groups[1]
	assert.Equal(t, []string{"IPv6 address", "Netmask", "Scope"}, labels(v6))
	assert.Equal(t, "::1", value(t, v6, "IPv6 address"))
	assert.Equal(t, "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff", value(t, v6, "Netmask"))
	assert.Equal(t, "host", value(t, v6, "Scope"))

	assert.Equal(t, "2.00KB", value(t, n.IO, "total bytes sent"))
	assert.Equal(t, "4.00KB", value(t, n.IO, "total bytes received"))
}

func TestCollectNetworkEthernet(t *testing.T) {
	stub := sysinfotest.New()
	stub.Ifaces = net.InterfaceStatList{{
		Name:         "eth0",
		HardwareAddr: "52:54:00:12:34:56",
		Flags:        []string{"up", "broadcast", "multicast"},
		Addrs: net.InterfaceAddrList{
			{Addr: "192.168.1.20/24"},
			{Addr: "10.0.0.5/8"},
			{Addr: "fe80::5054:ff:fe12:3456/64"},
			{Addr: "not-an-address"},
		},
	}}

	n, err := sysinfo.CollectNetwork(context.Background(), stub)
	require.NoError(t, err)

	require.Len(t, n.Interfaces, 1)
	groups := n.Interfaces[0].Groups
	require.Len(t, groups, 3)

	assert.Equal(t, "192.168.1.20", value(t, groups[0], "IP address"))
	assert.Equal(t, "255.255.255.0", value(t, groups[0], "Netmask"))
	assert.Equal(t, "192.168.1.255", value(t, groups[0], "Broadcast IP"))

	assert.Equal(t, []string{"MAC address"}, labels(groups[1]))
	assert.Equal(t, "52:54:00:12:34:56", value(t, groups[1], "MAC address"))

	assert.Equal(t, "fe80::5054:ff:fe12:3456", value(t, groups[2], "IPv6 address"))
	assert.Equal(t, "ffff:ffff:ffff:ffff::", value(t, groups[2], "Netmask"))
	assert.Equal(t, "link", value(t, groups[2], "Scope"))
}

func TestCollectNetworkHardwareOnly(t *testing.T) {
	stub := sysinfotest.New()
	stub.Ifaces = net.InterfaceStatList{
		{Name: "wlan0", HardwareAddr: "aa:bb:cc:dd:ee:ff"},
		{Name: "dummy0"},
	}

	n, err := sysinfo.CollectNetwork(context.Background(), stub)
	require.NoError(t, err)

	require.Len(t, n.Interfaces, 2)
	require.Len(t, n.Interfaces[0].Groups, 1)
	assert.Equal(t, []string{"MAC address"}, labels(n.Interfaces[0].Groups[0]))
	assert.Empty(t, n.Interfaces[1].Groups)
}

func TestCollectNetworkIOError(t *testing.T) {
	stub := sysinfotest.New()
	stub.Errs = map[string]error{"NetIOCounters": errors.New("no counters")}

	_, err := sysinfo.CollectNetwork(context.Background(), stub)
	require.EqualError(t, err, "network io counters: no counters")
}
