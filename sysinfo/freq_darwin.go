//go:build darwin

package sysinfo

import (
	"context"

	"golang.org/x/sys/unix"
)

// platformFreq reads the hw.cpufrequency sysctls (Hz). Apple silicon does not
// publish them, in which case the caller falls back to the nominal clock.
func (h *Host) platformFreq(_ context.Context) (CPUFreq, error) {
	cur, err := unix.SysctlUint64("hw.cpufrequency")
	if err != nil {
		return CPUFreq{}, err
	}
	freq := CPUFreq{Current: float64(cur) / 1e6}
	if v, err := unix.SysctlUint64("hw.cpufrequency_min"); err == nil {
		freq.Min = float64(v) / 1e6
	}
	if v, err := unix.SysctlUint64("hw.cpufrequency_max"); err == nil {
		freq.Max = float64(v) / 1e6
	}
	return freq, nil
}
