//go:build !linux && !darwin

package sysinfo

import "context"

func (h *Host) platformFreq(_ context.Context) (CPUFreq, error) {
	return CPUFreq{}, ErrNoFrequency
}
