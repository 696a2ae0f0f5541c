//go:build linux

package sysinfo

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// platformFreq reads the cpufreq driver's files. Current is the mean of every
// core's scaling frequency; the bounds come from the first core that has them.
func (h *Host) platformFreq(_ context.Context) (CPUFreq, error) {
	root := h.SysfsRoot
	if root == "" {
		root = "/sys"
	}
	dirs, err := filepath.Glob(filepath.Join(root, "devices", "system", "cpu", "cpu[0-9]*", "cpufreq"))
	if err != nil {
		return CPUFreq{}, err
	}
	if len(dirs) == 0 {
		return CPUFreq{}, ErrNoFrequency
	}

	var freq CPUFreq
	var sum float64
	var n int
	for _, dir := range dirs {
		if cur, ok := readKHz(filepath.Join(dir, "scaling_cur_freq")); ok {
			sum += cur
			n++
		}
		if freq.Min == 0 {
			freq.Min, _ = readKHz(filepath.Join(dir, "cpuinfo_min_freq"))
		}
		if freq.Max == 0 {
			freq.Max, _ = readKHz(filepath.Join(dir, "cpuinfo_max_freq"))
		}
	}
	if n > 0 {
		freq.Current = sum / float64(n)
	}
	return freq, nil
}

// readKHz parses a cpufreq file holding a kHz value and returns MHz.
func readKHz(path string) (float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, false
	}
	return v / 1000, true
}
