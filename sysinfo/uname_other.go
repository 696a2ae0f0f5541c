//go:build !unix && !windows

package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

func uname(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, fmt.Errorf("host info: %w", err)
	}
	system := info.OS
	if system != "" {
		system = strings.ToUpper(system[:1]) + system[1:]
	}
	return HostInfo{
		System:  system,
		Node:    info.Hostname,
		Release: info.KernelVersion,
		Version: strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
		Machine: info.KernelArch,
	}, nil
}
