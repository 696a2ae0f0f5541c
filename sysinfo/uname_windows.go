//go:build windows
// +build windows

// Package sysinfo - Windows-specific identity
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const currentVersionKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`

// uname builds the identity from RtlGetVersion and the CurrentVersion registry key.
//
// Release is the marketing major version ("10", "11") or the server product
// ("Server 2022 Datacenter"). Version is the dotted
// major.minor.build triple, matching what uname-style tools report on Windows.
func uname(_ context.Context) (HostInfo, error) {
	info := HostInfo{System: "Windows"}

	hostname, err := os.Hostname()
	if err != nil {
		return HostInfo{}, fmt.Errorf("hostname: %w", err)
	}
	info.Node = hostname

	// RtlGetVersion ignores the application manifest, unlike GetVersionEx.
	v := windows.RtlGetVersion()
	info.Version = fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
	product := getRegistryString(registry.LOCAL_MACHINE, currentVersionKey, "ProductName")
	info.Release = windowsRelease(product, v.MajorVersion, v.BuildNumber)

	arch, err := host.KernelArch()
	if err != nil {
		return HostInfo{}, fmt.Errorf("kernel arch: %w", err)
	}
	info.Machine = arch

	info.Processor = strings.TrimSpace(getRegistryString(registry.LOCAL_MACHINE,
		`HARDWARE\DESCRIPTION\System\CentralProcessor\0`, "ProcessorNameString"))
	return info, nil
}

// getRegistryString reads a string value from the registry.
// An empty string means the key or value is missing or unreadable.
func getRegistryString(key registry.Key, path string, valueName string) string {
	k, err := registry.OpenKey(key, path, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer func() { _ = k.Close() }()

	value, _, err := k.GetStringValue(valueName)
	if err != nil {
		return ""
	}

	return value
}
