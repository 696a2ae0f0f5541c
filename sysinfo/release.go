package sysinfo

import (
	"fmt"
	"strings"
)

// windowsRelease maps the kernel version and registry product name to the
// release shown for Windows hosts.
//
// Server editions report the product without its "Windows " prefix, e.g.
// "Server 2022 Datacenter". Windows 11 still reports major version 10;
// builds from 22000 on are 11.
func windowsRelease(product string, major, build uint32) string {
	product = strings.TrimSpace(product)
	if strings.Contains(strings.ToLower(product), "server") {
		return strings.TrimPrefix(product, "Windows ")
	}
	if major == 10 && build >= 22000 {
		return "11"
	}
	return fmt.Sprintf("%d", major)
}
