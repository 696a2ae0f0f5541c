package sysinfo

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"slices"
)

// InterfaceReport is one network interface and its non-empty address groups,
// in IPv4, link-layer, IPv6 order.
type InterfaceReport struct {
	Name   string
	Groups []*MetricGroup
}

// NetworkReport holds every interface and the aggregate I/O group.
type NetworkReport struct {
	Interfaces []InterfaceReport
	IO         *MetricGroup
}

// CollectNetwork returns the addresses of every interface and the bytes sent
// and received since boot.
//
// Only the first address of each family is shown. A family with nothing to
// show is left out of the interface's groups.
func CollectNetwork(ctx context.Context, src Source) (*NetworkReport, error) {
	ifaces, err := src.Interfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("network interfaces: %w", err)
	}

	report := &NetworkReport{}
	for _, iface := range ifaces {
		v4, v6 := NewMetricGroup(), NewMetricGroup()
		mac := NewMetricGroup("MAC address", iface.HardwareAddr)
		canBroadcast := slices.Contains(iface.Flags, "broadcast")

		for _, a := range iface.Addrs {
			prefix, ok := parseAddr(a.Addr)
			if !ok {
				continue
			}
			addr := prefix.Addr()
			switch {
			case addr.Is4():
				if v4.Len() > 0 {
					continue
				}
				v4.Add("IP address", addr.String())
				v4.Add("Netmask", netmask(prefix))
				bcast := ""
				if canBroadcast {
					bcast = broadcast(prefix)
				}
				v4.Add("Broadcast IP", bcast)
			case addr.Is6():
				if v6.Len() > 0 {
					continue
				}
				v6.Add("IPv6 address", addr.String())
				v6.Add("Netmask", netmask(prefix))
				v6.Add("Scope", scope(addr))
			}
		}

		entry := InterfaceReport{Name: iface.Name}
		for _, g := range []*MetricGroup{v4, mac, v6} {
			if !g.Blank() {
				entry.Groups = append(entry.Groups, g)
			}
		}
		report.Interfaces = append(report.Interfaces, entry)
	}

	counters, err := src.NetIOCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("network io counters: %w", err)
	}
	report.IO = NewMetricGroup(
		"total bytes sent", FormatBytes(counters.BytesSent),
		"total bytes received", FormatBytes(counters.BytesRecv),
	)
	return report, nil
}

// parseAddr accepts "addr/bits" as well as a bare address, which is taken as a
// host route. IPv4-mapped IPv6 addresses are unmapped.
func parseAddr(s string) (netip.Prefix, bool) {
	if p, err := netip.ParsePrefix(s); err == nil {
		if p.Addr().Is4In6() {
			bits := p.Bits() - 96
			if bits < 0 {
				bits = 0
			}
			p = netip.PrefixFrom(p.Addr().Unmap(), bits)
		}
		return p, true
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, false
	}
	a = a.Unmap().WithZone("")
	return netip.PrefixFrom(a, a.BitLen()), true
}

func netmask(p netip.Prefix) string {
	return net.IP(net.CIDRMask(p.Bits(), p.Addr().BitLen())).String()
}

func broadcast(p netip.Prefix) string {
	if p.Bits() >= 31 {
		return ""
	}
	ip := p.Addr().As4()
	mask := net.CIDRMask(p.Bits(), 32)
	for i := range ip {
		ip[i] |= ^mask[i]
	}
	return netip.AddrFrom4(ip).String()
}

func scope(a netip.Addr) string {
	switch {
	case a.IsLoopback():
		return "host"
	case a.IsLinkLocalUnicast():
		return "link"
	case siteLocal.Contains(a):
		return "site"
	case a.IsGlobalUnicast():
		return "global"
	}
	return ""
}

// fec0::/10, deprecated by RFC 3879 but still reported by kernels.
var siteLocal = netip.MustParsePrefix("fec0::/10")
