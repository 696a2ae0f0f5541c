// Package report prints the system overview: a banner followed by the
// identity, boot time, CPU, memory, disk and network sections, in that order.
package report

import (
	"context"
	"io"
	"os"
	"time"

	"sysoverview/ascii"
	"sysoverview/sysinfo"
)

// Attribution is the closing line of every report.
const Attribution = "~ Generated by sysoverview"

// Options controls where and how the report is written.
type Options struct {
	// Out receives the report. Nil means os.Stdout.
	Out io.Writer

	Color ColorMode

	// Interval is the CPU utilization sampling window.
	Interval time.Duration
}

// DefaultOptions writes to stdout, colors on terminals and samples the CPU for one second.
func DefaultOptions() Options {
	return Options{
		Out:      os.Stdout,
		Color:    ColorAuto,
		Interval: time.Second,
	}
}

type section func(ctx context.Context, src sysinfo.Source, r *Renderer) error

// Run collects every section from src and prints it as soon as it is ready.
// The first collection error stops the report; what was already printed stays.
func Run(ctx context.Context, src sysinfo.Source, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	r := NewRenderer(out, opts.Color)

	sections := []section{
		identitySection,
		bootSection,
		cpuSection(opts.Interval),
		memorySection,
		diskSection,
		networkSection,
	}

	r.Banner(ascii.GetBanner())
	r.Separator()
	for _, s := range sections {
		if err := s(ctx, src, r); err != nil {
			return err
		}
		r.Separator()
		if err := r.Err(); err != nil {
			return err
		}
	}
	r.Attribution(Attribution)
	return r.Err()
}

func identitySection(ctx context.Context, src sysinfo.Source, r *Renderer) error {
	r.Header("SYSTEM INFORMATION")
	g, err := sysinfo.CollectIdentity(ctx, src)
	if err != nil {
		return err
	}
	r.Group(g)
	return nil
}

func bootSection(ctx context.Context, src sysinfo.Source, r *Renderer) error {
	bt, err := sysinfo.CollectBootTime(ctx, src)
	if err != nil {
		return err
	}
	r.HeaderValue("BOOT TIME", bt.String())
	return nil
}

func cpuSection(interval time.Duration) section {
	return func(ctx context.Context, src sysinfo.Source, r *Renderer) error {
		r.Header("CPU INFORMATION")
		g, err := sysinfo.CollectCPU(ctx, src, interval)
		if err != nil {
			return err
		}
		r.Group(g)
		return nil
	}
}

func memorySection(ctx context.Context, src sysinfo.Source, r *Renderer) error {
	r.Header("MEMORY USAGE")
	m, err := sysinfo.CollectMemory(ctx, src)
	if err != nil {
		return err
	}
	r.Group(m.Physical)
	r.Subsection("SWAP Memory")
	r.Group(m.Swap)
	return nil
}

func diskSection(ctx context.Context, src sysinfo.Source, r *Renderer) error {
	r.Header("DISK USAGE")
	r.Subsection("Partitions")
	d, err := sysinfo.CollectDisk(ctx, src)
	if err != nil {
		return err
	}
	for _, p := range d.Partitions {
		r.Item("Device", 17, p.Device)
		// Denied partitions keep their heading only.
		r.Group(p.Stats)
	}
	r.Subsection("Disk I/O")
	r.Group(d.IO)
	return nil
}

func networkSection(ctx context.Context, src sysinfo.Source, r *Renderer) error {
	r.Header("NETWORK INFORMATION")
	r.Subsection("Network Interfaces")
	n, err := sysinfo.CollectNetwork(ctx, src)
	if err != nil {
		return err
	}
	for _, iface := range n.Interfaces {
		r.Item("Interface", 0, iface.Name)
		for _, g := range iface.Groups {
			r.Group(g)
		}
	}
	r.Subsection("I/O Statistics")
	r.Group(n.IO)
	return nil
}
