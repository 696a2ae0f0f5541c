//go:build unix

package sysinfo

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// uname reads the kernel identity fields in one system call.
func uname(_ context.Context) (HostInfo, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return HostInfo{}, fmt.Errorf("uname: %w", err)
	}
	return HostInfo{
		System:  unix.ByteSliceToString(u.Sysname[:]),
		Node:    unix.ByteSliceToString(u.Nodename[:]),
		Release: unix.ByteSliceToString(u.Release[:]),
		Version: unix.ByteSliceToString(u.Version[:]),
		Machine: unix.ByteSliceToString(u.Machine[:]),
	}, nil
}
