//go:build linux

package crack512

import "golang.org/x/sys/unix"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// freeMemory reports the host's currently unused RAM in bytes, or 0 if it cannot be determined.
func freeMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Freeram) * uint64(info.Unit)
}
