//go:build linux

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockMemory pins current and future pages into RAM so the realtime
// path cannot page-fault. Needs CAP_IPC_LOCK or a matching rlimit, so
// failure is only a warning.
func lockMemory() {
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: Can not lock memory.")
	}
}
