//go:build linux

package intervalreload

import (
	"time"

	"golang.org/x/sys/unix"
)

// CLOCK_BOOTTIME keeps counting while the machine is suspended,
// so a refresh loop resumed after sleep measures the real elapsed time.
func init() {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		Warn.Printf("CLOCK_BOOTTIME unavailable, using process clock: %s", err)
		return
	}
	monotonicMillis = bootTimeMillis
}

func bootTimeMillis() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return sinceStartMillis()
	}
	return ts.Nano() / int64(time.Millisecond)
}
