package intervalreload

import "time"

func absDuration(a time.Duration) time.Duration {
	if a < 0 {
		return -a
	}
	return a
}

func millisDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
