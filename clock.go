package intervalreload

import "time"

var processStart = time.Now()

// monotonicMillis is a tick count in milliseconds that wall clock steps
// do not move. Platform files may replace it at init.
var monotonicMillis = sinceStartMillis

func sinceStartMillis() int64 {
	return time.Since(processStart).Milliseconds()
}

type clock interface {
	WallMillis() int64
	MonotonicMillis() int64
}

type systemClock struct{}

func (systemClock) WallMillis() int64 {
	return time.Now().UnixMilli()
}

func (systemClock) MonotonicMillis() int64 {
	return monotonicMillis()
}
