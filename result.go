package intervalreload

import "time"

// TransactionResult is the outcome of one successful SNTP exchange.
type TransactionResult struct {
	// CorrectedEpochMillis is the server corrected time, in milliseconds
	// since 1970-01-01 UTC, at the moment the response arrived.
	CorrectedEpochMillis int64
	// ReferenceMonotonicMillis is the monotonic tick count taken when
	// the response arrived.
	ReferenceMonotonicMillis int64
	RoundTripMillis          int64
}

func (r TransactionResult) Time() time.Time {
	return time.UnixMilli(r.CorrectedEpochMillis)
}

func (r TransactionResult) RoundTrip() time.Duration {
	return millisDuration(r.RoundTripMillis)
}

// NowMillis extrapolates the corrected time to the given monotonic tick.
func (r TransactionResult) NowMillis(monotonic int64) int64 {
	return r.CorrectedEpochMillis + monotonic - r.ReferenceMonotonicMillis
}

// Now returns the corrected time for the current instant.
func (r TransactionResult) Now() time.Time {
	return time.UnixMilli(r.NowMillis(monotonicMillis()))
}

// Offset is the corrected time minus the local wall clock, now.
func (r TransactionResult) Offset() time.Duration {
	return millisDuration(r.NowMillis(monotonicMillis()) - time.Now().UnixMilli())
}
