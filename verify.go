package intervalreload

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/beevik/ntp"
)

// Verification compares one transaction of this client with one made
// through github.com/beevik/ntp against the same server.
type Verification struct {
	Host string

	Offset    time.Duration
	RoundTrip time.Duration

	LibraryOffset time.Duration
	LibraryRTT    time.Duration
}

// Difference is how far apart the two offset estimates are.
func (v Verification) Difference() time.Duration {
	return absDuration(v.Offset - v.LibraryOffset)
}

func (v Verification) String() string {
	return fmt.Sprintf("%s offset=%s rtt=%s beevik/ntp offset=%s rtt=%s diff=%s",
		v.Host, v.Offset, v.RoundTrip, v.LibraryOffset, v.LibraryRTT, v.Difference())
}

// Verify queries host:port (0 means Port) with both clients.
func Verify(host string, port int, timeout time.Duration) (v Verification, err error) {
	c := &Client{Port: port}
	r, err := c.RequestTime(host, timeout)
	if err != nil {
		return
	}
	v.Host = host
	v.Offset = r.Offset()
	v.RoundTrip = r.RoundTrip()

	addr := net.JoinHostPort(host, strconv.Itoa(c.port()))
	resp, err := ntp.QueryWithOptions(addr, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return v, fmt.Errorf("beevik/ntp query %s: %w", addr, err)
	}
	v.LibraryOffset = resp.ClockOffset
	v.LibraryRTT = resp.RTT
	return
}
