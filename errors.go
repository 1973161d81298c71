package intervalreload

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

var (
	ErrInvalidTimeout = errors.New("timeout must be positive")

	ErrShortPacket      = errors.New("short ntp packet")
	ErrUnexpectedMode   = errors.New("unexpected ntp mode")
	ErrZeroTransmitTime = errors.New("zero transmit timestamp")
)

// NetworkError reports a failure to resolve the host or to use the socket.
type NetworkError struct {
	Op   string
	Host string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("sntp %s %s: %s", e.Op, e.Host, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError reports that no response arrived before the deadline.
type TimeoutError struct {
	Host  string
	After time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("sntp read %s: no response within %s", e.Host, e.After)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Timeout lets TimeoutError satisfy the timeout half of net.Error.
func (e *TimeoutError) Timeout() bool { return true }

// ProtocolError reports a response that is short or structurally invalid.
type ProtocolError struct {
	Host string
	Len  int
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("sntp response from %s (%d bytes): %s", e.Host, e.Len, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func readError(host string, timeout time.Duration, err error) error {
	var ne net.Error
	if errors.Is(err, os.ErrDeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &TimeoutError{Host: host, After: timeout, Err: err}
	}
	return &NetworkError{Op: "read", Host: host, Err: err}
}

// errorLabel maps an error from RequestTime onto a metric label.
func errorLabel(err error) string {
	var (
		te *TimeoutError
		ne *NetworkError
		pe *ProtocolError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &te):
		return "timeout"
	case errors.As(err, &ne):
		return "network"
	case errors.As(err, &pe):
		return "protocol"
	}
	return "other"
}
