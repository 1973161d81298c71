package intervalreload

import (
	"math/rand"
	"net"
	"strconv"
	"time"
)

// Client performs single SNTP transactions. The zero value is ready to use
// and a Client may be shared, every call owns its own socket.
type Client struct {
	// Port overrides the server port, 0 means Port.
	Port int

	clock clock
	nonce func() byte
}

func NewClient() *Client {
	return &Client{}
}

// RequestTime queries host once with a timeout given in milliseconds.
func RequestTime(host string, timeoutMillis int) (TransactionResult, error) {
	return NewClient().RequestTime(host, millisDuration(int64(timeoutMillis)))
}

// RequestTime sends one request to host and waits at most timeout for the
// answer. Transaction failures are *NetworkError, *TimeoutError or
// *ProtocolError. A non-positive timeout returns ErrInvalidTimeout before
// any socket is opened. No retry is made.
func (c *Client) RequestTime(host string, timeout time.Duration) (r TransactionResult, err error) {
	if timeout <= 0 {
		err = ErrInvalidTimeout
		return
	}

	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(c.port())))
	if err != nil {
		return r, &NetworkError{Op: "resolve", Host: host, Err: err}
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return r, &NetworkError{Op: "dial", Host: host, Err: err}
	}
	defer conn.Close()

	clk := c.getClock()
	req := newRequest()

	requestWall := clk.WallMillis()
	requestMono := clk.MonotonicMillis()
	writeTimeStamp(req, TransmitTimeStamp, requestWall, c.getNonce())

	if _, err = conn.Write(req); err != nil {
		return r, &NetworkError{Op: "write", Host: host, Err: err}
	}

	if err = conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return r, &NetworkError{Op: "deadline", Host: host, Err: err}
	}

	resp := make([]byte, PacketSize)
	n, err := conn.Read(resp)
	responseMono := clk.MonotonicMillis()
	if err != nil {
		return r, readError(host, timeout, err)
	}

	if err = validResponse(resp[:n]); err != nil {
		return r, &ProtocolError{Host: host, Len: n, Err: err}
	}

	// monotonic elapsed time applied to the request wall clock, a second
	// wall clock read could be stepped in between
	responseWall := requestWall + (responseMono - requestMono)

	originate := readTimeStamp(resp, OriginTimeStamp)
	receive := readTimeStamp(resp, ReceiveTimeStamp)
	transmit := readTimeStamp(resp, TransmitTimeStamp)

	offset := clockOffsetMillis(originate, receive, transmit, responseWall)
	r = TransactionResult{
		CorrectedEpochMillis:     responseWall + offset,
		ReferenceMonotonicMillis: responseMono,
		RoundTripMillis:          roundTripMillis(requestMono, responseMono, receive, transmit),
	}

	if debug {
		Info.Printf("%s -> originate=%d receive=%d transmit=%d offset=%dms rtt=%dms",
			host, originate, receive, transmit, offset, r.RoundTripMillis)
	}
	return
}

func validResponse(p []byte) error {
	if len(p) < PacketSize {
		return ErrShortPacket
	}
	if mode := GetMode(p); mode != ModeServer {
		return ErrUnexpectedMode
	}
	if read32(p, TransmitTimeStamp) == 0 && read32(p, TransmitTimeStamp+4) == 0 {
		return ErrZeroTransmitTime
	}
	return nil
}

func (c *Client) port() int {
	if c.Port == 0 {
		return Port
	}
	return c.Port
}

func (c *Client) getClock() clock {
	if c.clock == nil {
		return systemClock{}
	}
	return c.clock
}

// the low fraction byte of the transmit timestamp is random so that
// identical requests from one host are distinguishable
func (c *Client) getNonce() byte {
	if c.nonce == nil {
		return byte(rand.Intn(256))
	}
	return c.nonce()
}
