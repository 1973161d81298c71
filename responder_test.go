package intervalreload

import (
	"encoding/binary"
	"net"
	"sync"
	"testing"
	"time"
)

var ntpEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

func toNtpTime(t time.Time) uint64 {
	nsec := uint64(t.Sub(ntpEpoch))
	sec := nsec / 1e9
	frac := (nsec - sec*1e9) << 32 / 1e9
	return sec<<32 | frac
}

// putTimeStamp writes millis with the fraction rounded up, so that
// readTimeStamp returns exactly millis.
func putTimeStamp(m []byte, index int, millis int64) {
	sec := millis/1000 + ntpEpochOffset
	frac := ((millis%1000)<<32 + 999) / 1000
	binary.BigEndian.PutUint32(m[index:], uint32(sec))
	binary.BigEndian.PutUint32(m[index+4:], uint32(frac))
}

// responder answers client requests on a loopback socket the way a
// stratum 1 server would. handle may rewrite or drop (nil) each reply.
type responder struct {
	conn     *net.UDPConn
	template []byte
	skew     time.Duration
	handle   func(req, resp []byte) []byte

	mu       sync.Mutex
	requests [][]byte
}

func newResponder(t *testing.T) *responder {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	r := &responder{conn: conn, template: newTemplate()}
	t.Cleanup(func() { conn.Close() })
	return r
}

func newTemplate() (m []byte) {
	m = make([]byte, PacketSize)
	SetVersion(m, Version)
	SetMode(m, ModeServer)
	m[StratumPos] = 1
	m[PollPos] = 4
	binary.BigEndian.PutUint32(m[12:], 0x474f4f47) // GOOG
	binary.BigEndian.PutUint64(m[ReferenceTimeStamp:], toNtpTime(time.Now()))
	return
}

func (s *responder) port() int {
	return s.conn.LocalAddr().(*net.UDPAddr).Port
}

func (s *responder) client() *Client {
	return &Client{Port: s.port()}
}

// serve must be started after the fields are set.
func (s *responder) serve() {
	go func() {
		buf := make([]byte, 512)
		for {
			n, remote, err := s.conn.ReadFromUDP(buf)
			rcvTime := time.Now().Add(s.skew)
			if err != nil {
				return
			}
			req := append([]byte(nil), buf[:n]...)
			s.mu.Lock()
			s.requests = append(s.requests, req)
			s.mu.Unlock()
			if n < PacketSize {
				continue
			}

			p := make([]byte, PacketSize)
			copy(p, s.template)
			SetVersion(p, GetVersion(req))
			copy(p[OriginTimeStamp:OriginTimeStamp+8], req[TransmitTimeStamp:TransmitTimeStamp+8])
			binary.BigEndian.PutUint64(p[ReceiveTimeStamp:], toNtpTime(rcvTime))
			binary.BigEndian.PutUint64(p[TransmitTimeStamp:], toNtpTime(time.Now().Add(s.skew)))
			if s.handle != nil {
				p = s.handle(req, p)
			}
			if p == nil {
				continue
			}
			s.conn.WriteToUDP(p, remote)
		}
	}()
}

func (s *responder) received() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.requests...)
}
