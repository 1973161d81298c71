package intervalreload

import (
	"encoding/binary"
)

const (
	PacketSize = 48
	Port       = 123

	// Version is the NTP version written into requests.
	Version uint8 = 3
)

const (
	ModeReserved uint8 = iota
	ModeSymmetricActive
	ModeSymmetricPassive
	ModeClient
	ModeServer
	ModeBroadcast
	ModeControlMessage
	ModeReservedPrivate
)

const (
	LiVnModePos = iota
	StratumPos
	PollPos
	ClockPrecisionPos
)

const (
	ReferenceTimeStamp = iota*8 + 16
	OriginTimeStamp
	ReceiveTimeStamp
	TransmitTimeStamp
)

const (
	// seconds between 1900-01-01 and 1970-01-01, 70 years plus 17 leap days
	ntpEpochOffset int64 = (365*70 + 17) * 24 * 60 * 60

	// one unit of the 32 bit fraction is 1/fracScale seconds
	fracScale int64 = 1 << 32

	milliPerSec int64 = 1000
)

func SetMode(m []byte, mode uint8) {
	m[0] = (m[0] & 0xf8) | mode
}

func GetMode(m []byte) uint8 {
	return m[0] &^ 0xf8
}

func SetVersion(m []byte, v uint8) {
	m[0] = (m[0] & 0xc7) | v<<3
}

func GetVersion(m []byte) uint8 {
	return (m[0] >> 3) & 0x07
}

// read32 reads an unsigned big endian uint32 at index.
// The result is widened before it is returned so 0xffffffff stays positive.
func read32(m []byte, index int) int64 {
	return int64(binary.BigEndian.Uint32(m[index:]))
}

// readTimeStamp returns the NTP timestamp at index as milliseconds since
// the unix epoch.
func readTimeStamp(m []byte, index int) int64 {
	sec := read32(m, index)
	frac := read32(m, index+4)
	return (sec-ntpEpochOffset)*milliPerSec + frac*milliPerSec/fracScale
}

// writeTimeStamp stores millis (since the unix epoch) as an NTP timestamp
// at index. The lowest fraction byte is replaced by nonce.
func writeTimeStamp(m []byte, index int, millis int64, nonce byte) {
	sec := floorDiv(millis, milliPerSec)
	ms := millis - sec*milliPerSec
	sec += ntpEpochOffset

	frac := ms * fracScale / milliPerSec
	binary.BigEndian.PutUint32(m[index:], uint32(sec))
	binary.BigEndian.PutUint32(m[index+4:], uint32(frac))
	m[index+7] = nonce
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// newRequest returns a zeroed client request carrying only the
// version and mode header.
func newRequest() (m []byte) {
	m = make([]byte, PacketSize)
	SetVersion(m, Version)
	SetMode(m, ModeClient)
	return
}
