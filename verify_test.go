package intervalreload

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestVerify(t *testing.T) {
	s := newResponder(t)
	s.skew = 5 * time.Second
	s.serve()

	v, err := Verify("127.0.0.1", s.port(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if absDuration(v.Offset-s.skew) > 50*time.Millisecond {
		t.Errorf("offset expecting~=%s got=%s", s.skew, v.Offset)
	}
	if absDuration(v.LibraryOffset-s.skew) > 50*time.Millisecond {
		t.Errorf("library offset expecting~=%s got=%s", s.skew, v.LibraryOffset)
	}
	if v.Difference() > 50*time.Millisecond {
		t.Errorf("difference got=%s", v.Difference())
	}
	if !strings.Contains(v.String(), "127.0.0.1") {
		t.Error(v.String())
	}
	if n := len(s.received()); n != 2 {
		t.Errorf("expecting two requests got=%d", n)
	}
}

func TestVerifyClientError(t *testing.T) {
	s := newResponder(t)
	s.handle = func(req, p []byte) []byte { return p[:1] }
	s.serve()

	_, err := Verify("127.0.0.1", s.port(), time.Second)
	if !errors.Is(err, ErrShortPacket) {
		t.Errorf("expecting=%v got=%v", ErrShortPacket, err)
	}
}

func TestVerificationDifference(t *testing.T) {
	v := Verification{Offset: 3 * time.Millisecond, LibraryOffset: 10 * time.Millisecond}
	if v.Difference() != 7*time.Millisecond {
		t.Errorf("expecting=7ms got=%s", v.Difference())
	}
}
