package dns

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderMarshal(t *testing.T) {
	h := Header{
		ID:      0x1314,
		Flags:   0,
		QDCount: 1,
	}

	b := h.Marshal()

	want := []byte{0x13, 0x14, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(b, want) {
		t.Errorf("unexpected encoding:\n got %x\nwant %x", b, want)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		ID:      0xABCD,
		Flags:   0x8180,
		QDCount: 1,
		ANCount: 2,
		NSCount: 3,
		ARCount: 4,
	}

	off := 0
	got, err := ParseHeader(h.Marshal(), &off)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != h {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, h)
	}
	if off != HeaderSize {
		t.Errorf("expected offset %d, got %d", HeaderSize, off)
	}
}

func TestParseHeaderTooShort(t *testing.T) {
	for n := range HeaderSize {
		off := 0
		_, err := ParseHeader(make([]byte, n), &off)
		if !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("len %d: expected ErrInvalidHeader, got %v", n, err)
		}
	}
}

func TestHeaderFlagAccessors(t *testing.T) {
	h := Header{Flags: QRFlag | AAFlag | RDFlag | RAFlag}
	if !h.IsResponse() {
		t.Error("expected QR set")
	}
	if !h.Authoritative() {
		t.Error("expected AA set")
	}
	if !h.RecursionDesired() {
		t.Error("expected RD set")
	}
	if !h.RecursionAvailable() {
		t.Error("expected RA set")
	}
	if h.Truncated() {
		t.Error("expected TC clear")
	}
}
