package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	b, err := EncodeName("www.google.com")
	require.NoError(t, err)
	exp := []byte{
		0x03, 'w', 'w', 'w',
		0x06, 'g', 'o', 'o', 'g', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
	}
	assert.Equal(t, exp, b)
}

func TestEncodeName_Root(t *testing.T) {
	b, err := EncodeName(".")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)
}

func TestEncodeName_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		domain string
	}{
		{"empty", ""},
		{"empty label", "foo..com"},
		{"label too long", strings.Repeat("a", 64) + ".com"},
		{"non-ascii", "héllo.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeName(tt.domain)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestDecodeName_Uncompressed(t *testing.T) {
	enc, err := EncodeName("www.google.com")
	require.NoError(t, err)

	off := 0
	n, err := DecodeName(enc, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", n)
	assert.Equal(t, len(enc), off, "cursor should sit after the terminator")
}

func TestDecodeName_Pointer(t *testing.T) {
	// "google.com" label sequence at offset 2, then a pointer to it at a
	// later offset. Decoding the pointer must yield "google.com" with the
	// cursor immediately after the 2 pointer bytes.
	msg := []byte{
		0xFF, 0xFF, // filler
		0x06, 'g', 'o', 'o', 'g', 'l', 'e', 0x03, 'c', 'o', 'm', 0x00, // offset 2
		0xC0, 0x02, // pointer to offset 2
		0xAA, // trailing byte that must not be consumed
	}

	off := 14
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "google.com", n)
	assert.Equal(t, 16, off, "cursor should sit right after the pointer")
}

func TestDecodeName_LabelThenPointer(t *testing.T) {
	msg := []byte{
		0x06, 'g', 'o', 'o', 'g', 'l', 'e', 0x03, 'c', 'o', 'm', 0x00, // offset 0
		0x03, 'w', 'w', 'w', 0xC0, 0x00, // offset 12: www + pointer to google.com
	}

	off := 12
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", n)
	assert.Equal(t, len(msg), off)
}

func TestDecodeName_PointerLoop(t *testing.T) {
	// Pointer chain 0 -> 2 -> 0: must fail, not recurse forever.
	msg := []byte{0xC0, 0x02, 0xC0, 0x00}
	off := 0
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestDecodeName_PointerSelfReference(t *testing.T) {
	msg := []byte{0xC0, 0x00}
	off := 0
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestDecodeName_PointerOutOfBounds(t *testing.T) {
	msg := []byte{0xC0, 0x7F}
	off := 0
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestDecodeName_ReservedLabelBits(t *testing.T) {
	for _, lead := range []byte{0x40, 0x80} {
		msg := []byte{lead, 'x', 0x00}
		off := 0
		_, err := DecodeName(msg, &off)
		assert.ErrorIs(t, err, ErrInvalidName, "lead byte 0x%02x", lead)
	}
}

func TestDecodeName_Truncated(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
	}{
		{"no terminator", []byte{0x03, 'w', 'w', 'w'}},
		{"label shorter than length", []byte{0x05, 'a', 'b'}},
		{"empty message", []byte{}},
		{"lone pointer byte", []byte{0xC0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := 0
			_, err := DecodeName(tt.msg, &off)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestDecodeName_NonASCIILabel(t *testing.T) {
	msg := []byte{0x02, 0xC3, 0xA9, 0x00}
	off := 0
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestNameRoundTrip(t *testing.T) {
	names := []string{
		"a",
		"example.com",
		"www.sub.example.co.uk",
		"xn--nxasmq6b.example",
	}
	for _, name := range names {
		enc, err := EncodeName(name)
		require.NoError(t, err, name)

		off := 0
		dec, err := DecodeName(enc, &off)
		require.NoError(t, err, name)
		assert.Equal(t, name, dec)
		assert.Equal(t, len(enc), off)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "example.com", NormalizeName("EXAMPLE.COM."))
	assert.Equal(t, "example.com", NormalizeName("example.com"))
}
