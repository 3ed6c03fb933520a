package dns_test

import (
	"errors"
	"testing"

	"github.com/avisser/burrow/internal/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// googleResponse is a captured answer for "google.com. IN A" with a
// compressed answer name (pointer to offset 12).
var googleResponse = []byte{
	0x85, 0x6B, 0x81, 0x80, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
	0x06, 'g', 'o', 'o', 'g', 'l', 'e', 0x03, 'c', 'o', 'm', 0x00, 0x00, 0x01, 0x00, 0x01,
	0xC0, 0x0C, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x87, 0x00, 0x04, 0x8E, 0xFA, 0xBB, 0xCE,
}

func TestParsePacket_GoogleResponse(t *testing.T) {
	p, err := dns.ParsePacket(googleResponse)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x856B), p.Header.ID)
	assert.Equal(t, uint16(0x8180), p.Header.Flags)
	assert.True(t, p.Header.IsResponse())

	require.Len(t, p.Questions, 1)
	assert.Equal(t, "google.com", p.Questions[0].Name)
	assert.Equal(t, dns.TypeA, p.Questions[0].Type)
	assert.Equal(t, uint16(dns.ClassIN), p.Questions[0].Class)

	require.Len(t, p.Answers, 1)
	ip, ok := p.Answers[0].(*dns.IPRecord)
	require.True(t, ok)
	assert.Equal(t, "google.com", ip.Header().Name)
	assert.Equal(t, uint16(dns.ClassIN), ip.Header().Class)
	assert.Equal(t, uint32(135), ip.Header().TTL)
	assert.Equal(t, "142.250.187.206", ip.Addr.String())

	assert.Empty(t, p.Authorities)
	assert.Empty(t, p.Additionals)
}

func TestParsePacket_TrailingBytesIgnored(t *testing.T) {
	msg := append(append([]byte{}, googleResponse...), 0xDE, 0xAD, 0xBE, 0xEF)

	p, err := dns.ParsePacket(msg)
	require.NoError(t, err)
	assert.Len(t, p.Answers, 1)
}

func TestParsePacket_CountOverrunsBody(t *testing.T) {
	// Claim a second answer that the body does not contain.
	msg := append([]byte{}, googleResponse...)
	msg[7] = 2 // ANCount = 2

	_, err := dns.ParsePacket(msg)
	require.Error(t, err)
	// The overrun is hit while decoding the phantom record's name.
	assert.True(t, errors.Is(err, dns.ErrInvalidName) || errors.Is(err, dns.ErrInvalidRecord))
}

func TestParsePacket_Truncated(t *testing.T) {
	for n := range len(googleResponse) {
		_, err := dns.ParsePacket(googleResponse[:n])
		require.Error(t, err, "prefix of length %d parsed successfully", n)

		typed := errors.Is(err, dns.ErrInvalidHeader) ||
			errors.Is(err, dns.ErrInvalidName) ||
			errors.Is(err, dns.ErrInvalidQuestion) ||
			errors.Is(err, dns.ErrInvalidRecord)
		assert.True(t, typed, "prefix %d: untyped error %v", n, err)
	}
}

func TestNewQuery(t *testing.T) {
	q := dns.NewQuery(0x1314, "example.com", dns.TypeA)

	assert.Equal(t, uint16(0x1314), q.Header.ID)
	assert.False(t, q.Header.RecursionDesired(), "iterative queries must not ask servers to recurse")
	require.Len(t, q.Questions, 1)
	assert.Equal(t, "example.com", q.Questions[0].Name)
	assert.Equal(t, dns.TypeA, q.Questions[0].Type)
}

func TestPacket_MarshalParseRoundTrip(t *testing.T) {
	pkt := dns.Packet{
		Header: dns.Header{ID: 0xBEEF, Flags: dns.QRFlag | dns.AAFlag},
		Questions: []dns.Question{
			{Name: "example.com", Type: dns.TypeA, Class: uint16(dns.ClassIN)},
		},
		Answers: []dns.Record{
			dns.NewARecord(dns.NewRRHeader("example.com", dns.ClassIN, 60), []byte{10, 0, 0, 1}),
		},
		Authorities: []dns.Record{
			dns.NewNSRecord(dns.NewRRHeader("example.com", dns.ClassIN, 3600), "ns1.example.com"),
		},
		Additionals: []dns.Record{
			dns.NewARecord(dns.NewRRHeader("ns1.example.com", dns.ClassIN, 3600), []byte{10, 0, 0, 53}),
		},
	}

	wire, err := pkt.Marshal()
	require.NoError(t, err)

	got, err := dns.ParsePacket(wire)
	require.NoError(t, err)

	assert.Equal(t, pkt.Header.ID, got.Header.ID)
	assert.Equal(t, pkt.Header.Flags, got.Header.Flags)
	require.Len(t, got.Questions, 1)
	require.Len(t, got.Answers, 1)
	require.Len(t, got.Authorities, 1)
	require.Len(t, got.Additionals, 1)

	ns, ok := got.Authorities[0].(*dns.NameRecord)
	require.True(t, ok)
	assert.Equal(t, "ns1.example.com", ns.Target)

	glue, ok := got.Additionals[0].(*dns.IPRecord)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.53", glue.Addr.String())
}
