package dns_test

import (
	"net"
	"testing"

	"github.com/avisser/burrow/internal/dns"
	miekg "github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cross-validation against github.com/miekg/dns: packets produced by the
// reference implementation must decode with our codec and vice versa. miekg
// compresses owner names when packing, which exercises our pointer decoding
// against independently generated messages.

func TestInterop_ParseMiekgResponse(t *testing.T) {
	m := new(miekg.Msg)
	m.SetQuestion("www.example.com.", miekg.TypeA)
	m.Response = true
	m.Answer = []miekg.RR{
		&miekg.A{
			Hdr: miekg.RR_Header{Name: "www.example.com.", Rrtype: miekg.TypeA, Class: miekg.ClassINET, Ttl: 300},
			A:   net.IPv4(93, 184, 216, 34),
		},
	}
	m.Ns = []miekg.RR{
		&miekg.NS{
			Hdr: miekg.RR_Header{Name: "example.com.", Rrtype: miekg.TypeNS, Class: miekg.ClassINET, Ttl: 86400},
			Ns:  "ns1.example.com.",
		},
	}
	m.Extra = []miekg.RR{
		&miekg.A{
			Hdr: miekg.RR_Header{Name: "ns1.example.com.", Rrtype: miekg.TypeA, Class: miekg.ClassINET, Ttl: 86400},
			A:   net.IPv4(192, 0, 2, 53),
		},
	}
	m.Compress = true

	wire, err := m.Pack()
	require.NoError(t, err)

	p, err := dns.ParsePacket(wire)
	require.NoError(t, err)

	require.Len(t, p.Questions, 1)
	assert.Equal(t, "www.example.com", p.Questions[0].Name)

	require.Len(t, p.Answers, 1)
	a, ok := p.Answers[0].(*dns.IPRecord)
	require.True(t, ok)
	assert.Equal(t, "www.example.com", a.Header().Name)
	assert.Equal(t, "93.184.216.34", a.Addr.String())

	require.Len(t, p.Authorities, 1)
	ns, ok := p.Authorities[0].(*dns.NameRecord)
	require.True(t, ok)
	assert.Equal(t, "ns1.example.com", ns.Target)

	require.Len(t, p.Additionals, 1)
	glue, ok := p.Additionals[0].(*dns.IPRecord)
	require.True(t, ok)
	assert.Equal(t, "192.0.2.53", glue.Addr.String())
}

func TestInterop_MiekgParsesOurQuery(t *testing.T) {
	q := dns.NewQuery(0x4242, "www.example.com", dns.TypeA)
	wire, err := q.Marshal()
	require.NoError(t, err)

	m := new(miekg.Msg)
	require.NoError(t, m.Unpack(wire))

	assert.Equal(t, uint16(0x4242), m.Id)
	assert.False(t, m.RecursionDesired)
	require.Len(t, m.Question, 1)
	assert.Equal(t, "www.example.com.", m.Question[0].Name)
	assert.Equal(t, miekg.TypeA, m.Question[0].Qtype)
	assert.Equal(t, uint16(miekg.ClassINET), m.Question[0].Qclass)
}

func TestInterop_MiekgParsesOurResponse(t *testing.T) {
	pkt := dns.Packet{
		Header: dns.Header{ID: 0x0102, Flags: dns.QRFlag},
		Questions: []dns.Question{
			{Name: "example.org", Type: dns.TypeA, Class: uint16(dns.ClassIN)},
		},
		Answers: []dns.Record{
			dns.NewARecord(dns.NewRRHeader("example.org", dns.ClassIN, 120), net.IPv4(198, 51, 100, 7)),
		},
	}
	wire, err := pkt.Marshal()
	require.NoError(t, err)

	m := new(miekg.Msg)
	require.NoError(t, m.Unpack(wire))

	require.Len(t, m.Answer, 1)
	a, ok := m.Answer[0].(*miekg.A)
	require.True(t, ok)
	assert.Equal(t, "example.org.", a.Hdr.Name)
	assert.Equal(t, uint32(120), a.Hdr.Ttl)
	assert.Equal(t, "198.51.100.7", a.A.String())
}
