package dns

import (
	"fmt"
	"net"
)

// IPRecord represents an A or AAAA record carrying an IP address. The four
// octets of an A record are kept in wire order, so a.b.c.d survives parse
// and format exactly.
type IPRecord struct {
	H    RRHeader
	T    RecordType
	Addr net.IP
}

// NewARecord creates an A record for an IPv4 address.
func NewARecord(h RRHeader, addr net.IP) *IPRecord {
	return &IPRecord{H: h, T: TypeA, Addr: addr}
}

// Type returns TypeA or TypeAAAA.
func (r *IPRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *IPRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *IPRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData marshals the address: 4 bytes for A, 16 for AAAA.
func (r *IPRecord) MarshalRData() ([]byte, error) {
	if r.T == TypeA {
		if ip4 := r.Addr.To4(); ip4 != nil {
			return []byte(ip4), nil
		}
		return nil, fmt.Errorf("%w: A record with non-IPv4 address %v", ErrInvalidRecord, r.Addr)
	}
	if ip6 := r.Addr.To16(); ip6 != nil {
		return []byte(ip6), nil
	}
	return nil, fmt.Errorf("%w: invalid IP address", ErrInvalidRecord)
}

// ParseIPRData parses A or AAAA RDATA. A records must be exactly 4 bytes
// and AAAA records exactly 16 (RFC 1035 §3.4.1, RFC 3596 §2.2).
func ParseIPRData(msg []byte, off *int, rt RecordType, rdlen int) (*IPRecord, error) {
	want := 4
	if rt == TypeAAAA {
		want = 16
	}
	if rdlen != want {
		return nil, fmt.Errorf("%w: %s RDATA must be %d bytes, got %d", ErrInvalidRecord, rt, want, rdlen)
	}
	b := make([]byte, rdlen)
	copy(b, msg[*off:*off+rdlen])
	*off += rdlen
	return &IPRecord{T: rt, Addr: net.IP(b)}, nil
}
