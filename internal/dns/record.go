package dns

import (
	"encoding/binary"
	"fmt"

	"github.com/avisser/burrow/internal/helpers"
)

// RRHeader contains the metadata common to all resource records. This is
// distinct from Header, which is the DNS message header.
type RRHeader struct {
	Name  string
	Class uint16
	TTL   uint32
}

// NewRRHeader creates a new resource record header.
func NewRRHeader(name string, class RecordClass, ttl uint32) RRHeader {
	return RRHeader{Name: name, Class: uint16(class), TTL: ttl}
}

// Record is the interface for DNS resource records. Each supported record
// shape has an explicit type (IPRecord, NameRecord, OpaqueRecord) rather
// than a generic struct; unknown types round-trip as OpaqueRecord.
type Record interface {
	// Type returns the DNS record type.
	Type() RecordType

	// Header returns the record's metadata.
	Header() RRHeader

	// SetHeader sets the record's metadata.
	SetHeader(h RRHeader)

	// MarshalRData marshals the record-specific data (RDATA) to wire format.
	MarshalRData() ([]byte, error)
}

// ParseRecord parses a resource record from wire format, advancing *off
// past it. After the name it requires 10 fixed bytes (type, class, TTL,
// RDLENGTH) followed by exactly RDLENGTH data bytes; a shortfall fails
// with ErrInvalidRecord.
func ParseRecord(msg []byte, off *int) (Record, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return nil, err
	}
	if *off+10 > len(msg) {
		return nil, fmt.Errorf("%w: truncated fixed fields for %q", ErrInvalidRecord, name)
	}
	rt := RecordType(binary.BigEndian.Uint16(msg[*off : *off+2]))
	class := binary.BigEndian.Uint16(msg[*off+2 : *off+4])
	ttl := binary.BigEndian.Uint32(msg[*off+4 : *off+8])
	rdlen := int(binary.BigEndian.Uint16(msg[*off+8 : *off+10]))
	*off += 10

	start := *off
	if start+rdlen > len(msg) {
		return nil, fmt.Errorf("%w: RDATA wants %d bytes, %d remain", ErrInvalidRecord, rdlen, len(msg)-start)
	}

	r, err := parseRData(rt, msg, off, start, rdlen)
	if err != nil {
		return nil, err
	}
	r.SetHeader(RRHeader{Name: name, Class: class, TTL: ttl})
	return r, nil
}

// parseRData dispatches RDATA parsing on record type.
//
// Only the shapes the resolver interprets get typed parsing: A/AAAA
// addresses and the name-valued NS/CNAME/PTR records. Everything else
// (MX, TXT, SOA, unknown codes) passes through opaquely.
func parseRData(rt RecordType, msg []byte, off *int, start, rdlen int) (Record, error) {
	switch rt {
	case TypeA, TypeAAAA:
		return ParseIPRData(msg, off, rt, rdlen)
	case TypeNS, TypeCNAME, TypePTR:
		return ParseNameRData(msg, off, start, rdlen, rt)
	default:
		return ParseOpaqueRData(msg, off, rdlen, rt)
	}
}

// MarshalRecord converts a Record to wire-format bytes: encoded name,
// 10 fixed bytes, then the RDATA.
func MarshalRecord(r Record) ([]byte, error) {
	rdata, err := r.MarshalRData()
	if err != nil {
		return nil, err
	}
	if len(rdata) > 65535 {
		return nil, fmt.Errorf("%w: RDATA too large (%d bytes)", ErrInvalidRecord, len(rdata))
	}

	h := r.Header()
	nameWire, err := EncodeName(h.Name)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(nameWire)+10+len(rdata))
	out = append(out, nameWire...)
	fixed := make([]byte, 10)
	binary.BigEndian.PutUint16(fixed[0:2], uint16(r.Type()))
	binary.BigEndian.PutUint16(fixed[2:4], h.Class)
	binary.BigEndian.PutUint32(fixed[4:8], h.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], helpers.ClampIntToUint16(len(rdata)))
	out = append(out, fixed...)
	out = append(out, rdata...)
	return out, nil
}
