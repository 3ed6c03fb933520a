package dns

import "fmt"

// NameRecord represents records whose RDATA is a single domain name
// (NS, CNAME, PTR). The target is decoded against the full message, so
// compressed RDATA names resolve correctly.
type NameRecord struct {
	H      RRHeader
	T      RecordType
	Target string
}

// NewNSRecord creates an NS record.
func NewNSRecord(h RRHeader, target string) *NameRecord {
	return &NameRecord{H: h, T: TypeNS, Target: target}
}

// NewCNAMERecord creates a CNAME record.
func NewCNAMERecord(h RRHeader, target string) *NameRecord {
	return &NameRecord{H: h, T: TypeCNAME, Target: target}
}

// Type returns the record type (NS, CNAME, or PTR).
func (r *NameRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *NameRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *NameRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData marshals the target name, uncompressed.
func (r *NameRecord) MarshalRData() ([]byte, error) {
	return EncodeName(r.Target)
}

// ParseNameRData parses NS/CNAME/PTR RDATA. The decoded name must consume
// exactly rdlen bytes of the current stream.
func ParseNameRData(msg []byte, off *int, start, rdlen int, rt RecordType) (*NameRecord, error) {
	target, err := DecodeName(msg, off)
	if err != nil {
		return nil, err
	}
	if *off-start != rdlen {
		return nil, fmt.Errorf("%w: %s RDATA consumed %d bytes, RDLENGTH says %d",
			ErrInvalidRecord, rt, *off-start, rdlen)
	}
	return &NameRecord{T: rt, Target: target}, nil
}
