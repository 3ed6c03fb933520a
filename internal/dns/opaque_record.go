package dns

// OpaqueRecord carries the raw RDATA of any record type the resolver does
// not interpret, including unknown type codes. The bytes re-encode exactly
// as received.
type OpaqueRecord struct {
	H    RRHeader
	T    RecordType
	Data []byte
}

// NewOpaqueRecord creates an opaque record from raw RDATA bytes.
func NewOpaqueRecord(h RRHeader, rt RecordType, data []byte) *OpaqueRecord {
	return &OpaqueRecord{H: h, T: rt, Data: data}
}

// Type returns the record type.
func (r *OpaqueRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *OpaqueRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *OpaqueRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData returns the raw RDATA unchanged.
func (r *OpaqueRecord) MarshalRData() ([]byte, error) {
	return r.Data, nil
}

// ParseOpaqueRData copies rdlen raw bytes. Bounds were checked by
// ParseRecord before dispatch.
func ParseOpaqueRData(msg []byte, off *int, rdlen int, rt RecordType) (*OpaqueRecord, error) {
	b := make([]byte, rdlen)
	copy(b, msg[*off:*off+rdlen])
	*off += rdlen
	return &OpaqueRecord{T: rt, Data: b}, nil
}
