package dns

import "github.com/avisser/burrow/internal/helpers"

// Limits applied while parsing untrusted responses. The header counts are
// otherwise trusted: parsing reads exactly as many entries as the counts
// claim and silently ignores any trailing bytes.
const (
	MaxMessageSize = 4096 // largest response datagram we accept
	maxPreallocRR  = 64   // cap on per-section slice preallocation
	maxPreallocQD  = 4
)

// Packet represents a complete DNS message (RFC 1035 Section 4.1): the
// header plus the question, answer, authority, and additional sections in
// that fixed wire order.
type Packet struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// NewQuery builds a single-question query packet. The recursion-desired
// flag is deliberately not set: the resolver walks the delegation chain
// itself instead of asking the server to recurse.
func NewQuery(id uint16, name string, rt RecordType) Packet {
	return Packet{
		Header: Header{ID: id},
		Questions: []Question{
			{Name: name, Type: rt, Class: uint16(ClassIN)},
		},
	}
}

// Marshal serializes the packet to wire format. Section counts in the
// emitted header are recomputed from the slice lengths.
func (p Packet) Marshal() ([]byte, error) {
	h := Header{
		ID:      p.Header.ID,
		Flags:   p.Header.Flags,
		QDCount: helpers.ClampIntToUint16(len(p.Questions)),
		ANCount: helpers.ClampIntToUint16(len(p.Answers)),
		NSCount: helpers.ClampIntToUint16(len(p.Authorities)),
		ARCount: helpers.ClampIntToUint16(len(p.Additionals)),
	}

	estimated := HeaderSize + len(p.Questions)*32 + (len(p.Answers)+len(p.Authorities)+len(p.Additionals))*64
	out := make([]byte, 0, estimated)
	out = append(out, h.Marshal()...)

	for _, q := range p.Questions {
		qb, err := q.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, qb...)
	}
	for _, section := range [][]Record{p.Answers, p.Authorities, p.Additionals} {
		for _, r := range section {
			rb, err := MarshalRecord(r)
			if err != nil {
				return nil, err
			}
			out = append(out, rb...)
		}
	}
	return out, nil
}

// ParsePacket parses a complete DNS message: header, then exactly QDCount
// questions and ANCount, NSCount, ARCount records in that order, threading
// one offset cursor through every step. The first failure aborts the whole
// parse and propagates its error kind unchanged. Trailing bytes after the
// last additional record are discarded.
func ParsePacket(msg []byte) (Packet, error) {
	off := 0
	h, err := ParseHeader(msg, &off)
	if err != nil {
		return Packet{}, err
	}

	p := Packet{Header: h}

	// Cap preallocation so a hostile header can't force a huge allocation
	// from a small packet.
	p.Questions = make([]Question, 0, min(int(h.QDCount), maxPreallocQD))
	for range h.QDCount {
		q, err := ParseQuestion(msg, &off)
		if err != nil {
			return Packet{}, err
		}
		p.Questions = append(p.Questions, q)
	}

	sections := []struct {
		count uint16
		dst   *[]Record
	}{
		{h.ANCount, &p.Answers},
		{h.NSCount, &p.Authorities},
		{h.ARCount, &p.Additionals},
	}
	for _, s := range sections {
		*s.dst = make([]Record, 0, min(int(s.count), maxPreallocRR))
		for range s.count {
			r, err := ParseRecord(msg, &off)
			if err != nil {
				return Packet{}, err
			}
			*s.dst = append(*s.dst, r)
		}
	}
	return p, nil
}
