package dns

import (
	"encoding/binary"
	"fmt"
)

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  string
	Type  RecordType
	Class uint16
}

// Marshal serializes the question: encoded name, then 2-byte type and
// 2-byte class, big-endian.
func (q Question) Marshal() ([]byte, error) {
	name, err := EncodeName(q.Name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, len(name)+4)
	copy(b, name)
	binary.BigEndian.PutUint16(b[len(name):], uint16(q.Type))
	binary.BigEndian.PutUint16(b[len(name)+2:], q.Class)
	return b, nil
}

// ParseQuestion parses a question from the message at the given offset,
// advancing *off past it. Name decode failures keep their own error kind;
// missing type/class bytes fail with ErrInvalidQuestion.
func ParseQuestion(msg []byte, off *int) (Question, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return Question{}, err
	}
	if *off+4 > len(msg) {
		return Question{}, fmt.Errorf("%w: truncated type/class for %q", ErrInvalidQuestion, name)
	}
	q := Question{
		Name:  name,
		Type:  RecordType(binary.BigEndian.Uint16(msg[*off : *off+2])),
		Class: binary.BigEndian.Uint16(msg[*off+2 : *off+4]),
	}
	*off += 4
	return q, nil
}
