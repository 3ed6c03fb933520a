// Package dns implements the DNS wire format used by the burrow resolver:
// header, question, and resource-record encoding and decoding, including
// name-compression pointer resolution (RFC 1035 Section 4.1.4).
//
// Error Handling:
//
// Each structural unit of the wire format has its own sentinel error
// (ErrInvalidHeader, ErrInvalidName, ErrInvalidQuestion, ErrInvalidRecord).
// Parse functions wrap the sentinel with context via fmt.Errorf("...: %w"),
// so callers can match the failure kind with errors.Is while still getting
// a useful message. A failure anywhere in a packet parse aborts the whole
// parse and propagates the sentinel unchanged.
package dns

import "errors"

var (
	// ErrInvalidHeader indicates a DNS message shorter than the fixed
	// 12-byte header.
	ErrInvalidHeader = errors.New("dns: invalid header")

	// ErrInvalidName indicates a malformed name encoding: truncated labels,
	// reserved label-type bits, non-ASCII label content, an out-of-bounds
	// compression pointer, or a pointer loop.
	ErrInvalidName = errors.New("dns: invalid name")

	// ErrInvalidQuestion indicates a question section entry with fewer
	// than 4 bytes following its name.
	ErrInvalidQuestion = errors.New("dns: invalid question")

	// ErrInvalidRecord indicates a resource record whose fixed fields or
	// RDATA cannot be satisfied by the remaining message bytes.
	ErrInvalidRecord = errors.New("dns: invalid record")
)
