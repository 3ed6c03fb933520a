package dns

import "strconv"

// DNS header flags (RFC 1035 Section 4.1.1).
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA| Z|AD|CD|   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
const (
	QRFlag    uint16 = 0x8000 // Query/Response: 1 = response, 0 = query
	AAFlag    uint16 = 0x0400 // Authoritative Answer
	TCFlag    uint16 = 0x0200 // Truncation
	RDFlag    uint16 = 0x0100 // Recursion Desired
	RAFlag    uint16 = 0x0080 // Recursion Available
	RCodeMask uint16 = 0x000F // Bits 3-0: response code
)

// RecordType represents DNS resource record types (RFC 1035, RFC 3596).
//
// The type is an open 16-bit code space: values without a named constant
// still parse, format (RFC 3597 "TYPEnnn" notation), and re-encode with the
// original code intact.
type RecordType uint16

const (
	TypeA     RecordType = 1  // IPv4 address
	TypeNS    RecordType = 2  // Authoritative name server
	TypeCNAME RecordType = 5  // Canonical name (alias)
	TypeSOA   RecordType = 6  // Start of Authority
	TypePTR   RecordType = 12 // Domain name pointer (reverse DNS)
	TypeMX    RecordType = 15 // Mail exchange
	TypeTXT   RecordType = 16 // Text strings
	TypeAAAA  RecordType = 28 // IPv6 address (RFC 3596)
)

// String returns the mnemonic for known types and the RFC 3597 "TYPEnnn"
// form for everything else.
func (rt RecordType) String() string {
	switch rt {
	case TypeA:
		return "A"
	case TypeNS:
		return "NS"
	case TypeCNAME:
		return "CNAME"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	case TypeAAAA:
		return "AAAA"
	default:
		return "TYPE" + strconv.Itoa(int(rt))
	}
}

// RecordClass represents DNS resource record classes (RFC 1035).
type RecordClass uint16

const (
	ClassIN RecordClass = 1 // Internet class
)

// RCode represents DNS response codes (RFC 1035).
type RCode uint16

const (
	RCodeNoError  RCode = 0 // No error
	RCodeFormErr  RCode = 1 // Format error: query malformed
	RCodeServFail RCode = 2 // Server failure: internal error
	RCodeNXDomain RCode = 3 // Non-existent domain
	RCodeNotImp   RCode = 4 // Not implemented: unsupported query type
	RCodeRefused  RCode = 5 // Query refused by policy
)

// RCodeFromFlags extracts the response code from the header flags.
func RCodeFromFlags(flags uint16) RCode {
	return RCode(flags & RCodeMask)
}
