package dns

import (
	"fmt"
	"strings"
)

// Name encoding limits (RFC 1035 Section 2.3.4).
const (
	maxLabelLen    = 63  // label length must fit in 6 bits
	maxNameLen     = 255 // total encoded name including terminator
	maxPointerHops = 16  // compression pointer indirections per name
)

// NormalizeName lowercases a domain name and strips trailing dots.
// DNS names compare case-insensitively per RFC 1035 Section 3.1.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

// EncodeName encodes a dotted domain name to wire format: each label is
// prefixed by its length byte and the sequence ends with a zero byte.
//
//	"www.google.com" → [3]www[6]google[3]com[0]
//
// Encoding never emits compression pointers; outgoing queries are short
// enough that full label sequences are always used. Labels must be 1..63
// ASCII bytes and the encoded form at most 255 bytes.
func EncodeName(domain string) ([]byte, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: empty domain name", ErrInvalidName)
	}
	domain = trimDot(domain)
	if domain == "" {
		return []byte{0}, nil // root
	}

	out := make([]byte, 0, len(domain)+2)
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return nil, fmt.Errorf("%w: empty label in %q", ErrInvalidName, domain)
		}
		if len(label) > maxLabelLen {
			return nil, fmt.Errorf("%w: label %q exceeds %d bytes", ErrInvalidName, label, maxLabelLen)
		}
		for i := range len(label) {
			if label[i] > 0x7F {
				return nil, fmt.Errorf("%w: non-ASCII byte in label %q", ErrInvalidName, label)
			}
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0)

	if len(out) > maxNameLen {
		return nil, fmt.Errorf("%w: encoded name is %d bytes, max %d", ErrInvalidName, len(out), maxNameLen)
	}
	return out, nil
}

// DecodeName decodes a possibly-compressed name from msg starting at *off.
//
// Each step inspects the top two bits of the leading byte:
//
//	00  literal label; the low 6 bits are the length, content follows
//	11  2-byte compression pointer; the low 14 bits are an absolute byte
//	    offset from the start of the message
//	01, 10  reserved encodings → ErrInvalidName
//
// A pointer is always the final element of a name: decoding follows the
// redirection but the cursor is left immediately after the 2 pointer bytes
// in the original stream. Pointer chains are bounded by a visited-offset
// set and a hop limit so that self-referential packets fail with
// ErrInvalidName instead of recursing without bound.
//
// Returns the ASCII, dot-separated name without a trailing dot and advances
// *off past the encoded name.
func DecodeName(msg []byte, off *int) (string, error) {
	return decodeName(msg, off, 0, map[int]struct{}{})
}

func decodeName(msg []byte, off *int, hops int, visited map[int]struct{}) (string, error) {
	if hops > maxPointerHops {
		return "", fmt.Errorf("%w: too many compression pointer indirections", ErrInvalidName)
	}
	if *off < 0 || *off >= len(msg) {
		return "", fmt.Errorf("%w: name starts past end of message", ErrInvalidName)
	}

	labels := make([]string, 0, 4)
	for {
		if *off >= len(msg) {
			return "", fmt.Errorf("%w: truncated label sequence", ErrInvalidName)
		}
		b := msg[*off]
		*off++

		switch {
		case b == 0:
			// terminator
			return strings.Join(labels, "."), nil

		case b&0xC0 == 0xC0:
			// Compression pointer: decode the target name, then stop.
			// The target never extends the current label sequence.
			target, err := followPointer(msg, off, b, hops, visited)
			if err != nil {
				return "", err
			}
			if target != "" {
				labels = append(labels, target)
			}
			return strings.Join(labels, "."), nil

		case b&0xC0 != 0:
			// 01 and 10 label types are reserved (RFC 1035).
			return "", fmt.Errorf("%w: reserved label type bits 0x%02x", ErrInvalidName, b&0xC0)

		default:
			label, err := readLabel(msg, off, int(b))
			if err != nil {
				return "", err
			}
			labels = append(labels, label)
		}
	}
}

// followPointer resolves a 14-bit compression pointer and decodes the name
// at its target offset. The pointer value is the low 6 bits of firstByte
// combined with the following byte, an offset from the start of the message.
func followPointer(msg []byte, off *int, firstByte byte, hops int, visited map[int]struct{}) (string, error) {
	if *off >= len(msg) {
		return "", fmt.Errorf("%w: truncated compression pointer", ErrInvalidName)
	}
	ptr := int(firstByte&0x3F)<<8 | int(msg[*off])
	*off++

	if ptr >= len(msg) {
		return "", fmt.Errorf("%w: compression pointer target %d out of bounds", ErrInvalidName, ptr)
	}
	if _, seen := visited[ptr]; seen {
		return "", fmt.Errorf("%w: compression pointer loop at offset %d", ErrInvalidName, ptr)
	}
	visited[ptr] = struct{}{}

	targetOff := ptr
	return decodeName(msg, &targetOff, hops+1, visited)
}

// readLabel reads a single label of the given length and validates that the
// content is ASCII text.
func readLabel(msg []byte, off *int, length int) (string, error) {
	if *off+length > len(msg) {
		return "", fmt.Errorf("%w: truncated label", ErrInvalidName)
	}
	label := msg[*off : *off+length]
	*off += length

	for _, c := range label {
		if c > 0x7F {
			return "", fmt.Errorf("%w: non-ASCII byte 0x%02x in label", ErrInvalidName, c)
		}
	}
	return string(label), nil
}

// trimDot removes all trailing dots.
func trimDot(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
