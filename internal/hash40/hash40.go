// Package hash40 implements the 40-bit hash keys used throughout parameter
// documents, plus the label corpus and resolver that map between hashes and
// their human-readable names.
package hash40

import (
	"fmt"
	"hash/crc32"
	"strings"
)

// Hash40 is a 40-bit key: the low 32 bits are the CRC32 (IEEE) of the label,
// the next 8 bits are the label's byte length. Only the low 40 bits are
// significant.
type Hash40 uint64

// Mask covers the significant bits of a Hash40.
const Mask = (1 << 40) - 1

// FromLabel derives the hash of an arbitrary label string.
func FromLabel(label string) Hash40 {
	crc := crc32.ChecksumIEEE([]byte(label))
	return Hash40(uint64(len(label)&0xff)<<32 | uint64(crc))
}

// ParseHex parses a literal hash written with the hex prefix convention,
// e.g. "0x112f3ebacd". The input must begin with "0x" and contain only hex
// digits that fit in 40 bits.
func ParseHex(text string) (Hash40, error) {
	body, ok := strings.CutPrefix(text, "0x")
	if !ok {
		return 0, fmt.Errorf("hash literal %q must begin with 0x", text)
	}
	if body == "" || len(body) > 10 {
		return 0, fmt.Errorf("hash literal %q must have 1-10 hex digits", text)
	}
	var v uint64
	for _, c := range body {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, fmt.Errorf("hash literal %q contains non-hex digit %q", text, c)
		}
		v = v<<4 | d
	}
	return Hash40(v & Mask), nil
}

// IsHexLiteral reports whether text uses the hex-hash prefix convention and
// should be parsed as a literal rather than looked up as a label.
func IsHexLiteral(text string) bool {
	return strings.HasPrefix(text, "0x")
}

// Hex renders the hash in its canonical 10-digit hex form.
func (h Hash40) Hex() string {
	return fmt.Sprintf("0x%010x", uint64(h)&Mask)
}

func (h Hash40) String() string {
	return h.Hex()
}
