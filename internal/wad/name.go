package wad

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ValidateLumpName checks a raw 8-byte lump name field.
//
// Names consist of A-Z, 0-9 and the characters [ ] - _ \, padded on the
// right with NUL bytes. Once a NUL is seen every following byte must be
// NUL as well, and an all-NUL field is rejected as an empty name.
func ValidateLumpName(name [NameSize]byte) error {
	return validateLumpName(name, false)
}

func validateLumpName(name [NameSize]byte, allowEmpty bool) error {
	for c := 0; c < NameSize; c++ {
		ch := name[c]
		if isNameChar(ch) {
			continue
		}
		if ch != 0 {
			return &FormatError{
				Reason: ReasonInvalidNameChar,
				Entry:  -1,
				Name:   lossyString(name[:]),
				Char:   ch,
			}
		}
		if c == 0 && !allowEmpty {
			return &FormatError{Reason: ReasonEmptyLumpName, Entry: -1, Name: lossyString(name[:])}
		}
		for i := c + 1; i < NameSize; i++ {
			if name[i] != 0 {
				return &FormatError{Reason: ReasonNonZeroAfterZero, Entry: -1, Name: lossyString(name[:])}
			}
		}
		break
	}
	return nil
}

func isNameChar(ch byte) bool {
	switch {
	case ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case ch == '[', ch == ']', ch == '-', ch == '_', ch == '\\':
		return true
	default:
		return false
	}
}

// LumpName returns the printable form of a raw name field: trailing NUL
// bytes are trimmed and invalid UTF-8 is replaced with U+FFFD.
func LumpName(name [NameSize]byte) string {
	return lossyString(bytes.TrimRight(name[:], "\x00"))
}

// lossyString decodes b as UTF-8, substituting U+FFFD for invalid
// sequences. It never fails.
func lossyString(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
