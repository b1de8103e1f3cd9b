package wad

import (
	"fmt"
	"strconv"
)

// Reason names the structural rule violated by a FormatError.
type Reason int

const (
	ReasonInvalidTag Reason = iota + 1
	ReasonNegativeEntryCount
	ReasonNegativeDirectoryStart
	ReasonSeekDirectory
	ReasonNegativeLumpOffset
	ReasonLumpOffsetTooLarge
	ReasonNegativeLumpSize
	ReasonLumpSizeTooLarge
	ReasonEmptyLumpName
	ReasonNonZeroAfterZero
	ReasonInvalidNameChar
)

func (r Reason) String() string {
	switch r {
	case ReasonInvalidTag:
		return "invalid WAD tag"
	case ReasonNegativeEntryCount:
		return "directory entry count is negative"
	case ReasonNegativeDirectoryStart:
		return "directory start is negative"
	case ReasonSeekDirectory:
		return "cannot seek to directory start"
	case ReasonNegativeLumpOffset:
		return "lump start pointer is negative"
	case ReasonLumpOffsetTooLarge:
		return "lump start pointer is too large"
	case ReasonNegativeLumpSize:
		return "lump size is negative"
	case ReasonLumpSizeTooLarge:
		return "lump size is too large"
	case ReasonEmptyLumpName:
		return "empty lump name"
	case ReasonNonZeroAfterZero:
		return "non-0 after 0 character in lump name"
	case ReasonInvalidNameChar:
		return "invalid character in lump name"
	default:
		return "format error"
	}
}

// FormatError reports a readable stream that breaks the WAD layout rules.
type FormatError struct {
	Reason Reason
	Entry  int    // directory index, -1 when not tied to an entry
	Name   string // raw name field for name violations, lossily decoded
	Char   byte   // offending byte for ReasonInvalidNameChar
}

func newFormatError(r Reason) *FormatError {
	return &FormatError{Reason: r, Entry: -1}
}

func (e *FormatError) Error() string {
	msg := "wad: "
	if e.Entry >= 0 {
		msg += "directory entry " + strconv.Itoa(e.Entry) + ": "
	}
	if e.Name != "" {
		msg += strconv.Quote(e.Name) + ": "
	}
	msg += e.Reason.String()
	if e.Reason == ReasonInvalidNameChar {
		msg += fmt.Sprintf(": %q", rune(e.Char))
	}
	return msg
}

// Is matches another FormatError with the same Reason. A target without
// a Reason matches every FormatError.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Reason == 0 || t.Reason == e.Reason
}

// Sentinels for errors.Is.
var (
	ErrFormat = &FormatError{Entry: -1}

	ErrInvalidTag          = newFormatError(ReasonInvalidTag)
	ErrNegativeEntryCount  = newFormatError(ReasonNegativeEntryCount)
	ErrNegativeDirStart    = newFormatError(ReasonNegativeDirectoryStart)
	ErrSeekDirectory       = newFormatError(ReasonSeekDirectory)
	ErrNegativeLumpOffset  = newFormatError(ReasonNegativeLumpOffset)
	ErrLumpOffsetTooLarge  = newFormatError(ReasonLumpOffsetTooLarge)
	ErrNegativeLumpSize    = newFormatError(ReasonNegativeLumpSize)
	ErrLumpSizeTooLarge    = newFormatError(ReasonLumpSizeTooLarge)
	ErrEmptyLumpName       = newFormatError(ReasonEmptyLumpName)
	ErrNonZeroAfterZero    = newFormatError(ReasonNonZeroAfterZero)
	ErrInvalidLumpNameChar = newFormatError(ReasonInvalidNameChar)
)

// IOError reports a failure of the underlying byte source: open, stat,
// short read or seek.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "wad: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op string, err error) error {
	return &IOError{Op: op, Err: err}
}
