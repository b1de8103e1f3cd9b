package wad

import (
	"encoding/binary"
	"io"
)

// Option configures Decode.
type Option func(*options)

type options struct {
	allowEmptyNames bool
}

// WithAllowEmptyNames accepts all-NUL lump name fields as zero-length
// names instead of rejecting them.
func WithAllowEmptyNames(allow bool) Option {
	return func(o *options) {
		o.allowEmptyNames = allow
	}
}

// Decode reads the header and lump directory from r. size is the total
// length of the source and bounds every offset found in the directory.
// Lump payloads are not read.
//
// Failures of r are returned as *IOError, layout violations as
// *FormatError. No Header is returned with an error.
func Decode(r io.ReadSeeker, size int64, opts ...Option) (*Header, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := &decoder{r: r, size: size, opts: o}
	return d.decode()
}

type decoder struct {
	r    io.ReadSeeker
	size int64
	opts options
}

func (d *decoder) decode() (*Header, error) {
	var magic [4]byte
	if _, err := io.ReadFull(d.r, magic[:]); err != nil {
		return nil, ioErr("read magic", err)
	}
	typ, ok := typeForMagic(magic)
	if !ok {
		return nil, newFormatError(ReasonInvalidTag)
	}

	count, err := d.readInt32("read directory entry count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, newFormatError(ReasonNegativeEntryCount)
	}

	start, err := d.readInt32("read directory start")
	if err != nil {
		return nil, err
	}
	if start < 0 {
		return nil, newFormatError(ReasonNegativeDirectoryStart)
	}
	// Seeking past the end succeeds on most sources, so check the
	// bound explicitly as well as the landing position.
	if int64(start) > d.size {
		return nil, newFormatError(ReasonSeekDirectory)
	}
	pos, err := d.r.Seek(int64(start), io.SeekStart)
	if err != nil {
		return nil, ioErr("seek to directory start", err)
	}
	if pos != int64(start) {
		return nil, newFormatError(ReasonSeekDirectory)
	}

	h := &Header{
		Type:                typ,
		DirectoryEntryCount: count,
		DirectoryStart:      start,
		Lumps:               make([]Entry, 0, d.capacity(count, start)),
	}

	for i := 0; i < int(count); i++ {
		entry, err := d.readEntry()
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Entry = i
			}
			return nil, err
		}
		h.Lumps = append(h.Lumps, entry)
	}

	return h, nil
}

// readEntry reads and validates a single directory entry.
func (d *decoder) readEntry() (Entry, error) {
	offset, err := d.readInt32("read lump start pointer")
	if err != nil {
		return Entry{}, err
	}
	if offset < 0 {
		return Entry{}, newFormatError(ReasonNegativeLumpOffset)
	}
	if int64(offset) > d.size {
		return Entry{}, newFormatError(ReasonLumpOffsetTooLarge)
	}

	lumpSize, err := d.readInt32("read lump size")
	if err != nil {
		return Entry{}, err
	}
	if lumpSize < 0 {
		return Entry{}, newFormatError(ReasonNegativeLumpSize)
	}
	lump := Lump{FileOffset: offset, Size: lumpSize}
	if lump.End() > d.size {
		return Entry{}, newFormatError(ReasonLumpSizeTooLarge)
	}

	var raw [NameSize]byte
	if _, err := io.ReadFull(d.r, raw[:]); err != nil {
		return Entry{}, ioErr("read lump name", err)
	}
	if err := validateLumpName(raw, d.opts.allowEmptyNames); err != nil {
		return Entry{}, err
	}

	return Entry{Name: LumpName(raw), Lump: lump}, nil
}

func (d *decoder) readInt32(op string) (int32, error) {
	var x int32
	if err := binary.Read(d.r, binary.LittleEndian, &x); err != nil {
		return 0, ioErr(op, err)
	}
	return x, nil
}

// capacity bounds the preallocation by what the rest of the source can
// hold, so a forged entry count cannot force a huge allocation.
func (d *decoder) capacity(count, start int32) int {
	fit := (d.size - int64(start)) / DirEntrySize
	return int(min(int64(count), fit))
}
