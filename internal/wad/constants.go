package wad

// Magic tags identifying the two supported WAD flavours.
var (
	MagicIWAD = [4]byte{'I', 'W', 'A', 'D'}
	MagicPWAD = [4]byte{'P', 'W', 'A', 'D'}
)

const (
	// HeaderSize is the size of the fixed header:
	// [magic(4)][directory_entry_count(int32)][directory_start(int32)]
	HeaderSize = 12

	// DirEntrySize is the size of one directory entry:
	// [file_offset(int32)][size(int32)][name(8 bytes)]
	DirEntrySize = 16

	// NameSize is the width of the raw lump name field.
	NameSize = 8
)
