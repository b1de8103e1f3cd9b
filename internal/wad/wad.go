package wad

import (
	"fmt"

	"github.com/samber/lo"
)

// Type tells primary archives (IWAD) apart from patch archives (PWAD).
type Type int

const (
	// IWAD is a main game archive. Running a game always requires one.
	IWAD Type = iota + 1
	// PWAD is a patch archive loaded on top of an IWAD, overriding
	// or adding lumps.
	PWAD
)

func (t Type) String() string {
	switch t {
	case IWAD:
		return "IWAD"
	case PWAD:
		return "PWAD"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if t != IWAD && t != PWAD {
		return nil, fmt.Errorf("unknown WAD type: %d", int(t))
	}
	return []byte(t.String()), nil
}

// typeForMagic maps a magic tag to its Type.
func typeForMagic(magic [4]byte) (Type, bool) {
	switch magic {
	case MagicIWAD:
		return IWAD, true
	case MagicPWAD:
		return PWAD, true
	default:
		return 0, false
	}
}

// Lump locates the data of a single named resource in the archive.
// The payload itself is never read.
type Lump struct {
	FileOffset int32 `json:"file_offset" yaml:"file_offset"` // where the lump data starts
	Size       int32 `json:"size" yaml:"size"`               // length of the lump in bytes
}

// End returns the offset one past the last byte of the lump.
func (l Lump) End() int64 {
	return int64(l.FileOffset) + int64(l.Size)
}

// Entry is one record of the lump directory.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Lump `yaml:",inline"`
}

// Header is the decoded header and lump directory of a WAD file.
//
// Lumps keeps the directory order and may contain duplicate names;
// ByName and Lookup provide the keyed view.
type Header struct {
	Type                Type    `json:"wad_type" yaml:"wad_type"`
	DirectoryEntryCount int32   `json:"directory_entry_count" yaml:"directory_entry_count"`
	DirectoryStart      int32   `json:"directory_start" yaml:"directory_start"`
	Lumps               []Entry `json:"lumps,omitempty" yaml:"lumps,omitempty"`
}

// ByName returns the directory keyed by lump name. When a name occurs
// more than once the last entry wins.
func (h *Header) ByName() map[string]Lump {
	return lo.SliceToMap(h.Lumps, func(e Entry) (string, Lump) {
		return e.Name, e.Lump
	})
}

// Lookup returns the last lump named name.
func (h *Header) Lookup(name string) (Lump, bool) {
	e, _, ok := lo.FindLastIndexOf(h.Lumps, func(e Entry) bool {
		return e.Name == name
	})
	return e.Lump, ok
}

// Names returns the lump names in directory order.
func (h *Header) Names() []string {
	return lo.Map(h.Lumps, func(e Entry, _ int) string {
		return e.Name
	})
}
