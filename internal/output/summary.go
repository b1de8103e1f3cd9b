package output

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/samber/lo"

	"github.com/ossyrian/wadinfo/internal/wad"
)

// Error kinds reported in Summary.ErrorKind.
const (
	ErrorKindFormat = "format"
	ErrorKindIO     = "io"
)

// Summary is the printable outcome of reading one WAD file.
type Summary struct {
	Path      string              `json:"path" yaml:"path"`
	Header    *wad.Header         `json:"header,omitempty" yaml:"header,omitempty"`
	Directory map[string]wad.Lump `json:"directory,omitempty" yaml:"directory,omitempty"`
	Error     string              `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind string              `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
}

// Options controls what a Printer includes.
type Options struct {
	Format    Format
	ListLumps bool
	// Keyed lists each lump name once, last entry winning.
	Keyed bool
}

// NewSummary builds the summary for path. Without ListLumps the lump
// directory is left out; with Keyed it is replaced by the name-keyed view.
func NewSummary(path string, h *wad.Header, err error, opts Options) Summary {
	s := Summary{Path: path}
	if err != nil {
		s.Error = err.Error()
		s.ErrorKind = ErrorKind(err)
		return s
	}

	view := *h
	view.Lumps = nil
	if opts.ListLumps {
		if opts.Keyed {
			s.Directory = h.ByName()
		} else {
			view.Lumps = h.Lumps
		}
	}
	s.Header = &view
	return s
}

// ErrorKind classifies err as a format or an I/O failure.
func ErrorKind(err error) string {
	if errors.Is(err, wad.ErrFormat) {
		return ErrorKindFormat
	}
	return ErrorKindIO
}

// Printer writes summaries in the configured format.
type Printer struct {
	out  io.Writer
	opts Options
}

// NewPrinter creates a new Printer with the given options.
func NewPrinter(out io.Writer, opts Options) *Printer {
	return &Printer{out: out, opts: opts}
}

// Print writes all summaries. JSON and YAML emit a single document
// holding the list; text and table print one block per file.
func (p *Printer) Print(summaries []Summary) error {
	switch p.opts.Format {
	case FormatText, "":
		for _, s := range summaries {
			p.printText(s)
		}
		return nil
	case FormatTable:
		for i, s := range summaries {
			if i > 0 {
				_, _ = fmt.Fprintln(p.out)
			}
			p.printTable(s)
		}
		return nil
	case FormatJSON:
		return PrintJSON(p.out, summaries)
	case FormatYAML:
		return PrintYAML(p.out, summaries)
	default:
		return fmt.Errorf("unknown format: %s", p.opts.Format)
	}
}

func (p *Printer) printText(s Summary) {
	_, _ = fmt.Fprintf(p.out, "WAD file: %s\n", s.Path)
	if s.Header == nil {
		_, _ = fmt.Fprintf(p.out, "  Could not read WAD: %s\n", s.Error)
		return
	}

	_, _ = fmt.Fprintf(p.out, "  WAD type: %s\n", s.Header.Type)
	_, _ = fmt.Fprintf(p.out, "  # of lumps: %d\n", s.Header.DirectoryEntryCount)
	_, _ = fmt.Fprintf(p.out, "  directory start: %d\n", s.Header.DirectoryStart)

	for _, row := range lumpRows(s) {
		_, _ = fmt.Fprintf(p.out, "    %-8s %10s %10s\n", row[0], row[1], row[2])
	}
}

func (p *Printer) printTable(s Summary) {
	if s.Header == nil {
		SimpleTable(p.out, [][2]string{
			{"WAD file", s.Path},
			{"Error", s.Error},
			{"Kind", s.ErrorKind},
		})
		return
	}

	SimpleTable(p.out, [][2]string{
		{"WAD file", s.Path},
		{"WAD type", s.Header.Type.String()},
		{"# of lumps", strconv.Itoa(int(s.Header.DirectoryEntryCount))},
		{"directory start", strconv.Itoa(int(s.Header.DirectoryStart))},
	})

	if rows := lumpRows(s); len(rows) > 0 {
		_, _ = fmt.Fprintln(p.out)
		PrintTable(p.out, []string{"Name", "Offset", "Size"}, rows)
	}
}

// lumpRows lists the lumps of s in directory order, or by name for the
// keyed view.
func lumpRows(s Summary) [][]string {
	row := func(name string, l wad.Lump) []string {
		return []string{name, strconv.Itoa(int(l.FileOffset)), strconv.Itoa(int(l.Size))}
	}

	if s.Directory != nil {
		names := lo.Keys(s.Directory)
		slices.Sort(names)
		return lo.Map(names, func(name string, _ int) []string {
			return row(name, s.Directory[name])
		})
	}

	return lo.Map(s.Header.Lumps, func(e wad.Entry, _ int) []string {
		return row(e.Name, e.Lump)
	})
}
