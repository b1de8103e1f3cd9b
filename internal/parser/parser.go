package parser

import (
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"

	"github.com/ossyrian/wadinfo/internal/wad"
)

// WadReader reads the header and lump directory of WAD files from a
// filesystem.
type WadReader struct {
	fs     afero.Fs
	opts   []wad.Option
	logger *slog.Logger
}

// NewWadReader returns a reader over fsys. A nil logger uses slog.Default.
func NewWadReader(fsys afero.Fs, logger *slog.Logger, opts ...wad.Option) *WadReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &WadReader{
		fs:     fsys,
		opts:   opts,
		logger: logger,
	}
}

// ReadHeader opens path, decodes its header and directory and closes the
// file again, whatever the outcome.
func (r *WadReader) ReadHeader(path string) (h *wad.Header, err error) {
	logger := r.logger.With("file", path)

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, &wad.IOError{Op: "open", Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			h, err = nil, &wad.IOError{Op: "close", Err: closeErr}
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, &wad.IOError{Op: "stat", Err: err}
	}
	if info.IsDir() {
		return nil, &wad.IOError{Op: "open", Err: fmt.Errorf("%s is a directory", path)}
	}

	logger.Debug("reading header", "file_size", info.Size())

	h, err = wad.Decode(f, info.Size(), r.opts...)
	if err != nil {
		logger.Debug("header is invalid", "error", err)
		return nil, err
	}

	logger.Info("header is valid",
		"wad_type", h.Type,
		"directory_entry_count", h.DirectoryEntryCount,
		"directory_start", h.DirectoryStart,
	)

	return h, nil
}

// Result pairs an input path with its decode outcome.
type Result struct {
	Path   string
	Header *wad.Header
	Err    error
}

// ReadAll decodes every path, running at most jobs decodes at once
// (jobs <= 0 means one per CPU). Results keep the order of paths.
func (r *WadReader) ReadAll(paths []string, jobs int) []Result {
	mapper := iter.Mapper[string, Result]{MaxGoroutines: max(jobs, 0)}
	return mapper.Map(paths, func(path *string) Result {
		h, err := r.ReadHeader(*path)
		return Result{Path: *path, Header: h, Err: err}
	})
}
