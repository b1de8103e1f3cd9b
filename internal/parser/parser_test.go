package parser_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/wadinfo/internal/parser"
	"github.com/ossyrian/wadinfo/internal/wad"
)

// buildWAD creates a WAD with one zero-length lump per name, all
// pointing at the end of the fixed header.
func buildWAD(magic string, names ...string) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(magic)
	binary.Write(buf, binary.LittleEndian, int32(len(names)))
	binary.Write(buf, binary.LittleEndian, int32(wad.HeaderSize))
	for _, name := range names {
		binary.Write(buf, binary.LittleEndian, int32(wad.HeaderSize))
		binary.Write(buf, binary.LittleEndian, int32(0))
		var raw [wad.NameSize]byte
		copy(raw[:], name)
		buf.Write(raw[:])
	}
	return buf.Bytes()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFs(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for name, data := range files {
		require.NoError(t, afero.WriteFile(fsys, name, data, 0o644))
	}
	return fsys
}

func TestWadReader_ReadHeader(t *testing.T) {
	fsys := newFs(t, map[string][]byte{
		"/wads/doom.wad":  buildWAD("IWAD", "PLAYPAL", "E1M1"),
		"/wads/bad.wad":   append([]byte("ZWAD"), make([]byte, 8)...),
		"/wads/short.wad": []byte("PWAD"),
	})
	require.NoError(t, fsys.MkdirAll("/wads/dir.wad", 0o755))

	r := parser.NewWadReader(fsys, discardLogger())

	tests := []struct {
		name     string
		path     string
		wantType wad.Type
		wantErr  error
		wantIO   string
	}{
		{name: "valid IWAD", path: "/wads/doom.wad", wantType: wad.IWAD},
		{name: "invalid tag", path: "/wads/bad.wad", wantErr: wad.ErrInvalidTag},
		{name: "truncated", path: "/wads/short.wad", wantIO: "read directory entry count"},
		{name: "missing file", path: "/wads/nope.wad", wantIO: "open"},
		{name: "directory", path: "/wads/dir.wad", wantIO: "open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := r.ReadHeader(tt.path)

			switch {
			case tt.wantErr != nil:
				assert.Nil(t, h)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantIO != "":
				assert.Nil(t, h)
				var ioErr *wad.IOError
				require.ErrorAs(t, err, &ioErr)
				assert.Equal(t, tt.wantIO, ioErr.Op)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantType, h.Type)
				assert.Equal(t, []string{"PLAYPAL", "E1M1"}, h.Names())
			}
		})
	}
}

func TestWadReader_MissingFileIsNotExist(t *testing.T) {
	r := parser.NewWadReader(afero.NewMemMapFs(), discardLogger())

	_, err := r.ReadHeader("/nope.wad")
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestWadReader_Options(t *testing.T) {
	fsys := newFs(t, map[string][]byte{"/empty.wad": buildWAD("PWAD", "")})

	_, err := parser.NewWadReader(fsys, discardLogger()).ReadHeader("/empty.wad")
	assert.ErrorIs(t, err, wad.ErrEmptyLumpName)

	h, err := parser.NewWadReader(fsys, discardLogger(), wad.WithAllowEmptyNames(true)).ReadHeader("/empty.wad")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, h.Names())
}

// closeTrackingFs records whether every opened file was closed.
type closeTrackingFs struct {
	afero.Fs
	open int
}

type trackedFile struct {
	afero.File
	fs *closeTrackingFs
}

func (f *trackedFile) Close() error {
	f.fs.open--
	return f.File.Close()
}

func (c *closeTrackingFs) Open(name string) (afero.File, error) {
	f, err := c.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	c.open++
	return &trackedFile{File: f, fs: c}, nil
}

func TestWadReader_ClosesOnEveryPath(t *testing.T) {
	fsys := &closeTrackingFs{Fs: newFs(t, map[string][]byte{
		"/ok.wad":    buildWAD("PWAD", "E1M1"),
		"/bad.wad":   buildWAD("PWAD", "e1m1"),
		"/short.wad": []byte("IW"),
	})}
	r := parser.NewWadReader(fsys, discardLogger())

	for _, path := range []string{"/ok.wad", "/bad.wad", "/short.wad"} {
		_, _ = r.ReadHeader(path)
		assert.Zero(t, fsys.open, "file %s left open", path)
	}
}

func TestWadReader_ReadAll(t *testing.T) {
	files := map[string][]byte{
		"/a.wad": buildWAD("IWAD", "A"),
		"/b.wad": buildWAD("PWAD", "B1", "B2"),
		"/c.wad": []byte("junk"),
	}
	r := parser.NewWadReader(newFs(t, files), discardLogger())

	paths := []string{"/c.wad", "/a.wad", "/missing.wad", "/b.wad", "/a.wad"}
	for _, jobs := range []int{-1, 0, 1, 3} {
		results := r.ReadAll(paths, jobs)
		require.Len(t, results, len(paths))

		for i, res := range results {
			assert.Equal(t, paths[i], res.Path)
		}
		assert.Error(t, results[0].Err)
		assert.Equal(t, []string{"A"}, results[1].Header.Names())
		assert.Error(t, results[2].Err)
		assert.Equal(t, []string{"B1", "B2"}, results[3].Header.Names())
		assert.Equal(t, results[1].Header, results[4].Header)
	}
}
