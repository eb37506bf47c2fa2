// Package testsupport builds audio fixtures for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// FrameHeader is a fixed-blocksize frame header. Parsers only check its
// sync code, so it stands in for the audio of every fixture.
var FrameHeader = []byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00}

// Tags is an ordered list of Vorbis comments; a key may repeat.
type Tags [][2]string

// WriteFLAC writes a minimal FLAC file (STREAMINFO, a Vorbis comment block
// and one frame header) carrying the given tags. Nil tags omit the comment
// block entirely.
func WriteFLAC(t testing.TB, path string, tags Tags) string {
	t.Helper()

	f := &flac.File{
		Meta: []*flac.MetaDataBlock{
			{Type: flac.StreamInfo, Data: make([]byte, 34)},
		},
		Frames: append([]byte(nil), FrameHeader...),
	}
	if tags != nil {
		cmts := flacvorbis.New()
		for _, kv := range tags {
			if err := cmts.Add(kv[0], kv[1]); err != nil {
				t.Fatalf("flacvorbis.Add %s: %v", kv[0], err)
			}
		}
		block := cmts.Marshal()
		f.Meta = append(f.Meta, &block)
	}

	if err := f.Save(path); err != nil {
		t.Fatalf("flac.Save %s: %v", path, err)
	}
	return path
}

// WriteAlbum writes one FLAC file per entry into dir, named by the map key.
func WriteAlbum(t testing.TB, dir string, files map[string]Tags) {
	t.Helper()

	for name, tags := range files {
		WriteFLAC(t, filepath.Join(dir, name), tags)
	}
}

// WriteEmpty creates an empty file, e.g. a bare MP3 for id3v2 to tag.
func WriteEmpty(t testing.TB, path string) string {
	t.Helper()

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
