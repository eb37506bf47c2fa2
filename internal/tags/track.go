// Package tags reads and writes the metadata fields of audio files.
package tags

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/listenupapp/albumtag/internal/errors"
)

// Common field names. Vorbis comment keys are used as the canonical names;
// other formats map them onto their own frames or atoms.
const (
	FieldTitle       = "title"
	FieldArtist      = "artist"
	FieldAlbum       = "album"
	FieldAlbumArtist = "albumartist"
	FieldGenre       = "genre"
	FieldComposer    = "composer"
	FieldGrouping    = "grouping"
	FieldDate        = "date"
	FieldDiscNumber  = "discnumber"
	FieldDiscTotal   = "disctotal"
	FieldTrackNumber = "tracknumber"
	FieldTrackTotal  = "tracktotal"
	FieldWork        = "work"
	FieldPart        = "part"
)

// Track is an open audio file whose tags can be read and changed.
//
// Get reports every value stored for a field, in file order. Set replaces
// all values of a field; calling it with no values removes the field.
// Changes are held in memory until Save.
type Track interface {
	Path() string
	Format() string
	Get(field string) ([]string, bool)
	Set(field string, values ...string) error
	Save() error
	Close() error
}

// Reader opens tracks, choosing a backend from the file extension.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a new Reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Open opens one audio file.
func (r *Reader) Open(ctx context.Context, path string) (Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		track Track
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		track, err = openFLAC(path)
	case ".mp3":
		track, err = openMP3(path)
	default:
		track, err = openGeneric(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r.logger.Debug("opened track", "path", path, "format", track.Format())
	return track, nil
}

// OpenAll opens tracks in the given order. On failure every track opened so
// far is closed and the first error is returned.
func (r *Reader) OpenAll(ctx context.Context, paths []string) ([]Track, error) {
	tracks := make([]Track, 0, len(paths))
	for _, path := range paths {
		track, err := r.Open(ctx, path)
		if err != nil {
			CloseAll(tracks)
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// CloseAll closes every track, ignoring errors.
func CloseAll(tracks []Track) {
	for _, t := range tracks {
		_ = t.Close() //nolint:errcheck // nothing useful to do on close failure
	}
}

// First returns the first value of a field, or "" when it is absent.
func First(t Track, field string) string {
	values, ok := t.Get(field)
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0]
}

func readOnly(format, path string) error {
	return errors.UnsupportedFormatf("%s: writing %s tags is not supported", path, format)
}
