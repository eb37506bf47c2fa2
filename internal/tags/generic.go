package tags

import (
	"context"
	"strconv"
	"strings"

	"github.com/simonhull/audiometa"

	"github.com/listenupapp/albumtag/internal/errors"
)

// genericTrack reads any format audiometa can detect (M4A, M4B, ...).
// It exposes the fields audiometa parses and cannot be written.
type genericTrack struct {
	file *audiometa.File
	path string
}

func openGeneric(ctx context.Context, path string) (*genericTrack, error) {
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnsupportedFormat, "parse audio metadata")
	}
	return &genericTrack{file: file, path: path}, nil
}

func (t *genericTrack) Path() string   { return t.path }
func (t *genericTrack) Format() string { return strings.ToLower(t.file.Format.String()) }

func (t *genericTrack) Get(field string) ([]string, bool) {
	values := tagValues(&t.file.Tags, field)
	return values, len(values) > 0
}

// tagValues maps a field name onto audiometa's parsed tags. List fields keep
// every entry so a multi-valued tag reconciles as a tuple.
func tagValues(tags *audiometa.Tags, field string) []string {
	switch strings.ToLower(field) {
	case FieldTitle:
		return nonEmpty(tags.Title)
	case FieldArtist:
		if len(tags.Artists) > 0 {
			return nonEmpty(tags.Artists...)
		}
		return nonEmpty(tags.Artist)
	case FieldAlbum:
		return nonEmpty(tags.Album)
	case FieldAlbumArtist:
		return nonEmpty(tags.AlbumArtist)
	case FieldGenre:
		return nonEmpty(tags.Genres...)
	case FieldComposer:
		return nonEmpty(tags.Composers...)
	case FieldGrouping:
		return nonEmpty(tags.Grouping)
	case FieldDate:
		return nonEmpty(tags.Date)
	case FieldDiscNumber:
		return nonEmpty(positive(tags.DiscNumber))
	case FieldDiscTotal:
		return nonEmpty(positive(tags.DiscTotal))
	case FieldTrackNumber:
		return nonEmpty(positive(tags.TrackNumber))
	case FieldTrackTotal:
		return nonEmpty(positive(tags.TrackTotal))
	}
	return nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (t *genericTrack) Set(string, ...string) error {
	return readOnly(t.Format(), t.path)
}

func (t *genericTrack) Save() error {
	return readOnly(t.Format(), t.path)
}

func (t *genericTrack) Close() error {
	return t.file.Close()
}

func positive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
