package tags

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/listenupapp/albumtag/internal/errors"
)

// id3Frames maps field names to ID3v2 text frames. Fields not listed here
// are stored in TXXX frames keyed by description.
var id3Frames = map[string]string{
	FieldTitle:       "TIT2",
	FieldArtist:      "TPE1",
	FieldAlbum:       "TALB",
	FieldAlbumArtist: "TPE2",
	FieldGenre:       "TCON",
	FieldComposer:    "TCOM",
	FieldWork:        "TIT1",
}

// id3Pairs are fields stored as "n/total" in one frame.
var id3Pairs = map[string]struct {
	frame string
	total bool
}{
	FieldDiscNumber:  {frame: "TPOS"},
	FieldDiscTotal:   {frame: "TPOS", total: true},
	FieldTrackNumber: {frame: "TRCK"},
	FieldTrackTotal:  {frame: "TRCK", total: true},
}

const userTextFrame = "TXXX"

// id3Separator splits multiple values inside one ID3v2.4 text frame.
const id3Separator = "\x00"

type mp3Track struct {
	tag  *id3v2.Tag
	path string
}

func openMP3(path string) (*mp3Track, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnsupportedFormat, "parse id3v2")
	}
	return &mp3Track{tag: tag, path: path}, nil
}

func (t *mp3Track) Path() string   { return t.path }
func (t *mp3Track) Format() string { return "mp3" }

func (t *mp3Track) Get(field string) ([]string, bool) {
	field = strings.ToLower(field)

	if id, ok := id3Frames[field]; ok {
		return splitText(t.tag.GetTextFrame(id).Text)
	}

	if pair, ok := id3Pairs[field]; ok {
		number, total, _ := strings.Cut(t.tag.GetTextFrame(pair.frame).Text, "/")
		if pair.total {
			return splitText(strings.TrimSpace(total))
		}
		return splitText(strings.TrimSpace(number))
	}

	var values []string
	for _, f := range t.tag.GetFrames(userTextFrame) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if ok && strings.EqualFold(udtf.Description, field) {
			values = append(values, strings.Split(udtf.Value, id3Separator)...)
		}
	}
	return values, len(values) > 0
}

func (t *mp3Track) Set(field string, values ...string) error {
	field = strings.ToLower(field)
	text := strings.Join(values, id3Separator)

	if id, ok := id3Frames[field]; ok {
		t.setText(id, text)
		return nil
	}

	if pair, ok := id3Pairs[field]; ok {
		if len(values) > 1 {
			return errors.Validationf("%s holds a single value, got %d", field, len(values))
		}
		number, total, _ := strings.Cut(t.tag.GetTextFrame(pair.frame).Text, "/")
		if pair.total {
			total = text
		} else {
			number = text
		}
		if total != "" {
			number += "/" + total
		}
		t.setText(pair.frame, number)
		return nil
	}

	// TXXX is a sequence frame; rebuild it without the replaced description.
	frames := t.tag.GetFrames(userTextFrame)
	t.tag.DeleteFrames(userTextFrame)
	for _, f := range frames {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if !ok || strings.EqualFold(udtf.Description, field) {
			continue
		}
		t.tag.AddUserDefinedTextFrame(udtf)
	}
	if len(values) > 0 {
		t.tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: strings.ToUpper(field),
			Value:       text,
		})
	}
	return nil
}

func (t *mp3Track) setText(id, text string) {
	if text == "" {
		t.tag.DeleteFrames(id)
		return
	}
	t.tag.AddTextFrame(id, id3v2.EncodingUTF8, text)
}

func (t *mp3Track) Save() error {
	if err := t.tag.Save(); err != nil {
		return fmt.Errorf("save id3v2 %s: %w", t.path, err)
	}
	return nil
}

func (t *mp3Track) Close() error {
	return t.tag.Close()
}

func splitText(text string) ([]string, bool) {
	if text == "" {
		return nil, false
	}
	return strings.Split(text, id3Separator), true
}
