package tags

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/listenupapp/albumtag/internal/errors"
)

// flacTrack holds a parsed FLAC file and its Vorbis comment block.
type flacTrack struct {
	file       *flac.File
	comments   *flacvorbis.MetaDataBlockVorbisComment
	path       string
	commentIdx int
}

// openFLAC parses the metadata blocks and keeps the frame data verbatim.
// flac.ParseFile panics on a file with no frame data, so the frames are read
// and checked here.
func openFLAC(path string) (*flacTrack, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := flac.ParseMetadata(fh)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnsupportedFormat, "parse flac")
	}
	frames, err := io.ReadAll(fh)
	if err != nil {
		return nil, fmt.Errorf("read flac frames: %w", err)
	}
	if !hasFrameSync(frames) {
		return nil, errors.Wrap(flac.ErrorNoSyncCode, errors.CodeUnsupportedFormat, "parse flac")
	}
	f.Frames = frames

	t := &flacTrack{file: f, path: path, commentIdx: -1}
	for idx, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, fmt.Errorf("parse vorbis comment: %w", err)
		}
		t.comments = cmts
		t.commentIdx = idx
		break
	}

	// Files without a comment block get one on first save.
	if t.comments == nil {
		t.comments = flacvorbis.New()
	}
	return t, nil
}

// hasFrameSync reports whether data starts with the 14-bit frame sync code.
func hasFrameSync(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1]>>2 == 0x3E
}

func (t *flacTrack) Path() string   { return t.path }
func (t *flacTrack) Format() string { return "flac" }

// Get matches keys case-insensitively, as Vorbis comment keys are.
func (t *flacTrack) Get(field string) ([]string, bool) {
	var values []string
	for _, c := range t.comments.Comments {
		key, value, ok := strings.Cut(c, "=")
		if ok && strings.EqualFold(key, field) {
			values = append(values, value)
		}
	}
	return values, len(values) > 0
}

func (t *flacTrack) Set(field string, values ...string) error {
	kept := t.comments.Comments[:0:0]
	for _, c := range t.comments.Comments {
		key, _, ok := strings.Cut(c, "=")
		if ok && strings.EqualFold(key, field) {
			continue
		}
		kept = append(kept, c)
	}
	t.comments.Comments = kept

	key := strings.ToUpper(field)
	for _, v := range values {
		if err := t.comments.Add(key, v); err != nil {
			return errors.Wrapf(err, errors.CodeValidation, "set %s", field)
		}
	}
	return nil
}

func (t *flacTrack) Save() error {
	block := t.comments.Marshal()
	if t.commentIdx >= 0 {
		t.file.Meta[t.commentIdx] = &block
	} else {
		t.file.Meta = append(t.file.Meta, &block)
		t.commentIdx = len(t.file.Meta) - 1
	}

	if err := t.file.Save(t.path); err != nil {
		return fmt.Errorf("save flac %s: %w", t.path, err)
	}
	return nil
}

// Close is a no-op: the parser reads the whole file up front.
func (t *flacTrack) Close() error { return nil }
