package rename

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/albumtag/internal/errors"
	"github.com/listenupapp/albumtag/internal/tags"
)

// stubTrack is an in-memory tags.Track.
type stubTrack struct {
	path  string
	title string
}

func (s stubTrack) Path() string   { return s.path }
func (s stubTrack) Format() string { return "flac" }
func (s stubTrack) Get(field string) ([]string, bool) {
	if field == tags.FieldTitle && s.title != "" {
		return []string{s.title}, true
	}
	return nil, false
}
func (s stubTrack) Set(string, ...string) error { return nil }
func (s stubTrack) Save() error                 { return nil }
func (s stubTrack) Close() error                { return nil }

func TestNewName(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		title string
		want  string
	}{
		{"numbered prefix", "01 - Track 1.flac", "Sonata No. 1 - I. Allegro", "01 - Sonata No. 1 - I. Allegro.flac"},
		{"prefix without spaces", "03-old.flac", "Adagio", "03 - Adagio.flac"},
		{"no dash keeps stem", "07.flac", "Rondo", "07 - Rondo.flac"},
		{"slash in title", "02 - x.mp3", "Allegro/Presto", "02 - Allegro_Presto.mp3"},
		{"title is trimmed", "04 - x.flac", "  Finale ", "04 - Finale.flac"},
		{"decomposed title is composed", "05 - x.flac", "Scherzo e\u0301", "05 - Scherzo \u00e9.flac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewName(tt.base, tt.title))
		})
	}
}

func TestPropose(t *testing.T) {
	tracks := []tags.Track{
		stubTrack{path: "/music/a/01 - Track 1.flac", title: "Sonata No. 1 - I. Allegro"},
		stubTrack{path: "/music/a/02 - Sonata No. 1 - II. Adagio.flac", title: "Sonata No. 1 - II. Adagio"},
	}

	proposals, err := Propose(tracks)
	require.NoError(t, err)
	assert.Equal(t, []Proposal{
		{From: "/music/a/01 - Track 1.flac", To: "/music/a/01 - Sonata No. 1 - I. Allegro.flac"},
		{From: "/music/a/02 - Sonata No. 1 - II. Adagio.flac", To: "/music/a/02 - Sonata No. 1 - II. Adagio.flac"},
	}, proposals)
	assert.False(t, proposals[0].Unchanged())
	assert.True(t, proposals[1].Unchanged())
}

func TestPropose_MissingTitle(t *testing.T) {
	_, err := Propose([]tags.Track{stubTrack{path: "/music/a/01.flac"}})
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Contains(t, err.Error(), "01.flac")
}

func newRenamer() *Renamer {
	return NewRenamer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "01 - a.flac")
	b := filepath.Join(dir, "02 - b.flac")
	touch(t, a)
	touch(t, b)

	done, err := newRenamer().Execute(context.Background(), []Proposal{
		{From: a, To: filepath.Join(dir, "01 - Allegro.flac")},
		{From: b, To: b},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	assert.FileExists(t, filepath.Join(dir, "01 - Allegro.flac"))
	assert.NoFileExists(t, a)
	assert.FileExists(t, b)
}

func TestExecute_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "01 - a.flac")
	taken := filepath.Join(dir, "01 - Allegro.flac")
	touch(t, a)
	touch(t, taken)

	done, err := newRenamer().Execute(context.Background(), []Proposal{{From: a, To: taken}})
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.Equal(t, 0, done)
	assert.FileExists(t, a)
}

func TestExecute_DuplicateTargets(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "01-a.flac")
	b := filepath.Join(dir, "01-b.flac")
	touch(t, a)
	touch(t, b)
	target := filepath.Join(dir, "01 - Same.flac")

	_, err := newRenamer().Execute(context.Background(), []Proposal{
		{From: a, To: target},
		{From: b, To: target},
	})
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.FileExists(t, a)
	assert.FileExists(t, b)
}

func TestExecute_Canceled(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "01 - a.flac")
	touch(t, a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRenamer().Execute(ctx, []Proposal{{From: a, To: filepath.Join(dir, "01 - b.flac")}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.FileExists(t, a)
}
