// Package scanner discovers the audio files of an album directory.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/listenupapp/albumtag/internal/errors"
)

// DefaultExtensions are the file extensions treated as tracks.
var DefaultExtensions = []string{".flac"}

// Walker lists the tracks of an album directory.
type Walker struct {
	logger     *slog.Logger
	extensions map[string]struct{}
}

// NewWalker creates a walker accepting the given extensions (case-insensitive,
// with or without the leading dot). No extensions means DefaultExtensions.
func NewWalker(logger *slog.Logger, extensions ...string) *Walker {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}
	return &Walker{logger: logger, extensions: exts}
}

// Discover returns the track files directly inside dir, sorted by filename.
// A track's number is its 1-based position in the result.
// Hidden files and subdirectories are skipped.
func (w *Walker) Discover(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("album directory %s does not exist", dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Validationf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		// Check context cancellation.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Skip hidden files and directories.
		if strings.HasPrefix(entry.Name(), ".") || entry.IsDir() {
			continue
		}

		if !w.accepts(entry.Name()) {
			w.logger.Debug("skipping non-track file", "path", filepath.Join(dir, entry.Name()))
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}

	w.logger.Debug("discovered tracks", "dir", dir, "count", len(paths))
	return paths, nil
}

func (w *Walker) accepts(name string) bool {
	_, ok := w.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
