// Package rename proposes and performs track file renames derived from tag titles.
package rename

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/listenupapp/albumtag/internal/errors"
	"github.com/listenupapp/albumtag/internal/tags"
)

// Proposal is a planned rename of one track file.
type Proposal struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Unchanged reports whether the proposal keeps the current name.
func (p Proposal) Unchanged() bool {
	return p.From == p.To
}

// Propose builds a new name for every track: the reserved prefix of the
// current basename (the text before its first '-'), then " - ", then the
// track title, then the original extension.
func Propose(tracks []tags.Track) ([]Proposal, error) {
	proposals := make([]Proposal, 0, len(tracks))
	for _, t := range tracks {
		title := tags.First(t, tags.FieldTitle)
		if strings.TrimSpace(title) == "" {
			return nil, errors.Validationf("%s has no title tag", t.Path())
		}
		dir, base := filepath.Split(t.Path())
		proposals = append(proposals, Proposal{
			From: t.Path(),
			To:   filepath.Join(dir, NewName(base, title)),
		})
	}
	return proposals, nil
}

// NewName returns the file name for a track currently named base whose
// title tag is title.
func NewName(base, title string) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	prefix, _, _ := strings.Cut(stem, "-")
	prefix = strings.TrimSpace(prefix)

	return norm.NFC.String(prefix + " - " + sanitize(title) + ext)
}

var separators = strings.NewReplacer("/", "_", string(os.PathSeparator), "_")

func sanitize(title string) string {
	return separators.Replace(strings.TrimSpace(title))
}

// Renamer executes proposals.
type Renamer struct {
	logger *slog.Logger
}

// NewRenamer creates a new Renamer.
func NewRenamer(logger *slog.Logger) *Renamer {
	return &Renamer{logger: logger}
}

// Execute renames files in order. Unchanged proposals are skipped. A target
// that already exists is never overwritten; Execute stops with a conflict
// and reports how many renames completed.
func (r *Renamer) Execute(ctx context.Context, proposals []Proposal) (int, error) {
	if err := checkTargets(proposals); err != nil {
		return 0, err
	}

	done := 0
	for _, p := range proposals {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if p.Unchanged() {
			continue
		}
		if _, err := os.Lstat(p.To); err == nil {
			return done, errors.Conflictf("%s already exists", p.To)
		} else if !os.IsNotExist(err) {
			return done, errors.Wrapf(err, errors.CodeInternal, "stat %s", p.To)
		}
		if err := os.Rename(p.From, p.To); err != nil {
			return done, errors.Wrapf(err, errors.CodeInternal, "rename %s", p.From)
		}
		r.logger.Info("renamed", "from", filepath.Base(p.From), "to", filepath.Base(p.To))
		done++
	}
	return done, nil
}

// checkTargets rejects proposal sets where two tracks would get the same name.
func checkTargets(proposals []Proposal) error {
	seen := make(map[string]string, len(proposals))
	for _, p := range proposals {
		if prev, ok := seen[p.To]; ok {
			return errors.Conflictf("%s and %s would both be renamed to %s",
				filepath.Base(prev), filepath.Base(p.From), filepath.Base(p.To))
		}
		seen[p.To] = p.From
	}
	return nil
}
