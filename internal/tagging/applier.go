// Package tagging writes computed tag values back to album tracks.
package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/listenupapp/albumtag/internal/album"
	"github.com/listenupapp/albumtag/internal/movement"
	"github.com/listenupapp/albumtag/internal/tags"
)

// TrackState is the title, work and part of a track at one point in time.
type TrackState struct {
	Title string `json:"title"`
	Work  string `json:"work"`
	Part  string `json:"part"`
}

func stateOf(t tags.Track) TrackState {
	return TrackState{
		Title: tags.First(t, tags.FieldTitle),
		Work:  tags.First(t, tags.FieldWork),
		Part:  tags.First(t, tags.FieldPart),
	}
}

// WorkChange describes one track before and after applying an assignment.
// Tracks without an assignment are reported with Assigned=false and
// identical Before and After.
type WorkChange struct {
	Path     string     `json:"path"`
	Before   TrackState `json:"before"`
	After    TrackState `json:"after"`
	Track    int        `json:"track"`
	Assigned bool       `json:"assigned"`
}

// WorkResult is the outcome of ApplyWorks.
type WorkResult struct {
	Changes []WorkChange `json:"changes"`
	// Unmatched lists assigned track numbers with no file in the album.
	Unmatched []int `json:"unmatched,omitempty"`
	Saved     bool  `json:"saved"`
}

// FieldChange is one field rewritten to its canonical value.
type FieldChange struct {
	Field  string      `json:"field"`
	Path   string      `json:"path"`
	Before album.Value `json:"before"`
	After  album.Value `json:"after"`
	Track  int         `json:"track"`
}

// Applier writes tags to tracks. In dry-run mode it computes and reports
// changes without modifying any file.
type Applier struct {
	logger *slog.Logger
	dryRun bool
}

// NewApplier creates a new Applier.
func NewApplier(logger *slog.Logger, dryRun bool) *Applier {
	return &Applier{logger: logger, dryRun: dryRun}
}

// DryRun reports whether the applier leaves files untouched.
func (a *Applier) DryRun() bool {
	return a.dryRun
}

// ApplyWorks sets title, work and part on every track named in the
// assignment. Tracks are numbered from 1 in the order given and are visited
// in that order.
func (a *Applier) ApplyWorks(ctx context.Context, tracks []tags.Track, assignment movement.Assignment) (*WorkResult, error) {
	result := &WorkResult{
		Changes: make([]WorkChange, 0, len(tracks)),
		Saved:   !a.dryRun,
	}

	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		number := i + 1
		before := stateOf(track)
		change := WorkChange{Track: number, Path: track.Path(), Before: before, After: before}

		wp, ok := assignment[number]
		if ok {
			change.Assigned = true
			change.After = TrackState{Title: wp.Title(), Work: wp.Work, Part: wp.Part}
			if !a.dryRun {
				if err := writeWork(track, change.After); err != nil {
					return nil, fmt.Errorf("track %d: %w", number, err)
				}
			}
		}

		a.logger.Debug("track work",
			"track", number,
			"path", track.Path(),
			"assigned", change.Assigned,
			"title", change.After.Title,
		)
		result.Changes = append(result.Changes, change)
	}

	for _, number := range assignment.Tracks() {
		if number < 1 || number > len(tracks) {
			result.Unmatched = append(result.Unmatched, number)
		}
	}
	if len(result.Unmatched) > 0 {
		a.logger.Warn("assignment names tracks missing from the album",
			"tracks", result.Unmatched,
			"album_tracks", len(tracks),
		)
	}

	return result, nil
}

func writeWork(track tags.Track, state TrackState) error {
	if err := track.Set(tags.FieldTitle, state.Title); err != nil {
		return err
	}
	if err := track.Set(tags.FieldWork, state.Work); err != nil {
		return err
	}
	if err := track.Set(tags.FieldPart, state.Part); err != nil {
		return err
	}
	return track.Save()
}

// ApplyFixes rewrites dissenting fields to their canonical values. Fixes
// are keyed by 1-based track number, as returned by album.Fixes.
func (a *Applier) ApplyFixes(ctx context.Context, tracks []tags.Track, fixes map[int]map[string]album.Value) ([]FieldChange, error) {
	var changes []FieldChange
	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		number := i + 1
		fields := fixes[number]
		if len(fields) == 0 {
			continue
		}

		names := make([]string, 0, len(fields))
		for field := range fields {
			names = append(names, field)
		}
		sort.Strings(names)

		for _, field := range names {
			raw, _ := track.Get(field)
			change := FieldChange{
				Track:  number,
				Path:   track.Path(),
				Field:  field,
				Before: album.Of(raw...),
				After:  fields[field],
			}
			if !a.dryRun {
				if err := track.Set(field, change.After.Strings()...); err != nil {
					return nil, fmt.Errorf("track %d field %s: %w", number, field, err)
				}
			}
			changes = append(changes, change)
		}

		if !a.dryRun {
			if err := track.Save(); err != nil {
				return nil, fmt.Errorf("track %d: %w", number, err)
			}
		}
	}

	a.logger.Info("album fixes", "changes", len(changes), "dry_run", a.dryRun)
	return changes, nil
}
