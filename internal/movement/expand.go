package movement

import (
	"sort"
	"strconv"
	"strings"

	"github.com/listenupapp/albumtag/internal/errors"
)

// Anchor places the first movement of a composition on a track.
type Anchor struct {
	Start         int    `json:"start"`
	CompositionID string `json:"composition_id"`
}

// WorkPart is the work and movement assigned to one track.
type WorkPart struct {
	Work string `json:"work"`
	Part string `json:"part"`
}

// Title is the track title derived from the work and part.
func (wp WorkPart) Title() string {
	return TrackTitle(wp.Work, wp.Part)
}

// Assignment maps track numbers to their work and part.
type Assignment map[int]WorkPart

// Tracks returns the assigned track numbers in ascending order.
func (a Assignment) Tracks() []int {
	tracks := make([]int, 0, len(a))
	for n := range a {
		tracks = append(tracks, n)
	}
	sort.Ints(tracks)
	return tracks
}

// TrackTitle joins a work and movement into a track title, verbatim.
func TrackTitle(work, part string) string {
	return work + " - " + part
}

// Option configures an Expander.
type Option func(*Expander)

// WithStrictOverlap makes Expand fail when two anchors claim the same track
// instead of letting the later anchor win.
func WithStrictOverlap() Option {
	return func(e *Expander) {
		e.strict = true
	}
}

// Expander turns anchors into per-track assignments using a catalog.
// It holds no mutable state and is safe for concurrent use.
type Expander struct {
	catalog Catalog
	strict  bool
}

// NewExpander creates an Expander over a read-only catalog.
func NewExpander(catalog Catalog, opts ...Option) *Expander {
	e := &Expander{catalog: catalog}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand assigns every movement of each anchored composition to consecutive
// tracks starting at the anchor's start track. Anchors are applied in order
// and a later anchor overwrites an earlier one on the same track unless the
// expander is strict. Tracks between anchors are left out of the result.
func (e *Expander) Expand(anchors []Anchor) (Assignment, error) {
	result := make(Assignment)
	owner := make(map[int]string)
	for _, anchor := range anchors {
		comp, ok := e.catalog[anchor.CompositionID]
		if !ok {
			return nil, errors.UnknownComposition(anchor.CompositionID)
		}
		for i, part := range comp.Movements {
			track := anchor.Start + i
			if prev, taken := owner[track]; taken && e.strict {
				return nil, errors.OverlappingAssignmentf(
					"track %d is claimed by composition %q and composition %q",
					track, prev, anchor.CompositionID,
				).WithDetails(Overlap{Track: track, First: prev, Second: anchor.CompositionID})
			}
			owner[track] = anchor.CompositionID
			result[track] = WorkPart{Work: comp.Title, Part: part}
		}
	}
	return result, nil
}

// Overlap records a track claimed by two anchors.
type Overlap struct {
	Track  int    `json:"track"`
	First  string `json:"first"`
	Second string `json:"second"`
}

// Overlaps lists every track claimed by more than one anchor, in anchor order.
// Unknown compositions are ignored; Expand reports them.
func Overlaps(anchors []Anchor, catalog Catalog) []Overlap {
	var out []Overlap
	owner := make(map[int]string)
	for _, anchor := range anchors {
		comp, ok := catalog[anchor.CompositionID]
		if !ok {
			continue
		}
		for i := range comp.Movements {
			track := anchor.Start + i
			if prev, taken := owner[track]; taken {
				out = append(out, Overlap{Track: track, First: prev, Second: anchor.CompositionID})
			}
			owner[track] = anchor.CompositionID
		}
	}
	return out
}

// ParseAnchor parses "START:ID", e.g. "5:24".
func ParseAnchor(s string) (Anchor, error) {
	start, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Anchor{}, errors.Validationf("anchor %q: expected START:COMPOSITION", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil || n < 1 {
		return Anchor{}, errors.Validationf("anchor %q: start track must be a positive integer", s)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Anchor{}, errors.Validationf("anchor %q: missing composition id", s)
	}
	return Anchor{Start: n, CompositionID: id}, nil
}

// ParseAnchors parses anchors in order, failing on the first invalid one.
func ParseAnchors(args []string) ([]Anchor, error) {
	anchors := make([]Anchor, 0, len(args))
	for _, arg := range args {
		a, err := ParseAnchor(arg)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, a)
	}
	return anchors, nil
}
