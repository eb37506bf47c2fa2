package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/listenupapp/albumtag/internal/album"
	"github.com/listenupapp/albumtag/internal/movement"
	"github.com/listenupapp/albumtag/internal/rename"
	"github.com/listenupapp/albumtag/internal/tagging"
)

// Audit is the outcome of reconciling an album's fields.
type Audit struct {
	Album   string                  `json:"album"`
	Tracks  []string                `json:"tracks"`
	Fields  []string                `json:"fields"`
	Results map[string]album.Result `json:"results"`
	Summary album.Summary           `json:"summary"`
	Fixes   []tagging.FieldChange   `json:"fixes,omitempty"`
	Applied bool                    `json:"applied"`
}

// Works is the outcome of expanding anchors over an album.
type Works struct {
	Album    string              `json:"album"`
	Result   *tagging.WorkResult `json:"result"`
	Overlaps []movement.Overlap  `json:"overlaps,omitempty"`
}

// Renames is the outcome of proposing or executing renames.
type Renames struct {
	Album     string            `json:"album"`
	Proposals []rename.Proposal `json:"proposals"`
	Renamed   int               `json:"renamed"`
	Applied   bool              `json:"applied"`
}

// Printer writes reports to an output stream.
type Printer struct {
	out  io.Writer
	json bool
}

// NewPrinter creates a printer. With asJSON set every report is written as
// one indented JSON document.
func NewPrinter(out io.Writer, asJSON bool) *Printer {
	return &Printer{out: out, json: asJSON}
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) println(s string) error {
	_, err := fmt.Fprintln(p.out, s)
	return err
}

// Audit prints one row per field: the canonical value and each dissenting
// track with its value.
func (p *Printer) Audit(a Audit) error {
	if p.json {
		return p.writeJSON(a)
	}

	rows := make([][]string, 0, len(a.Fields))
	for _, field := range a.Fields {
		r := a.Results[field]
		if r.Agrees() {
			rows = append(rows, []string{field, cell(r.Canonical), "", "ok"})
			continue
		}
		for i, track := range album.SortedTracks(r.Dissent) {
			name := field
			canonical := cell(r.Canonical)
			if i > 0 {
				name, canonical = "", ""
			}
			rows = append(rows, []string{name, canonical, trackLabel(track, a.Tracks), cell(r.Dissent[track])})
		}
	}
	if err := p.println(Table([]string{"Field", "Canonical", "Track", "Value"}, rows, nil)); err != nil {
		return err
	}

	if len(a.Fixes) > 0 {
		fixRows := make([][]string, 0, len(a.Fixes))
		for _, c := range a.Fixes {
			fixRows = append(fixRows, []string{
				strconv.Itoa(c.Track), filepath.Base(c.Path), c.Field, cell(c.Before), cell(c.After),
			})
		}
		aligns := []Alignment{AlignRight}
		if err := p.println(Table([]string{"#", "File", "Field", "Before", "After"}, fixRows, aligns)); err != nil {
			return err
		}
	}

	return p.println(fmt.Sprintf("%d of %d fields agree, %d tracks dissent%s",
		a.Summary.FieldsInAgreement, a.Summary.Fields, a.Summary.DissentingTracks, mode(a.Applied, len(a.Fixes) > 0)))
}

// Works prints the before and proposed title of every track.
func (p *Printer) Works(w Works) error {
	if p.json {
		return p.writeJSON(w)
	}

	rows := make([][]string, 0, len(w.Result.Changes))
	for _, c := range w.Result.Changes {
		proposed := c.After.Title
		if !c.Assigned {
			proposed = "(unchanged)"
		}
		rows = append(rows, []string{strconv.Itoa(c.Track), filepath.Base(c.Path), c.Before.Title, proposed})
	}
	if err := p.println(Table([]string{"#", "File", "Title", "Proposed"}, rows, []Alignment{AlignRight})); err != nil {
		return err
	}

	for _, o := range w.Overlaps {
		if err := p.println(fmt.Sprintf("warning: track %d is claimed by compositions %s and %s; %s wins",
			o.Track, o.First, o.Second, o.Second)); err != nil {
			return err
		}
	}
	if len(w.Result.Unmatched) > 0 {
		if err := p.println(fmt.Sprintf("warning: no files for tracks %s", joinInts(w.Result.Unmatched))); err != nil {
			return err
		}
	}
	if w.Result.Saved {
		return p.println("tags written")
	}
	return p.println("dry run, nothing written (use --apply)")
}

// Renames prints each proposed rename.
func (p *Printer) Renames(r Renames) error {
	if p.json {
		return p.writeJSON(r)
	}

	rows := make([][]string, 0, len(r.Proposals))
	changed := 0
	for _, prop := range r.Proposals {
		to := filepath.Base(prop.To)
		if prop.Unchanged() {
			to = "(unchanged)"
		} else {
			changed++
		}
		rows = append(rows, []string{filepath.Base(prop.From), to})
	}
	if err := p.println(Table([]string{"Current", "Proposed"}, rows, nil)); err != nil {
		return err
	}

	if r.Applied {
		return p.println(fmt.Sprintf("renamed %d of %d files", r.Renamed, changed))
	}
	return p.println(fmt.Sprintf("%d files would be renamed (dry run)", changed))
}

// Catalogs prints the available catalog names.
func (p *Printer) Catalogs(names []string) error {
	if p.json {
		return p.writeJSON(names)
	}
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n}
	}
	return p.println(Table([]string{"Catalog"}, rows, nil))
}

// Compositions prints the compositions of a catalog with their movement counts.
func (p *Printer) Compositions(c movement.Catalog) error {
	if p.json {
		return p.writeJSON(c)
	}
	ids := c.IDs()
	rows := make([][]string, len(ids))
	for i, id := range ids {
		comp := c[id]
		rows[i] = []string{id, comp.Title, strconv.Itoa(len(comp.Movements))}
	}
	return p.println(Table([]string{"ID", "Title", "Movements"}, rows, []Alignment{AlignRight, AlignLeft, AlignRight}))
}

// Composition prints the movements of one composition in order.
func (p *Printer) Composition(id string, comp movement.Composition) error {
	if p.json {
		return p.writeJSON(struct {
			ID string `json:"id"`
			movement.Composition
		}{id, comp})
	}
	rows := make([][]string, len(comp.Movements))
	for i, m := range comp.Movements {
		rows[i] = []string{strconv.Itoa(i + 1), m}
	}
	if err := p.println(fmt.Sprintf("%s: %s", id, comp.Title)); err != nil {
		return err
	}
	return p.println(Table([]string{"#", "Movement"}, rows, []Alignment{AlignRight}))
}

// cell renders a value for a table, marking Empty so it is not mistaken for
// a blank cell.
func cell(v album.Value) string {
	if v.IsEmpty() {
		return "(empty)"
	}
	return v.String()
}

func trackLabel(track int, paths []string) string {
	if track >= 1 && track <= len(paths) {
		return fmt.Sprintf("%d %s", track, filepath.Base(paths[track-1]))
	}
	return strconv.Itoa(track)
}

func mode(applied, changes bool) string {
	switch {
	case !changes:
		return ""
	case applied:
		return "; changes written"
	default:
		return "; dry run, nothing written (use --apply)"
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
