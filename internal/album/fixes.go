package album

import "sort"

// Fixes returns, per 1-based track index, the field values that would bring
// the track in line with the canonical values. Fields whose canonical value
// is Empty are never proposed since there is nothing to converge on.
func Fixes(results map[string]Result) map[int]map[string]Value {
	fixes := make(map[int]map[string]Value)
	for field, r := range results {
		if r.Canonical.IsEmpty() {
			continue
		}
		for track := range r.Dissent {
			if fixes[track] == nil {
				fixes[track] = make(map[string]Value)
			}
			fixes[track][field] = r.Canonical
		}
	}
	return fixes
}

// Summary condenses a reconciliation for logs and report footers.
type Summary struct {
	Fields            int `json:"fields"`
	FieldsInAgreement int `json:"fields_in_agreement"`
	DissentingTracks  int `json:"dissenting_tracks"`
}

// Summarize counts agreeing fields and distinct dissenting tracks.
func Summarize(results map[string]Result) Summary {
	s := Summary{Fields: len(results)}
	tracks := make(map[int]struct{})
	for _, r := range results {
		if r.Agrees() {
			s.FieldsInAgreement++
			continue
		}
		for track := range r.Dissent {
			tracks[track] = struct{}{}
		}
	}
	s.DissentingTracks = len(tracks)
	return s
}

// SortedTracks returns the track indexes of a dissent mapping in ascending order.
func SortedTracks(dissent map[int]Value) []int {
	out := make([]int, 0, len(dissent))
	for track := range dissent {
		out = append(out, track)
	}
	sort.Ints(out)
	return out
}
