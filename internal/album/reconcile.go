package album

// DefaultFields are the tags expected to be identical on every track of an album.
var DefaultFields = []string{"album", "albumartist", "genre", "discnumber", "disctotal"}

// FieldSource exposes the raw values of one track's tags.
// A missing field reports ok=false and is treated as Empty.
type FieldSource interface {
	Get(field string) (values []string, ok bool)
}

// Fields is an in-memory FieldSource.
type Fields map[string][]string

// Get implements FieldSource.
func (f Fields) Get(field string) ([]string, bool) {
	v, ok := f[field]
	return v, ok
}

// Result is the reconciliation outcome for one field.
type Result struct {
	// Canonical is the most common non-empty value, or Empty when no track has one.
	Canonical Value `json:"canonical"`
	// Dissent maps 1-based track index to that track's value for every
	// track that disagrees with Canonical.
	Dissent map[int]Value `json:"dissent"`
}

// Agrees reports whether every track carries the canonical value.
func (r Result) Agrees() bool {
	return len(r.Dissent) == 0
}

// tallyEntry is a distinct non-empty value with its vote count and the
// first track index it was seen on.
type tallyEntry struct {
	value Value
	count int
	first int
}

// tally counts non-empty votes, keeping entries in first-occurrence order.
type tally struct {
	index   map[string]int
	entries []tallyEntry
}

func newTally() *tally {
	return &tally{index: make(map[string]int)}
}

func (t *tally) add(v Value, track int) {
	if v.IsEmpty() {
		return
	}
	key := v.Key()
	if i, ok := t.index[key]; ok {
		t.entries[i].count++
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, tallyEntry{value: v, count: 1, first: track})
}

// winner picks the highest count, breaking ties by earliest first occurrence.
func (t *tally) winner() Value {
	if len(t.entries) == 0 {
		return Empty
	}
	best := t.entries[0]
	for _, e := range t.entries[1:] {
		if e.count > best.count || (e.count == best.count && e.first < best.first) {
			best = e
		}
	}
	return best.value
}

// Reconcile decides the canonical value of each field across tracks and
// records every track that disagrees. Track indexes are 1-based in input order.
// It never fails: missing fields, no tracks and single tracks are all valid.
func Reconcile(tracks []FieldSource, fields []string) map[string]Result {
	results := make(map[string]Result, len(fields))
	for _, field := range fields {
		results[field] = reconcileField(tracks, field)
	}
	return results
}

func reconcileField(tracks []FieldSource, field string) Result {
	values := make([]Value, len(tracks))
	t := newTally()
	for i, track := range tracks {
		raw, _ := track.Get(field)
		values[i] = Of(raw...)
		t.add(values[i], i+1)
	}

	canonical := t.winner()
	dissent := make(map[int]Value)
	for i, v := range values {
		if !v.Equal(canonical) {
			dissent[i+1] = v
		}
	}
	return Result{Canonical: canonical, Dissent: dissent}
}
