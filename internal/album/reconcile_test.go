package album

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sources(tracks ...Fields) []FieldSource {
	out := make([]FieldSource, len(tracks))
	for i, t := range tracks {
		out[i] = t
	}
	return out
}

// assertDissentComplete rebuilds every track's value from canonical + dissent
// and compares it to the track's own normalized value.
func assertDissentComplete(t *testing.T, tracks []FieldSource, field string, r Result) {
	t.Helper()
	for i, track := range tracks {
		raw, _ := track.Get(field)
		own := Of(raw...)

		rebuilt := r.Canonical
		if v, ok := r.Dissent[i+1]; ok {
			rebuilt = v
			assert.False(t, v.Equal(r.Canonical), "track %d listed but equals canonical", i+1)
		}
		assert.True(t, own.Equal(rebuilt), "field %s track %d: got %v, want %v", field, i+1, rebuilt, own)
	}
}

func TestReconcile_AlbumExample(t *testing.T) {
	tracks := sources(
		Fields{"album": {"Album 1"}, "albumartist": {"Alice"}, "genre": {"Genre 1"}, "discnumber": {"1"}, "disctotal": {"2"}},
		Fields{"album": {"Album 1"}, "albumartist": {"Bob"}, "discnumber": {"1"}, "disctotal": {"2"}},
		Fields{"albumartist": {"Alice"}, "discnumber": {"1"}, "disctotal": {"2"}},
	)

	results := Reconcile(tracks, DefaultFields)
	require.Len(t, results, len(DefaultFields))

	assert.Equal(t, Scalar("Album 1"), results["album"].Canonical)
	assert.Equal(t, map[int]Value{3: Empty}, results["album"].Dissent)

	assert.Equal(t, Scalar("Alice"), results["albumartist"].Canonical)
	assert.Equal(t, map[int]Value{2: Scalar("Bob")}, results["albumartist"].Dissent)

	assert.Equal(t, Scalar("Genre 1"), results["genre"].Canonical)
	assert.Equal(t, map[int]Value{2: Empty, 3: Empty}, results["genre"].Dissent)

	assert.Equal(t, Scalar("1"), results["discnumber"].Canonical)
	assert.Empty(t, results["discnumber"].Dissent)
	assert.Equal(t, Scalar("2"), results["disctotal"].Canonical)
	assert.True(t, results["disctotal"].Agrees())

	for field, r := range results {
		assertDissentComplete(t, tracks, field, r)
	}
}

func TestReconcile_MultiArtist(t *testing.T) {
	tracks := sources(
		Fields{"album": {"Album 1"}, "albumartist": {"Alice", "Bob"}},
		Fields{"album": {"Album 1"}, "albumartist": {"Bob"}},
		Fields{"album": {""}, "albumartist": {"Alice", "Bob"}},
	)

	results := Reconcile(tracks, []string{"album", "albumartist"})

	assert.Equal(t, Scalar("Album 1"), results["album"].Canonical)
	assert.Equal(t, map[int]Value{3: Empty}, results["album"].Dissent)

	assert.Equal(t, Of("Alice", "Bob"), results["albumartist"].Canonical)
	assert.Equal(t, map[int]Value{2: Scalar("Bob")}, results["albumartist"].Dissent)
}

func TestReconcile_TieBreakFirstOccurrence(t *testing.T) {
	tests := []struct {
		name   string
		values [][]string
		want   Value
	}{
		{name: "ABAB", values: [][]string{{"A"}, {"B"}, {"A"}, {"B"}}, want: Scalar("A")},
		{name: "BABA", values: [][]string{{"B"}, {"A"}, {"B"}, {"A"}}, want: Scalar("B")},
		{name: "all distinct", values: [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}, want: Scalar("1")},
		{name: "first top element", values: [][]string{{"1"}, {"2"}, {"2"}, {"3"}, {"3"}}, want: Scalar("2")},
		{name: "majority wins", values: [][]string{{"1"}, {"2"}, {"3"}, {"2"}, {"2"}, {"4"}, {"5"}, {"2"}}, want: Scalar("2")},
		{name: "empty first does not vote", values: [][]string{nil, {"B"}, {"A"}}, want: Scalar("B")},
		{name: "tuple vs scalar tie", values: [][]string{{"x", "y"}, {"x"}, {"x"}, {"x", "y"}}, want: Of("x", "y")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks := make([]FieldSource, len(tt.values))
			for i, v := range tt.values {
				f := Fields{}
				if v != nil {
					f["genre"] = v
				}
				tracks[i] = f
			}
			r := Reconcile(tracks, []string{"genre"})["genre"]
			assert.True(t, tt.want.Equal(r.Canonical), "got %v want %v", r.Canonical, tt.want)
			assertDissentComplete(t, tracks, "genre", r)
		})
	}
}

func TestReconcile_AllEmpty(t *testing.T) {
	tracks := sources(Fields{}, Fields{"genre": {}}, Fields{"genre": {""}})

	r := Reconcile(tracks, []string{"genre"})["genre"]

	assert.True(t, r.Canonical.IsEmpty())
	assert.Empty(t, r.Dissent)
}

func TestReconcile_NoTracks(t *testing.T) {
	results := Reconcile(nil, DefaultFields)

	require.Len(t, results, len(DefaultFields))
	for _, r := range results {
		assert.True(t, r.Canonical.IsEmpty())
		assert.NotNil(t, r.Dissent)
		assert.Empty(t, r.Dissent)
	}
}

func TestReconcile_SingleTrack(t *testing.T) {
	r := Reconcile(sources(Fields{"album": {"Solo"}}), []string{"album", "genre"})

	assert.Equal(t, Scalar("Solo"), r["album"].Canonical)
	assert.Empty(t, r["album"].Dissent)
	assert.True(t, r["genre"].Canonical.IsEmpty())
	assert.Empty(t, r["genre"].Dissent)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	artists := []string{"Alice", "Bob"}
	tracks := sources(Fields{"albumartist": artists})

	r := Reconcile(tracks, []string{"albumartist"})["albumartist"]
	artists[0] = "Mallory"

	assert.Equal(t, []string{"Alice", "Bob"}, r.Canonical.Strings())
}

func TestReconcile_Deterministic(t *testing.T) {
	tracks := sources(
		Fields{"genre": {"Classical"}},
		Fields{"genre": {"Chamber"}},
		Fields{"genre": {"Chamber"}},
		Fields{"genre": {"Classical"}},
	)
	first := Reconcile(tracks, []string{"genre"})
	for range 20 {
		assert.Equal(t, first, Reconcile(tracks, []string{"genre"}))
	}
	assert.Equal(t, Scalar("Classical"), first["genre"].Canonical)
}

func TestFixes(t *testing.T) {
	results := map[string]Result{
		"album":     {Canonical: Scalar("Album 1"), Dissent: map[int]Value{3: Empty}},
		"genre":     {Canonical: Scalar("Genre 1"), Dissent: map[int]Value{2: Empty, 3: Empty}},
		"disctotal": {Canonical: Empty, Dissent: map[int]Value{}},
	}

	fixes := Fixes(results)

	assert.Equal(t, map[int]map[string]Value{
		2: {"genre": Scalar("Genre 1")},
		3: {"album": Scalar("Album 1"), "genre": Scalar("Genre 1")},
	}, fixes)
}

func TestSummarize(t *testing.T) {
	results := map[string]Result{
		"album":      {Canonical: Scalar("Album 1"), Dissent: map[int]Value{3: Empty}},
		"genre":      {Canonical: Scalar("Genre 1"), Dissent: map[int]Value{2: Empty, 3: Empty}},
		"discnumber": {Canonical: Scalar("1"), Dissent: map[int]Value{}},
	}

	assert.Equal(t, Summary{Fields: 3, FieldsInAgreement: 1, DissentingTracks: 2}, Summarize(results))
	assert.Equal(t, []int{2, 3}, SortedTracks(results["genre"].Dissent))
}
