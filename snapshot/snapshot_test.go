package snapshot

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/models"
	"gradebook/roster"
)

func classFixture(t *testing.T) *roster.Roster {
	t.Helper()

	r := roster.New()
	for _, fixture := range []struct {
		name  string
		roll  int
		marks map[string]float64
	}{
		{"Amy", 101, map[string]float64{"Math": 85, "Physics": 78, "Chemistry": 90}},
		{"Bob", 102, map[string]float64{"Math": 65, "Physics": 70.5}},
		{"Cid", 103, map[string]float64{"Math": 92, "English": 88, "Biology": 85}},
	} {
		s := models.NewStudent(fixture.name, fixture.roll)
		for subject, mark := range fixture.marks {
			require.NoError(t, s.SetMark(subject, mark))
		}
		require.NoError(t, r.Add(s))
	}
	return r
}

func assertSameRoster(t *testing.T, want, got *roster.Roster) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	for _, ws := range want.ListAll() {
		gs, err := got.Get(ws.Roll)
		require.NoError(t, err, "roll %d missing after round trip", ws.Roll)
		assert.Equal(t, ws.Name, gs.Name)
		assert.Equal(t, ws.Marks, gs.Marks)
	}
}

func TestRoundTrip(t *testing.T) {
	r := classFixture(t)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, r))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assertSameRoster(t, r, loaded)
}

func TestRoundTripEmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, roster.New()))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestRoundTripMarklessStudent(t *testing.T) {
	r := roster.New()
	require.NoError(t, r.Add(models.NewStudent("Dan", 104)))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, r))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assertSameRoster(t, r, loaded)
}

func TestSaveOrdersByAscendingRoll(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, classFixture(t)))

	var entries []struct {
		Name  string             `json:"name"`
		Roll  int                `json:"roll"`
		Marks map[string]float64 `json:"marks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, 101, entries[0].Roll)
	assert.Equal(t, 102, entries[1].Roll)
	assert.Equal(t, 103, entries[2].Roll)
	assert.Equal(t, "Amy", entries[0].Name)
	assert.NotNil(t, entries[0].Marks)
}

func TestRoundTripThroughFile(t *testing.T) {
	r := classFixture(t)
	path := filepath.Join(t.TempDir(), "students.json")

	require.NoError(t, SaveFile(path, r))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assertSameRoster(t, r, loaded)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadIntoOverwritesByRoll(t *testing.T) {
	r := roster.New()
	existing := models.NewStudent("Old Amy", 101)
	require.NoError(t, existing.SetMark("History", 40))
	require.NoError(t, r.Add(existing))

	doc := `[{"name": "Amy", "roll": 101, "marks": {"Math": 85}}]`
	require.NoError(t, LoadInto(strings.NewReader(doc), r))

	s, err := r.Get(101)
	require.NoError(t, err)
	assert.Equal(t, "Amy", s.Name)
	assert.Equal(t, map[string]float64{"Math": 85}, s.Marks)
}

func TestLoadIntoLastWriteWinsOnDuplicateRolls(t *testing.T) {
	doc := `[
		{"name": "First", "roll": 101, "marks": {"Math": 10}},
		{"name": "Second", "roll": 101, "marks": {"Math": 90}}
	]`

	r, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())

	s, err := r.Get(101)
	require.NoError(t, err)
	assert.Equal(t, "Second", s.Name)
	assert.Equal(t, 90.0, s.Marks["Math"])
}

func TestLoadTrustsScoresAsWritten(t *testing.T) {
	// Bounds are not re-checked on load; the document is authoritative.
	doc := `[{"name": "Amy", "roll": 101, "marks": {"Math": 150}}]`

	r, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	s, err := r.Get(101)
	require.NoError(t, err)
	assert.Equal(t, 150.0, s.Marks["Math"])
}

func TestLoadDefaultsMissingMarks(t *testing.T) {
	doc := `[{"name": "Dan", "roll": 104}]`

	r, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	s, err := r.Get(104)
	require.NoError(t, err)
	assert.NotNil(t, s.Marks)
	assert.Empty(t, s.Marks)
	_, ok := s.Average()
	assert.False(t, ok)
}

func TestLoadMalformedDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "this is not json"},
		{"object instead of array", `{"name": "Amy"}`},
		{"truncated", `[{"name": "Amy", "roll": 1`},
		{"null entry", `[null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}
