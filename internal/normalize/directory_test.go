package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	s := Stats(decode(t, `{"applicants": 12, "matches": 4, "recent": 2}`))
	assert.Equal(t, 12, s.Applicants)
	assert.Equal(t, 4, s.Matches)
	assert.Equal(t, 2, s.Recent)

	assert.Zero(t, Stats(nil))
	assert.Zero(t, Stats(decode(t, `"not stats"`)))
	assert.Zero(t, Stats(decode(t, `{"applicants": "many"}`)))
}

func TestPersonListWrappedAndBare(t *testing.T) {
	wrapped := PersonList(decode(t, `{"users": [{"id": 3, "name": "Sarah Cohen"}]}`))
	assert.Len(t, wrapped, 1)
	assert.Equal(t, 3, wrapped[0].ID)
	assert.Equal(t, "Sarah", wrapped[0].FirstName)

	bare := PersonList(decode(t, `[{"id": 1}, {"id": 2}]`))
	assert.Len(t, bare, 2)

	assert.Empty(t, PersonList(decode(t, `"garbage"`)))
	assert.Empty(t, PersonList(nil))
}

func TestMatchmakersDropsMalformedEntries(t *testing.T) {
	directory := Matchmakers(decode(t, `[
		{"id": 1, "name": "Miriam", "email": "m@example.com"},
		"not a matchmaker",
		{"name": "no id"},
		{"id": 2, "name": "Rivka"}
	]`))

	assert.Len(t, directory, 2)
	assert.Equal(t, "Miriam", directory[0].Name)
	assert.Equal(t, "m@example.com", directory[0].Email)
	assert.Equal(t, 2, directory[1].ID)
	assert.Empty(t, directory[1].Email)
}
