package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shidduch-link/matchmaker-web/internal/models"
)

// decode mirrors how handlers hand upstream bodies to the normalizer.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestPerson_EmptyMapping(t *testing.T) {
	p := Person(decode(t, `{}`), 7)

	assert.Equal(t, models.Person{
		ID:              7,
		Name:            "User 7",
		FirstName:       "User 7",
		LastName:        "",
		Age:             0,
		Gender:          "Unknown",
		CurrentLocation: "Unknown",
	}, p)
}

func TestPerson_NameSplit(t *testing.T) {
	p := Person(decode(t, `{"name":"Sarah Cohen"}`), 3)

	assert.Equal(t, "Sarah Cohen", p.Name)
	assert.Equal(t, "Sarah", p.FirstName)
	assert.Equal(t, "Cohen", p.LastName)
}

func TestPerson_FirstNameOnly(t *testing.T) {
	p := Person(decode(t, `{"first_name":"Dana"}`), 3)

	assert.Equal(t, "Dana", p.Name)
	assert.Equal(t, "Dana", p.FirstName)
	assert.Equal(t, "", p.LastName)
}

func TestPerson_LastNameOnlyKeepsPlaceholderWhole(t *testing.T) {
	p := Person(decode(t, `{"last_name":"Cohen"}`), 3)

	// The synthesized display name is not split into parts.
	assert.Equal(t, "User 3", p.Name)
	assert.Equal(t, "User 3", p.FirstName)
	assert.Equal(t, "Cohen", p.LastName)
}

func TestPerson_NameJoinedFromParts(t *testing.T) {
	p := Person(decode(t, `{"first_name":"Sarah","last_name":"Cohen"}`), 3)

	assert.Equal(t, "Sarah Cohen", p.Name)
	assert.Equal(t, "Sarah", p.FirstName)
	assert.Equal(t, "Cohen", p.LastName)
}

func TestPerson_LocationFromCityCountry(t *testing.T) {
	p := Person(decode(t, `{"city":"Jerusalem","country":"Israel"}`), 3)
	assert.Equal(t, "Jerusalem, Israel", p.CurrentLocation)

	// city without country is not enough
	p = Person(decode(t, `{"city":"Jerusalem"}`), 3)
	assert.Equal(t, "Unknown", p.CurrentLocation)
}

func TestPerson_ExplicitLocationWins(t *testing.T) {
	p := Person(decode(t, `{"current_location":"Tel Aviv","city":"Jerusalem","country":"Israel"}`), 3)
	assert.Equal(t, "Tel Aviv", p.CurrentLocation)
}

func TestPerson_BareString(t *testing.T) {
	p := Person("Miriam Levi", 12)

	assert.Equal(t, models.Person{
		ID:              12,
		Name:            "Miriam Levi",
		FirstName:       "Miriam Levi",
		LastName:        "",
		Age:             0,
		Gender:          "Unknown",
		CurrentLocation: "Unknown",
	}, p)
}

func TestPerson_FullRecordPassesThrough(t *testing.T) {
	p := Person(decode(t, `{
		"id": 42,
		"name": "David Azulay",
		"first_name": "David",
		"last_name": "Azulay",
		"age": 29,
		"gender": "male",
		"current_location": "Haifa, Israel"
	}`), 7)

	assert.Equal(t, models.Person{
		ID:              42,
		Name:            "David Azulay",
		FirstName:       "David",
		LastName:        "Azulay",
		Age:             29,
		Gender:          "male",
		CurrentLocation: "Haifa, Israel",
	}, p)
}

func TestPerson_TypeDriftTolerated(t *testing.T) {
	// numeric strings for id/age, non-string name
	p := Person(decode(t, `{"id":"15","age":"27","name":123}`), 7)

	assert.Equal(t, 15, p.ID)
	assert.Equal(t, 27, p.Age)
	// a non-string name is treated as absent
	assert.Equal(t, "User 7", p.Name)
}

func TestPerson_NilAndWrongShapes(t *testing.T) {
	for _, raw := range []any{nil, []any{1, 2}, 3.14, true} {
		p := Person(raw, 9)
		assert.Equal(t, 9, p.ID)
		assert.Equal(t, "User 9", p.Name)
		assert.Equal(t, "Unknown", p.Gender)
		assert.Equal(t, "Unknown", p.CurrentLocation)
	}
}
