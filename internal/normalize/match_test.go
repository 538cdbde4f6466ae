package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchList_WrappedMapping(t *testing.T) {
	raw := decode(t, `{"matches":[{"applicant_name":"A B","match_name":"C D","score":85}]}`)

	matches := MatchList(raw)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "A", m.UserA.FirstName)
	assert.Equal(t, "B", m.UserA.LastName)
	assert.Equal(t, "C", m.UserB.FirstName)
	assert.Equal(t, "D", m.UserB.LastName)
	assert.Equal(t, 85.0, m.Score)
	assert.Equal(t, "Recent", m.DateCreated)
}

func TestMatchList_BareList(t *testing.T) {
	raw := decode(t, `[{"applicant_id":1,"applicant_name":"A B","match_id":2,"match_name":"C D","score":70}]`)

	matches := MatchList(raw)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].UserA.ID)
	assert.Equal(t, 2, matches[0].UserB.ID)
}

func TestMatchList_UnrecognizedShape(t *testing.T) {
	assert.Empty(t, MatchList(decode(t, `"not a list or dict"`)))
	assert.Empty(t, MatchList(decode(t, `{"something_else":[]}`)))
	assert.Empty(t, MatchList(nil))
	assert.Empty(t, MatchList(decode(t, `42`)))
}

func TestMatchList_DropsNonMappingElements(t *testing.T) {
	raw := decode(t, `[{"applicant_name":"A B","match_name":"C D","score":60},"bogus entry"]`)

	matches := MatchList(raw)
	require.Len(t, matches, 1)
	assert.Equal(t, "A B", matches[0].UserA.Name)
}

func TestMatchList_DefaultsForMissingFields(t *testing.T) {
	raw := decode(t, `[{}]`)

	matches := MatchList(raw)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "Unknown", m.UserA.Name)
	assert.Equal(t, "Unknown", m.UserB.Name)
	assert.Equal(t, 0, m.UserA.ID)
	assert.Equal(t, 0.0, m.Score)
	assert.Equal(t, "Unknown", m.UserA.CurrentLocation)
	assert.Equal(t, "Unknown", m.UserB.Gender)
	assert.Equal(t, "Recent", m.DateCreated)
	assert.Nil(t, m.Compatibility)
}

func TestMatchList_ParticipantDetails(t *testing.T) {
	raw := decode(t, `[{
		"applicant_id": 4,
		"applicant_name": "Rachel Mizrahi",
		"applicant_age": 26,
		"applicant_location": "Bnei Brak, Israel",
		"applicant_gender": "female",
		"match_id": 9,
		"match_name": "Yosef",
		"match_age": 28,
		"score": 91,
		"date_created": "2024-03-01"
	}]`)

	matches := MatchList(raw)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, 4, m.UserA.ID)
	assert.Equal(t, "Rachel", m.UserA.FirstName)
	assert.Equal(t, "Mizrahi", m.UserA.LastName)
	assert.Equal(t, 26, m.UserA.Age)
	assert.Equal(t, "Bnei Brak, Israel", m.UserA.CurrentLocation)
	assert.Equal(t, "female", m.UserA.Gender)

	// single-token name keeps the whole string as first name
	assert.Equal(t, "Yosef", m.UserB.FirstName)
	assert.Equal(t, "", m.UserB.LastName)
	assert.Equal(t, "Unknown", m.UserB.CurrentLocation)

	assert.Equal(t, "2024-03-01", m.DateCreated)
}

func TestMatchList_InlineCompatibility(t *testing.T) {
	raw := decode(t, `[{
		"applicant_name": "A B",
		"match_name": "C D",
		"score": 80,
		"compatibility": {
			"values": {"score": 75, "weight": 2},
			"broken": "not a mapping"
		}
	}]`)

	matches := MatchList(raw)
	require.Len(t, matches, 1)
	require.Contains(t, matches[0].Compatibility, "values")

	factor := matches[0].Compatibility["values"]
	assert.Equal(t, "Values", factor.Name)
	assert.Equal(t, 75.0, factor.Score)
	assert.Equal(t, 2.0, factor.Weight)

	// malformed categories are skipped, not fatal
	assert.NotContains(t, matches[0].Compatibility, "broken")
}

func TestMatchListForUser_OverridesApplicantID(t *testing.T) {
	raw := decode(t, `{"matches":[{"applicant_id":999,"applicant_name":"A B","match_id":2,"match_name":"C D"}]}`)

	matches := MatchListForUser(raw, 5)
	require.Len(t, matches, 1)
	assert.Equal(t, 5, matches[0].UserA.ID)
	assert.Equal(t, 2, matches[0].UserB.ID)
}
