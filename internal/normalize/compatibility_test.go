package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibility_FactorExpansion(t *testing.T) {
	raw := decode(t, `{
		"score": 72,
		"compatibility": {
			"religious_views": {"score": 80, "details": {"level": "match"}}
		}
	}`)

	c := Compatibility(raw)

	assert.Equal(t, 72.0, c.OverallScore)
	require.Len(t, c.Factors, 1)

	f := c.Factors[0]
	assert.Equal(t, "Religious Views", f.Name)
	assert.Equal(t, 80.0, f.Score)
	assert.Equal(t, 1.0, f.Weight) // weight defaults to 1
	assert.Equal(t, "level: match", f.Notes)
}

func TestCompatibility_MultipleFactorsOrdered(t *testing.T) {
	raw := decode(t, `{
		"score": 64,
		"compatibility": {
			"shared_values": {"score": 60, "weight": 3},
			"age_gap": {"score": 90, "weight": 1},
			"location": {"score": 40}
		}
	}`)

	c := Compatibility(raw)
	require.Len(t, c.Factors, 3)

	// factors come back in category order
	assert.Equal(t, "Age Gap", c.Factors[0].Name)
	assert.Equal(t, "Location", c.Factors[1].Name)
	assert.Equal(t, "Shared Values", c.Factors[2].Name)
	assert.Equal(t, 3.0, c.Factors[2].Weight)
}

func TestCompatibility_NotesJoinMultiplePairs(t *testing.T) {
	raw := decode(t, `{
		"score": 50,
		"compatibility": {
			"dietary": {"score": 55, "details": {"kosher": "both strict", "level": "high"}}
		}
	}`)

	c := Compatibility(raw)
	require.Len(t, c.Factors, 1)
	assert.Equal(t, "kosher: both strict; level: high", c.Factors[0].Notes)
}

func TestCompatibility_MalformedEntriesSkipped(t *testing.T) {
	raw := decode(t, `{
		"score": 30,
		"compatibility": {
			"valid": {"score": 45},
			"no_score": {"weight": 2},
			"wrong_shape": [1, 2, 3],
			"bare": "string"
		}
	}`)

	c := Compatibility(raw)
	assert.Equal(t, 30.0, c.OverallScore)
	require.Len(t, c.Factors, 1)
	assert.Equal(t, "Valid", c.Factors[0].Name)
}

func TestCompatibility_AbsentOrMalformedData(t *testing.T) {
	for _, raw := range []any{
		nil,
		decode(t, `"just a string"`),
		decode(t, `[]`),
		decode(t, `{}`),
		decode(t, `{"compatibility":"oops"}`),
	} {
		c := Compatibility(raw)
		assert.Equal(t, 0.0, c.OverallScore)
		assert.Empty(t, c.Factors)
		assert.NotNil(t, c.Factors)
	}
}

func TestCompatibility_ScoreTypeDrift(t *testing.T) {
	c := Compatibility(decode(t, `{"score":"88"}`))
	assert.Equal(t, 88.0, c.OverallScore)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Religious Views", displayName("religious_views"))
	assert.Equal(t, "Age", displayName("age"))
	assert.Equal(t, "Shared Family Values", displayName("shared_family_values"))
}
