package normalize

import (
	"go.uber.org/zap"

	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/pkg/logger"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
)

// MatchList normalizes an upstream match listing. The upstream API returns
// either a bare list or a mapping with a "matches" key; any other shape
// yields an empty list. Elements that are not mappings are skipped and
// counted as dropped rather than aborting the whole list.
func MatchList(raw any) []models.Match {
	return matchList(raw, nil)
}

// MatchListForUser normalizes a per-user match listing. The viewed user is
// always the applicant side, so their identifier overrides whatever the
// entry carries.
func MatchListForUser(raw any, userID int) []models.Match {
	return matchList(raw, &userID)
}

func matchList(raw any, applicantID *int) []models.Match {
	var entries []any

	switch v := raw.(type) {
	case []any:
		entries = v
	case map[string]any:
		if inner, ok := v["matches"].([]any); ok {
			entries = inner
		}
	}

	matches := make([]models.Match, 0, len(entries))
	dropped := 0

	for _, entry := range entries {
		m, ok := asMap(entry)
		if !ok {
			dropped++
			continue
		}
		matches = append(matches, matchFromEntry(m, applicantID))
	}

	if dropped > 0 {
		metrics.NormalizerDroppedRecords.WithLabelValues("match").Add(float64(dropped))
		logger.Warn("Skipped malformed match entries",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(matches)),
		)
	}

	return matches
}

func matchFromEntry(m map[string]any, applicantID *int) models.Match {
	applicantName, ok := stringField(m, "applicant_name")
	if !ok {
		applicantName = unknownValue
	}
	matchName, ok := stringField(m, "match_name")
	if !ok {
		matchName = unknownValue
	}

	aID, _ := intField(m, "applicant_id")
	if applicantID != nil {
		aID = *applicantID
	}
	bID, _ := intField(m, "match_id")

	aAge, _ := intField(m, "applicant_age")
	bAge, _ := intField(m, "match_age")

	aLocation, ok := stringField(m, "applicant_location")
	if !ok {
		aLocation = unknownValue
	}
	bLocation, ok := stringField(m, "match_location")
	if !ok {
		bLocation = unknownValue
	}

	aGender, ok := stringField(m, "applicant_gender")
	if !ok {
		aGender = unknownValue
	}
	bGender, ok := stringField(m, "match_gender")
	if !ok {
		bGender = unknownValue
	}

	score, _ := floatField(m, "score")

	dateCreated, ok := stringField(m, "date_created")
	if !ok {
		dateCreated = defaultDateCreated
	}

	return models.Match{
		UserA:         participant(aID, applicantName, aAge, aLocation, aGender),
		UserB:         participant(bID, matchName, bAge, bLocation, bGender),
		Score:         score,
		Compatibility: factorMap(m["compatibility"]),
		DateCreated:   dateCreated,
	}
}

// factorMap normalizes the optional inline compatibility mapping carried on
// a match entry. Non-mapping values and malformed entries are skipped.
func factorMap(raw any) map[string]models.Factor {
	m, ok := asMap(raw)
	if !ok || len(m) == 0 {
		return nil
	}

	factors := make(map[string]models.Factor, len(m))
	for category, details := range m {
		factor, ok := factorFromDetails(category, details)
		if !ok {
			continue
		}
		factors[category] = factor
	}

	if len(factors) == 0 {
		return nil
	}
	return factors
}
