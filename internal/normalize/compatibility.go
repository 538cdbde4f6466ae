package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shidduch-link/matchmaker-web/internal/models"
)

// Compatibility normalizes the detailed compatibility payload for a pair.
// The overall score defaults to 0 and absent or malformed factor data yields
// an empty factor list, never a failure. Factors are ordered by category
// name so rendering is deterministic.
func Compatibility(raw any) models.Compatibility {
	result := models.Compatibility{
		Factors: []models.Factor{},
	}

	m, ok := asMap(raw)
	if !ok {
		return result
	}

	if score, ok := floatField(m, "score"); ok {
		result.OverallScore = score
	}

	categories, ok := asMap(m["compatibility"])
	if !ok {
		return result
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, category := range names {
		factor, ok := factorFromDetails(category, categories[category])
		if !ok {
			continue
		}
		result.Factors = append(result.Factors, factor)
	}

	return result
}

// factorFromDetails builds a display factor from one category entry. An
// entry must be a mapping with a numeric score; the weight defaults to 1 and
// notes are synthesized from the nested details mapping.
func factorFromDetails(category string, raw any) (models.Factor, bool) {
	details, ok := asMap(raw)
	if !ok {
		return models.Factor{}, false
	}

	score, ok := floatField(details, "score")
	if !ok {
		return models.Factor{}, false
	}

	weight := 1.0
	if w, ok := floatField(details, "weight"); ok {
		weight = w
	}

	return models.Factor{
		Name:   displayName(category),
		Score:  score,
		Weight: weight,
		Notes:  notesFrom(details["details"]),
	}, true
}

// displayName turns an upstream category key like "religious_views" into
// "Religious Views".
func displayName(category string) string {
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// notesFrom joins a details mapping into "key: value" pairs separated by
// "; ", in key order.
func notesFrom(raw any) string {
	details, ok := asMap(raw)
	if !ok || len(details) == 0 {
		return ""
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, details[k]))
	}
	return strings.Join(parts, "; ")
}
