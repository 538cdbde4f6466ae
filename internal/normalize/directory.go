package normalize

import (
	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
)

// Stats normalizes the dashboard counters payload. Any unrecognized shape
// yields all-zero counters.
func Stats(raw any) models.Stats {
	m, ok := asMap(raw)
	if !ok {
		return models.Stats{}
	}

	var s models.Stats
	if v, ok := intField(m, "applicants"); ok {
		s.Applicants = v
	}
	if v, ok := intField(m, "matches"); ok {
		s.Matches = v
	}
	if v, ok := intField(m, "recent"); ok {
		s.Recent = v
	}
	return s
}

// PersonList normalizes a collection of participant records. A bare list or
// a mapping wrapped under "users" is accepted; anything else yields an empty
// slice. Each entry is normalized individually.
func PersonList(raw any) []models.Person {
	entries, ok := raw.([]any)
	if !ok {
		if m, isMap := asMap(raw); isMap {
			entries, ok = m["users"].([]any)
		}
		if !ok {
			return []models.Person{}
		}
	}

	people := make([]models.Person, 0, len(entries))
	for _, entry := range entries {
		fallback := 0
		if m, isMap := asMap(entry); isMap {
			if id, ok := intField(m, "id"); ok {
				fallback = id
			}
		}
		people = append(people, Person(entry, fallback))
	}
	return people
}

// Matchmakers normalizes the public matchmaker directory. Entries without a
// usable id or name are dropped and counted.
func Matchmakers(raw any) []models.Matchmaker {
	entries, ok := raw.([]any)
	if !ok {
		if m, isMap := asMap(raw); isMap {
			entries, ok = m["matchmakers"].([]any)
		}
		if !ok {
			return []models.Matchmaker{}
		}
	}

	directory := make([]models.Matchmaker, 0, len(entries))
	for _, entry := range entries {
		m, isMap := asMap(entry)
		if !isMap {
			metrics.NormalizerDroppedRecords.WithLabelValues("matchmaker").Inc()
			continue
		}

		id, hasID := intField(m, "id")
		name, hasName := stringField(m, "name")
		if !hasID || !hasName {
			metrics.NormalizerDroppedRecords.WithLabelValues("matchmaker").Inc()
			continue
		}

		mm := models.Matchmaker{ID: id, Name: name}
		if email, ok := stringField(m, "email"); ok {
			mm.Email = email
		}
		directory = append(directory, mm)
	}
	return directory
}
