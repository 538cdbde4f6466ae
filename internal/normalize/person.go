// Package normalize reconciles the heterogeneous JSON shapes returned by the
// upstream matchmaking API into canonical, fully-defaulted records for
// rendering. Every function here is pure and total: missing keys, wrong
// types, and wrong shapes produce defaults, never errors.
package normalize

import (
	"fmt"
	"strings"

	"github.com/shidduch-link/matchmaker-web/internal/models"
)

const (
	unknownValue       = "Unknown"
	defaultDateCreated = "Recent"
)

// Person builds a canonical Person record from whatever the upstream API
// returned for a user lookup. fallbackID fills the identifier and the
// placeholder display name when the payload does not carry them.
//
// Field resolution order: identifier, then name/first/last reconciliation,
// then location reconciliation, then remaining scalar defaults.
func Person(raw any, fallbackID int) models.Person {
	// A bare string is treated as the display name with everything else
	// defaulted.
	if s, ok := asString(raw); ok {
		return models.Person{
			ID:              fallbackID,
			Name:            s,
			FirstName:       s,
			LastName:        "",
			Age:             0,
			Gender:          unknownValue,
			CurrentLocation: unknownValue,
		}
	}

	m, ok := asMap(raw)
	if !ok {
		m = map[string]any{}
	}

	p := models.Person{}

	// Identifier
	if id, ok := intField(m, "id"); ok {
		p.ID = id
	} else {
		p.ID = fallbackID
	}

	// Display name: join first/last when both are present, fall back to the
	// first name alone, and synthesize a placeholder from the fallback
	// identifier only as a last resort.
	first, hasFirst := stringField(m, "first_name")
	last, hasLast := stringField(m, "last_name")
	name, hasName := stringField(m, "name")

	placeholder := false
	if !hasName {
		switch {
		case hasFirst && hasLast:
			name = first + " " + last
		case hasFirst:
			name = first
		default:
			name = fmt.Sprintf("User %d", fallbackID)
			placeholder = true
		}
	}
	p.Name = name

	// First/last: split the display name on its first space; a name with no
	// space becomes the whole first name with an empty last name. The
	// synthesized placeholder is never split, it stands as the first name.
	switch {
	case hasFirst:
		p.FirstName = first
	case placeholder:
		p.FirstName = name
	default:
		p.FirstName = splitFirst(name)
	}
	switch {
	case hasLast:
		p.LastName = last
	case placeholder:
		p.LastName = ""
	default:
		p.LastName = splitLast(name)
	}

	// Location: reconcile from city+country when both are present.
	if loc, ok := stringField(m, "current_location"); ok {
		p.CurrentLocation = loc
	} else {
		city, hasCity := stringField(m, "city")
		country, hasCountry := stringField(m, "country")
		if hasCity && hasCountry {
			p.CurrentLocation = city + ", " + country
		} else {
			p.CurrentLocation = unknownValue
		}
	}

	// Remaining scalars
	if age, ok := intField(m, "age"); ok {
		p.Age = age
	}
	if gender, ok := stringField(m, "gender"); ok {
		p.Gender = gender
	} else {
		p.Gender = unknownValue
	}

	return p
}

// splitFirst returns the token before the first space, or the whole string
// when it contains no space.
func splitFirst(name string) string {
	if strings.Contains(name, " ") {
		return strings.Split(name, " ")[0]
	}
	return name
}

// splitLast returns the token after the first space, or "" when the string
// contains no space.
func splitLast(name string) string {
	if strings.Contains(name, " ") {
		return strings.Split(name, " ")[1]
	}
	return ""
}

// participant builds a Person from the flattened per-side fields of a match
// list entry (applicant_* / match_* prefixes).
func participant(id int, name string, age int, location, gender string) models.Person {
	return models.Person{
		ID:              id,
		Name:            name,
		FirstName:       splitFirst(name),
		LastName:        splitLast(name),
		Age:             age,
		Gender:          gender,
		CurrentLocation: location,
	}
}
