package models

// Person is the canonical, fully-defaulted view of a matchmaking
// participant. Every field is always populated after normalization,
// regardless of which subset the upstream payload supplied.
type Person struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	CurrentLocation string `json:"current_location"`
}

// Match pairs an applicant with a match candidate.
type Match struct {
	UserA         Person            `json:"user_a"`
	UserB         Person            `json:"user_b"`
	Score         float64           `json:"score"`
	Compatibility map[string]Factor `json:"compatibility,omitempty"`
	DateCreated   string            `json:"date_created"`
}

// Factor is one scored compatibility dimension between two people.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes"`
}

// Compatibility is the detailed compatibility breakdown for a pair.
type Compatibility struct {
	OverallScore float64  `json:"overall_score"`
	Factors      []Factor `json:"factors"`
}

// Stats are the matchmaker dashboard counters shown on the home page.
// Zero values are the anonymous / upstream-unavailable fallback.
type Stats struct {
	Applicants int `json:"applicants"`
	Matches    int `json:"matches"`
	Recent     int `json:"recent"`
}

// Matchmaker is a public directory entry shown on the applicant form.
type Matchmaker struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
