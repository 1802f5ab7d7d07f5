package models

// MatchStatus classifies the confidence tier of a canonical match.
type MatchStatus string

const (
	StatusValid       MatchStatus = "valid"
	StatusNeedsReview MatchStatus = "needs_review"
	StatusUnmapped    MatchStatus = "unmapped"
)

// Candidate is a scored canonical name.
type Candidate struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// MatchResult is the outcome of matching one exercise name occurrence
// against the catalog. It is created once per pipeline run and never
// mutated. "No match" is a normal outcome (StatusUnmapped), not an error.
type MatchResult struct {
	OriginalName    string      `json:"original_name"`
	NormalizedName  string      `json:"normalized_name"`
	MappedTo        string      `json:"mapped_to,omitempty"`
	Confidence      float64     `json:"confidence"`
	Status          MatchStatus `json:"status"`
	Category        string      `json:"category,omitempty"`
	Candidates      []Candidate `json:"candidates,omitempty"`
	ByType          []Candidate `json:"by_type,omitempty"`
	NeedsUserSearch bool        `json:"needs_user_search"`
}

// PopularMapping is a crowd-sourced raw-name mapping with its usage count.
type PopularMapping struct {
	Canonical string `json:"canonical"`
	Count     int    `json:"count"`
}
