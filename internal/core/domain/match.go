package domain

import "time"

// DefaultCandidateLimit is the number of candidates returned by a match.
const DefaultCandidateLimit = 2

// SearchHit is one ranked result from the search backend.
// Score is in [0, 1]; higher is more relevant.
type SearchHit struct {
	DocumentID int64
	Score      float64
}

// Match records a search request and the candidates it produced.
// CandidateIDs is frozen at creation. SelectedDocumentID may be set
// and overwritten but is never cleared.
type Match struct {
	ID                 int64
	ClientID           int64
	QueryText          string
	CandidateIDs       []int64
	SelectedDocumentID *int64
	CreatedAt          time.Time
	SelectedAt         *time.Time
}

// HasCandidate reports whether id is in the match's candidate list.
func (m *Match) HasCandidate(id int64) bool {
	for _, c := range m.CandidateIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Candidate is a ranked document offered for selection.
type Candidate struct {
	DocumentID         int64
	DocumentName       string
	DocumentType       string
	RegistrationNumber string
	ManufacturerName   string

	// Score is rounded to four decimal places.
	Score     float64
	Rationale string
}

// MatchResult is returned from a match request.
type MatchResult struct {
	MatchID    int64
	QueryText  string
	Candidates []Candidate
}

// MatchHistoryItem is a past match with its selection resolved for display.
type MatchHistoryItem struct {
	ID                         int64
	QueryText                  string
	CreatedAt                  time.Time
	CandidateCount             int
	SelectedDocumentID         *int64
	SelectedDocumentName       string
	SelectedRegistrationNumber string
}
