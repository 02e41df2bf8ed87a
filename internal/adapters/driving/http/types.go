package http

import (
	"time"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// IngestRequest is the request body for POST /ingest.
// An empty Path scans the whole PDF directory.
type IngestRequest struct {
	Path string `json:"path"`
}

// IngestResponse is the response body for POST /ingest with a path.
type IngestResponse struct {
	Path       string `json:"path"`
	Outcome    string `json:"outcome"`
	DocumentID int64  `json:"document_id"`
	Version    int    `json:"version"`
}

// ScanResponse is the response body for POST /ingest without a path.
type ScanResponse struct {
	ScanID    string            `json:"scan_id"`
	Root      string            `json:"root"`
	Scanned   int               `json:"scanned"`
	Ingested  int               `json:"ingested"`
	Skipped   int               `json:"skipped"`
	Failed    int               `json:"failed"`
	Failures  []FailureResponse `json:"failures,omitempty"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
}

// FailureResponse is a file that failed during a scan.
type FailureResponse struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// DocumentResponse is the list projection of a document.
type DocumentResponse struct {
	ID                 int64  `json:"id"`
	FilePath           string `json:"file_path"`
	Version            int    `json:"version"`
	DocumentName       string `json:"document_name"`
	RegistrationNumber string `json:"registration_number"`
	ManufacturerName   string `json:"manufacturer_name"`
	ClassificationCode string `json:"classification_code"`
}

// DocumentListResponse is the response body for GET /documents.
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
}

// DocumentDetailResponse is the response body for GET /documents/:id.
type DocumentDetailResponse struct {
	ID                  int64     `json:"id"`
	FilePath            string    `json:"file_path"`
	Version             int       `json:"version"`
	DocumentName        string    `json:"document_name"`
	DocumentType        string    `json:"document_type"`
	RegistrationNumber  string    `json:"registration_number"`
	RegulationNumber    string    `json:"regulation_number"`
	RegulationName      string    `json:"regulation_name"`
	ClassificationCode  string    `json:"classification_code"`
	ManufacturerName    string    `json:"manufacturer_name"`
	ManufacturerAddress string    `json:"manufacturer_address"`
	ProductCodes        string    `json:"product_codes"`
	IndicationsForUse   string    `json:"indications_for_use"`
	FullTextExcerpt     string    `json:"full_text_excerpt"`
	CreatedAt           time.Time `json:"created_at"`
}

// MatchRequest is the request body for POST /match.
type MatchRequest struct {
	Query string `json:"query"`
}

// MatchResponse is the response body for POST /match.
type MatchResponse struct {
	MatchID    int64               `json:"match_id"`
	Query      string              `json:"query"`
	Candidates []CandidateResponse `json:"candidates"`
}

// CandidateResponse is one ranked candidate.
type CandidateResponse struct {
	DocumentID         int64   `json:"document_id"`
	DocumentName       string  `json:"document_name"`
	DocumentType       string  `json:"document_type"`
	RegistrationNumber string  `json:"registration_number"`
	ManufacturerName   string  `json:"manufacturer_name"`
	Score              float64 `json:"score"`
	Rationale          string  `json:"rationale"`
}

// ConfirmRequest is the request body for PUT /matches/:id.
type ConfirmRequest struct {
	DocumentID int64 `json:"document_id"`
}

// MatchDetailResponse is a stored match.
type MatchDetailResponse struct {
	ID                 int64      `json:"id"`
	Query              string     `json:"query"`
	CandidateIDs       []int64    `json:"candidate_ids"`
	SelectedDocumentID *int64     `json:"selected_document_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	SelectedAt         *time.Time `json:"selected_at,omitempty"`
}

// MatchHistoryResponse is the response body for GET /matches.
type MatchHistoryResponse struct {
	Matches []MatchHistoryItemResponse `json:"matches"`
	Total   int                        `json:"total"`
}

// MatchHistoryItemResponse is one past match.
type MatchHistoryItemResponse struct {
	ID                         int64     `json:"id"`
	Query                      string    `json:"query"`
	CreatedAt                  time.Time `json:"created_at"`
	CandidateCount             int       `json:"candidate_count"`
	SelectedDocumentID         *int64    `json:"selected_document_id,omitempty"`
	SelectedDocumentName       string    `json:"selected_document_name,omitempty"`
	SelectedRegistrationNumber string    `json:"selected_registration_number,omitempty"`
}

// ReportResponse is the response body for GET /matches/:id/report.
type ReportResponse struct {
	MatchID    int64     `json:"match_id"`
	DocumentID int64     `json:"document_id"`
	Content    string    `json:"content"`
	Location   string    `json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditEventResponse is one audit event.
type AuditEventResponse struct {
	ID         int64          `json:"id"`
	Type       string         `json:"type"`
	DocumentID *int64         `json:"document_id,omitempty"`
	MatchID    *int64         `json:"match_id,omitempty"`
	Payload    map[string]any `json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AuditListResponse is the response body for GET /audit.
type AuditListResponse struct {
	Events []AuditEventResponse `json:"events"`
}

func matchDetail(m *domain.Match) MatchDetailResponse {
	return MatchDetailResponse{
		ID:                 m.ID,
		Query:              m.QueryText,
		CandidateIDs:       m.CandidateIDs,
		SelectedDocumentID: m.SelectedDocumentID,
		CreatedAt:          m.CreatedAt,
		SelectedAt:         m.SelectedAt,
	}
}
