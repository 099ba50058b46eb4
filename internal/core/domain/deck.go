package domain

import (
	"encoding/json"
	"time"
)

type DeckStatus string

const (
	StatusUploaded   DeckStatus = "uploaded"
	StatusProcessing DeckStatus = "processing"
	StatusReady      DeckStatus = "ready"
	StatusFailed     DeckStatus = "failed"
)

// NotSpecified is the wire-compatible placeholder for fields the
// extraction engine could not resolve.
const NotSpecified = "Not specified"

// Field is an extracted text value that distinguishes "no pattern matched"
// from a legitimate value at the type level, while still serializing to
// the NotSpecified literal.
type Field struct {
	value string
	found bool
}

func NewField(value string) Field {
	return Field{value: value, found: true}
}

func (f Field) Found() bool { return f.found }

func (f Field) String() string {
	if !f.found {
		return NotSpecified
	}
	return f.value
}

// ParseField maps the NotSpecified literal back to an absent field.
func ParseField(value string) Field {
	if value == "" || value == NotSpecified {
		return Field{}
	}
	return Field{value: value, found: true}
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = ParseField(s)
	return nil
}

// DeckSummary is the fixed-shape result of field extraction over a deck's text.
// It is created once per document and never mutated afterwards.
type DeckSummary struct {
	CompanyName        Field `json:"company_name"`
	Description        Field `json:"description"`
	Problem            Field `json:"problem"`
	Solution           Field `json:"solution"`
	FundingInfo        Field `json:"funding_info"`
	IndustrySectors    Field `json:"industry_sectors"`
	PagesProcessed     int   `json:"pages_processed"`
	TextExtractedChars int   `json:"text_extracted_chars"`
}

// Deck is the persisted record for one processed pitch deck.
type Deck struct {
	ID               string      `json:"id"`
	SourceLink       string      `json:"source_link,omitempty"`
	FundsListLink    string      `json:"funds_list_link,omitempty"`
	OriginalFilename string      `json:"original_filename"`
	StoragePath      string      `json:"storage_path,omitempty"`
	Summary          DeckSummary `json:"summary"`
	TotalFunds       int         `json:"total_funds,omitempty"`
	RawSummary       string      `json:"raw_summary,omitempty"`
	Status           DeckStatus  `json:"status"`
	Error            string      `json:"error,omitempty"`
	ExtractedAt      *time.Time  `json:"extracted_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Fund is one row of a funds-list file, keyed by column header.
type Fund map[string]string

// FundraiseResult is the outcome of the synchronous fundraise workflow.
type FundraiseResult struct {
	WorkflowID    string      `json:"workflow_id"`
	Summary       DeckSummary `json:"pitch_deck"`
	TotalFunds    int         `json:"total_funds"`
	SampleFund    Fund        `json:"sample_fund,omitempty"`
	PitchDeckLink string      `json:"pitch_deck_link"`
	FundsListLink string      `json:"funds_list_link"`
	Stored        bool        `json:"stored"`
}
