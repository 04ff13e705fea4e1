package entities

import (
	"fmt"
	"time"
)

// BusinessState is the commercial lifecycle of an estimate.
//
// It is independent from revision status: an estimate can be revised any
// number of times while ONGOING, DONE or CANCELED.

type BusinessState string

const (
	BusinessStateOngoing  BusinessState = "ONGOING"
	BusinessStateDone     BusinessState = "DONE"
	BusinessStateCanceled BusinessState = "CANCELED"
)

func (s BusinessState) Valid() bool {
	switch s {
	case BusinessStateOngoing, BusinessStateDone, BusinessStateCanceled:
		return true
	}
	return false
}

// Estimate is the document header persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id (numeric, from the "estimates" counter)
//   - GSI1 (project_id-index): project_id
//
// Only the header fields (title/receiver/memo) and the business state are
// mutable. Content lives in immutable revisions; CurrentRevisionID points at
// the newest one.
type Estimate struct {
	ID                int64         `json:"id"`
	EstimateNo        string        `json:"estimate_no"`
	ProjectID         int64         `json:"project_id"`
	ClientID          int64         `json:"client_id"`
	Title             string        `json:"title,omitempty"`
	ReceiverName      string        `json:"receiver_name,omitempty"`
	Memo              string        `json:"memo,omitempty"`
	BusinessState     BusinessState `json:"business_state"`
	CurrentRevisionID string        `json:"current_revision_id"`
	CreatedBy         int64         `json:"created_by"`
	AuthorName        string        `json:"author_name,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	DeletedAt         *time.Time    `json:"deleted_at,omitempty"`
}

func (e Estimate) IsDeleted() bool {
	return e.DeletedAt != nil
}

// FormatEstimateNo builds the human readable number, e.g. EST-2026-000042.
func FormatEstimateNo(prefix string, year int, id int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, id)
}

// EstimateDetail is a full view of one revision joined with the header.
type EstimateDetail struct {
	Estimate    Estimate
	ProjectName string
	Revision    Revision
	Sections    []Section
}

// EstimateSummary is a lightweight list row (no line detail).
type EstimateSummary struct {
	ID            int64
	EstimateNo    string
	ProjectID     int64
	ProjectName   string
	DepartmentID  *int64
	Year          int
	ReceiverName  string
	Title         string
	BusinessState BusinessState
	CreatedAt     time.Time
	AuthorName    string
	Subtotal      float64
	Tax           float64
	Total         float64
}
