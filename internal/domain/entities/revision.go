package entities

import "time"

// RevisionStatus tracks whether a revision can still be superseded.
//
// Only the newest revision of an estimate is DRAFT; it becomes LOCKED at the
// moment a newer revision is written, never independently.

type RevisionStatus string

const (
	RevisionStatusDraft  RevisionStatus = "DRAFT"
	RevisionStatusLocked RevisionStatus = "LOCKED"
)

// Revision is an immutable, numbered snapshot of an estimate's content.
//
// Storage model (DynamoDB):
//   - PK: id (uuid)
//   - GSI1 (estimate_id-index): estimate_id + revision_no
type Revision struct {
	ID         string         `json:"id"`
	EstimateID int64          `json:"estimate_id"`
	RevisionNo int            `json:"revision_no"`
	Reason     string         `json:"reason,omitempty"`
	Status     RevisionStatus `json:"status"`
	Subtotal   float64        `json:"subtotal"`
	Tax        float64        `json:"tax"`
	Total      float64        `json:"total"`
	CreatedBy  int64          `json:"created_by"`
	AuthorName string         `json:"author_name,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type SectionType string

const (
	SectionTypeMaterial SectionType = "MATERIAL"
	SectionTypeLabor    SectionType = "LABOR"
	SectionTypeExpense  SectionType = "EXPENSE"
	SectionTypeOverhead SectionType = "OVERHEAD"
	SectionTypeProfit   SectionType = "PROFIT"
	SectionTypeManual   SectionType = "MANUAL"
)

// SectionTypes lists every section type in display order. It is also the
// variable namespace available to formulas.
var SectionTypes = []SectionType{
	SectionTypeMaterial,
	SectionTypeLabor,
	SectionTypeExpense,
	SectionTypeOverhead,
	SectionTypeProfit,
	SectionTypeManual,
}

func (t SectionType) Valid() bool {
	for _, st := range SectionTypes {
		if t == st {
			return true
		}
	}
	return false
}

// CalcMode selects how a line's amount is derived.
type CalcMode string

const (
	CalcModeNormal            CalcMode = "NORMAL"
	CalcModePercentOfSubtotal CalcMode = "PERCENT_OF_SUBTOTAL"
	CalcModeFormula           CalcMode = "FORMULA"
	CalcModeManual            CalcMode = "MANUAL"
)

// SourceType tags where a line's snapshot values were copied from.
type SourceType string

const (
	SourceTypeNone      SourceType = "NONE"
	SourceTypeProduct   SourceType = "PRODUCT"
	SourceTypeLaborItem SourceType = "LABOR_ITEM"
)

type PriceType string

const (
	PriceTypeDesign   PriceType = "DESIGN"
	PriceTypeConsumer PriceType = "CONSUMER"
	PriceTypeSupply   PriceType = "SUPPLY"
	PriceTypeManual   PriceType = "MANUAL"
)

// Section groups lines of one type inside a revision.
type Section struct {
	ID           string      `json:"id"`
	RevisionID   string      `json:"revision_id"`
	SectionOrder int         `json:"section_order"`
	SectionType  SectionType `json:"section_type"`
	Title        string      `json:"title"`
	Subtotal     float64     `json:"subtotal"`
	Lines        []Line      `json:"lines"`
}

// Line is one row of an estimate table.
//
// Qty doubles as the percentage for PERCENT_OF_SUBTOTAL lines (10 == 10%).
// Amount is always recomputed on write; only MANUAL lines keep the value the
// caller supplied.
type Line struct {
	ID              string      `json:"id"`
	LineOrder       int         `json:"line_order"`
	Name            string      `json:"name"`
	Spec            string      `json:"spec,omitempty"`
	Unit            string      `json:"unit"`
	Qty             float64     `json:"qty"`
	UnitPrice       *float64    `json:"unit_price,omitempty"`
	Amount          float64     `json:"amount"`
	Remark          string      `json:"remark,omitempty"`
	CalcMode        CalcMode    `json:"calc_mode"`
	BaseSectionType SectionType `json:"base_section_type,omitempty"`
	Formula         string      `json:"formula,omitempty"`
	SourceType      SourceType  `json:"source_type"`
	SourceID        *int64      `json:"source_id,omitempty"`
	PriceType       PriceType   `json:"price_type,omitempty"`
}
