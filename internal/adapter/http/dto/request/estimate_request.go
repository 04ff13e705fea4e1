package request

import (
	"strings"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/usecase"
)

const (
	defaultUnit = "EA"
	defaultQty  = 1.0
)

// EstimateLineRequest is one row of a section. Omitted fields take the same
// defaults the estimate screen uses: qty 1, unit EA, calc_mode NORMAL.
type EstimateLineRequest struct {
	LineOrder       *int     `json:"line_order" binding:"omitempty,gte=0"`
	Name            string   `json:"name"`
	Spec            string   `json:"spec"`
	Unit            string   `json:"unit"`
	Qty             *float64 `json:"qty"`
	UnitPrice       *float64 `json:"unit_price"`
	Amount          *float64 `json:"amount"`
	Remark          string   `json:"remark"`
	CalcMode        string   `json:"calc_mode"`
	BaseSectionType string   `json:"base_section_type" binding:"omitempty,oneof=MATERIAL LABOR EXPENSE OVERHEAD PROFIT MANUAL"`
	Formula         string   `json:"formula"`
	SourceType      string   `json:"source_type" binding:"omitempty,oneof=NONE PRODUCT LABOR_ITEM"`
	SourceID        *int64   `json:"source_id"`
	PriceType       string   `json:"price_type" binding:"omitempty,oneof=DESIGN CONSUMER SUPPLY MANUAL"`
}

type EstimateSectionRequest struct {
	SectionOrder *int                  `json:"section_order" binding:"omitempty,gte=0"`
	SectionType  string                `json:"section_type" binding:"required,oneof=MATERIAL LABOR EXPENSE OVERHEAD PROFIT MANUAL"`
	Title        string                `json:"title"`
	Lines        []EstimateLineRequest `json:"lines" binding:"omitempty,dive"`
}

type EstimateCreateRequest struct {
	ProjectID    int64                    `json:"project_id" binding:"required,gt=0"`
	Title        string                   `json:"title"`
	ReceiverName string                   `json:"receiver_name"`
	Memo         string                   `json:"memo"`
	Sections     []EstimateSectionRequest `json:"sections" binding:"omitempty,dive"`
}

// EstimateUpdateRequest submits a new revision. Header fields left out of the
// payload keep their current value; an empty string clears them.
type EstimateUpdateRequest struct {
	Title        *string                  `json:"title"`
	ReceiverName *string                  `json:"receiver_name"`
	Memo         *string                  `json:"memo"`
	Reason       string                   `json:"reason"`
	Sections     []EstimateSectionRequest `json:"sections" binding:"omitempty,dive"`
}

type EstimatePreviewRequest struct {
	Sections []EstimateSectionRequest `json:"sections" binding:"omitempty,dive"`
}

type BusinessStateRequest struct {
	BusinessState string `json:"business_state" binding:"required,oneof=ONGOING DONE CANCELED"`
}

func (r EstimateCreateRequest) ToCommand() usecase.CreateEstimateCommand {
	return usecase.CreateEstimateCommand{
		ProjectID:    r.ProjectID,
		Title:        r.Title,
		ReceiverName: r.ReceiverName,
		Memo:         r.Memo,
		Sections:     ToSections(r.Sections),
	}
}

func (r EstimateUpdateRequest) ToCommand() usecase.ReviseEstimateCommand {
	return usecase.ReviseEstimateCommand{
		Title:        r.Title,
		ReceiverName: r.ReceiverName,
		Memo:         r.Memo,
		Reason:       r.Reason,
		Sections:     ToSections(r.Sections),
	}
}

// ToSections converts the payload tree. Missing orders follow payload
// position (1-based).
func ToSections(in []EstimateSectionRequest) []entities.Section {
	out := make([]entities.Section, 0, len(in))
	for i, s := range in {
		sec := entities.Section{
			SectionOrder: orderOr(s.SectionOrder, i+1),
			SectionType:  entities.SectionType(normalizeEnum(s.SectionType)),
			Title:        strings.TrimSpace(s.Title),
			Lines:        make([]entities.Line, 0, len(s.Lines)),
		}
		for j, ln := range s.Lines {
			sec.Lines = append(sec.Lines, toLine(ln, j+1))
		}
		out = append(out, sec)
	}
	return out
}

func toLine(r EstimateLineRequest, position int) entities.Line {
	ln := entities.Line{
		LineOrder:       orderOr(r.LineOrder, position),
		Name:            strings.TrimSpace(r.Name),
		Spec:            strings.TrimSpace(r.Spec),
		Unit:            strings.TrimSpace(r.Unit),
		Qty:             defaultQty,
		UnitPrice:       r.UnitPrice,
		Remark:          strings.TrimSpace(r.Remark),
		CalcMode:        entities.CalcMode(normalizeEnum(r.CalcMode)),
		BaseSectionType: entities.SectionType(normalizeEnum(r.BaseSectionType)),
		Formula:         strings.TrimSpace(r.Formula),
		SourceType:      entities.SourceType(normalizeEnum(r.SourceType)),
		SourceID:        r.SourceID,
		PriceType:       entities.PriceType(normalizeEnum(r.PriceType)),
	}
	if r.Qty != nil {
		ln.Qty = *r.Qty
	}
	if r.Amount != nil {
		ln.Amount = *r.Amount
	}
	if ln.Unit == "" {
		ln.Unit = defaultUnit
	}
	if ln.CalcMode == "" {
		ln.CalcMode = entities.CalcModeNormal
	}
	if ln.SourceType == "" {
		ln.SourceType = entities.SourceTypeNone
	}
	return ln
}

func orderOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
