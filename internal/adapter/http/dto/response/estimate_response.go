package response

import (
	"time"

	"estimate_service/internal/domain/calculation"
	"estimate_service/internal/domain/entities"
	"estimate_service/internal/usecase"
)

type LineResponse struct {
	ID              string   `json:"id"`
	LineOrder       int      `json:"line_order"`
	Name            string   `json:"name"`
	Spec            string   `json:"spec,omitempty"`
	Unit            string   `json:"unit"`
	Qty             float64  `json:"qty"`
	UnitPrice       *float64 `json:"unit_price"`
	Amount          float64  `json:"amount"`
	Remark          string   `json:"remark,omitempty"`
	CalcMode        string   `json:"calc_mode"`
	BaseSectionType string   `json:"base_section_type,omitempty"`
	Formula         string   `json:"formula,omitempty"`
	SourceType      string   `json:"source_type"`
	SourceID        *int64   `json:"source_id"`
	PriceType       string   `json:"price_type,omitempty"`
}

type SectionResponse struct {
	ID           string         `json:"id,omitempty"`
	SectionOrder int            `json:"section_order"`
	SectionType  string         `json:"section_type"`
	Title        string         `json:"title"`
	Subtotal     float64        `json:"subtotal"`
	Lines        []LineResponse `json:"lines"`
}

type RevisionResponse struct {
	ID         string    `json:"id"`
	RevisionNo int       `json:"revision_no"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	IsCurrent  bool      `json:"is_current"`
	Subtotal   float64   `json:"subtotal"`
	Tax        float64   `json:"tax"`
	Total      float64   `json:"total"`
	CreatedBy  int64     `json:"created_by"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type EstimateDetailResponse struct {
	ID            int64             `json:"id"`
	EstimateNo    string            `json:"estimate_no"`
	ProjectID     int64             `json:"project_id"`
	ProjectName   string            `json:"project_name,omitempty"`
	ClientID      int64             `json:"client_id"`
	Title         string            `json:"title"`
	ReceiverName  string            `json:"receiver_name"`
	Memo          string            `json:"memo,omitempty"`
	BusinessState string            `json:"business_state"`
	CreatedBy     int64             `json:"created_by"`
	AuthorName    string            `json:"author_name,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Revision      RevisionResponse  `json:"revision"`
	Sections      []SectionResponse `json:"sections"`
}

type EstimateSummaryResponse struct {
	ID            int64     `json:"id"`
	EstimateNo    string    `json:"estimate_no"`
	ProjectID     int64     `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	DepartmentID  *int64    `json:"department_id"`
	Year          int       `json:"year"`
	ReceiverName  string    `json:"receiver_name"`
	Title         string    `json:"title"`
	BusinessState string    `json:"business_state"`
	AuthorName    string    `json:"author_name,omitempty"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

type EstimateCreatedResponse struct {
	ID         int64  `json:"id"`
	EstimateNo string `json:"estimate_no"`
	RevisionID string `json:"revision_id"`
}

type EstimateStateResponse struct {
	ID            int64     `json:"id"`
	BusinessState string    `json:"business_state"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type YearsResponse struct {
	Years []int `json:"years"`
}

type PreviewResponse struct {
	Sections      []SectionResponse  `json:"sections"`
	TypeSubtotals map[string]float64 `json:"type_subtotals"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	Total         float64            `json:"total"`
}

func FromEstimateDetail(d entities.EstimateDetail) EstimateDetailResponse {
	e := d.Estimate
	return EstimateDetailResponse{
		ID:            e.ID,
		EstimateNo:    e.EstimateNo,
		ProjectID:     e.ProjectID,
		ProjectName:   d.ProjectName,
		ClientID:      e.ClientID,
		Title:         e.Title,
		ReceiverName:  e.ReceiverName,
		Memo:          e.Memo,
		BusinessState: string(e.BusinessState),
		CreatedBy:     e.CreatedBy,
		AuthorName:    e.AuthorName,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Revision:      FromRevision(d.Revision, e.CurrentRevisionID),
		Sections:      FromSections(d.Sections),
	}
}

func FromEstimateDetails(ds []entities.EstimateDetail) []EstimateDetailResponse {
	out := make([]EstimateDetailResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromEstimateDetail(d))
	}
	return out
}

func FromRevision(r entities.Revision, currentID string) RevisionResponse {
	return RevisionResponse{
		ID:         r.ID,
		RevisionNo: r.RevisionNo,
		Reason:     r.Reason,
		Status:     string(r.Status),
		IsCurrent:  r.ID == currentID,
		Subtotal:   r.Subtotal,
		Tax:        r.Tax,
		Total:      r.Total,
		CreatedBy:  r.CreatedBy,
		AuthorName: r.AuthorName,
		CreatedAt:  r.CreatedAt,
	}
}

// FromRevisions maps history rows. The newest revision is the current one.
func FromRevisions(rs []entities.Revision) []RevisionResponse {
	out := make([]RevisionResponse, 0, len(rs))
	current := ""
	if len(rs) > 0 {
		current = rs[0].ID
	}
	for _, r := range rs {
		out = append(out, FromRevision(r, current))
	}
	return out
}

func FromSections(ss []entities.Section) []SectionResponse {
	out := make([]SectionResponse, 0, len(ss))
	for _, s := range ss {
		lines := make([]LineResponse, 0, len(s.Lines))
		for _, ln := range s.Lines {
			lines = append(lines, LineResponse{
				ID:              ln.ID,
				LineOrder:       ln.LineOrder,
				Name:            ln.Name,
				Spec:            ln.Spec,
				Unit:            ln.Unit,
				Qty:             ln.Qty,
				UnitPrice:       ln.UnitPrice,
				Amount:          ln.Amount,
				Remark:          ln.Remark,
				CalcMode:        string(ln.CalcMode),
				BaseSectionType: string(ln.BaseSectionType),
				Formula:         ln.Formula,
				SourceType:      string(ln.SourceType),
				SourceID:        ln.SourceID,
				PriceType:       string(ln.PriceType),
			})
		}
		out = append(out, SectionResponse{
			ID:           s.ID,
			SectionOrder: s.SectionOrder,
			SectionType:  string(s.SectionType),
			Title:        s.Title,
			Subtotal:     s.Subtotal,
			Lines:        lines,
		})
	}
	return out
}

func FromSummaries(rows []entities.EstimateSummary) []EstimateSummaryResponse {
	out := make([]EstimateSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, EstimateSummaryResponse{
			ID:            r.ID,
			EstimateNo:    r.EstimateNo,
			ProjectID:     r.ProjectID,
			ProjectName:   r.ProjectName,
			DepartmentID:  r.DepartmentID,
			Year:          r.Year,
			ReceiverName:  r.ReceiverName,
			Title:         r.Title,
			BusinessState: string(r.BusinessState),
			AuthorName:    r.AuthorName,
			Subtotal:      r.Subtotal,
			Tax:           r.Tax,
			Total:         r.Total,
			CreatedAt:     r.CreatedAt,
		})
	}
	return out
}

func FromCreateResult(r usecase.CreateResult) EstimateCreatedResponse {
	return EstimateCreatedResponse{ID: r.ID, EstimateNo: r.EstimateNo, RevisionID: r.RevisionID}
}

func FromEstimateState(e entities.Estimate) EstimateStateResponse {
	return EstimateStateResponse{ID: e.ID, BusinessState: string(e.BusinessState), UpdatedAt: e.UpdatedAt}
}

func FromPreview(r calculation.Result) PreviewResponse {
	types := make(map[string]float64, len(r.TypeSubtotals))
	for k, v := range r.TypeSubtotals {
		types[string(k)] = v
	}
	return PreviewResponse{
		Sections:      FromSections(r.Sections),
		TypeSubtotals: types,
		Subtotal:      r.Subtotal,
		Tax:           r.Tax,
		Total:         r.Total,
	}
}
