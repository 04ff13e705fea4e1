package repository

import (
	"fmt"

	"estimate_service/internal/domain/entities"
)

type estimateItem struct {
	ID                int64  `dynamodbav:"id"`
	EstimateNo        string `dynamodbav:"estimate_no"`
	ProjectID         int64  `dynamodbav:"project_id"`
	ClientID          int64  `dynamodbav:"client_id"`
	Title             string `dynamodbav:"title,omitempty"`
	ReceiverName      string `dynamodbav:"receiver_name,omitempty"`
	Memo              string `dynamodbav:"memo,omitempty"`
	BusinessState     string `dynamodbav:"business_state"`
	CurrentRevisionID string `dynamodbav:"current_revision_id"`
	CreatedBy         int64  `dynamodbav:"created_by"`
	AuthorName        string `dynamodbav:"author_name,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
	DeletedAt         string `dynamodbav:"deleted_at,omitempty"`
}

type revisionItem struct {
	ID         string  `dynamodbav:"id"`
	EstimateID int64   `dynamodbav:"estimate_id"`
	RevisionNo int     `dynamodbav:"revision_no"`
	Reason     string  `dynamodbav:"reason,omitempty"`
	Status     string  `dynamodbav:"status"`
	Subtotal   float64 `dynamodbav:"subtotal"`
	Tax        float64 `dynamodbav:"tax"`
	Total      float64 `dynamodbav:"total"`
	CreatedBy  int64   `dynamodbav:"created_by"`
	AuthorName string  `dynamodbav:"author_name,omitempty"`
	CreatedAt  string  `dynamodbav:"created_at"`
}

// sectionItem stores one section with its lines embedded. section_key sorts
// by section order, so a Query on revision_id returns display order.
type sectionItem struct {
	RevisionID   string     `dynamodbav:"revision_id"`
	SectionKey   string     `dynamodbav:"section_key"`
	ID           string     `dynamodbav:"id"`
	SectionOrder int        `dynamodbav:"section_order"`
	SectionType  string     `dynamodbav:"section_type"`
	Title        string     `dynamodbav:"title,omitempty"`
	Subtotal     float64    `dynamodbav:"subtotal"`
	Lines        []lineItem `dynamodbav:"lines"`
}

type lineItem struct {
	ID              string   `dynamodbav:"id"`
	LineOrder       int      `dynamodbav:"line_order"`
	Name            string   `dynamodbav:"name,omitempty"`
	Spec            string   `dynamodbav:"spec,omitempty"`
	Unit            string   `dynamodbav:"unit,omitempty"`
	Qty             float64  `dynamodbav:"qty"`
	UnitPrice       *float64 `dynamodbav:"unit_price,omitempty"`
	Amount          float64  `dynamodbav:"amount"`
	Remark          string   `dynamodbav:"remark,omitempty"`
	CalcMode        string   `dynamodbav:"calc_mode"`
	BaseSectionType string   `dynamodbav:"base_section_type,omitempty"`
	Formula         string   `dynamodbav:"formula,omitempty"`
	SourceType      string   `dynamodbav:"source_type"`
	SourceID        *int64   `dynamodbav:"source_id,omitempty"`
	PriceType       string   `dynamodbav:"price_type,omitempty"`
}

// projectGuardItem lives in the counters table and claims a project for one
// live estimate.
type projectGuardItem struct {
	Name       string `dynamodbav:"name"`
	EstimateID int64  `dynamodbav:"estimate_id"`
	CreatedAt  string `dynamodbav:"created_at"`
}

func projectGuardName(projectID int64) string {
	return fmt.Sprintf("project#%d", projectID)
}

func sectionKey(order int, id string) string {
	return fmt.Sprintf("%06d#%s", order, id)
}

func toEstimateItem(e entities.Estimate) estimateItem {
	return estimateItem{
		ID:                e.ID,
		EstimateNo:        e.EstimateNo,
		ProjectID:         e.ProjectID,
		ClientID:          e.ClientID,
		Title:             e.Title,
		ReceiverName:      e.ReceiverName,
		Memo:              e.Memo,
		BusinessState:     string(e.BusinessState),
		CurrentRevisionID: e.CurrentRevisionID,
		CreatedBy:         e.CreatedBy,
		AuthorName:        e.AuthorName,
		CreatedAt:         formatTime(e.CreatedAt),
		UpdatedAt:         formatTime(e.UpdatedAt),
		DeletedAt:         formatTimePtr(e.DeletedAt),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	return entities.Estimate{
		ID:                it.ID,
		EstimateNo:        it.EstimateNo,
		ProjectID:         it.ProjectID,
		ClientID:          it.ClientID,
		Title:             it.Title,
		ReceiverName:      it.ReceiverName,
		Memo:              it.Memo,
		BusinessState:     entities.BusinessState(it.BusinessState),
		CurrentRevisionID: it.CurrentRevisionID,
		CreatedBy:         it.CreatedBy,
		AuthorName:        it.AuthorName,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
		DeletedAt:         parseTimePtr(it.DeletedAt),
	}
}

func toRevisionItem(r entities.Revision) revisionItem {
	return revisionItem{
		ID:         r.ID,
		EstimateID: r.EstimateID,
		RevisionNo: r.RevisionNo,
		Reason:     r.Reason,
		Status:     string(r.Status),
		Subtotal:   r.Subtotal,
		Tax:        r.Tax,
		Total:      r.Total,
		CreatedBy:  r.CreatedBy,
		AuthorName: r.AuthorName,
		CreatedAt:  formatTime(r.CreatedAt),
	}
}

func fromRevisionItem(it revisionItem) entities.Revision {
	return entities.Revision{
		ID:         it.ID,
		EstimateID: it.EstimateID,
		RevisionNo: it.RevisionNo,
		Reason:     it.Reason,
		Status:     entities.RevisionStatus(it.Status),
		Subtotal:   it.Subtotal,
		Tax:        it.Tax,
		Total:      it.Total,
		CreatedBy:  it.CreatedBy,
		AuthorName: it.AuthorName,
		CreatedAt:  parseTime(it.CreatedAt),
	}
}

func toSectionItem(revisionID string, s entities.Section) sectionItem {
	lines := make([]lineItem, 0, len(s.Lines))
	for _, ln := range s.Lines {
		lines = append(lines, lineItem{
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
	return sectionItem{
		RevisionID:   revisionID,
		SectionKey:   sectionKey(s.SectionOrder, s.ID),
		ID:           s.ID,
		SectionOrder: s.SectionOrder,
		SectionType:  string(s.SectionType),
		Title:        s.Title,
		Subtotal:     s.Subtotal,
		Lines:        lines,
	}
}

func fromSectionItem(it sectionItem) entities.Section {
	lines := make([]entities.Line, 0, len(it.Lines))
	for _, ln := range it.Lines {
		lines = append(lines, entities.Line{
			ID:              ln.ID,
			LineOrder:       ln.LineOrder,
			Name:            ln.Name,
			Spec:            ln.Spec,
			Unit:            ln.Unit,
			Qty:             ln.Qty,
			UnitPrice:       ln.UnitPrice,
			Amount:          ln.Amount,
			Remark:          ln.Remark,
			CalcMode:        entities.CalcMode(ln.CalcMode),
			BaseSectionType: entities.SectionType(ln.BaseSectionType),
			Formula:         ln.Formula,
			SourceType:      entities.SourceType(ln.SourceType),
			SourceID:        ln.SourceID,
			PriceType:       entities.PriceType(ln.PriceType),
		})
	}
	return entities.Section{
		ID:           it.ID,
		RevisionID:   it.RevisionID,
		SectionOrder: it.SectionOrder,
		SectionType:  entities.SectionType(it.SectionType),
		Title:        it.Title,
		Subtotal:     it.Subtotal,
		Lines:        lines,
	}
}
