package request

import (
	"testing"

	"estimate_service/internal/domain/entities"
)

func ptr[T any](v T) *T { return &v }

func TestToSections_Defaults(t *testing.T) {
	in := []EstimateSectionRequest{
		{SectionType: "material", Title: " Materials ", Lines: []EstimateLineRequest{
			{Name: " cement ", UnitPrice: ptr(1000.0)},
			{Name: "sand", LineOrder: ptr(7), Qty: ptr(3.0), Unit: "m3", CalcMode: "normal"},
		}},
		{SectionOrder: ptr(9), SectionType: "MANUAL", Lines: []EstimateLineRequest{
			{CalcMode: "MANUAL", Amount: ptr(500.0), SourceType: "PRODUCT", SourceID: ptr(int64(4))},
		}},
	}

	out := ToSections(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(out))
	}

	mat := out[0]
	if mat.SectionOrder != 1 || mat.SectionType != entities.SectionTypeMaterial || mat.Title != "Materials" {
		t.Fatalf("unexpected section header: %+v", mat)
	}
	first := mat.Lines[0]
	if first.LineOrder != 1 || first.Qty != 1 || first.Unit != "EA" || first.CalcMode != entities.CalcModeNormal || first.Name != "cement" {
		t.Fatalf("defaults not applied: %+v", first)
	}
	if first.SourceType != entities.SourceTypeNone {
		t.Fatalf("expected NONE source, got %q", first.SourceType)
	}
	second := mat.Lines[1]
	if second.LineOrder != 7 || second.Qty != 3 || second.Unit != "m3" {
		t.Fatalf("explicit values lost: %+v", second)
	}

	manual := out[1]
	if manual.SectionOrder != 9 {
		t.Fatalf("expected section order 9, got %d", manual.SectionOrder)
	}
	ln := manual.Lines[0]
	if ln.Amount != 500 || ln.SourceType != entities.SourceTypeProduct || ln.SourceID == nil || *ln.SourceID != 4 {
		t.Fatalf("manual line not mapped: %+v", ln)
	}
}

func TestToSections_ExplicitZeroQty(t *testing.T) {
	out := ToSections([]EstimateSectionRequest{{SectionType: "LABOR", Lines: []EstimateLineRequest{{Qty: ptr(0.0)}}}})
	if got := out[0].Lines[0].Qty; got != 0 {
		t.Fatalf("expected qty 0 to be kept, got %v", got)
	}
}

func TestEstimateUpdateRequest_ToCommand(t *testing.T) {
	cmd := EstimateUpdateRequest{Title: ptr("New"), Reason: "price change"}.ToCommand()
	if cmd.Title == nil || *cmd.Title != "New" {
		t.Fatalf("title not carried: %+v", cmd.Title)
	}
	if cmd.ReceiverName != nil || cmd.Memo != nil {
		t.Fatalf("absent header fields must stay nil")
	}
	if cmd.Reason != "price change" || len(cmd.Sections) != 0 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestEstimateCreateRequest_ToCommand(t *testing.T) {
	cmd := EstimateCreateRequest{ProjectID: 3, Title: "T", Sections: []EstimateSectionRequest{{SectionType: "PROFIT"}}}.ToCommand()
	if cmd.ProjectID != 3 || cmd.Title != "T" || len(cmd.Sections) != 1 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Sections[0].SectionType != entities.SectionTypeProfit {
		t.Fatalf("unexpected section type %q", cmd.Sections[0].SectionType)
	}
}
