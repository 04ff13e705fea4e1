package calculation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"estimate_service/internal/domain/entities"
)

// TaxRate is the VAT applied to the document subtotal.
const TaxRate = 0.10

var (
	ErrUnknownSectionType = errors.New("unknown section type")
	// ErrAmountOutOfRange reports an amount or total that is not a finite number.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// LineError locates a failing line inside the submitted tree.
type LineError struct {
	SectionOrder int
	SectionType  entities.SectionType
	LineOrder    int
	Name         string
	Err          error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("section %d (%s) line %d %q: %v", e.SectionOrder, e.SectionType, e.LineOrder, e.Name, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Result is the outcome of Aggregate.
//
// Sections are copies of the input ordered by SectionOrder (lines by
// LineOrder) with Amount and Subtotal filled in.
type Result struct {
	Sections      []entities.Section
	BaseSubtotals Subtotals
	TypeSubtotals Subtotals
	Subtotal      float64
	Tax           float64
	Total         float64
}

// DefaultSection is stored when a revision is submitted without sections.
func DefaultSection() entities.Section {
	return entities.Section{
		SectionOrder: 1,
		SectionType:  entities.SectionTypeManual,
		Title:        "Manual",
		Lines:        []entities.Line{},
	}
}

// Aggregate runs the two-pass calculation.
//
// Pass 1 sums NORMAL lines per section type. That map is frozen and is the
// only environment PERCENT_OF_SUBTOTAL and FORMULA lines ever see, so a
// percent/formula line never depends on another percent/formula line.
// Pass 2 computes every line and re-aggregates all modes per section and per
// type.
func Aggregate(sections []entities.Section) (Result, error) {
	if len(sections) == 0 {
		sections = []entities.Section{DefaultSection()}
	}

	out := make([]entities.Section, len(sections))
	for i, sec := range sections {
		if !sec.SectionType.Valid() {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownSectionType, sec.SectionType)
		}
		sec.Lines = append([]entities.Line(nil), sec.Lines...)
		for _, ln := range sec.Lines {
			if ln.BaseSectionType != "" && !ln.BaseSectionType.Valid() {
				return Result{}, fmt.Errorf("%w: base_section_type %q", ErrUnknownSectionType, ln.BaseSectionType)
			}
		}
		sort.SliceStable(sec.Lines, func(a, b int) bool { return sec.Lines[a].LineOrder < sec.Lines[b].LineOrder })
		out[i] = sec
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].SectionOrder < out[b].SectionOrder })

	base := Subtotals{}
	for _, sec := range out {
		for _, ln := range sec.Lines {
			if ln.CalcMode == entities.CalcModeNormal {
				base[sec.SectionType] += normalAmount(ln)
			}
		}
	}

	final := Subtotals{}
	for i := range out {
		sec := &out[i]
		sectionSubtotal := 0.0
		for j := range sec.Lines {
			ln := &sec.Lines[j]
			amount, err := LineAmount(*ln, sec.SectionType, base)
			if err == nil && (!finite(amount) || !finite(sectionSubtotal+amount)) {
				err = fmt.Errorf("%w: %v", ErrAmountOutOfRange, amount)
			}
			if err != nil {
				return Result{}, &LineError{
					SectionOrder: sec.SectionOrder,
					SectionType:  sec.SectionType,
					LineOrder:    ln.LineOrder,
					Name:         ln.Name,
					Err:          err,
				}
			}
			ln.Amount = amount
			sectionSubtotal += amount
		}
		sec.Subtotal = sectionSubtotal
		final[sec.SectionType] += sectionSubtotal
	}

	subtotal := 0.0
	for _, st := range entities.SectionTypes {
		subtotal += final[st]
	}
	tax := Tax(subtotal)
	if !finite(subtotal) || !finite(subtotal+tax) {
		return Result{}, fmt.Errorf("%w: document subtotal %v", ErrAmountOutOfRange, subtotal)
	}

	return Result{
		Sections:      out,
		BaseSubtotals: base,
		TypeSubtotals: final,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal + tax,
	}, nil
}

// Tax rounds once on the aggregate, half to even.
func Tax(subtotal float64) float64 {
	return math.RoundToEven(subtotal * TaxRate)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
