// Package calculation turns a submitted section/line tree into amounts,
// section subtotals and document totals.
package calculation

import (
	"strings"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/domain/formula"
)

// Subtotals maps a section type to an aggregated subtotal.
type Subtotals map[entities.SectionType]float64

// Env exposes every section type as a formula variable. Types with no
// sections resolve to 0.
func (s Subtotals) Env() map[string]float64 {
	env := make(map[string]float64, len(entities.SectionTypes))
	for _, st := range entities.SectionTypes {
		env[string(st)] = s[st]
	}
	return env
}

// LineAmount computes the amount of one line. sectionType is the type of the
// section that owns the line; subtotals is the frozen reference environment.
func LineAmount(line entities.Line, sectionType entities.SectionType, subtotals Subtotals) (float64, error) {
	switch line.CalcMode {
	case entities.CalcModeNormal:
		return normalAmount(line), nil
	case entities.CalcModePercentOfSubtotal:
		base := line.BaseSectionType
		if base == "" {
			base = sectionType
		}
		return subtotals[base] * (line.Qty / 100), nil
	case entities.CalcModeFormula:
		expr := strings.TrimSpace(line.Formula)
		if expr == "" {
			return 0, nil
		}
		return formula.Evaluate(expr, subtotals.Env())
	case entities.CalcModeManual:
		return line.Amount, nil
	default:
		return 0, nil
	}
}

func normalAmount(line entities.Line) float64 {
	unitPrice := 0.0
	if line.UnitPrice != nil {
		unitPrice = *line.UnitPrice
	}
	return line.Qty * unitPrice
}
