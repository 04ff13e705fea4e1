package calculation

import (
	"errors"
	"testing"

	"estimate_service/internal/domain/entities"
	"estimate_service/internal/domain/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func normal(order int, qty, unitPrice float64) entities.Line {
	return entities.Line{LineOrder: order, Name: "item", Unit: "EA", Qty: qty, UnitPrice: price(unitPrice), CalcMode: entities.CalcModeNormal}
}

func percent(order int, base entities.SectionType, pct float64) entities.Line {
	return entities.Line{LineOrder: order, Name: "pct", Unit: "%", Qty: pct, CalcMode: entities.CalcModePercentOfSubtotal, BaseSectionType: base}
}

func formulaLine(order int, expr string) entities.Line {
	return entities.Line{LineOrder: order, Name: "formula", Unit: "식", Qty: 1, CalcMode: entities.CalcModeFormula, Formula: expr}
}

func TestLineAmount(t *testing.T) {
	env := Subtotals{entities.SectionTypeMaterial: 10000, entities.SectionTypeLabor: 5000}

	t.Run("normal", func(t *testing.T) {
		got, err := LineAmount(normal(1, 3, 1500.5), entities.SectionTypeMaterial, env)
		require.NoError(t, err)
		assert.InDelta(t, 4501.5, got, 1e-9)
	})

	t.Run("normal without unit price", func(t *testing.T) {
		got, err := LineAmount(entities.Line{Qty: 7, CalcMode: entities.CalcModeNormal}, entities.SectionTypeMaterial, env)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("percent of explicit base", func(t *testing.T) {
		got, err := LineAmount(percent(1, entities.SectionTypeLabor, 3.7), entities.SectionTypeProfit, env)
		require.NoError(t, err)
		assert.InDelta(t, 185, got, 1e-9)
	})

	t.Run("percent falls back to own section type", func(t *testing.T) {
		got, err := LineAmount(percent(1, "", 10), entities.SectionTypeMaterial, env)
		require.NoError(t, err)
		assert.InDelta(t, 1000, got, 1e-9)
	})

	t.Run("percent of absent type", func(t *testing.T) {
		got, err := LineAmount(percent(1, entities.SectionTypeExpense, 50), entities.SectionTypeProfit, env)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("formula", func(t *testing.T) {
		got, err := LineAmount(formulaLine(1, "MATERIAL + LABOR"), entities.SectionTypeOverhead, env)
		require.NoError(t, err)
		assert.InDelta(t, 15000, got, 1e-9)
	})

	t.Run("formula referencing a type without sections", func(t *testing.T) {
		got, err := LineAmount(formulaLine(1, "PROFIT + 1"), entities.SectionTypeOverhead, env)
		require.NoError(t, err)
		assert.InDelta(t, 1, got, 1e-9)
	})

	t.Run("empty formula", func(t *testing.T) {
		got, err := LineAmount(formulaLine(1, "   "), entities.SectionTypeOverhead, env)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("invalid formula", func(t *testing.T) {
		_, err := LineAmount(formulaLine(1, "max(MATERIAL, LABOR)"), entities.SectionTypeOverhead, env)
		assert.ErrorIs(t, err, formula.ErrInvalidFormula)
	})

	t.Run("manual keeps supplied amount", func(t *testing.T) {
		got, err := LineAmount(entities.Line{CalcMode: entities.CalcModeManual, Amount: 777, Qty: 2, UnitPrice: price(5)}, entities.SectionTypeManual, env)
		require.NoError(t, err)
		assert.Equal(t, 777.0, got)
	})

	t.Run("unknown mode", func(t *testing.T) {
		got, err := LineAmount(entities.Line{CalcMode: "MYSTERY", Amount: 5, Qty: 2, UnitPrice: price(5)}, entities.SectionTypeManual, env)
		require.NoError(t, err)
		assert.Zero(t, got)
	})
}

func TestAggregate_MaterialAndProfitScenario(t *testing.T) {
	res, err := Aggregate([]entities.Section{
		{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Title: "재료비", Lines: []entities.Line{normal(1, 10, 1000)}},
		{SectionOrder: 2, SectionType: entities.SectionTypeProfit, Title: "이윤", Lines: []entities.Line{percent(1, entities.SectionTypeMaterial, 10)}},
	})
	require.NoError(t, err)

	require.Len(t, res.Sections, 2)
	assert.InDelta(t, 10000, res.Sections[0].Subtotal, 1e-9)
	assert.InDelta(t, 1000, res.Sections[1].Lines[0].Amount, 1e-9)
	assert.InDelta(t, 1000, res.Sections[1].Subtotal, 1e-9)
	assert.InDelta(t, 11000, res.Subtotal, 1e-9)
	assert.Equal(t, 1100.0, res.Tax)
	assert.InDelta(t, 12100, res.Total, 1e-9)
}

func TestAggregate_FormulaScenario(t *testing.T) {
	res, err := Aggregate([]entities.Section{
		{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Lines: []entities.Line{normal(1, 10, 1000)}},
		{SectionOrder: 2, SectionType: entities.SectionTypeLabor, Lines: []entities.Line{normal(1, 5, 1000)}},
		{SectionOrder: 3, SectionType: entities.SectionTypeOverhead, Lines: []entities.Line{formulaLine(1, "MATERIAL + LABOR")}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 15000, res.Sections[2].Lines[0].Amount, 1e-9)
	assert.InDelta(t, 30000, res.Subtotal, 1e-9)
}

func TestAggregate_EmptyInputYieldsManualSection(t *testing.T) {
	res, err := Aggregate(nil)
	require.NoError(t, err)
	require.Len(t, res.Sections, 1)
	assert.Equal(t, entities.SectionTypeManual, res.Sections[0].SectionType)
	assert.Empty(t, res.Sections[0].Lines)
	assert.Zero(t, res.Sections[0].Subtotal)
	assert.Zero(t, res.Subtotal)
	assert.Zero(t, res.Tax)
	assert.Zero(t, res.Total)
}

func TestAggregate_BaseEnvironmentIsNormalOnly(t *testing.T) {
	// The PROFIT percent line must see MATERIAL's NORMAL subtotal (10000)
	// even though MATERIAL also holds a formula line worth 5000.
	res, err := Aggregate([]entities.Section{
		{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Lines: []entities.Line{
			normal(1, 10, 1000),
			formulaLine(2, "MATERIAL / 2"),
		}},
		{SectionOrder: 2, SectionType: entities.SectionTypeProfit, Lines: []entities.Line{
			percent(1, entities.SectionTypeMaterial, 10),
			formulaLine(2, "PROFIT + 1"),
		}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 10000, res.BaseSubtotals[entities.SectionTypeMaterial], 1e-9)
	assert.InDelta(t, 15000, res.TypeSubtotals[entities.SectionTypeMaterial], 1e-9)
	assert.InDelta(t, 1000, res.Sections[1].Lines[0].Amount, 1e-9)
	// PROFIT has no NORMAL lines, so its base is 0 regardless of the percent line.
	assert.InDelta(t, 1, res.Sections[1].Lines[1].Amount, 1e-9)
	assert.InDelta(t, 1001, res.TypeSubtotals[entities.SectionTypeProfit], 1e-9)
	assert.InDelta(t, 16001, res.Subtotal, 1e-9)
}

func TestAggregate_SectionsSharingATypeAccumulate(t *testing.T) {
	res, err := Aggregate([]entities.Section{
		{SectionOrder: 2, SectionType: entities.SectionTypeMaterial, Title: "B", Lines: []entities.Line{normal(1, 1, 300)}},
		{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Title: "A", Lines: []entities.Line{normal(1, 1, 700)}},
		{SectionOrder: 3, SectionType: entities.SectionTypeProfit, Lines: []entities.Line{percent(1, entities.SectionTypeMaterial, 10)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "A", res.Sections[0].Title)
	assert.Equal(t, "B", res.Sections[1].Title)
	assert.InDelta(t, 700, res.Sections[0].Subtotal, 1e-9)
	assert.InDelta(t, 300, res.Sections[1].Subtotal, 1e-9)
	assert.InDelta(t, 1000, res.TypeSubtotals[entities.SectionTypeMaterial], 1e-9)
	assert.InDelta(t, 100, res.Sections[2].Lines[0].Amount, 1e-9)
}

func TestAggregate_PreservesOrderAndDoesNotMutateInput(t *testing.T) {
	input := []entities.Section{
		{SectionOrder: 1, SectionType: entities.SectionTypeLabor, Lines: []entities.Line{
			normal(3, 1, 30), normal(1, 1, 10), normal(2, 1, 20),
		}},
	}
	res, err := Aggregate(input)
	require.NoError(t, err)

	var orders []int
	for _, ln := range res.Sections[0].Lines {
		orders = append(orders, ln.LineOrder)
	}
	assert.Equal(t, []int{1, 2, 3}, orders)
	assert.Equal(t, 3, input[0].Lines[0].LineOrder)
	assert.Zero(t, input[0].Lines[0].Amount)
}

func TestAggregate_CallerAmountsAreIgnored(t *testing.T) {
	ln := normal(1, 2, 50)
	ln.Amount = 999999
	res, err := Aggregate([]entities.Section{{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Lines: []entities.Line{ln}}})
	require.NoError(t, err)
	assert.InDelta(t, 100, res.Sections[0].Lines[0].Amount, 1e-9)
}

func TestAggregate_TaxRoundsOnceHalfToEven(t *testing.T) {
	assert.Equal(t, 2.0, Tax(25))  // 2.5 -> 2
	assert.Equal(t, 4.0, Tax(35))  // 3.5 -> 4
	assert.Equal(t, 1.0, Tax(13))  // 1.3 -> 1
	assert.Equal(t, 0.0, Tax(0))

	// Three lines of 3.3 each: per-line rounding would give 0, aggregate gives 1.
	res, err := Aggregate([]entities.Section{{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Lines: []entities.Line{
		normal(1, 1, 3.3), normal(2, 1, 3.3), normal(3, 1, 3.3),
	}}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Tax)
	assert.InDelta(t, res.Subtotal+res.Tax, res.Total, 1e-9)
}

func TestAggregate_FormulaErrorIsLocated(t *testing.T) {
	_, err := Aggregate([]entities.Section{
		{SectionOrder: 4, SectionType: entities.SectionTypeOverhead, Lines: []entities.Line{formulaLine(2, "MATERIAL.__class__")}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, formula.ErrInvalidFormula)

	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 4, le.SectionOrder)
	assert.Equal(t, 2, le.LineOrder)

	var fe *formula.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, formula.KindDisallowed, fe.Kind)
}

func TestAggregate_RejectsUnknownSectionTypes(t *testing.T) {
	_, err := Aggregate([]entities.Section{{SectionOrder: 1, SectionType: "EQUIPMENT"}})
	assert.ErrorIs(t, err, ErrUnknownSectionType)

	_, err = Aggregate([]entities.Section{{SectionOrder: 1, SectionType: entities.SectionTypeProfit, Lines: []entities.Line{percent(1, "EQUIPMENT", 5)}}})
	assert.ErrorIs(t, err, ErrUnknownSectionType)
}

func TestAggregate_RejectsNonFiniteAmounts(t *testing.T) {
	cases := []struct {
		name         string
		sections     []entities.Section
		sectionOrder int
		lineOrder    int
	}{
		{
			name: "normal line overflows",
			sections: []entities.Section{
				{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Lines: []entities.Line{normal(1, 1e200, 1e200)}},
			},
			sectionOrder: 1, lineOrder: 1,
		},
		{
			name: "percent of an overflowing base",
			sections: []entities.Section{
				{SectionOrder: 1, SectionType: entities.SectionTypeProfit, Lines: []entities.Line{percent(1, entities.SectionTypeMaterial, 0)}},
				{SectionOrder: 2, SectionType: entities.SectionTypeMaterial, Lines: []entities.Line{normal(1, 1e300, 1e10)}},
			},
			sectionOrder: 1, lineOrder: 1,
		},
		{
			name: "section sum overflows",
			sections: []entities.Section{
				{SectionOrder: 1, SectionType: entities.SectionTypeLabor, Lines: []entities.Line{normal(1, 1, 1.5e308), normal(2, 1, 1.5e308)}},
			},
			sectionOrder: 1, lineOrder: 2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Aggregate(tc.sections)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAmountOutOfRange)

			var le *LineError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tc.sectionOrder, le.SectionOrder)
			assert.Equal(t, tc.lineOrder, le.LineOrder)
		})
	}
}

func TestAggregate_RejectsDocumentTotalOverflow(t *testing.T) {
	_, err := Aggregate([]entities.Section{
		{SectionOrder: 1, SectionType: entities.SectionTypeMaterial, Lines: []entities.Line{normal(1, 1, 1.5e308)}},
		{SectionOrder: 2, SectionType: entities.SectionTypeLabor, Lines: []entities.Line{normal(1, 1, 1.5e308)}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}
