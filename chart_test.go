package sheetstat

import (
	"errors"
	"strings"
	"testing"
)

func salesTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]string{"cat", "v"},
		[]Row{
			{"cat": TextCell("A"), "v": NumberCell(10)},
			{"cat": TextCell("A"), "v": NumberCell(20)},
			{"cat": TextCell("B"), "v": NumberCell(5)},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return table
}

func TestBuildChart_AverageByGroup(t *testing.T) {
	series, err := BuildChart(salesTable(t), ChartRequest{
		Type:        ChartBar,
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggAverage,
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}

	if len(series.Labels) != 2 || series.Labels[0] != "A" || series.Labels[1] != "B" {
		t.Fatalf("labels = %v, want [A B]", series.Labels)
	}
	if !almostEqual(series.Values[0], 15) || !almostEqual(series.Values[1], 5) {
		t.Errorf("values = %v, want [15 5]", series.Values)
	}
}

func TestBuildChart_SumMinMaxCount(t *testing.T) {
	table := salesTable(t)

	cases := []struct {
		agg  AggregationKind
		want []float64
	}{
		{AggSum, []float64{30, 5}},
		{AggMin, []float64{10, 5}},
		{AggMax, []float64{20, 5}},
		{AggCount, []float64{2, 1}},
	}
	for _, c := range cases {
		series, err := BuildChart(table, ChartRequest{
			Type:        ChartBar,
			XColumn:     "cat",
			YColumn:     "v",
			Aggregation: c.agg,
		})
		if err != nil {
			t.Fatalf("BuildChart(%s) failed: %v", c.agg, err)
		}
		for i, want := range c.want {
			if !almostEqual(series.Values[i], want) {
				t.Errorf("%s values = %v, want %v", c.agg, series.Values, c.want)
				break
			}
		}
	}
}

func TestBuildChart_CountTotalsMatchRowCount(t *testing.T) {
	table := salesTable(t)
	series, err := BuildChart(table, ChartRequest{
		Type:        ChartPie,
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggCount,
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	total := 0.0
	for _, v := range series.Values {
		total += v
	}
	if int(total) != table.RowCount() {
		t.Errorf("group counts sum to %v, want %d", total, table.RowCount())
	}
}

func TestBuildChart_EqualsFilter(t *testing.T) {
	table, err := NewTable(
		[]string{"status"},
		[]Row{
			{"status": TextCell("ok")},
			{"status": TextCell("fail")},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	series, err := BuildChart(table, ChartRequest{
		Type:        ChartBar,
		XColumn:     "status",
		YColumn:     "status",
		Aggregation: AggCount,
		Filters: []FilterSpec{
			{Column: "status", Operator: OpEquals, Value: "ok"},
		},
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	if len(series.Labels) != 1 || series.Labels[0] != "ok" {
		t.Errorf("labels = %v, want [ok]", series.Labels)
	}
}

func TestBuildChart_FilterOperators(t *testing.T) {
	table, err := NewTable(
		[]string{"name", "score"},
		[]Row{
			{"name": TextCell("alpha"), "score": NumberCell(10)},
			{"name": TextCell("beta"), "score": NumberCell(20)},
			{"name": TextCell("alphabet"), "score": NumberCell(30)},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	cases := []struct {
		filter FilterSpec
		want   int
	}{
		{FilterSpec{Column: "score", Operator: OpGreaterThan, Value: 15}, 2},
		{FilterSpec{Column: "score", Operator: OpLessThan, Value: "15"}, 1},
		{FilterSpec{Column: "name", Operator: OpContains, Value: "alpha"}, 2},
		{FilterSpec{Column: "name", Operator: OpNotContains, Value: "alpha"}, 1},
		{FilterSpec{Column: "name", Operator: OpNotEquals, Value: "beta"}, 2},
	}
	for _, c := range cases {
		series, err := BuildChart(table, ChartRequest{
			Type:        ChartBar,
			XColumn:     "name",
			YColumn:     "score",
			Aggregation: AggCount,
			Filters:     []FilterSpec{c.filter},
		})
		if err != nil {
			t.Fatalf("BuildChart(%s) failed: %v", c.filter.Operator, err)
		}
		if len(series.Labels) != c.want {
			t.Errorf("%s kept %d rows, want %d", c.filter.Operator, len(series.Labels), c.want)
		}
	}
}

func TestBuildChart_FiltersAreConjunctive(t *testing.T) {
	table, err := NewTable(
		[]string{"name", "score"},
		[]Row{
			{"name": TextCell("alpha"), "score": NumberCell(10)},
			{"name": TextCell("alpha"), "score": NumberCell(30)},
			{"name": TextCell("beta"), "score": NumberCell(30)},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	series, err := BuildChart(table, ChartRequest{
		Type:        ChartBar,
		XColumn:     "name",
		YColumn:     "score",
		Aggregation: AggSum,
		Filters: []FilterSpec{
			{Column: "name", Operator: OpEquals, Value: "alpha"},
			{Column: "score", Operator: OpGreaterThan, Value: 20},
		},
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	if len(series.Labels) != 1 || !almostEqual(series.Values[0], 30) {
		t.Errorf("series = %v/%v, want one group summing 30", series.Labels, series.Values)
	}
}

func TestBuildChart_ZeroFillOnBadValues(t *testing.T) {
	// Aggregation zero-fills values that fail coercion, unlike the
	// statistics path which filters them out.
	table, err := NewTable(
		[]string{"cat", "v"},
		[]Row{
			{"cat": TextCell("A"), "v": NumberCell(10)},
			{"cat": TextCell("A"), "v": TextCell("oops")},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	series, err := BuildChart(table, ChartRequest{
		Type:        ChartBar,
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggAverage,
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	// (10 + 0) / 2, not 10/1.
	if !almostEqual(series.Values[0], 5) {
		t.Errorf("average = %v, want 5 (bad value counts as 0)", series.Values[0])
	}

	series, err = BuildChart(table, ChartRequest{
		Type:        ChartBar,
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggMin,
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	if !almostEqual(series.Values[0], 0) {
		t.Errorf("min = %v, want 0 (bad value counts as 0)", series.Values[0])
	}
}

func TestBuildChart_RawKeysKeepKindsSeparate(t *testing.T) {
	table, err := NewTable(
		[]string{"k", "v"},
		[]Row{
			{"k": NumberCell(5), "v": NumberCell(1)},
			{"k": TextCell("5"), "v": NumberCell(1)},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	series, err := BuildChart(table, ChartRequest{
		Type:        ChartBar,
		XColumn:     "k",
		YColumn:     "v",
		Aggregation: AggCount,
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	if len(series.Labels) != 2 {
		t.Errorf("numeric 5 and text \"5\" must form separate groups, got %v", series.Labels)
	}
}

func TestBuildChart_ScatterRowOrder(t *testing.T) {
	table, err := NewTable(
		[]string{"x", "y"},
		[]Row{
			{"x": NumberCell(3), "y": NumberCell(30)},
			{"x": NumberCell(1), "y": NumberCell(10)},
			{"x": NumberCell(2), "y": NumberCell(20)},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	series, err := BuildChart(table, ChartRequest{
		Type:    ChartScatter,
		XColumn: "x",
		YColumn: "y",
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	if len(series.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series.Points))
	}
	// Tuples keep row order, no sorting or grouping.
	if series.Points[0].X.(float64) != 3 || series.Points[2].Y.(float64) != 20 {
		t.Errorf("points out of row order: %+v", series.Points)
	}
	if len(series.Labels) != 0 {
		t.Error("scatter series must not carry group labels")
	}
}

func TestBuildChart_ThreeDimensional(t *testing.T) {
	table, err := NewTable(
		[]string{"x", "y", "z"},
		[]Row{
			{"x": NumberCell(1), "y": NumberCell(2), "z": NumberCell(3)},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	series, err := BuildChart(table, ChartRequest{
		Type:    Chart3DScatter,
		XColumn: "x",
		YColumn: "y",
		ZColumn: "z",
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	if series.Points[0].Z.(float64) != 3 {
		t.Errorf("z = %v, want 3", series.Points[0].Z)
	}

	// Missing z column is rejected up front.
	_, err = BuildChart(table, ChartRequest{
		Type:    Chart3DScatter,
		XColumn: "x",
		YColumn: "y",
	})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestBuildChart_UnknownChartTypeNamed(t *testing.T) {
	_, err := BuildChart(salesTable(t), ChartRequest{
		Type:        ChartType("sparkline"),
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggSum,
	})
	if !errors.Is(err, ErrUnknownChartType) {
		t.Fatalf("expected ErrUnknownChartType, got %v", err)
	}
	if !strings.Contains(err.Error(), "sparkline") {
		t.Errorf("error must name the unsupported type: %v", err)
	}
}

func TestBuildChart_UnknownAggregationAndOperator(t *testing.T) {
	if _, err := BuildChart(salesTable(t), ChartRequest{
		Type:        ChartBar,
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggregationKind("median"),
	}); !errors.Is(err, ErrUnknownAggregation) {
		t.Errorf("expected ErrUnknownAggregation, got %v", err)
	}

	if _, err := BuildChart(salesTable(t), ChartRequest{
		Type:        ChartBar,
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggSum,
		Filters: []FilterSpec{
			{Column: "cat", Operator: FilterOperator("matches"), Value: "A"},
		},
	}); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestBuildChart_SeriesSummary(t *testing.T) {
	series, err := BuildChart(salesTable(t), ChartRequest{
		Type:        ChartBar,
		XColumn:     "cat",
		YColumn:     "v",
		Aggregation: AggSum,
	})
	if err != nil {
		t.Fatalf("BuildChart failed: %v", err)
	}
	s := series.Summary
	if s == nil {
		t.Fatal("expected a summary")
	}
	if s.Count != 2 || !almostEqual(s.Min, 5) || !almostEqual(s.Max, 30) || !almostEqual(s.Mean, 17.5) {
		t.Errorf("summary = %+v", *s)
	}
}

func TestBuildChart_EmptyTable(t *testing.T) {
	empty, err := NewTable([]string{"a"}, nil)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	_, err = BuildChart(empty, ChartRequest{
		Type:        ChartBar,
		XColumn:     "a",
		YColumn:     "a",
		Aggregation: AggCount,
	})
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}
