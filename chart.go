package sheetstat

import (
	"fmt"
	"strings"
	"time"
)

// ChartType identifies the visualization a series is built for.
type ChartType string

const (
	ChartBar       ChartType = "bar"
	ChartLine      ChartType = "line"
	ChartArea      ChartType = "area"
	ChartPie       ChartType = "pie"
	ChartScatter   ChartType = "scatter"
	Chart3DBar     ChartType = "3d-bar"
	Chart3DScatter ChartType = "3d-scatter"
	Chart3DSurface ChartType = "3d-surface"
)

// isCategorical reports whether the chart type groups rows by a key column.
// The remaining types emit raw per-row tuples instead.
func (c ChartType) isCategorical() bool {
	switch c {
	case ChartBar, ChartLine, ChartArea, ChartPie:
		return true
	}
	return false
}

func (c ChartType) isThreeDimensional() bool {
	switch c {
	case Chart3DBar, Chart3DScatter, Chart3DSurface:
		return true
	}
	return false
}

func (c ChartType) known() bool {
	switch c {
	case ChartBar, ChartLine, ChartArea, ChartPie, ChartScatter, Chart3DBar, Chart3DScatter, Chart3DSurface:
		return true
	}
	return false
}

// AggregationKind names the reduction applied to each group's value column.
type AggregationKind string

const (
	AggSum     AggregationKind = "sum"
	AggAverage AggregationKind = "average"
	AggCount   AggregationKind = "count"
	AggMin     AggregationKind = "min"
	AggMax     AggregationKind = "max"
)

func (a AggregationKind) known() bool {
	switch a {
	case AggSum, AggAverage, AggCount, AggMin, AggMax:
		return true
	}
	return false
}

// FilterOperator names a row filter comparison.
type FilterOperator string

const (
	OpEquals      FilterOperator = "equals"
	OpNotEquals   FilterOperator = "not_equals"
	OpGreaterThan FilterOperator = "greater_than"
	OpLessThan    FilterOperator = "less_than"
	OpContains    FilterOperator = "contains"
	OpNotContains FilterOperator = "not_contains"
)

func (o FilterOperator) known() bool {
	switch o {
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpContains, OpNotContains:
		return true
	}
	return false
}

// FilterSpec is one row filter. Filters in a request apply conjunctively: a
// row survives only if it satisfies every filter.
type FilterSpec struct {
	Column   string         `json:"column" yaml:"column"`
	Operator FilterOperator `json:"operator" yaml:"operator"`
	Value    any            `json:"value" yaml:"value"`
}

// ChartRequest describes one chart-data computation.
type ChartRequest struct {
	Type        ChartType       `json:"type" yaml:"type"`
	XColumn     string          `json:"x_column" yaml:"x_column"`
	YColumn     string          `json:"y_column" yaml:"y_column"`
	ZColumn     string          `json:"z_column,omitempty" yaml:"z_column,omitempty"`
	XLabel      string          `json:"x_label,omitempty" yaml:"x_label,omitempty"`
	YLabel      string          `json:"y_label,omitempty" yaml:"y_label,omitempty"`
	Aggregation AggregationKind `json:"aggregation,omitempty" yaml:"aggregation,omitempty"`
	Filters     []FilterSpec    `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// Validate checks the request shape without consulting a table. Column
// existence is checked when the chart is built.
func (r *ChartRequest) Validate() error {
	if !r.Type.known() {
		return newAnalysisError("chart", "", fmt.Sprintf("unsupported chart type %q", string(r.Type)), ErrUnknownChartType)
	}
	if r.XColumn == "" || r.YColumn == "" {
		return newAnalysisError("chart", "", "x_column and y_column are required", ErrInvalidRequest)
	}
	if r.Type.isCategorical() && !r.Aggregation.known() {
		return newAnalysisError("chart", "", fmt.Sprintf("unsupported aggregation %q", string(r.Aggregation)), ErrUnknownAggregation)
	}
	if r.Type.isThreeDimensional() && r.ZColumn == "" {
		return newAnalysisError("chart", "", "z_column is required for 3d charts", ErrInvalidRequest)
	}
	for _, f := range r.Filters {
		if f.Column == "" {
			return newAnalysisError("chart", "", "filter column is required", ErrInvalidRequest)
		}
		if !f.Operator.known() {
			return newAnalysisError("chart", f.Column, fmt.Sprintf("unsupported filter operator %q", string(f.Operator)), ErrUnknownOperator)
		}
	}
	return nil
}

// ChartPoint is one raw (x, y[, z]) tuple for scatter and 3D charts.
type ChartPoint struct {
	X any `json:"x"`
	Y any `json:"y"`
	Z any `json:"z,omitempty"`
}

// SeriesSummary carries the basic shape of an aggregated series.
type SeriesSummary struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// ChartSeries is chart-ready data: Labels/Values for categorical charts, or
// Points for scatter and 3D charts. Series are computed fresh per request
// and never mutated after construction.
type ChartSeries struct {
	Type    ChartType      `json:"type"`
	XLabel  string         `json:"x_label,omitempty"`
	YLabel  string         `json:"y_label,omitempty"`
	Labels  []string       `json:"labels,omitempty"`
	Values  []float64      `json:"values,omitempty"`
	Points  []ChartPoint   `json:"points,omitempty"`
	Summary *SeriesSummary `json:"summary,omitempty"`
}

// BuildChart applies the request's filters, then either groups and reduces
// rows into a label/value series or emits raw per-row tuples, depending on
// the chart type.
func BuildChart(t *Table, req ChartRequest) (*ChartSeries, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, newAnalysisError("chart", "", "table is empty", ErrEmptyTable)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, name := range []string{req.XColumn, req.YColumn, req.ZColumn} {
		if name != "" && !t.HasColumn(name) {
			return nil, newAnalysisError("chart", name, "column not found", ErrUnknownColumn)
		}
	}
	for _, f := range req.Filters {
		if !t.HasColumn(f.Column) {
			return nil, newAnalysisError("chart", f.Column, "filter column not found", ErrUnknownColumn)
		}
	}

	rows := filterRows(t.rows, req.Filters)

	series := &ChartSeries{Type: req.Type, XLabel: req.XLabel, YLabel: req.YLabel}
	if req.Type.isCategorical() {
		labels, values := aggregateRows(rows, req.XColumn, req.YColumn, req.Aggregation)
		series.Labels = labels
		series.Values = values
		series.Summary = summarize(values)
		return series, nil
	}

	series.Points = tupleRows(rows, req)
	series.Summary = summarizePoints(series.Points)
	return series, nil
}

// filterRows keeps the rows that satisfy every filter.
func filterRows(rows []Row, filters []FilterSpec) []Row {
	if len(filters) == 0 {
		return rows
	}
	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		ok := true
		for _, f := range filters {
			if !matchFilter(row[f.Column], f) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, row)
		}
	}
	return kept
}

func matchFilter(c Cell, f FilterSpec) bool {
	cellStr := c.String()
	valStr := formatFilterValue(f.Value)

	switch f.Operator {
	case OpEquals:
		return looseEqual(c, f.Value, cellStr, valStr)
	case OpNotEquals:
		return !looseEqual(c, f.Value, cellStr, valStr)
	case OpGreaterThan:
		return looseCompare(c, f.Value, cellStr, valStr) > 0
	case OpLessThan:
		return looseCompare(c, f.Value, cellStr, valStr) < 0
	case OpContains:
		return strings.Contains(cellStr, valStr)
	case OpNotContains:
		return !strings.Contains(cellStr, valStr)
	}
	return false
}

// looseEqual compares numerically when both sides coerce, otherwise by
// display string, mirroring loose equality over mixed spreadsheet values.
func looseEqual(c Cell, v any, cellStr, valStr string) bool {
	cn, okC := c.Float()
	vn, okV := filterValueNumber(v)
	if okC && okV {
		return cn == vn
	}
	return cellStr == valStr
}

// looseCompare returns -1, 0, or 1: numeric ordering when both sides
// coerce, lexicographic otherwise.
func looseCompare(c Cell, v any, cellStr, valStr string) int {
	cn, okC := c.Float()
	vn, okV := filterValueNumber(v)
	if okC && okV {
		switch {
		case cn < vn:
			return -1
		case cn > vn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(cellStr, valStr)
}

// filterValueNumber coerces the scalar types YAML and JSON decoders produce.
func filterValueNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		return parseNumeric(n)
	default:
		return 0, false
	}
}

func formatFilterValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return formatFloat(s)
	case float32:
		return formatFloat(float64(s))
	case int:
		return formatFloat(float64(s))
	case int64:
		return formatFloat(float64(s))
	case time.Time:
		return s.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// groupAccumulator carries the running reductions for one group.
type groupAccumulator struct {
	label string
	sum   float64
	count int
	min   float64
	max   float64
}

// aggregateRows groups rows by the raw key-column value and reduces the
// value column. Group keys are the values as-is, so NumberCell(5) and
// TextCell("5") form separate groups. Value cells that fail numeric coercion
// contribute zero to sum/min/max, by contrast with the silent filtering the
// statistics engines apply; both behaviors are externally observable and
// deliberately distinct.
func aggregateRows(rows []Row, groupBy, valueColumn string, agg AggregationKind) ([]string, []float64) {
	groups := make(map[string]*groupAccumulator)
	order := make([]string, 0)

	for _, row := range rows {
		keyCell := row[groupBy]
		key := keyCell.key()
		acc, ok := groups[key]
		if !ok {
			acc = &groupAccumulator{label: keyCell.String()}
			groups[key] = acc
			order = append(order, key)
		}

		v, okV := row[valueColumn].Float()
		if !okV {
			v = 0
		}
		if acc.count == 0 {
			acc.min = v
			acc.max = v
		} else {
			if v < acc.min {
				acc.min = v
			}
			if v > acc.max {
				acc.max = v
			}
		}
		acc.sum += v
		acc.count++
	}

	labels := make([]string, 0, len(order))
	values := make([]float64, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		labels = append(labels, acc.label)
		switch agg {
		case AggSum:
			values = append(values, acc.sum)
		case AggAverage:
			values = append(values, acc.sum/float64(acc.count))
		case AggCount:
			values = append(values, float64(acc.count))
		case AggMin:
			values = append(values, acc.min)
		case AggMax:
			values = append(values, acc.max)
		}
	}
	return labels, values
}

// tupleRows emits one raw tuple per filtered row, in row order.
func tupleRows(rows []Row, req ChartRequest) []ChartPoint {
	points := make([]ChartPoint, 0, len(rows))
	for _, row := range rows {
		p := ChartPoint{
			X: row[req.XColumn].Value(),
			Y: row[req.YColumn].Value(),
		}
		if req.ZColumn != "" {
			p.Z = row[req.ZColumn].Value()
		}
		points = append(points, p)
	}
	return points
}

func summarize(values []float64) *SeriesSummary {
	if len(values) == 0 {
		return &SeriesSummary{}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &SeriesSummary{Min: min, Max: max, Mean: meanOf(values), Count: len(values)}
}

func summarizePoints(points []ChartPoint) *SeriesSummary {
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		if v, ok := p.Y.(float64); ok {
			ys = append(ys, v)
		} else if s, ok := p.Y.(string); ok {
			if v, ok := parseNumeric(s); ok {
				ys = append(ys, v)
			}
		}
	}
	s := summarize(ys)
	s.Count = len(points)
	return s
}
