package sheetstat

import (
	"sort"
	"time"
)

// Quartiles holds the three quartile cut points of a numeric column.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnStatistics is the descriptive summary of a single column. Numeric
// fields populate only for number columns, the date range only for date
// columns, and the frequency table only for text columns.
type ColumnStatistics struct {
	Column      string     `json:"column"`
	Type        ColumnType `json:"type"`
	NullCount   int        `json:"null_count"`
	UniqueCount int        `json:"unique_count"`

	Min       *float64     `json:"min,omitempty"`
	Max       *float64     `json:"max,omitempty"`
	Mean      *float64     `json:"mean,omitempty"`
	Median    *float64     `json:"median,omitempty"`
	Mode      *float64     `json:"mode,omitempty"`
	StdDev    *float64     `json:"std_dev,omitempty"`
	Quartiles *Quartiles   `json:"quartiles,omitempty"`
	Outliers  []float64    `json:"outliers,omitempty"`
	MinDate   *time.Time   `json:"min_date,omitempty"`
	MaxDate   *time.Time   `json:"max_date,omitempty"`
	MostCommon []ValueCount `json:"most_common,omitempty"`
}

const defaultMostCommonLimit = 5

// Describe computes descriptive statistics for a column of the given
// inferred type, using the default frequency-table limit.
func Describe(name string, values []Cell, typ ColumnType) (*ColumnStatistics, error) {
	return describe(name, values, typ, defaultMostCommonLimit, defaultOutlierIQRFactor)
}

func describe(name string, values []Cell, typ ColumnType, mostCommonLimit int, iqrFactor float64) (*ColumnStatistics, error) {
	stats := &ColumnStatistics{Column: name, Type: typ}

	unique := make(map[string]bool)
	for _, c := range values {
		if c.IsNull() {
			stats.NullCount++
			continue
		}
		unique[c.key()] = true
	}
	stats.UniqueCount = len(unique)

	switch typ {
	case TypeNumber:
		if err := describeNumeric(stats, values, iqrFactor); err != nil {
			return nil, err
		}
	case TypeDate:
		if err := describeDates(stats, values); err != nil {
			return nil, err
		}
	case TypeText:
		describeText(stats, values, mostCommonLimit)
	default:
		return nil, newAnalysisError("describe", name, "unrecognized column type "+string(typ), ErrInvalidRequest)
	}

	return stats, nil
}

// describeNumeric fills the numeric fields. Values that fail numeric
// coercion are excluded, not zero-filled. A column with zero coercible
// values has no defined min/max and is reported as an explicit error.
func describeNumeric(stats *ColumnStatistics, values []Cell, iqrFactor float64) error {
	nums := make([]float64, 0, len(values))
	for _, c := range values {
		if c.IsNull() {
			continue
		}
		if v, ok := c.Float(); ok {
			nums = append(nums, v)
		}
	}
	if len(nums) == 0 {
		return newAnalysisError("describe", stats.Column, "numeric column has no coercible values", ErrNoNumericValues)
	}

	min, max := nums[0], nums[0]
	for _, v := range nums[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	mean := meanOf(nums)
	stddev := populationStdDev(nums, mean)

	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	median := medianSorted(sorted)
	quartiles := quartilesSorted(sorted)
	mode := modeOf(nums)

	lower, upper := outlierBounds(quartiles, iqrFactor)
	var outliers []float64
	for _, v := range nums {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}

	stats.Min = &min
	stats.Max = &max
	stats.Mean = &mean
	stats.Median = &median
	stats.Mode = &mode
	stats.StdDev = &stddev
	stats.Quartiles = &quartiles
	stats.Outliers = outliers
	return nil
}

// modeOf returns the most frequent value; the first-seen value wins ties.
func modeOf(nums []float64) float64 {
	counts := make(map[float64]int, len(nums))
	best := nums[0]
	bestCount := 0
	for _, v := range nums {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

func describeDates(stats *ColumnStatistics, values []Cell) error {
	var min, max time.Time
	found := false
	for _, c := range values {
		if c.IsNull() {
			continue
		}
		t, ok := c.Time()
		if !ok {
			continue
		}
		if !found || t.Before(min) {
			min = t
		}
		if !found || t.After(max) {
			max = t
		}
		found = true
	}
	if !found {
		return newAnalysisError("describe", stats.Column, "date column has no parseable values", ErrNoDateValues)
	}
	stats.MinDate = &min
	stats.MaxDate = &max
	return nil
}

// describeText fills the frequency table: the top entries by descending
// count, ties broken by first-encountered order.
func describeText(stats *ColumnStatistics, values []Cell, limit int) {
	counts := make(map[string]int)
	order := make([]string, 0)
	display := make(map[string]string)
	for _, c := range values {
		if c.IsNull() {
			continue
		}
		k := c.key()
		if counts[k] == 0 {
			order = append(order, k)
			display[k] = c.String()
		}
		counts[k]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if limit <= 0 {
		limit = defaultMostCommonLimit
	}
	if len(order) < limit {
		limit = len(order)
	}
	mostCommon := make([]ValueCount, 0, limit)
	for _, k := range order[:limit] {
		mostCommon = append(mostCommon, ValueCount{Value: display[k], Count: counts[k]})
	}
	stats.MostCommon = mostCommon
}
