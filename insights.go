package sheetstat

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// InsightKind classifies a rule-based observation.
type InsightKind string

const (
	InsightTrend        InsightKind = "trend"
	InsightCorrelation  InsightKind = "correlation"
	InsightDistribution InsightKind = "distribution"
	InsightOutlier      InsightKind = "outlier"
)

// Insight is one derived, read-only observation about an analysis.
type Insight struct {
	ID         string      `json:"id"`
	Kind       InsightKind `json:"kind"`
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence,omitempty"`
}

// InsightInput carries the prior analysis outputs the heuristics consume.
// Any field may be nil; the corresponding rules are skipped.
type InsightInput struct {
	ChartType    ChartType
	Series       *ChartSeries
	Correlations CorrelationMatrix
	Columns      []ColumnDescriptor
}

// GenerateInsights derives rule-based textual observations from prior
// analysis results using default thresholds: trend direction for line
// charts, strong correlations, distribution skew, and outlier prevalence.
func GenerateInsights(t *Table, in InsightInput) []Insight {
	return generateInsights(t, in, DefaultAnalyzerConfig())
}

func generateInsights(t *Table, in InsightInput, cfg AnalyzerConfig) []Insight {
	var insights []Insight
	insights = append(insights, trendInsights(in, cfg)...)
	insights = append(insights, correlationInsights(in.Correlations, cfg)...)
	if t != nil {
		insights = append(insights, distributionInsights(t, in.Columns, cfg)...)
		insights = append(insights, outlierInsights(t, in.Columns, cfg)...)
	}
	return insights
}

// trendInsights compares the last value of a line series to the first.
// Changes within the stability band are reported as stable; a zero first
// value leaves the percent change undefined, so the rule is skipped.
func trendInsights(in InsightInput, cfg AnalyzerConfig) []Insight {
	if in.ChartType != ChartLine || in.Series == nil || len(in.Series.Values) < 2 {
		return nil
	}
	values := in.Series.Values
	first, last := values[0], values[len(values)-1]
	if first == 0 {
		return nil
	}

	label := in.Series.YLabel
	if label == "" {
		label = "the series"
	}

	pct := (last - first) / first * 100
	if math.Abs(pct) < cfg.TrendStabilityPercent {
		return []Insight{newInsight(InsightTrend,
			fmt.Sprintf("%s remained stable across the series (%.1f%% change)", label, pct), 0.5)}
	}

	direction := "upward"
	if pct < 0 {
		direction = "downward"
	}
	conf := math.Min(0.95, 0.5+math.Abs(pct)/200)
	return []Insight{newInsight(InsightTrend,
		fmt.Sprintf("%s shows a %s trend, changing %.1f%% from first to last point", label, direction, pct), conf)}
}

// correlationInsights reports every unordered pair whose |r| exceeds the
// threshold. Only the lexicographically ordered direction of each pair is
// emitted, so (a, b) and (b, a) produce one insight.
func correlationInsights(matrix CorrelationMatrix, cfg AnalyzerConfig) []Insight {
	if len(matrix) == 0 {
		return nil
	}

	names := make([]string, 0, len(matrix))
	for name := range matrix {
		names = append(names, name)
	}
	sort.Strings(names)

	var insights []Insight
	for _, a := range names {
		for _, b := range names {
			if a >= b {
				continue
			}
			r, ok := matrix[a][b]
			if !ok || math.Abs(r) <= cfg.CorrelationThreshold {
				continue
			}
			direction := "positive"
			if r < 0 {
				direction = "negative"
			}
			insights = append(insights, newInsight(InsightCorrelation,
				fmt.Sprintf("strong %s correlation between %s and %s (r=%.2f)", direction, a, b, roundTo(r, 2)),
				math.Abs(r)))
		}
	}
	return insights
}

// distributionInsights computes skewness per numeric column as the mean of
// cubed standardized deviations. Constant columns (zero standard deviation)
// are skipped rather than divided by zero.
func distributionInsights(t *Table, columns []ColumnDescriptor, cfg AnalyzerConfig) []Insight {
	var insights []Insight
	for _, col := range columns {
		if col.Type != TypeNumber {
			continue
		}
		nums := numericColumn(t, col.Name)
		if len(nums) == 0 {
			continue
		}
		mean := meanOf(nums)
		stddev := populationStdDev(nums, mean)
		if stddev == 0 {
			continue
		}
		skew := 0.0
		for _, v := range nums {
			z := (v - mean) / stddev
			skew += z * z * z
		}
		skew /= float64(len(nums))
		if math.Abs(skew) <= cfg.SkewThreshold {
			continue
		}
		direction := "positive"
		if skew < 0 {
			direction = "negative"
		}
		insights = append(insights, newInsight(InsightDistribution,
			fmt.Sprintf("values in %s show strong %s skew (skewness %.2f)", col.Name, direction, skew),
			math.Min(0.95, math.Abs(skew)/3)))
	}
	return insights
}

// outlierInsights reuses the IQR fence and reports count and percentage per
// numeric column.
func outlierInsights(t *Table, columns []ColumnDescriptor, cfg AnalyzerConfig) []Insight {
	factor := cfg.OutlierIQRFactor
	if factor <= 0 {
		factor = defaultOutlierIQRFactor
	}

	var insights []Insight
	for _, col := range columns {
		if col.Type != TypeNumber {
			continue
		}
		nums := numericColumn(t, col.Name)
		if len(nums) == 0 {
			continue
		}
		sorted := make([]float64, len(nums))
		copy(sorted, nums)
		sort.Float64s(sorted)
		lower, upper := outlierBounds(quartilesSorted(sorted), factor)

		count := 0
		for _, v := range nums {
			if v < lower || v > upper {
				count++
			}
		}
		if count == 0 {
			continue
		}
		pct := float64(count) / float64(len(nums)) * 100
		insights = append(insights, newInsight(InsightOutlier,
			fmt.Sprintf("%s contains %d outlier(s) (%.1f%% of values)", col.Name, count, pct),
			math.Min(0.9, 0.5+pct/100)))
	}
	return insights
}

func numericColumn(t *Table, name string) []float64 {
	cells, err := t.Column(name)
	if err != nil {
		return nil
	}
	nums := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		if v, ok := c.Float(); ok {
			nums = append(nums, v)
		}
	}
	return nums
}

func newInsight(kind InsightKind, text string, confidence float64) Insight {
	return Insight{
		ID:         uuid.NewString(),
		Kind:       kind,
		Text:       text,
		Confidence: confidence,
	}
}
