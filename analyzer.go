package sheetstat

import (
	"time"

	"github.com/google/uuid"
)

// Analyzer orchestrates the analysis engines with a shared configuration.
// It holds no mutable state between calls; methods are safe for concurrent
// use.
type Analyzer struct {
	config AnalyzerConfig
}

// NewAnalyzer creates an analyzer. Zero config fields fall back to the
// defaults.
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	if config.SampleSize <= 0 {
		config.SampleSize = defaultSampleSize
	}
	if config.MostCommonLimit <= 0 {
		config.MostCommonLimit = defaultMostCommonLimit
	}
	if config.OutlierIQRFactor <= 0 {
		config.OutlierIQRFactor = defaultOutlierIQRFactor
	}
	if config.CorrelationThreshold <= 0 {
		config.CorrelationThreshold = defaultCorrelationThreshold
	}
	if config.SkewThreshold <= 0 {
		config.SkewThreshold = defaultSkewThreshold
	}
	if config.TrendStabilityPercent <= 0 {
		config.TrendStabilityPercent = defaultTrendStabilityPercent
	}
	return &Analyzer{config: config}
}

// InferType classifies a column's values using the configured sample size.
func (a *Analyzer) InferType(values []Cell) ColumnType {
	return inferType(values, a.config.SampleSize)
}

// DescribeColumn infers the named column's type and computes its statistics.
func (a *Analyzer) DescribeColumn(t *Table, name string) (*ColumnStatistics, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	typ := inferType(cells, a.config.SampleSize)
	return describe(name, cells, typ, a.config.MostCommonLimit, a.config.OutlierIQRFactor)
}

// BuildChart builds chart-ready data for one request.
func (a *Analyzer) BuildChart(t *Table, req ChartRequest) (*ChartSeries, error) {
	return BuildChart(t, req)
}

// Correlate computes the Pearson matrix over the given columns, or over
// every column that infers as numeric when the list is empty.
func (a *Analyzer) Correlate(t *Table, columns []string) (CorrelationMatrix, error) {
	if len(columns) == 0 {
		columns = a.numericColumns(t)
		if len(columns) == 0 {
			return nil, newAnalysisError("correlate", "", "table has no numeric columns", ErrNoNumericValues)
		}
	}
	return Correlate(t, columns)
}

// Regress fits a linear regression for the request.
func (a *Analyzer) Regress(t *Table, dependent string, independent []string) (*RegressionResult, error) {
	return Regress(t, dependent, independent)
}

// GenerateInsights derives rule-based observations using the configured
// thresholds.
func (a *Analyzer) GenerateInsights(t *Table, in InsightInput) []Insight {
	return generateInsights(t, in, a.config)
}

// ColumnProfile pairs a column descriptor with its statistics.
type ColumnProfile struct {
	ColumnDescriptor
	Statistics *ColumnStatistics `json:"statistics"`
}

// ProfileResult is the full-table per-column summary.
type ProfileResult struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Columns     []ColumnProfile `json:"columns"`
}

// Profile infers every column's type and computes its statistics in one
// pass, in table column order.
func (a *Analyzer) Profile(t *Table) (*ProfileResult, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, newAnalysisError("profile", "", "table is empty", ErrEmptyTable)
	}

	descriptors := inferColumns(t, a.config.SampleSize)
	profiles := make([]ColumnProfile, 0, len(descriptors))
	for _, d := range descriptors {
		cells, err := t.Column(d.Name)
		if err != nil {
			return nil, err
		}
		stats, err := describe(d.Name, cells, d.Type, a.config.MostCommonLimit, a.config.OutlierIQRFactor)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, ColumnProfile{ColumnDescriptor: d, Statistics: stats})
	}

	return &ProfileResult{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		RowCount:    t.RowCount(),
		ColumnCount: len(t.Columns()),
		Columns:     profiles,
	}, nil
}

// AnalysisResult aggregates the outputs of one analysis request.
type AnalysisResult struct {
	ID           string             `json:"id"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Chart        *ChartSeries       `json:"chart,omitempty"`
	Statistics   []*ColumnStatistics `json:"statistics,omitempty"`
	Correlations CorrelationMatrix  `json:"correlations,omitempty"`
	Regression   *RegressionResult  `json:"regression,omitempty"`
	Insights     []Insight          `json:"insights,omitempty"`
}

// Analyze runs every section of the request and, when asked, derives
// insights from the produced results. Either a complete result or an error
// is returned, never both.
func (a *Analyzer) Analyze(t *Table, req *AnalysisRequest) (*AnalysisResult, error) {
	if req == nil {
		return nil, newAnalysisError("analyze", "", "request is required", ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if t == nil || t.RowCount() == 0 {
		return nil, newAnalysisError("analyze", "", "table is empty", ErrEmptyTable)
	}

	result := &AnalysisResult{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	if req.Chart != nil {
		series, err := a.BuildChart(t, *req.Chart)
		if err != nil {
			return nil, err
		}
		result.Chart = series
	}

	if req.Statistics != nil {
		columns := req.Statistics.Columns
		if len(columns) == 0 {
			columns = t.Columns()
		}
		for _, name := range columns {
			stats, err := a.DescribeColumn(t, name)
			if err != nil {
				return nil, err
			}
			result.Statistics = append(result.Statistics, stats)
		}
	}

	if req.Correlation != nil {
		matrix, err := a.Correlate(t, req.Correlation.Columns)
		if err != nil {
			return nil, err
		}
		result.Correlations = matrix
	}

	if req.Regression != nil {
		fit, err := a.Regress(t, req.Regression.Dependent, req.Regression.Independent)
		if err != nil {
			return nil, err
		}
		result.Regression = fit
	}

	if req.Insights {
		in := InsightInput{
			Series:       result.Chart,
			Correlations: result.Correlations,
			Columns:      inferColumns(t, a.config.SampleSize),
		}
		if req.Chart != nil {
			in.ChartType = req.Chart.Type
		}
		result.Insights = a.GenerateInsights(t, in)
	}

	return result, nil
}

// numericColumns returns the names of columns that infer as numeric.
func (a *Analyzer) numericColumns(t *Table) []string {
	var names []string
	for _, d := range inferColumns(t, a.config.SampleSize) {
		if d.Type == TypeNumber {
			names = append(names, d.Name)
		}
	}
	return names
}
