package sheetstat

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Default thresholds used when an AnalyzerConfig field is zero.
const (
	defaultOutlierIQRFactor      = 1.5
	defaultCorrelationThreshold  = 0.7
	defaultSkewThreshold         = 1.0
	defaultTrendStabilityPercent = 5.0
)

// AnalyzerConfig configures sampling and heuristic thresholds.
type AnalyzerConfig struct {
	// SampleSize bounds the number of non-empty values type inference
	// examines per column.
	SampleSize int `json:"sample_size" yaml:"sample_size"`

	// MostCommonLimit caps the frequency table of text columns.
	MostCommonLimit int `json:"most_common_limit" yaml:"most_common_limit"`

	// OutlierIQRFactor scales the IQR outlier fence.
	OutlierIQRFactor float64 `json:"outlier_iqr_factor" yaml:"outlier_iqr_factor"`

	// CorrelationThreshold is the minimum |r| for a correlation insight.
	CorrelationThreshold float64 `json:"correlation_threshold" yaml:"correlation_threshold"`

	// SkewThreshold is the minimum |skewness| for a distribution insight.
	SkewThreshold float64 `json:"skew_threshold" yaml:"skew_threshold"`

	// TrendStabilityPercent is the band within which a trend is reported as
	// stable.
	TrendStabilityPercent float64 `json:"trend_stability_percent" yaml:"trend_stability_percent"`
}

// DefaultAnalyzerConfig returns sensible defaults.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		SampleSize:            defaultSampleSize,
		MostCommonLimit:       defaultMostCommonLimit,
		OutlierIQRFactor:      defaultOutlierIQRFactor,
		CorrelationThreshold:  defaultCorrelationThreshold,
		SkewThreshold:         defaultSkewThreshold,
		TrendStabilityPercent: defaultTrendStabilityPercent,
	}
}

// StatisticsRequest asks for descriptive statistics. An empty column list
// means every column.
type StatisticsRequest struct {
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// CorrelationRequest asks for a Pearson matrix. An empty column list means
// every column that infers as numeric.
type CorrelationRequest struct {
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// RegressionRequest asks for a linear regression fit.
type RegressionRequest struct {
	Dependent   string   `json:"dependent" yaml:"dependent"`
	Independent []string `json:"independent" yaml:"independent"`
}

// AnalysisRequest enumerates the computations of one analysis pass. At least
// one section must be present; insight generation consumes whatever the
// other sections produced.
type AnalysisRequest struct {
	Chart       *ChartRequest       `json:"chart,omitempty" yaml:"chart,omitempty"`
	Statistics  *StatisticsRequest  `json:"statistics,omitempty" yaml:"statistics,omitempty"`
	Correlation *CorrelationRequest `json:"correlation,omitempty" yaml:"correlation,omitempty"`
	Regression  *RegressionRequest  `json:"regression,omitempty" yaml:"regression,omitempty"`
	Insights    bool                `json:"insights,omitempty" yaml:"insights,omitempty"`
}

// Validate checks the request shape.
func (r *AnalysisRequest) Validate() error {
	if r.Chart == nil && r.Statistics == nil && r.Correlation == nil && r.Regression == nil && !r.Insights {
		return newAnalysisError("request", "", "request has no sections", ErrInvalidRequest)
	}
	if r.Chart != nil {
		if err := r.Chart.Validate(); err != nil {
			return err
		}
	}
	if r.Regression != nil {
		if r.Regression.Dependent == "" {
			return newAnalysisError("request", "", "regression dependent column is required", ErrInvalidRequest)
		}
		if len(r.Regression.Independent) == 0 {
			return newAnalysisError("request", "", "regression needs at least one independent column", ErrInvalidRequest)
		}
	}
	return nil
}

// ParseRequest decodes and validates a YAML analysis request. Unknown fields
// are rejected.
func ParseRequest(data []byte) (*AnalysisRequest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var req AnalysisRequest
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newAnalysisError("request", "", "request document is empty", ErrInvalidRequest)
		}
		return nil, fmt.Errorf("request: decode failed: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// LoadRequest reads and parses a YAML analysis request from a file.
func LoadRequest(path string) (*AnalysisRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("request: read %s: %w", path, err)
	}
	return ParseRequest(data)
}
