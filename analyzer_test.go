package sheetstat

import (
	"errors"
	"testing"
)

func mixedTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]string{"region", "revenue", "units", "day"},
		[]Row{
			{"region": TextCell("north"), "revenue": TextCell("$1,200"), "units": NumberCell(10), "day": TextCell("2023-01-01")},
			{"region": TextCell("south"), "revenue": TextCell("900"), "units": NumberCell(8), "day": TextCell("2023-01-02")},
			{"region": TextCell("north"), "revenue": TextCell("1,500"), "units": NumberCell(12), "day": TextCell("2023-01-03")},
			{"region": TextCell("south"), "revenue": TextCell("700"), "units": NumberCell(6), "day": TextCell("2023-01-04")},
		},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return table
}

func TestAnalyzer_Profile(t *testing.T) {
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())
	profile, err := analyzer.Profile(mixedTable(t))
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if profile.ID == "" {
		t.Error("profile must carry an ID")
	}
	if profile.RowCount != 4 || profile.ColumnCount != 4 {
		t.Errorf("counts = %d/%d, want 4/4", profile.RowCount, profile.ColumnCount)
	}

	types := map[string]ColumnType{}
	for _, col := range profile.Columns {
		types[col.Name] = col.Type
	}
	if types["region"] != TypeText {
		t.Errorf("region inferred as %v", types["region"])
	}
	if types["revenue"] != TypeNumber {
		t.Errorf("revenue inferred as %v", types["revenue"])
	}
	if types["units"] != TypeNumber {
		t.Errorf("units inferred as %v", types["units"])
	}
	if types["day"] != TypeDate {
		t.Errorf("day inferred as %v", types["day"])
	}

	// Column order follows the table.
	want := []string{"region", "revenue", "units", "day"}
	for i, col := range profile.Columns {
		if col.Name != want[i] {
			t.Fatalf("profile column order = %v", profile.Columns)
		}
	}
}

func TestAnalyzer_ProfileEmptyTable(t *testing.T) {
	empty, err := NewTable([]string{"a"}, nil)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())
	if _, err := analyzer.Profile(empty); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestAnalyzer_DescribeColumn(t *testing.T) {
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())
	stats, err := analyzer.DescribeColumn(mixedTable(t), "revenue")
	if err != nil {
		t.Fatalf("DescribeColumn failed: %v", err)
	}
	if stats.Type != TypeNumber {
		t.Fatalf("type = %v", stats.Type)
	}
	if !almostEqual(*stats.Mean, 1075) {
		t.Errorf("mean = %v, want 1075", *stats.Mean)
	}
}

func TestAnalyzer_CorrelateAutoSelectsNumericColumns(t *testing.T) {
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())
	matrix, err := analyzer.Correlate(mixedTable(t), nil)
	if err != nil {
		t.Fatalf("Correlate failed: %v", err)
	}
	if _, ok := matrix["revenue"]; !ok {
		t.Error("revenue should be auto-selected")
	}
	if _, ok := matrix["region"]; ok {
		t.Error("text columns must not be auto-selected")
	}
}

func TestAnalyzer_AnalyzeFullRequest(t *testing.T) {
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())
	req := &AnalysisRequest{
		Chart: &ChartRequest{
			Type:        ChartBar,
			XColumn:     "region",
			YColumn:     "revenue",
			Aggregation: AggSum,
		},
		Statistics:  &StatisticsRequest{Columns: []string{"revenue"}},
		Correlation: &CorrelationRequest{},
		Regression:  &RegressionRequest{Dependent: "revenue", Independent: []string{"units"}},
		Insights:    true,
	}

	result, err := analyzer.Analyze(mixedTable(t), req)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.ID == "" {
		t.Error("result must carry an ID")
	}
	if result.Chart == nil || len(result.Chart.Labels) != 2 {
		t.Fatalf("chart = %+v", result.Chart)
	}
	if !almostEqual(result.Chart.Values[0], 2700) || !almostEqual(result.Chart.Values[1], 1600) {
		t.Errorf("chart values = %v, want [2700 1600]", result.Chart.Values)
	}
	if len(result.Statistics) != 1 || result.Statistics[0].Column != "revenue" {
		t.Errorf("statistics = %+v", result.Statistics)
	}
	if result.Correlations == nil {
		t.Error("correlations missing")
	}
	if result.Regression == nil || len(result.Regression.Coefficients) != 1 {
		t.Errorf("regression = %+v", result.Regression)
	}
	// revenue and units correlate strongly, so insights must include at
	// least the correlation observation.
	if len(insightsOfKind(result.Insights, InsightCorrelation)) == 0 {
		t.Errorf("expected a correlation insight, got %+v", result.Insights)
	}
}

func TestAnalyzer_AnalyzeErrorsAreComplete(t *testing.T) {
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())

	// A failing section yields an error and no partial result.
	req := &AnalysisRequest{
		Statistics: &StatisticsRequest{Columns: []string{"missing"}},
	}
	result, err := analyzer.Analyze(mixedTable(t), req)
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if result != nil {
		t.Error("no partial results may accompany an error")
	}

	if _, err := analyzer.Analyze(mixedTable(t), &AnalysisRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("empty request: got %v", err)
	}
	if _, err := analyzer.Analyze(mixedTable(t), nil); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("nil request: got %v", err)
	}
}

func TestAnalyzer_ResultIDsUnique(t *testing.T) {
	analyzer := NewAnalyzer(DefaultAnalyzerConfig())
	table := mixedTable(t)
	a, err := analyzer.Profile(table)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	b, err := analyzer.Profile(table)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if a.ID == b.ID {
		t.Error("profile IDs must be unique per run")
	}
}

func TestNewAnalyzer_ZeroConfigFallsBack(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerConfig{})
	if analyzer.config.SampleSize != defaultSampleSize {
		t.Errorf("sample size = %d", analyzer.config.SampleSize)
	}
	if analyzer.config.TrendStabilityPercent != defaultTrendStabilityPercent {
		t.Errorf("trend band = %v", analyzer.config.TrendStabilityPercent)
	}
}
