// Package sheetstat provides a stateless statistical analysis core for
// heterogeneous tabular data, such as rows parsed from spreadsheets or CSV
// files.
//
// The package ingests fully materialized in-memory tables and produces typed
// per-column summaries, chart-ready aggregated series, Pearson correlation
// matrices, multiple linear regression fits, and rule-based textual insights.
// It performs no I/O, holds no state between calls, and leaves transport,
// persistence, and file parsing to the caller.
//
// # Basic Usage
//
// Build a table and profile every column:
//
//	table, err := sheetstat.NewTable(
//	    []string{"region", "revenue"},
//	    []sheetstat.Row{
//	        {"region": sheetstat.TextCell("north"), "revenue": sheetstat.NumberCell(1200)},
//	        {"region": sheetstat.TextCell("south"), "revenue": sheetstat.NumberCell(900)},
//	    },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	analyzer := sheetstat.NewAnalyzer(sheetstat.DefaultAnalyzerConfig())
//	profile, err := analyzer.Profile(table)
//
// Aggregate rows into a chart series:
//
//	series, err := analyzer.BuildChart(table, sheetstat.ChartRequest{
//	    Type:        sheetstat.ChartBar,
//	    XColumn:     "region",
//	    YColumn:     "revenue",
//	    Aggregation: sheetstat.AggSum,
//	})
//
// Run a full analysis described by a YAML request:
//
//	req, err := sheetstat.LoadRequest("analysis.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := analyzer.Analyze(table, req)
//
// # Features
//
// Column analysis:
//   - Majority-vote type inference (number, date, text) over a bounded sample
//   - Descriptive statistics: min/max/mean/median/mode, population standard
//     deviation, median-of-halves quartiles, IQR outlier detection
//   - Frequency tables for text columns, date range for date columns
//
// Cross-column analysis:
//   - Pairwise Pearson correlation matrices with per-pair row filtering
//   - Multiple linear regression via the normal equation with a general
//     Gauss-Jordan inverse, including R² and adjusted R²
//
// Chart data:
//   - Group-by aggregation (sum, average, count, min, max) with conjunctive
//     row filters into label/value series
//   - Raw (x, y[, z]) tuple extraction for scatter and 3D charts
//
// Insights:
//   - Rule-based observations on trend direction, strong correlations,
//     distribution skew, and outlier prevalence, each with a confidence score
//
// # Configuration
//
// Use [AnalyzerConfig] to tune sampling and thresholds:
//
//	cfg := sheetstat.AnalyzerConfig{
//	    SampleSize:           200,
//	    CorrelationThreshold: 0.8,
//	}
//	analyzer := sheetstat.NewAnalyzer(cfg)
//
// Or use [DefaultAnalyzerConfig] for sensible defaults.
package sheetstat
