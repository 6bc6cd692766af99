package sheetstat

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ExportFormat defines the output format for result export.
type ExportFormat int

const (
	// ExportFormatCSV exports data as CSV.
	ExportFormatCSV ExportFormat = iota
	// ExportFormatJSON exports data as JSON.
	ExportFormatJSON
)

// validateExportPath validates that the output path is safe to write to.
// It prevents writes to sensitive system directories and ensures the path is
// absolute.
func validateExportPath(outputPath string) (string, error) {
	if outputPath == "" {
		return "", errors.New("output path required")
	}

	cleanPath := filepath.Clean(outputPath)
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	sensitivePatterns := []string{
		"/etc", "/bin", "/sbin", "/usr/bin", "/usr/sbin",
		"/boot", "/dev", "/proc", "/sys", "/root",
	}
	for _, pattern := range sensitivePatterns {
		if strings.HasPrefix(absPath, pattern+"/") || absPath == pattern {
			return "", fmt.Errorf("cannot write to sensitive directory: %s", pattern)
		}
	}

	return absPath, nil
}

// WriteSeriesCSV writes a chart series as CSV: label,value rows for
// categorical series, x,y[,z] rows for point series.
func WriteSeriesCSV(w io.Writer, series *ChartSeries) error {
	if series == nil {
		return errors.New("export: series is nil")
	}
	cw := csv.NewWriter(w)

	if len(series.Points) > 0 {
		header := []string{"x", "y"}
		hasZ := series.Type.isThreeDimensional()
		if hasZ {
			header = append(header, "z")
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, p := range series.Points {
			rec := []string{exportValue(p.X), exportValue(p.Y)}
			if hasZ {
				rec = append(rec, exportValue(p.Z))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	} else {
		if err := cw.Write([]string{"label", "value"}); err != nil {
			return err
		}
		for i, label := range series.Labels {
			rec := []string{label, strconv.FormatFloat(series.Values[i], 'g', -1, 64)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteProfileCSV writes a profile as one CSV row per column.
func WriteProfileCSV(w io.Writer, profile *ProfileResult) error {
	if profile == nil {
		return errors.New("export: profile is nil")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"column", "type", "null_count", "unique_count", "min", "max", "mean", "median", "std_dev"}); err != nil {
		return err
	}
	for _, col := range profile.Columns {
		s := col.Statistics
		rec := []string{
			col.Name,
			string(col.Type),
			strconv.Itoa(s.NullCount),
			strconv.Itoa(s.UniqueCount),
			exportFloatPtr(s.Min),
			exportFloatPtr(s.Max),
			exportFloatPtr(s.Mean),
			exportFloatPtr(s.Median),
			exportFloatPtr(s.StdDev),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSeries writes a chart series to a file in the chosen format.
func ExportSeries(path string, format ExportFormat, series *ChartSeries) error {
	return exportTo(path, format, series, func(w io.Writer) error {
		return WriteSeriesCSV(w, series)
	})
}

// ExportProfile writes a profile to a file in the chosen format.
func ExportProfile(path string, format ExportFormat, profile *ProfileResult) error {
	return exportTo(path, format, profile, func(w io.Writer) error {
		return WriteProfileCSV(w, profile)
	})
}

func exportTo(path string, format ExportFormat, v any, writeCSV func(io.Writer) error) error {
	absPath, err := validateExportPath(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", absPath, err)
	}
	defer f.Close()

	switch format {
	case ExportFormatCSV:
		if err := writeCSV(f); err != nil {
			return fmt.Errorf("export: write csv: %w", err)
		}
	case ExportFormatJSON:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("export: write json: %w", err)
		}
	default:
		return fmt.Errorf("export: unsupported format %d", format)
	}
	return nil
}

func exportValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func exportFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
