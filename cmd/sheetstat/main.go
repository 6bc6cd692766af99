package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sheetstat-io/sheetstat"
	"github.com/spf13/cobra"
)

var (
	requestFile string
	outputFile  string
	outputCSV   bool
)

var rootCmd = &cobra.Command{
	Use:   "sheetstat",
	Short: "Statistical analysis for tabular data",
	Long: `sheetstat analyzes CSV files without external services: column type
inference, descriptive statistics, correlation matrices, linear regression,
chart aggregation, and rule-based insights.`,
	SilenceUsage: true,
}

var profileCmd = &cobra.Command{
	Use:   "profile <file.csv>",
	Short: "Infer column types and compute per-column statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadCSV(args[0])
		if err != nil {
			return err
		}

		analyzer := sheetstat.NewAnalyzer(sheetstat.DefaultAnalyzerConfig())
		profile, err := analyzer.Profile(table)
		if err != nil {
			return err
		}

		if outputFile != "" {
			format := sheetstat.ExportFormatJSON
			if outputCSV {
				format = sheetstat.ExportFormatCSV
			}
			return sheetstat.ExportProfile(outputFile, format, profile)
		}
		return writeJSON(cmd, profile)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Run an analysis request against a CSV file",
	Long: `analyze reads a YAML request describing the chart, statistics,
correlation, regression, and insight sections to compute, runs it against
the CSV file, and prints the result as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if requestFile == "" {
			return fmt.Errorf("--request is required")
		}
		req, err := sheetstat.LoadRequest(requestFile)
		if err != nil {
			return err
		}

		table, err := loadCSV(args[0])
		if err != nil {
			return err
		}

		analyzer := sheetstat.NewAnalyzer(sheetstat.DefaultAnalyzerConfig())
		result, err := analyzer.Analyze(table, req)
		if err != nil {
			return err
		}

		if outputFile != "" && result.Chart != nil && outputCSV {
			return sheetstat.ExportSeries(outputFile, sheetstat.ExportFormatCSV, result.Chart)
		}
		return writeJSON(cmd, result)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&requestFile, "request", "r", "", "path to a YAML analysis request")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write results to a file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&outputCSV, "csv", false, "write file output as CSV instead of JSON")
	rootCmd.AddCommand(profileCmd, analyzeCmd)
}

func loadCSV(path string) (*sheetstat.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: file has no header row", path)
	}

	return sheetstat.NewTableFromRecords(records[0], records[1:])
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
