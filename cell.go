package sheetstat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CellKind discriminates the variants of a Cell.
type CellKind int

const (
	// CellEmpty is a missing or null cell.
	CellEmpty CellKind = iota
	// CellNumber holds a float64.
	CellNumber
	// CellText holds a string.
	CellText
	// CellDate holds a time.Time.
	CellDate
)

// Cell is a single tabular value: a number, text, date, or the empty marker.
// The zero Cell is empty.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Date   time.Time
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// TextCell returns a text cell. An empty string is still a text cell but is
// treated as null by IsNull.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// DateCell returns a date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

// EmptyCell returns the empty marker cell.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// IsNull reports whether the cell counts as null for statistics purposes.
// Empty cells and empty-string text cells are both null.
func (c Cell) IsNull() bool {
	return c.Kind == CellEmpty || (c.Kind == CellText && c.Text == "")
}

// Value returns the native Go value of the cell: float64, string, time.Time,
// or nil for empty cells.
func (c Cell) Value() any {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellText:
		return c.Text
	case CellDate:
		return c.Date
	default:
		return nil
	}
}

// String returns the display form of the cell.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return formatFloat(c.Number)
	case CellText:
		return c.Text
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// key returns a canonical form used for value equality and group keys. The
// kind prefix keeps NumberCell(5) and TextCell("5") distinct, mirroring how
// raw values behave when used directly as mapping keys.
func (c Cell) key() string {
	switch c.Kind {
	case CellNumber:
		return "n:" + formatFloat(c.Number)
	case CellText:
		return "t:" + c.Text
	case CellDate:
		return "d:" + c.Date.Format(time.RFC3339)
	default:
		return ""
	}
}

// Float coerces the cell to a number. Text cells are parsed after stripping
// thousands separators, currency symbols, and a trailing percent sign. Date
// and empty cells never coerce.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellText:
		return parseNumeric(c.Text)
	default:
		return 0, false
	}
}

// Time coerces the cell to a date. Text cells must match one of the
// recognized date layouts and parse to a valid calendar date.
func (c Cell) Time() (time.Time, bool) {
	switch c.Kind {
	case CellDate:
		return c.Date, true
	case CellText:
		return parseDate(c.Text)
	default:
		return time.Time{}, false
	}
}

// formatFloat renders a float the way %g does, without exponent notation for
// typical spreadsheet magnitudes.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// currencySymbols are stripped before numeric parsing.
const currencySymbols = "$€£¥"

// parseNumeric parses a spreadsheet-style numeric string such as "$1,234.50"
// or "12%".
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, string(sym), "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateLayouts pairs a shape check with the Go layout used to parse it. A
// string is a date only if it matches a shape and parses to a real calendar
// date (so "2023-02-30" is rejected).
var dateLayouts = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`), "2006-1-2"},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), "1/2/2006"},
	{regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`), "1-2-2006"},
	{regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`), "2006/1/2"},
	{regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`), "2.1.2006"},
	{regexp.MustCompile(`^\d{4}\.\d{1,2}\.\d{1,2}$`), "2006.1.2"},
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, dl := range dateLayouts {
		if !dl.pattern.MatchString(s) {
			continue
		}
		t, err := time.Parse(dl.layout, s)
		if err != nil {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
