package sheetstat

import "fmt"

// Row maps column names to cell values. Missing cells are represented as
// empty cells, never absent keys, once the row is part of a Table.
type Row map[string]Cell

// Table is an ordered sequence of rows sharing the same set of column names.
// Column order is stable across analysis calls.
type Table struct {
	columns []string
	rows    []Row
}

// NewTable builds a table from an ordered column list and rows. Column names
// must be unique and non-empty. Cells missing from a row are filled with the
// empty marker; cells for unknown columns are rejected.
func NewTable(columns []string, rows []Row) (*Table, error) {
	if len(columns) == 0 {
		return nil, newAnalysisError("table", "", "at least one column is required", ErrInvalidRequest)
	}
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if name == "" {
			return nil, newAnalysisError("table", "", "column names must be non-empty", ErrInvalidRequest)
		}
		if seen[name] {
			return nil, newAnalysisError("table", name, "duplicate column name", ErrInvalidRequest)
		}
		seen[name] = true
	}

	normalized := make([]Row, len(rows))
	for i, row := range rows {
		for name := range row {
			if !seen[name] {
				return nil, newAnalysisError("table", name, fmt.Sprintf("row %d references an undeclared column", i), ErrUnknownColumn)
			}
		}
		nr := make(Row, len(columns))
		for _, name := range columns {
			if cell, ok := row[name]; ok {
				nr[name] = cell
			} else {
				nr[name] = EmptyCell()
			}
		}
		normalized[i] = nr
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, rows: normalized}, nil
}

// NewTableFromRecords builds a table from a header and string records, the
// shape produced by CSV readers. Every field becomes a text cell; empty
// fields become empty cells. Short records are padded.
func NewTableFromRecords(header []string, records [][]string) (*Table, error) {
	rows := make([]Row, len(records))
	for i, rec := range records {
		row := make(Row, len(header))
		for j, name := range header {
			if j < len(rec) && rec[j] != "" {
				row[name] = TextCell(rec[j])
			}
		}
		rows[i] = row
	}
	return NewTable(header, rows)
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the named column's cells in row order.
func (t *Table) Column(name string) ([]Cell, error) {
	if !t.HasColumn(name) {
		return nil, newAnalysisError("table", name, "column not found", ErrUnknownColumn)
	}
	cells := make([]Cell, len(t.rows))
	for i, row := range t.rows {
		cells[i] = row[name]
	}
	return cells, nil
}

// Row returns the i-th row. The returned map must not be mutated.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}
