package sheetstat

import "math"

// CorrelationMatrix maps columnName x columnName to a Pearson coefficient in
// [-1, 1]. The matrix is square and symmetric, with a unit diagonal.
type CorrelationMatrix map[string]map[string]float64

// Correlate computes the pairwise Pearson correlation matrix for the named
// numeric columns. For each pair, a row contributes only if both values
// coerce numerically; filtering is independent per pair, so a bad value in
// one column does not exclude the row from unrelated pairs.
func Correlate(t *Table, columns []string) (CorrelationMatrix, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, newAnalysisError("correlate", "", "table is empty", ErrEmptyTable)
	}
	if len(columns) == 0 {
		return nil, newAnalysisError("correlate", "", "at least one column is required", ErrInvalidRequest)
	}
	for _, name := range columns {
		if !t.HasColumn(name) {
			return nil, newAnalysisError("correlate", name, "column not found", ErrUnknownColumn)
		}
	}

	matrix := make(CorrelationMatrix, len(columns))
	for _, a := range columns {
		matrix[a] = make(map[string]float64, len(columns))
		for _, b := range columns {
			if a == b {
				// Defined as exactly 1 rather than computed, so constant
				// columns do not divide by zero on the diagonal.
				matrix[a][b] = 1
				continue
			}
			matrix[a][b] = pearson(t, a, b)
		}
	}
	return matrix, nil
}

// pearson computes r = (nΣxy − ΣxΣy) / sqrt((nΣx²−(Σx)²)(nΣy²−(Σy)²)) over
// the rows where both columns coerce. A zero denominator (degenerate,
// constant input) yields r = 0 rather than NaN.
func pearson(t *Table, a, b string) float64 {
	var n, sumX, sumY, sumXY, sumX2, sumY2 float64
	for _, row := range t.rows {
		x, okX := row[a].Float()
		y, okY := row[b].Float()
		if !okX || !okY {
			continue
		}
		n++
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
		sumY2 += y * y
	}

	denom := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
