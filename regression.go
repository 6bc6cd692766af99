package sheetstat

import (
	"fmt"
	"math"
)

// RegressionResult is the output of a multiple linear regression fit.
// Coefficients align with the independent-variable order of the request;
// Predictions align with the input row order.
type RegressionResult struct {
	Dependent        string    `json:"dependent"`
	Independent      []string  `json:"independent"`
	Coefficients     []float64 `json:"coefficients"`
	Intercept        float64   `json:"intercept"`
	RSquared         float64   `json:"r_squared"`
	AdjustedRSquared float64   `json:"adjusted_r_squared"`
	Predictions      []float64 `json:"predictions"`
}

// Regress fits y = b0 + b1*x1 + ... + bp*xp by the normal equation
// b = (XᵗX)⁻¹Xᵗy, with a general Gauss-Jordan inverse so any number of
// independent variables is solved correctly.
//
// Values are taken as-is: cells that fail numeric coercion enter the design
// matrix as NaN and poison the fit, matching the row-level tolerance of the
// other engines being absent here. Callers that need clean fits should
// filter rows first.
func Regress(t *Table, dependent string, independent []string) (*RegressionResult, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, newAnalysisError("regress", "", "table is empty", ErrEmptyTable)
	}
	if dependent == "" {
		return nil, newAnalysisError("regress", "", "dependent column is required", ErrInvalidRequest)
	}
	if !t.HasColumn(dependent) {
		return nil, newAnalysisError("regress", dependent, "column not found", ErrUnknownColumn)
	}
	if len(independent) == 0 {
		return nil, newAnalysisError("regress", "", "at least one independent column is required", ErrInvalidRequest)
	}
	for _, name := range independent {
		if !t.HasColumn(name) {
			return nil, newAnalysisError("regress", name, "column not found", ErrUnknownColumn)
		}
	}

	n := t.RowCount()
	p := len(independent)
	if n-p-1 <= 0 {
		return nil, newAnalysisError("regress", "",
			fmt.Sprintf("need more than %d rows for %d independent variables", p+1, p), ErrInsufficientData)
	}

	// Design matrix with a leading constant-1 column for the intercept.
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		row := t.Row(i)
		xi := make([]float64, p+1)
		xi[0] = 1
		for j, name := range independent {
			xi[j+1] = coerceOrNaN(row[name])
		}
		x[i] = xi
		y[i] = coerceOrNaN(row[dependent])
	}

	xtx := make([][]float64, p+1)
	xty := make([]float64, p+1)
	for i := 0; i <= p; i++ {
		xtx[i] = make([]float64, p+1)
		for j := 0; j <= p; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += x[k][i] * x[k][j]
			}
			xtx[i][j] = sum
		}
		sum := 0.0
		for k := 0; k < n; k++ {
			sum += x[k][i] * y[k]
		}
		xty[i] = sum
	}

	inv, err := invertMatrix(xtx)
	if err != nil {
		return nil, newAnalysisError("regress", "", "normal matrix is not invertible", ErrSingularMatrix)
	}

	beta := make([]float64, p+1)
	for i := 0; i <= p; i++ {
		sum := 0.0
		for j := 0; j <= p; j++ {
			sum += inv[i][j] * xty[j]
		}
		beta[i] = sum
	}

	predictions := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j <= p; j++ {
			sum += x[i][j] * beta[j]
		}
		predictions[i] = sum
	}

	yMean := meanOf(y)
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		ssRes += (y[i] - predictions[i]) * (y[i] - predictions[i])
		ssTot += (y[i] - yMean) * (y[i] - yMean)
	}
	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}
	adjusted := 1 - (1-rSquared)*float64(n-1)/float64(n-p-1)

	return &RegressionResult{
		Dependent:        dependent,
		Independent:      append([]string(nil), independent...),
		Coefficients:     beta[1:],
		Intercept:        beta[0],
		RSquared:         rSquared,
		AdjustedRSquared: adjusted,
		Predictions:      predictions,
	}, nil
}

func coerceOrNaN(c Cell) float64 {
	if v, ok := c.Float(); ok {
		return v
	}
	return math.NaN()
}

const pivotEpsilon = 1e-12

// invertMatrix inverts a square matrix by Gauss-Jordan elimination with
// partial pivoting. The input is not modified.
func invertMatrix(m [][]float64) ([][]float64, error) {
	n := len(m)

	// Augment a working copy with the identity.
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		pv := aug[pivot][col]
		if math.IsNaN(pv) || math.Abs(pv) < pivotEpsilon {
			return nil, ErrSingularMatrix
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		for j := col; j < 2*n; j++ {
			aug[col][j] /= pv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := col; j < 2*n; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	inv := make([][]float64, n)
	for i := 0; i < n; i++ {
		inv[i] = make([]float64, n)
		copy(inv[i], aug[i][n:])
	}
	return inv, nil
}
