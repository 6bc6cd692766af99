package sheetstat

import "math"

// Shared numeric helpers. Standard deviation is the population form
// (divide by n, not n-1) throughout the package.

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// medianSorted returns the median of an already sorted slice: the middle
// element, or the average of the two middles for even counts.
func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// quartilesSorted computes quartiles by the median-of-halves rule: the lower
// half runs through the middle element for odd counts, so both halves share
// it.
func quartilesSorted(sorted []float64) Quartiles {
	n := len(sorted)
	return Quartiles{
		Q1: medianSorted(sorted[:(n+1)/2]),
		Q2: medianSorted(sorted),
		Q3: medianSorted(sorted[n/2:]),
	}
}

// outlierBounds returns the IQR fence [Q1 - f*IQR, Q3 + f*IQR].
func outlierBounds(q Quartiles, factor float64) (lower, upper float64) {
	iqr := q.Q3 - q.Q1
	return q.Q1 - factor*iqr, q.Q3 + factor*iqr
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
