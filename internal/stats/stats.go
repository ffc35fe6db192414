// Package stats implements the sigma-clipper (C2) and mode estimator (C3),
// plus the small set of order-statistics helpers both of them and the
// quantile thresholder share. Every function here operates on an
// already-sorted (ascending) []float32 sample, matching the original's
// convention of sorting once per tile and reusing the sorted array for
// every subsequent statistic.
package stats

import "math"

// Mean returns the arithmetic mean of x.
func Mean(x []float32) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range x {
		sum += float64(v)
	}
	return sum / float64(len(x))
}

// Median returns the median of an ascending-sorted x.
func Median(x []float32) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return float64(x[n/2])
	}
	return (float64(x[n/2-1]) + float64(x[n/2])) / 2
}

// Std returns the standard deviation of x about its own mean.
func Std(x []float32) float64 {
	n := len(x)
	if n < 2 {
		return math.NaN()
	}
	mean := Mean(x)
	var sum2 float64
	for _, v := range x {
		d := float64(v) - mean
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(n-1))
}

// QuantileIndex returns the array index corresponding to quantile q in a
// sample of length n, using the original's rounding rule: the fractional
// index rounds up only when its fractional part strictly exceeds one
// half, otherwise it truncates (an exact .5 rounds down). This is not
// generic rounding (which rounds 0.5 up) — it matters because it decides which exact
// pixel becomes a threshold, and the behaviour is load-bearing rather than
// incidental.
func QuantileIndex(n int, q float64) int {
	if n <= 0 {
		return 0
	}
	floatIndex := q * float64(n-1)
	idx := int(floatIndex)
	if floatIndex-float64(idx) > 0.5 {
		idx++
	}
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Quantile returns the value at quantile q (0..1) of an ascending-sorted x.
func Quantile(x []float32, q float64) float32 {
	if len(x) == 0 {
		return float32(math.NaN())
	}
	return x[QuantileIndex(len(x), q)]
}
