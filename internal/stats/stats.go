// Package stats offers small numeric helpers over float64 slices.
package stats

import (
	"errors"
	"math"
)

var (
	ErrEmpty  = errors.New("empty input")
	ErrTooFew = errors.New("need at least 2 values")
)

func Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

func Count(values []float64) int {
	return len(values)
}

func Average(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return Sum(values) / float64(len(values)), nil
}

// StdDev returns the sample standard deviation (n-1 denominator).
func StdDev(values []float64) (float64, error) {
	if len(values) <= 1 {
		return 0, ErrTooFew
	}

	mean, _ := Average(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1)), nil
}

// Mode returns the most frequent value. When several values tie, the one
// appearing first in the input wins.
func Mode(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}

	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	mode := values[0]
	best := 0
	for _, v := range values {
		if counts[v] > best {
			best = counts[v]
			mode = v
		}
	}
	return mode, nil
}
