// Package stats summarises per-fold metric values produced by cross-validation.
//
// A MetricSample is a plain []float64 holding one value per fold. The
// functions here are pure: they never modify their input and return a
// DomainError instead of NaN or Inf when the sample is too small.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/corpoml/demandml/pkg/errors"
)

// Z95 is the two-sided normal quantile used for the 95% interval.
const Z95 = 1.96

// Aggregate holds the summary statistics of one metric sample.
type Aggregate struct {
	Mean   float64
	StdDev float64
	CI95   float64
	N      int
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.NewDomainError("Mean", 1, 0)
	}
	if err := errors.CheckNumericalStability("Mean", values); err != nil {
		return 0, err
	}
	return floats.Sum(values) / float64(len(values)), nil
}

// StandardDeviation returns the sample standard deviation with the unbiased
// n-1 denominator. At least two values are required.
func StandardDeviation(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, errors.NewDomainError("StandardDeviation", 2, len(values))
	}
	if err := errors.CheckNumericalStability("StandardDeviation", values); err != nil {
		return 0, err
	}
	// stat.StdDev with nil weights divides by n-1.
	sd := stat.StdDev(values, nil)
	if err := errors.CheckScalar("StandardDeviation", sd); err != nil {
		return 0, err
	}
	return sd, nil
}

// ConfidenceInterval95 returns the half-width of the 95% confidence interval
// of the mean, computed as 1.96 * sd / sqrt(n-1).
//
// The sqrt(n-1) denominator differs from the textbook standard error
// sqrt(n). It is kept so that reported numbers match earlier reports.
func ConfidenceInterval95(values []float64) (float64, error) {
	sd, err := StandardDeviation(values)
	if err != nil {
		return 0, errors.Wrap(err, "ConfidenceInterval95")
	}
	return Z95 * sd / math.Sqrt(float64(len(values)-1)), nil
}

// Summarize computes mean, standard deviation and CI95 of values.
// It requires at least two values.
func Summarize(values []float64) (Aggregate, error) {
	mean, err := Mean(values)
	if err != nil {
		return Aggregate{}, err
	}
	sd, err := StandardDeviation(values)
	if err != nil {
		return Aggregate{}, err
	}
	ci, err := ConfidenceInterval95(values)
	if err != nil {
		return Aggregate{}, err
	}
	return Aggregate{Mean: mean, StdDev: sd, CI95: ci, N: len(values)}, nil
}

// MustSummarize is Summarize for callers that already validated the sample
// size. It panics on a domain error.
func MustSummarize(values []float64) Aggregate {
	agg, err := Summarize(values)
	if err != nil {
		panic(errors.AssertionFailedf("summarize %d values: %v", len(values), err))
	}
	return agg
}
