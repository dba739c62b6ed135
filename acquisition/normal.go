package acquisition

import "math"

//////
// Helper functions.
//////

// normalCDF computes the cumulative distribution function of the standard
// normal distribution.
func normalCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// normalPDF computes the probability density function of the standard
// normal distribution.
func normalPDF(x float64) float64 {
	return math.Exp(-x*x/2.0) / math.Sqrt(2.0*math.Pi)
}
