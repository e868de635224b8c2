// Package finance implements the loan amortization and net-worth projection
// engine. Every function is pure arithmetic over in-memory values: no storage,
// no clocks beyond explicit arguments, and no errors for in-domain inputs.
// Input validation is the caller's job.
package finance

import "math"

// Round2 rounds to two decimal places (currency minor units, half up).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// monthlyRate converts an annual percentage rate to a monthly decimal rate.
func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100.0 / 12.0
}
