package finance

import (
	"math"
	"time"
)

// daysPerYear uses the Julian year so leap years do not skew ownership time.
const daysPerYear = 365.25

// HomeValue compounds a purchase price forward at an annual appreciation
// rate to the asOf date, rounded to the nearest whole currency unit.
func HomeValue(purchasePrice float64, purchaseDate time.Time, annualAppreciationPercent float64, asOf time.Time) float64 {
	years := asOf.Sub(purchaseDate).Hours() / 24 / daysPerYear
	return math.Round(purchasePrice * math.Pow(1+annualAppreciationPercent/100, years))
}

// Equity is home value minus the loan balance. Negative equity is a valid,
// displayed state and is not clamped.
func Equity(homeValue, loanBalance float64) float64 {
	return homeValue - loanBalance
}
