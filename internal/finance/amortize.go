package finance

import (
	"math"
	"time"
)

// ScheduleEntry is one projected period in an amortization run. Computed
// fresh on every request, never persisted.
type ScheduleEntry struct {
	PaymentNumber int       `json:"payment_number"`
	Date          time.Time `json:"date"`
	Payment       float64   `json:"payment"`
	Principal     float64   `json:"principal"`
	Interest      float64   `json:"interest"`
	ExtraPayment  float64   `json:"extra_payment,omitempty"`
	Balance       float64   `json:"balance"`
}

// MonthlyPayment returns the fixed monthly payment for a fully amortizing
// loan using the standard annuity formula P*r(1+r)^n / ((1+r)^n - 1).
// At zero interest the payment is simply principal over the number of months.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	n := float64(termYears * 12)
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return Round2(principal / n)
	}
	pow := math.Pow(1+r, n)
	return Round2(principal * r * pow / (pow - 1))
}

// Schedule produces the standard fixed-payment amortization schedule,
// advancing one calendar month per entry from start. Each row's principal
// and interest are rounded independently; the small rounding drift across
// the schedule is accepted, not corrected. The run stops when the balance
// reaches zero or after termYears*12 periods, whichever comes first.
func Schedule(principal, annualRatePercent float64, termYears int, start time.Time) []ScheduleEntry {
	n := termYears * 12
	r := monthlyRate(annualRatePercent)
	payment := MonthlyPayment(principal, annualRatePercent, termYears)

	entries := make([]ScheduleEntry, 0, n)
	balance := principal

	for i := 1; i <= n && balance > 0; i++ {
		interest := Round2(balance * r)
		principalPortion := Round2(math.Min(payment-interest, balance))
		if i == n {
			// Final period absorbs the accumulated rounding residue.
			principalPortion = balance
		}
		balance = Round2(math.Max(0, balance-principalPortion))

		entries = append(entries, ScheduleEntry{
			PaymentNumber: i,
			Date:          start.AddDate(0, i-1, 0),
			Payment:       Round2(principalPortion + interest),
			Principal:     principalPortion,
			Interest:      interest,
			Balance:       balance,
		})
	}

	return entries
}
