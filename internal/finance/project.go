package finance

import (
	"math"
	"time"
)

// projectionGraceMonths bounds the extra-payment simulation at
// termYears*12 + projectionGraceMonths iterations. The loop is not bounded
// by the nominal term (extra principal usually shortens it), so a hard cap
// guarantees termination for pathological configurations such as an extra
// payment smaller than the interest accruing each period.
const projectionGraceMonths = 120

// ExtraPaymentFrequency says how often a projection rule injects principal.
type ExtraPaymentFrequency int

const (
	// Monthly rules contribute every period once the period date reaches
	// the rule's start date.
	Monthly ExtraPaymentFrequency = iota
	// Annual rules contribute only in the calendar month matching the
	// rule's own start month, and only from the first anniversary onward.
	Annual
)

// ExtraPaymentRule is a recurring principal injection for a projection run.
type ExtraPaymentRule struct {
	Amount    float64
	Frequency ExtraPaymentFrequency
	StartDate time.Time
}

// appliesIn reports whether the rule contributes in the period at date.
func (rule ExtraPaymentRule) appliesIn(date time.Time) bool {
	switch rule.Frequency {
	case Monthly:
		return !date.Before(rule.StartDate)
	case Annual:
		if date.Month() != rule.StartDate.Month() {
			return false
		}
		return !date.Before(rule.StartDate.AddDate(1, 0, 0))
	}
	return false
}

// Projection is the result of re-running amortization with extra payments,
// diffed against the standard schedule for the same terms.
type Projection struct {
	Schedule      []ScheduleEntry `json:"schedule"`
	TotalInterest float64         `json:"total_interest"`
	PayoffDate    time.Time       `json:"payoff_date"`
	InterestSaved float64         `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
}

// Project simulates the loan month by month with the given extra-payment
// rules applied. With an empty rule set the run is numerically equivalent
// to Schedule: InterestSaved and MonthsSaved come out at zero.
func Project(principal, annualRatePercent float64, termYears int, start time.Time, rules []ExtraPaymentRule) Projection {
	standard := Schedule(principal, annualRatePercent, termYears, start)
	standardInterest := 0.0
	for _, e := range standard {
		standardInterest += e.Interest
	}
	standardInterest = Round2(standardInterest)

	n := termYears * 12
	r := monthlyRate(annualRatePercent)
	payment := MonthlyPayment(principal, annualRatePercent, termYears)
	maxPeriods := n + projectionGraceMonths

	entries := make([]ScheduleEntry, 0, n)
	balance := principal
	totalInterest := 0.0

	for i := 1; i <= maxPeriods && balance > 0; i++ {
		date := start.AddDate(0, i-1, 0)

		extra := 0.0
		for _, rule := range rules {
			if rule.appliesIn(date) {
				extra += rule.Amount
			}
		}

		interest := Round2(balance * r)
		basePrincipal := math.Min(payment-interest, balance)
		if i == n {
			// Mirror the standard schedule: the nominal final period
			// absorbs the accumulated rounding residue.
			basePrincipal = balance
		}
		totalPrincipal := Round2(math.Min(basePrincipal+extra, balance))
		applied := Round2(math.Max(0, totalPrincipal-Round2(basePrincipal)))
		balance = Round2(math.Max(0, balance-totalPrincipal))
		totalInterest += interest

		entries = append(entries, ScheduleEntry{
			PaymentNumber: i,
			Date:          date,
			Payment:       Round2(totalPrincipal + interest),
			Principal:     totalPrincipal,
			Interest:      interest,
			ExtraPayment:  applied,
			Balance:       balance,
		})
	}

	result := Projection{
		Schedule:      entries,
		TotalInterest: Round2(totalInterest),
	}
	if len(entries) > 0 {
		result.PayoffDate = entries[len(entries)-1].Date
	}
	result.InterestSaved = Round2(standardInterest - result.TotalInterest)
	result.MonthsSaved = len(standard) - len(entries)
	return result
}
