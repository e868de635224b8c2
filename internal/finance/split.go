package finance

import "math"

// PaymentType distinguishes a scheduled payment from a principal-only one.
type PaymentType string

const (
	PaymentRegular PaymentType = "regular"
	PaymentExtra   PaymentType = "extra"
)

// PaymentSplit is the interest/principal breakdown of one real payment.
type PaymentSplit struct {
	PrincipalPaid float64 `json:"principal_paid"`
	InterestPaid  float64 `json:"interest_paid"`
}

// SplitPayment splits a single actual payment against a live balance for
// ledger recording. Extra payments are 100% principal, capped at the
// balance. Regular payments pay one month's interest on the balance first;
// the remainder is principal, clamped to [0, balance].
//
// If a regular payment is smaller than the accrued interest, PrincipalPaid
// clamps to zero and the shortfall is not tracked as negative amortization.
// The split never rejects an input; warning the user is the caller's job.
func SplitPayment(currentBalance, annualRatePercent, paymentAmount float64, typ PaymentType) PaymentSplit {
	if typ == PaymentExtra {
		return PaymentSplit{
			PrincipalPaid: Round2(math.Min(paymentAmount, currentBalance)),
			InterestPaid:  0,
		}
	}

	interest := Round2(currentBalance * monthlyRate(annualRatePercent))
	principal := Round2(math.Max(0, math.Min(paymentAmount-interest, currentBalance)))
	return PaymentSplit{
		PrincipalPaid: principal,
		InterestPaid:  interest,
	}
}
