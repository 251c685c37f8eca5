// Package loans computes month-by-month repayment schedules for bank loans.
package loans

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// Input holds the four values a schedule is computed from.
type Input struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermMonths        int     `json:"termMonths"`
	Method            Method  `json:"method"`
}

// Period holds the values for a given repayment period.
type Period struct {
	Index           int     `json:"period"`
	StartingBalance float64 `json:"startingBalance"`
	Principal       float64 `json:"principal"`
	Interest        float64 `json:"interest"`
	Payment         float64 `json:"totalPayment"`
	EndingBalance   float64 `json:"endingBalance"`
}

// Result is a complete repayment schedule with its aggregate totals.
type Result struct {
	Periods            []Period `json:"periods"`
	TotalInterest      float64  `json:"totalInterest"`
	TotalPayment       float64  `json:"totalPayment"`
	FirstPeriodPayment float64  `json:"firstPeriodPayment"`
}

// Valid reports whether every field is present, finite and non-zero.
func (in Input) Valid() bool {
	if !mathutil.IsFinite(in.Principal) || in.Principal <= 0 {
		return false
	}
	if !mathutil.IsFinite(in.AnnualRatePercent) || in.AnnualRatePercent <= 0 {
		return false
	}
	return in.TermMonths > 0 && in.Method.Valid()
}

// MonthlyRate converts an annual percentage rate into the periodic rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the fixed payment of an equal-installment
// loan using the standard annuity formula.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	r := MonthlyRate(annualRatePercent)
	if r == 0 {
		return principal / float64(termMonths)
	}
	power := math.Pow(1+r, float64(termMonths))
	return (principal * (r * power)) / (power - 1)
}

// CalculateInterestPayment calculates the interest portion owed on a balance
// for one period.
func CalculateInterestPayment(balance, annualRatePercent float64) float64 {
	return balance * MonthlyRate(annualRatePercent)
}

// Compute builds the repayment schedule for in. It returns nil when the input
// is incomplete or invalid, or when the rate is too small or too large for the
// schedule to be represented; callers render that as "no result".
func Compute(in Input) *Result {
	if !in.Valid() {
		return nil
	}

	r := MonthlyRate(in.AnnualRatePercent)
	periods := make([]Period, 0, in.TermMonths)
	totalInterest := 0.0
	balance := in.Principal

	switch in.Method {
	case EqualInstallment:
		payment := CalculateMonthlyPayment(in.Principal, in.AnnualRatePercent, in.TermMonths)
		if !mathutil.IsFinite(payment) {
			return nil
		}
		for month := 1; month <= in.TermMonths; month++ {
			starting := balance
			interest := balance * r
			principal := payment - interest
			balance -= principal
			totalInterest += interest
			periods = append(periods, Period{
				Index:           month,
				StartingBalance: starting,
				Principal:       principal,
				Interest:        interest,
				Payment:         payment,
				EndingBalance:   endingBalance(balance, in.Principal, month == in.TermMonths),
			})
		}
	case EqualPrincipal:
		principal := in.Principal / float64(in.TermMonths)
		for month := 1; month <= in.TermMonths; month++ {
			starting := balance
			interest := balance * r
			balance -= principal
			totalInterest += interest
			periods = append(periods, Period{
				Index:           month,
				StartingBalance: starting,
				Principal:       principal,
				Interest:        interest,
				Payment:         principal + interest,
				EndingBalance:   endingBalance(balance, in.Principal, month == in.TermMonths),
			})
		}
	}

	if !mathutil.IsFinite(totalInterest) || !finitePeriods(periods) {
		return nil
	}

	// Drift removed from the final balance is not redistributed into that period.
	return &Result{
		Periods:            periods,
		TotalInterest:      totalInterest,
		TotalPayment:       in.Principal + totalInterest,
		FirstPeriodPayment: periods[0].Payment,
	}
}

// endingBalance is the balance recorded for a period. Negative drift is
// clamped, and on the final period float drift relative to the principal is
// reported as 0. A genuine remainder is kept.
func endingBalance(balance, principal float64, final bool) float64 {
	if final && mathutil.WithinTolerance(balance, 0, principal*constants.BalanceDriftRatio) {
		return 0
	}
	return mathutil.ClampZero(balance)
}

func finitePeriods(periods []Period) bool {
	for _, p := range periods {
		if !mathutil.IsFinite(p.StartingBalance) || !mathutil.IsFinite(p.Principal) ||
			!mathutil.IsFinite(p.Interest) || !mathutil.IsFinite(p.Payment) ||
			!mathutil.IsFinite(p.EndingBalance) {
			return false
		}
	}
	return true
}
