// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/query"
)

// ReferenceLoan returns the 500,000,000 VND, 10%/year, 12 month loan used
// as the worked example across packages.
func ReferenceLoan(method loans.Method) loans.Input {
	return loans.Input{
		Principal:         500000000,
		AnnualRatePercent: 10,
		TermMonths:        12,
		Method:            method,
	}
}

// ReferenceParams returns the query parameters that describe ReferenceLoan
// with equal installments, prepared by a VietinBank banker.
func ReferenceParams() query.Params {
	return query.Params{
		Amount:  "500000000",
		Rate:    "10",
		Term:    "12",
		Type:    loans.EqualInstallmentKey,
		Bank:    "vietinbank",
		Banker:  "Nguyễn Văn A",
		Contact: "0901234567",
	}
}

// AssertNear fails the test when got differs from want by more than tolerance.
func AssertNear(t testing.TB, label string, got, want, tolerance float64) {
	t.Helper()
	if math.IsNaN(got) || !mathutil.WithinTolerance(got, want, tolerance) {
		t.Errorf("%s = %.6f, want %.6f (tolerance %g)", label, got, want, tolerance)
	}
}
