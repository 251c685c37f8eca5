package testutil

import (
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/loans"
)

func TestReferenceLoan(t *testing.T) {
	for _, method := range []loans.Method{loans.EqualInstallment, loans.EqualPrincipal} {
		t.Run(method.String(), func(t *testing.T) {
			in := ReferenceLoan(method)
			if !in.Valid() {
				t.Fatalf("ReferenceLoan(%s) is not valid: %+v", method, in)
			}
			if in.Method != method {
				t.Errorf("Method = %v, want %v", in.Method, method)
			}
		})
	}
}

func TestReferenceParams(t *testing.T) {
	params := ReferenceParams()
	if !params.Complete() {
		t.Fatalf("ReferenceParams() is not complete: %+v", params)
	}

	in, ok := params.LoanInput()
	if !ok {
		t.Fatal("ReferenceParams().LoanInput() reported invalid input")
	}
	if in != ReferenceLoan(loans.EqualInstallment) {
		t.Errorf("LoanInput() = %+v, want %+v", in, ReferenceLoan(loans.EqualInstallment))
	}
}

func TestAssertNear(t *testing.T) {
	AssertNear(t, "exact", 100, 100, 0)
	AssertNear(t, "within tolerance", 100.004, 100, 0.01)
	AssertNear(t, "negative drift", -0.004, 0, 0.01)
}
