package loans

import (
	"math"
	"reflect"
	"testing"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		termMonths        int
		expectedRange     []float64 // [min, max] expected range
	}{
		{
			name:              "Twelve month consumer loan",
			principal:         500000000,
			annualRatePercent: 10,
			termMonths:        12,
			expectedRange:     []float64{43957943, 43957944}, // 43,957,943.62
		},
		{
			name:              "Thirty year mortgage",
			principal:         2000000000,
			annualRatePercent: 8.5,
			termMonths:        360,
			expectedRange:     []float64{15378269, 15378270},
		},
		{
			name:              "Zero interest divides evenly",
			principal:         1200000,
			annualRatePercent: 0,
			termMonths:        12,
			expectedRange:     []float64{100000, 100000},
		},
		{
			name:              "Single period repays principal plus one month of interest",
			principal:         1200000,
			annualRatePercent: 12,
			termMonths:        1,
			expectedRange:     []float64{1211999.99, 1212000.01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualRatePercent, tt.termMonths)
			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name              string
		balance           float64
		annualRatePercent float64
		expected          float64
	}{
		{"Ten percent on half a billion", 500000000, 10, 4166666.67},
		{"Six percent", 200000000, 6, 1000000},
		{"Zero balance", 0, 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.balance, tt.annualRatePercent)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestComputeInvalidInputReturnsNil(t *testing.T) {
	valid := Input{Principal: 500000000, AnnualRatePercent: 10, TermMonths: 12, Method: EqualInstallment}

	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{"Zero principal", func(in *Input) { in.Principal = 0 }},
		{"Negative principal", func(in *Input) { in.Principal = -1 }},
		{"NaN principal", func(in *Input) { in.Principal = math.NaN() }},
		{"Infinite principal", func(in *Input) { in.Principal = math.Inf(1) }},
		{"Zero rate", func(in *Input) { in.AnnualRatePercent = 0 }},
		{"Negative rate", func(in *Input) { in.AnnualRatePercent = -5 }},
		{"NaN rate", func(in *Input) { in.AnnualRatePercent = math.NaN() }},
		{"Zero term", func(in *Input) { in.TermMonths = 0 }},
		{"Negative term", func(in *Input) { in.TermMonths = -12 }},
		{"Missing method", func(in *Input) { in.Method = MethodUnknown }},
		{"Out of range method", func(in *Input) { in.Method = Method(7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if in.Valid() {
				t.Fatalf("expected %+v to be invalid", in)
			}
			if result := Compute(in); result != nil {
				t.Fatalf("Compute() = %+v, expected nil", result)
			}
		})
	}

	if Compute(valid) == nil {
		t.Fatal("expected a result for valid input")
	}
}

func TestComputeScheduleProperties(t *testing.T) {
	inputs := []Input{
		{Principal: 500000000, AnnualRatePercent: 10, TermMonths: 12, Method: EqualInstallment},
		{Principal: 500000000, AnnualRatePercent: 10, TermMonths: 12, Method: EqualPrincipal},
		{Principal: 2000000000, AnnualRatePercent: 8.5, TermMonths: 360, Method: EqualInstallment},
		{Principal: 2000000000, AnnualRatePercent: 8.5, TermMonths: 360, Method: EqualPrincipal},
		{Principal: 75000000, AnnualRatePercent: 24, TermMonths: 7, Method: EqualInstallment},
		{Principal: 1, AnnualRatePercent: 0.01, TermMonths: 3, Method: EqualPrincipal},
	}

	for _, in := range inputs {
		result := Compute(in)
		if result == nil {
			t.Fatalf("Compute(%+v) returned nil", in)
		}

		if len(result.Periods) != in.TermMonths {
			t.Fatalf("%+v: expected %d periods, got %d", in, in.TermMonths, len(result.Periods))
		}

		sumInterest := 0.0
		for i, p := range result.Periods {
			if p.Index != i+1 {
				t.Fatalf("%+v: period %d has index %d", in, i, p.Index)
			}
			if p.EndingBalance < 0 {
				t.Fatalf("%+v: period %d has negative ending balance %v", in, p.Index, p.EndingBalance)
			}
			if i > 0 {
				prev := result.Periods[i-1]
				if prev.EndingBalance > 0 && p.StartingBalance != prev.EndingBalance {
					t.Fatalf("%+v: period %d starts at %v but period %d ended at %v",
						in, p.Index, p.StartingBalance, prev.Index, prev.EndingBalance)
				}
			}
			sumInterest += p.Interest
		}

		if result.TotalInterest != sumInterest {
			t.Errorf("%+v: TotalInterest %v != sum of interest %v", in, result.TotalInterest, sumInterest)
		}
		if result.TotalPayment != in.Principal+result.TotalInterest {
			t.Errorf("%+v: TotalPayment %v != principal + interest %v",
				in, result.TotalPayment, in.Principal+result.TotalInterest)
		}
		if result.FirstPeriodPayment != result.Periods[0].Payment {
			t.Errorf("%+v: FirstPeriodPayment %v != period 1 payment %v",
				in, result.FirstPeriodPayment, result.Periods[0].Payment)
		}

		last := result.Periods[len(result.Periods)-1]
		if last.EndingBalance > in.Principal*1e-9 {
			t.Errorf("%+v: expected final balance near zero, got %v", in, last.EndingBalance)
		}
	}
}

func TestComputeEqualInstallmentConstantPayment(t *testing.T) {
	result := Compute(Input{Principal: 2000000000, AnnualRatePercent: 8.5, TermMonths: 360, Method: EqualInstallment})
	if result == nil {
		t.Fatal("expected result")
	}

	first := result.Periods[0].Payment
	for _, p := range result.Periods {
		if p.Payment != first {
			t.Fatalf("period %d payment %v differs from first payment %v", p.Index, p.Payment, first)
		}
		if math.Abs(p.Principal+p.Interest-p.Payment) > 1e-6 {
			t.Fatalf("period %d: principal %v + interest %v != payment %v", p.Index, p.Principal, p.Interest, p.Payment)
		}
	}
}

func TestComputeEqualPrincipalDecliningInterest(t *testing.T) {
	result := Compute(Input{Principal: 2000000000, AnnualRatePercent: 8.5, TermMonths: 360, Method: EqualPrincipal})
	if result == nil {
		t.Fatal("expected result")
	}

	principal := result.Periods[0].Principal
	for i, p := range result.Periods {
		if p.Principal != principal {
			t.Fatalf("period %d principal %v differs from %v", p.Index, p.Principal, principal)
		}
		if i > 0 {
			prev := result.Periods[i-1]
			if p.Interest > prev.Interest {
				t.Fatalf("interest increased from %v to %v at period %d", prev.Interest, p.Interest, p.Index)
			}
			if p.Payment > prev.Payment {
				t.Fatalf("payment increased from %v to %v at period %d", prev.Payment, p.Payment, p.Index)
			}
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	for _, method := range []Method{EqualInstallment, EqualPrincipal} {
		in := Input{Principal: 987654321, AnnualRatePercent: 7.35, TermMonths: 240, Method: method}
		first := Compute(in)
		second := Compute(in)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: repeated Compute calls produced different results", method)
		}
	}
}

func TestComputeSinglePeriod(t *testing.T) {
	for _, method := range []Method{EqualInstallment, EqualPrincipal} {
		t.Run(method.String(), func(t *testing.T) {
			in := Input{Principal: 1200000, AnnualRatePercent: 12, TermMonths: 1, Method: method}
			result := Compute(in)
			if result == nil {
				t.Fatal("expected result")
			}
			if len(result.Periods) != 1 {
				t.Fatalf("expected 1 period, got %d", len(result.Periods))
			}

			p := result.Periods[0]
			// Float drift from the annuity formula is dropped on the final period.
			if p.EndingBalance != 0 {
				t.Errorf("expected ending balance 0, got %v", p.EndingBalance)
			}
			if result.TotalPayment != in.Principal+p.Interest {
				t.Errorf("TotalPayment %v != principal + period interest %v", result.TotalPayment, in.Principal+p.Interest)
			}
			if math.Abs(p.Interest-12000) > 1e-6 {
				t.Errorf("expected interest 12000, got %v", p.Interest)
			}
		})
	}
}

func TestComputeFinalBalanceIsZero(t *testing.T) {
	inputs := []Input{
		{Principal: 500000000, AnnualRatePercent: 10, TermMonths: 12, Method: EqualInstallment},
		{Principal: 500000000, AnnualRatePercent: 10, TermMonths: 12, Method: EqualPrincipal},
		{Principal: 5000000000, AnnualRatePercent: 8.5, TermMonths: 600, Method: EqualInstallment},
		{Principal: 777777777, AnnualRatePercent: 13.3, TermMonths: 7, Method: EqualPrincipal},
	}

	for _, in := range inputs {
		result := Compute(in)
		if last := result.Periods[len(result.Periods)-1]; last.EndingBalance != 0 {
			t.Errorf("%+v: final balance = %v, want exactly 0", in, last.EndingBalance)
		}
	}
}

func TestComputeUnrepresentableRate(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{
			name: "Rate too small to change the growth factor",
			in:   Input{Principal: 1000, AnnualRatePercent: 1e-16, TermMonths: 600, Method: EqualInstallment},
		},
		{
			name: "Rate overflowing the growth factor",
			in:   Input{Principal: 1000, AnnualRatePercent: 1e6, TermMonths: 600, Method: EqualInstallment},
		},
		{
			name: "Interest overflowing on a huge principal",
			in:   Input{Principal: 1e300, AnnualRatePercent: 1e10, TermMonths: 12, Method: EqualPrincipal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Compute(tt.in); result != nil {
				t.Errorf("expected no result, got first period %+v", result.Periods[0])
			}
		})
	}
}

func TestComputeTinyRateEqualPrincipal(t *testing.T) {
	in := Input{Principal: 1000, AnnualRatePercent: 1e-16, TermMonths: 12, Method: EqualPrincipal}
	result := Compute(in)
	if result == nil {
		t.Fatal("expected result")
	}
	if math.Abs(result.TotalPayment-1000) > 1e-9 {
		t.Errorf("TotalPayment = %v, want 1000", result.TotalPayment)
	}
}

func TestEndingBalance(t *testing.T) {
	tests := []struct {
		name      string
		balance   float64
		principal float64
		final     bool
		expected  float64
	}{
		{"Drift on final period", 3.7e-7, 500000000, true, 0},
		{"Negative drift on final period", -2e-6, 500000000, true, 0},
		{"Real remainder on small loan", 0.5, 1000, true, 0.5},
		{"Intermediate balance kept", 3.7e-7, 500000000, false, 3.7e-7},
		{"Negative intermediate balance clamped", -4, 500000000, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := endingBalance(tt.balance, tt.principal, tt.final); got != tt.expected {
				t.Errorf("endingBalance(%v, %v, %v) = %v, expected %v", tt.balance, tt.principal, tt.final, got, tt.expected)
			}
		})
	}
}
