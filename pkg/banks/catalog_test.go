package banks

import (
	"sort"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"vietinbank", "VietinBank", true},
		{"VietinBank", "VietinBank", true},
		{"MB Bank", "MB Bank", true},
		{"mbbank", "MB Bank", true},
		{"standard chartered", "Standard Chartered", true},
		{"Agribank", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, ok := Lookup(tt.input)
			if ok != tt.ok || b.Name != tt.expected {
				t.Errorf("Lookup(%q) = (%q, %v), expected (%q, %v)", tt.input, b.Name, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("tpbank"); got != "TPBank" {
		t.Errorf("DisplayName(tpbank) = %q", got)
	}
	if got := DisplayName("Ngân hàng Xây Dựng"); got != "Ngân hàng Xây Dựng" {
		t.Errorf("expected unknown bank to pass through, got %q", got)
	}
}

func TestFindReferenceRate(t *testing.T) {
	tests := []struct {
		input string
		rate  float64
		term  int
		ok    bool
	}{
		{"vietinbank", 5.6, 20, true},
		{"mbbank", 6.0, 20, true},
		{"MB Bank", 6.0, 20, true},
		{"standardchartered", 6.3, 25, true},
		{"BIDV", 5.5, 30, true},
		{"uob", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, ok := FindReferenceRate(tt.input)
			if ok != tt.ok || r.Rate != tt.rate || r.MaxTermYears != tt.term {
				t.Errorf("FindReferenceRate(%q) = (%+v, %v)", tt.input, r, ok)
			}
		})
	}
}

func TestCatalogOrdering(t *testing.T) {
	all := All()
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Key < all[j].Key }) {
		t.Error("expected catalog ordered by key")
	}

	rates := ReferenceRates()
	if !sort.SliceIsSorted(rates, func(i, j int) bool { return rates[i].Rate < rates[j].Rate }) {
		t.Error("expected reference rates ordered by rate")
	}

	all[0].Name = "mutated"
	if All()[0].Name == "mutated" {
		t.Error("All() must return a copy")
	}
}
