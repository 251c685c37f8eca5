package loans

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Method is the repayment method of a loan.
type Method int

const (
	// MethodUnknown is the zero value and never produces a schedule.
	MethodUnknown Method = iota
	// EqualInstallment repays a constant total amount every period (annuity).
	EqualInstallment
	// EqualPrincipal repays a constant principal amount every period; interest
	// is charged on the declining balance.
	EqualPrincipal
)

// Wire names used in the query string.
const (
	EqualInstallmentKey = "equal-payment"
	EqualPrincipalKey   = "decreasing-balance"
)

// ParseMethod maps a query-string value onto a Method.
func ParseMethod(value string) (Method, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case EqualInstallmentKey, "equal-installment":
		return EqualInstallment, true
	case EqualPrincipalKey, "equal-principal":
		return EqualPrincipal, true
	}
	return MethodUnknown, false
}

// Valid reports whether m is one of the two repayment methods.
func (m Method) Valid() bool {
	return m == EqualInstallment || m == EqualPrincipal
}

// String returns the wire name of m.
func (m Method) String() string {
	switch m {
	case EqualInstallment:
		return EqualInstallmentKey
	case EqualPrincipal:
		return EqualPrincipalKey
	}
	return ""
}

// DisplayName returns the label shown to borrowers.
func (m Method) DisplayName() string {
	switch m {
	case EqualInstallment:
		return "Trả trên dư nợ gốc"
	case EqualPrincipal:
		return "Trả trên dư nợ giảm dần"
	}
	return ""
}

// PaymentLabel names the headline payment figure: the fixed monthly amount for
// annuities, the first (largest) payment for declining-balance loans.
func (m Method) PaymentLabel() string {
	if m == EqualInstallment {
		return "Trả hàng tháng"
	}
	return "Trả tháng đầu"
}

// MarshalJSON encodes m by its wire name.
func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a wire name.
func (m *Method) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, ok := ParseMethod(raw)
	if !ok {
		return fmt.Errorf("unknown repayment method %q", raw)
	}
	*m = parsed
	return nil
}
