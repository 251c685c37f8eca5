package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/banks"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/query"
)

// ErrTermTooLong is returned when a term exceeds the configured maximum.
var ErrTermTooLong = errors.New("loan term too long")

// HighRatePercent is the annual rate above which a request is flagged as
// unusual for a bank loan.
const HighRatePercent = 30.0

// CheckTermLimit rejects input whose term exceeds maxTermMonths. Callers run
// it before computing, since a schedule allocates one period per month.
func CheckTermLimit(in loans.Input, maxTermMonths int) error {
	if in.TermMonths > maxTermMonths {
		return fmt.Errorf("%w: term of %d months exceeds the maximum of %d", ErrTermTooLong, in.TermMonths, maxTermMonths)
	}
	return nil
}

// LoanWarnings returns non-fatal observations about a loan request. Input
// that cannot be computed at all is not reported here; it yields no result.
func LoanWarnings(params query.Params) []string {
	var warnings []string

	amount := strings.TrimSpace(params.Amount)
	if amount != "" && query.Digits(amount) != amount {
		warnings = append(warnings, fmt.Sprintf("Amount '%s' was read as %s", amount, query.Digits(amount)))
	}

	if rate, ok := query.ParseRate(params.Rate); ok && rate > HighRatePercent {
		warnings = append(warnings, fmt.Sprintf("Rate %s%%/year is unusually high for a bank loan", strconv.FormatFloat(rate, 'f', -1, 64)))
	}

	term, termOK := query.ParseTerm(params.Term)
	if termOK && strings.TrimSpace(params.Term) != strconv.Itoa(term) {
		warnings = append(warnings, fmt.Sprintf("Term '%s' was read as %d months", strings.TrimSpace(params.Term), term))
	}

	if params.Bank != "" {
		if _, ok := banks.Lookup(params.Bank); !ok {
			warnings = append(warnings, fmt.Sprintf("Bank '%s' is not in the catalog and will be shown as entered", params.Bank))
		}
		if ref, ok := banks.FindReferenceRate(params.Bank); ok && termOK && term > ref.MaxTermYears*constants.MonthsPerYear {
			warnings = append(warnings, fmt.Sprintf("Term of %d months exceeds the %d year maximum advertised by %s",
				term, ref.MaxTermYears, ref.Bank))
		}
	}

	for _, field := range []struct {
		key   string
		value string
	}{
		{constants.QueryBank, params.Bank},
		{constants.QueryBanker, params.Banker},
		{constants.QueryContact, params.Contact},
	} {
		if strings.TrimSpace(field.value) == "" {
			warnings = append(warnings, fmt.Sprintf("Field '%s' is empty; exports will omit it and share links will not prefill the form", field.key))
		}
	}

	return warnings
}
