// Package query maps loan inputs to and from the shareable query string
// (amount, rate, term, type, bank, banker, contact).
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// Keys lists the query-string keys in the order they are written.
var Keys = []string{
	constants.QueryAmount,
	constants.QueryRate,
	constants.QueryTerm,
	constants.QueryType,
	constants.QueryBank,
	constants.QueryBanker,
	constants.QueryContact,
}

// Params is the raw, caller-owned form state.
type Params struct {
	Amount  string `json:"amount" mapstructure:"amount" yaml:"amount"`
	Rate    string `json:"rate" mapstructure:"rate" yaml:"rate"`
	Term    string `json:"term" mapstructure:"term" yaml:"term"`
	Type    string `json:"type" mapstructure:"type" yaml:"type"`
	Bank    string `json:"bank" mapstructure:"bank" yaml:"bank"`
	Banker  string `json:"banker" mapstructure:"banker" yaml:"banker"`
	Contact string `json:"contact" mapstructure:"contact" yaml:"contact"`
}

// Metadata identifies who prepared a schedule. It is display and file-name
// data only.
type Metadata struct {
	Bank    string `json:"bank"`
	Banker  string `json:"banker"`
	Contact string `json:"contact"`
}

// FromValues reads Params from a query string. It reports false, and returns
// zero Params, unless every key is present and non-empty.
func FromValues(values url.Values) (Params, bool) {
	p := ReadValues(values)
	if !p.Complete() {
		return Params{}, false
	}
	return p, true
}

// ReadValues reads whichever keys are present, trimming whitespace.
func ReadValues(values url.Values) Params {
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}
	return Params{
		Amount:  get(constants.QueryAmount),
		Rate:    get(constants.QueryRate),
		Term:    get(constants.QueryTerm),
		Type:    get(constants.QueryType),
		Bank:    get(constants.QueryBank),
		Banker:  get(constants.QueryBanker),
		Contact: get(constants.QueryContact),
	}
}

// Parse reads a raw query string such as "amount=1&rate=2...". A leading "?"
// and a full URL are both accepted.
func Parse(raw string) (Params, bool, error) {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "?"); idx >= 0 {
		raw = raw[idx+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Params{}, false, err
	}
	p, ok := FromValues(values)
	return p, ok, nil
}

// Complete reports whether every field is non-empty.
func (p Params) Complete() bool {
	for _, v := range p.fields() {
		if v == "" {
			return false
		}
	}
	return true
}

// Merge returns p with empty fields filled from fallback.
func (p Params) Merge(fallback Params) Params {
	pick := func(v, def string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return def
	}
	return Params{
		Amount:  pick(p.Amount, fallback.Amount),
		Rate:    pick(p.Rate, fallback.Rate),
		Term:    pick(p.Term, fallback.Term),
		Type:    pick(p.Type, fallback.Type),
		Bank:    pick(p.Bank, fallback.Bank),
		Banker:  pick(p.Banker, fallback.Banker),
		Contact: pick(p.Contact, fallback.Contact),
	}
}

// LoanInput converts the form state into calculator input. It reports false
// when any of amount, rate, term or type is missing or unparseable.
func (p Params) LoanInput() (loans.Input, bool) {
	principal, ok := ParseAmount(p.Amount)
	if !ok {
		return loans.Input{}, false
	}
	rate, ok := ParseRate(p.Rate)
	if !ok {
		return loans.Input{}, false
	}
	term, ok := ParseTerm(p.Term)
	if !ok {
		return loans.Input{}, false
	}
	method, ok := loans.ParseMethod(p.Type)
	if !ok {
		return loans.Input{}, false
	}

	in := loans.Input{
		Principal:         principal,
		AnnualRatePercent: rate,
		TermMonths:        term,
		Method:            method,
	}
	return in, in.Valid()
}

// Metadata returns the identity fields.
func (p Params) Metadata() Metadata {
	return Metadata{Bank: p.Bank, Banker: p.Banker, Contact: p.Contact}
}

// Values returns p as url.Values with the amount normalised to digits.
func (p Params) Values() url.Values {
	values := make(url.Values, len(Keys))
	for i, v := range p.normalized().fields() {
		values.Set(Keys[i], v)
	}
	return values
}

// Encode writes p as a query string with keys in a fixed order. Unlike
// url.Values.Encode the order is not alphabetical.
func (p Params) Encode() string {
	var builder strings.Builder
	for i, v := range p.normalized().fields() {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(url.QueryEscape(Keys[i]))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(v))
	}
	return builder.String()
}

// ShareURL joins baseURL, path and the encoded query string.
func (p Params) ShareURL(baseURL, path string) string {
	if path == "" {
		path = constants.DefaultSharePath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(baseURL, "/") + path + "?" + p.Encode()
}

func (p Params) normalized() Params {
	p.Amount = Digits(p.Amount)
	return p
}

func (p Params) fields() []string {
	return []string{p.Amount, p.Rate, p.Term, p.Type, p.Bank, p.Banker, p.Contact}
}

// Digits keeps only the ASCII digits of s, so "500.000.000" becomes "500000000".
func Digits(s string) string {
	var builder strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// ParseAmount reads a principal typed with any thousands separators.
func ParseAmount(s string) (float64, bool) {
	digits := Digits(s)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil || v <= 0 || !mathutil.IsFinite(v) {
		return 0, false
	}
	return v, true
}

// ParseRate reads an annual percentage; a comma is accepted as the decimal
// separator.
func ParseRate(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || !mathutil.IsFinite(v) {
		return 0, false
	}
	return v, true
}

// ParseTerm reads the leading integer of s ("12.5" and "12 months" give 12).
func ParseTerm(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
