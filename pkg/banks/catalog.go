// Package banks holds the static catalog of lenders offered in the bank picker
// and their published reference mortgage terms.
package banks

import (
	"github.com/iwvelando/loan-calculator/pkg/format"
)

// Bank is a selectable lender.
type Bank struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// ReferenceRate is a lender's advertised mortgage offer.
type ReferenceRate struct {
	Bank           string  `json:"bank"`
	URL            string  `json:"url"`
	Rate           float64 `json:"rate"`           // %/year, promotional period
	MaxLoanToValue float64 `json:"maxLoanToValue"` // % of collateral value
	MaxTermYears   int     `json:"maxTermYears"`
}

var catalog = []Bank{
	{Key: "acb", Name: "ACB", Logo: "/logos-bank/acb.jpeg"},
	{Key: "hdbank", Name: "HDBank", Logo: "/logos-bank/hdbank.jpg"},
	{Key: "hsbc", Name: "HSBC", Logo: "/logos-bank/hsbc.png"},
	{Key: "mbbank", Name: "MB Bank", Logo: "/logos-bank/mbbank.jpg"},
	{Key: "ocb", Name: "OCB", Logo: "/logos-bank/ocb.jpg"},
	{Key: "shinhanbank", Name: "Shinhan Bank", Logo: "/logos-bank/shinhanbank.jpg"},
	{Key: "standardchartered", Name: "Standard Chartered", Logo: "/logos-bank/standardchartered.png"},
	{Key: "techcombank", Name: "Techcombank", Logo: "/logos-bank/techcombank.jpg"},
	{Key: "tpbank", Name: "TPBank", Logo: "/logos-bank/tpbank.jpg"},
	{Key: "uob", Name: "UOB", Logo: "/logos-bank/uob.jpg"},
	{Key: "vib", Name: "VIB", Logo: "/logos-bank/vib.jpg"},
	{Key: "vietinbank", Name: "VietinBank", Logo: "/logos-bank/vietinbank.jpg"},
	{Key: "vpbank", Name: "VPBank", Logo: "/logos-bank/vpbank.jpg"},
}

// Ordered by ascending rate.
var referenceRates = []ReferenceRate{
	{Bank: "Eximbank", URL: "https://www.eximbank.com.vn/", Rate: 3.68, MaxLoanToValue: 100, MaxTermYears: 40},
	{Bank: "SHB", URL: "https://www.shb.com.vn/", Rate: 3.99, MaxLoanToValue: 90, MaxTermYears: 25},
	{Bank: "HDBank", URL: "https://www.hdbank.com.vn/", Rate: 4.5, MaxLoanToValue: 85, MaxTermYears: 35},
	{Bank: "MSB", URL: "https://www.msb.com.vn/", Rate: 4.5, MaxLoanToValue: 90, MaxTermYears: 35},
	{Bank: "BVBank", URL: "https://www.bvbank.vn/", Rate: 5, MaxLoanToValue: 75, MaxTermYears: 20},
	{Bank: "VPBank", URL: "https://www.vpbank.com.vn/", Rate: 5.2, MaxLoanToValue: 75, MaxTermYears: 25},
	{Bank: "Agribank", URL: "https://www.agribank.com.vn/", Rate: 5.5, MaxLoanToValue: 100, MaxTermYears: 30},
	{Bank: "BIDV", URL: "https://www.bidv.com.vn/", Rate: 5.5, MaxLoanToValue: 100, MaxTermYears: 30},
	{Bank: "Vietinbank", URL: "https://www.vietinbank.vn/", Rate: 5.6, MaxLoanToValue: 80, MaxTermYears: 20},
	{Bank: "VIB", URL: "https://www.vib.com.vn/", Rate: 5.9, MaxLoanToValue: 85, MaxTermYears: 30},
	{Bank: "MBBank", URL: "https://www.mbbank.com.vn/", Rate: 6.0, MaxLoanToValue: 80, MaxTermYears: 20},
	{Bank: "Vietcombank", URL: "https://www.vietcombank.com.vn/", Rate: 6.2, MaxLoanToValue: 70, MaxTermYears: 20},
	{Bank: "Standard Chartered", URL: "https://www.sc.com/vn/", Rate: 6.3, MaxLoanToValue: 75, MaxTermYears: 25},
	{Bank: "Sacombank", URL: "https://www.sacombank.com.vn/", Rate: 6.5, MaxLoanToValue: 90, MaxTermYears: 35},
	{Bank: "Techcombank", URL: "https://www.techcombank.com.vn/", Rate: 6.7, MaxLoanToValue: 80, MaxTermYears: 35},
}

// All returns the selectable banks ordered by key.
func All() []Bank {
	return append([]Bank(nil), catalog...)
}

// ReferenceRates returns the published offers ordered by ascending rate.
func ReferenceRates() []ReferenceRate {
	return append([]ReferenceRate(nil), referenceRates...)
}

// Lookup finds a bank by key or display name, ignoring case, spacing and
// punctuation ("MB Bank", "mbbank" and "MBBank" all match).
func Lookup(value string) (Bank, bool) {
	slug := format.Slug(value)
	if slug == "" {
		return Bank{}, false
	}
	for _, b := range catalog {
		if b.Key == slug || format.Slug(b.Name) == slug {
			return b, true
		}
	}
	return Bank{}, false
}

// DisplayName returns the catalog name for value, or value itself when the
// bank is not in the catalog.
func DisplayName(value string) string {
	if b, ok := Lookup(value); ok {
		return b.Name
	}
	return value
}

// FindReferenceRate finds a published offer by bank key or name.
func FindReferenceRate(value string) (ReferenceRate, bool) {
	slug := format.Slug(value)
	if slug == "" {
		return ReferenceRate{}, false
	}
	if b, ok := Lookup(value); ok {
		slug = b.Key
	}
	for _, r := range referenceRates {
		if format.Slug(r.Bank) == slug {
			return r, true
		}
	}
	return ReferenceRate{}, false
}
