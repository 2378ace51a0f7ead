package deposit

import "github.com/shopspring/decimal"

// =============================================================================
// SCHEME RATE TABLE
// =============================================================================

// Named deposit schemes. The rate is resolved from this table once, at
// booking time; editing the table later never touches existing deposits.
const (
	SchemeRegularSaver   = "Regular Saver"
	SchemePremiumSaver   = "Premium Saver"
	SchemeLongtermGrowth = "Longterm Growth"
	SchemeTaxSaver       = "Tax Saver"
)

var schemeRates = map[string]decimal.Decimal{
	SchemeRegularSaver:   decimal.NewFromFloat(6.5),
	SchemePremiumSaver:   decimal.NewFromFloat(7.0),
	SchemeLongtermGrowth: decimal.NewFromFloat(7.5),
	SchemeTaxSaver:       decimal.NewFromFloat(7.2),
}

// RateForScheme returns the annual interest rate (percent) for a scheme.
// Unrecognized scheme names, including the empty string, fall back to the
// Regular Saver rate rather than failing. Callers that need strict scheme
// validation must check KnownScheme before resolving.
func RateForScheme(scheme string) decimal.Decimal {
	if rate, ok := schemeRates[scheme]; ok {
		return rate
	}
	return schemeRates[SchemeRegularSaver]
}

// KnownScheme reports whether the scheme has an entry in the rate table.
func KnownScheme(scheme string) bool {
	_, ok := schemeRates[scheme]
	return ok
}
