// Package projection turns a validated investment request into a prompt,
// streams the completion from the configured provider and parses the
// accumulated text as JSON.
package projection

import (
	"github.com/shopspring/decimal"
)

// Inbound payload field names.
const (
	FieldAmount    = "monthly_contribution_amount"
	FieldRisk      = "risk_tolerance"
	FieldInterests = "interests"
)

// RequiredFields is checked in this order; the first missing one is reported.
var RequiredFields = []string{FieldAmount, FieldRisk, FieldInterests}

// RiskTolerance is the investor's risk appetite.
type RiskTolerance string

const (
	RiskHigh    RiskTolerance = "High"
	RiskAverage RiskTolerance = "Average"
	RiskMinimal RiskTolerance = "Minimal"
)

var validRisk = map[RiskTolerance]bool{
	RiskHigh:    true,
	RiskAverage: true,
	RiskMinimal: true,
}

// Valid reports whether r is one of the three accepted literals.
func (r RiskTolerance) Valid() bool {
	return validRisk[r]
}

// Request is a validated projection request. It lives for one call.
type Request struct {
	Amount        decimal.Decimal
	RiskTolerance RiskTolerance
	Interests     string
}

// AmountText renders the amount as a plain decimal with at least one
// fractional digit: 500 -> "500.0", 250.50 -> "250.5".
func (r Request) AmountText() string {
	if r.Amount.Equal(r.Amount.Truncate(0)) {
		return r.Amount.StringFixed(1)
	}
	return r.Amount.String()
}
