package projection

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// maxAmountText bounds the textual form of an amount before parsing.
	maxAmountText = 64
	// maxAmountExponent bounds the decimal exponent in either direction, so
	// AmountText stays short.
	maxAmountExponent = 64
)

// ParseRequest validates an untyped JSON payload. Presence of all three
// fields is checked before any value, so a missing field is reported
// regardless of the others' validity. maxInterests <= 0 disables the
// length check.
func ParseRequest(payload map[string]interface{}, maxInterests int) (Request, error) {
	if len(payload) == 0 {
		return Request{}, ErrNoPayload
	}
	for _, field := range RequiredFields {
		if v, ok := payload[field]; !ok || v == nil {
			return Request{}, &MissingFieldError{Field: field}
		}
	}

	amount, err := parseAmount(payload[FieldAmount])
	if err != nil {
		return Request{}, err
	}

	risk, ok := payload[FieldRisk].(string)
	if !ok || !RiskTolerance(risk).Valid() {
		return Request{}, invalid(ErrInvalidRiskTolerance, FieldRisk,
			"risk_tolerance must be one of: High, Average, Minimal")
	}

	interests, ok := payload[FieldInterests].(string)
	if !ok || strings.TrimSpace(interests) == "" {
		return Request{}, invalid(ErrInvalidInterests, FieldInterests,
			"interests must be a non-empty string")
	}
	if maxInterests > 0 && utf8.RuneCountInString(interests) > maxInterests {
		return Request{}, invalid(ErrInvalidInterests, FieldInterests,
			"interests must be at most %d characters", maxInterests)
	}

	return Request{
		Amount:        amount,
		RiskTolerance: RiskTolerance(risk),
		Interests:     interests,
	}, nil
}

func parseAmount(v interface{}) (decimal.Decimal, error) {
	notNumber := invalid(ErrInvalidAmount, FieldAmount, "monthly_contribution_amount must be a valid number")

	var (
		d   decimal.Decimal
		err error
	)
	switch x := v.(type) {
	case json.Number:
		d, err = parseAmountText(x.String())
	case string:
		d, err = parseAmountText(strings.TrimSpace(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, notNumber
		}
		d = decimal.NewFromFloat(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	default:
		return decimal.Zero, notNumber
	}
	if err != nil {
		return decimal.Zero, notNumber
	}

	if !d.IsPositive() {
		return decimal.Zero, invalid(ErrInvalidAmount, FieldAmount, "monthly_contribution_amount must be positive")
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, notNumber
	}
	return d, nil
}

func parseAmountText(s string) (decimal.Decimal, error) {
	if len(s) > maxAmountText {
		return decimal.Zero, errors.New("amount text too long")
	}
	return decimal.NewFromString(s)
}
