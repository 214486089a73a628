package model

import (
	"github.com/deppfellow/jobly/internal/validation"
	"github.com/shopspring/decimal"
)

func checkEquity(field string, equity *decimal.Decimal) validation.CustomValidationErrors {
	if equity == nil {
		return nil
	}
	if equity.IsNegative() || equity.GreaterThan(decimal.NewFromInt(1)) {
		return validation.CustomValidationErrors{{Field: field, Message: "must be between 0 and 1"}}
	}
	return nil
}

func (j NewJob) Validate() error {
	return validation.Join(validation.Struct(j), checkEquity("equity", j.Equity))
}

func (u JobUpdate) Validate() error {
	return validation.Join(validation.Struct(u), checkEquity("equity", u.Equity))
}

func (f JobFilter) Validate() error {
	return validation.Struct(f)
}
