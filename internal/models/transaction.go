package models

import "github.com/shopspring/decimal"

// Required column names on every statement page.
const (
	ColumnAmount    = "AMOUNT"
	ColumnTransType = "TRANS. TYPE"
)

// Direction classifies a transaction by its TRANS. TYPE value.
type Direction string

const (
	CashIn  Direction = "CASH_IN"
	CashOut Direction = "CASH_OUT"
	Other   Direction = "OTHER"
)

// ParseDirection matches s exactly against the CASH_IN and CASH_OUT literals.
func ParseDirection(s string) Direction {
	switch s {
	case string(CashIn):
		return CashIn
	case string(CashOut):
		return CashOut
	default:
		return Other
	}
}

// Transaction is a classified data row. Page is set by the page processor.
type Transaction struct {
	Page      int             `json:"page"`
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"direction"`
}
