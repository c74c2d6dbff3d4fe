package parser

import "github.com/insightdelivered/statement-scorer/internal/models"

// Classify turns a validated row into a transaction using the resolved
// AMOUNT and TRANS. TYPE positions. ok is false when the amount is empty or
// does not parse; such a row contributes nothing.
func Classify(row models.ParsedRow, amountCol, typeCol int) (txn models.Transaction, ok bool) {
	if amountCol < 0 || amountCol >= len(row.Values) || typeCol < 0 || typeCol >= len(row.Values) {
		return models.Transaction{}, false
	}

	amount, err := ParseAmount(row.Values[amountCol])
	if err != nil {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Amount:    amount,
		Direction: models.ParseDirection(row.Values[typeCol]),
	}, true
}
