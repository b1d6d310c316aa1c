package models

import "time"

// Transaction types. Every ledger entry is exactly one of these.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction represents a single ledger entry owned by a user.
type Transaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionPatch carries a partial update. Nil fields keep their stored
// values.
type TransactionPatch struct {
	Amount *float64 `json:"amount"`
	Type   *string  `json:"type"`
	Note   *string  `json:"note"`
}

// Summary holds the derived totals for a user's ledger. It is recomputed from
// the live transaction set on every request, never persisted.
type Summary struct {
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
	Balance      float64 `json:"balance"`
}

// ValidTransactionType reports whether t is one of the known transaction types.
func ValidTransactionType(t string) bool {
	return t == TransactionIncome || t == TransactionExpense
}
