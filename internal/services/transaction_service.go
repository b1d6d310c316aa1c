package services

import (
	"database/sql"

	"github.com/wizallet/wizallet-be/internal/models"
)

// TransactionServiceProvider defines the interface for ledger services.
type TransactionServiceProvider interface {
	ListTransactions(ownerID int64) ([]models.Transaction, error)
	GetTransaction(id, callerID int64) (models.Transaction, error)
	CreateTransaction(callerID int64, amount float64, txType, note string) (models.Transaction, error)
	UpdateTransaction(id, callerID int64, patch models.TransactionPatch) (models.Transaction, error)
	DeleteTransaction(id, callerID int64) error
	Summarize(ownerID int64) (models.Summary, error)
}

// TransactionService provides business logic for the transaction ledger.
// Every read and mutation is scoped to the caller's own rows.
type TransactionService struct {
	db *sql.DB
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db}
}

// ListTransactions retrieves the owner's transactions, newest first.
func (s *TransactionService) ListTransactions(ownerID int64) ([]models.Transaction, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, type, amount, note, created_at FROM transactions WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Empty ledgers serialize as [], not null.
	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Note, &tx.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// GetTransaction retrieves a single transaction. A row owned by someone else
// and a row that does not exist produce the same error, so callers cannot
// probe for other users' data.
func (s *TransactionService) GetTransaction(id, callerID int64) (models.Transaction, error) {
	var tx models.Transaction
	row := s.db.QueryRow(
		"SELECT id, user_id, type, amount, note, created_at FROM transactions WHERE id = ?",
		id,
	)
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Note, &tx.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Transaction{}, models.NewForbiddenError()
		}
		return models.Transaction{}, err
	}
	if tx.UserID != callerID {
		return models.Transaction{}, models.NewForbiddenError()
	}
	return tx, nil
}

// CreateTransaction inserts a new ledger entry. The owner is always the
// caller; a caller-supplied owner never reaches this layer.
func (s *TransactionService) CreateTransaction(callerID int64, amount float64, txType, note string) (models.Transaction, error) {
	if amount <= 0 || txType == "" {
		return models.Transaction{}, models.NewValidationError("amount and type are required")
	}
	if !models.ValidTransactionType(txType) {
		return models.Transaction{}, models.NewValidationError("type must be income or expense")
	}

	res, err := s.db.Exec(
		"INSERT INTO transactions (user_id, type, amount, note) VALUES (?, ?, ?, ?)",
		callerID, txType, amount, note,
	)
	if err != nil {
		return models.Transaction{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Transaction{}, err
	}
	return s.GetTransaction(id, callerID)
}

// UpdateTransaction applies a partial update after the same ownership check as
// GetTransaction. Fields absent from the patch keep their stored values.
func (s *TransactionService) UpdateTransaction(id, callerID int64, patch models.TransactionPatch) (models.Transaction, error) {
	tx, err := s.GetTransaction(id, callerID)
	if err != nil {
		return models.Transaction{}, err
	}

	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return models.Transaction{}, models.NewValidationError("amount must be positive")
		}
		tx.Amount = *patch.Amount
	}
	if patch.Type != nil {
		if !models.ValidTransactionType(*patch.Type) {
			return models.Transaction{}, models.NewValidationError("type must be income or expense")
		}
		tx.Type = *patch.Type
	}
	if patch.Note != nil {
		tx.Note = *patch.Note
	}

	_, err = s.db.Exec(
		"UPDATE transactions SET amount = ?, type = ?, note = ? WHERE id = ? AND user_id = ?",
		tx.Amount, tx.Type, tx.Note, tx.ID, callerID,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction permanently removes a transaction after the ownership
// check. There is no soft delete.
func (s *TransactionService) DeleteTransaction(id, callerID int64) error {
	if _, err := s.GetTransaction(id, callerID); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM transactions WHERE id = ? AND user_id = ?", id, callerID)
	return err
}

// Summarize computes the owner's income total, expense total and running
// balance from the live transaction set. Nothing here is cached, so the result
// always matches the ledger at the moment of the call.
func (s *TransactionService) Summarize(ownerID int64) (models.Summary, error) {
	var initialBalance float64
	row := s.db.QueryRow("SELECT initial_balance FROM users WHERE id = ?", ownerID)
	if err := row.Scan(&initialBalance); err != nil {
		if err == sql.ErrNoRows {
			return models.Summary{}, models.NewNotFoundError("user not found")
		}
		return models.Summary{}, err
	}

	var summary models.Summary
	row = s.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions WHERE user_id = ?`, ownerID)
	if err := row.Scan(&summary.IncomeTotal, &summary.ExpenseTotal); err != nil {
		return models.Summary{}, err
	}

	summary.Balance = initialBalance + summary.IncomeTotal - summary.ExpenseTotal
	return summary, nil
}
