package store

import (
	"budget_tracker/internal/domain" // Importing domain models
	"context"                        // Request-scoped queries
	"errors"                         // Argument errors
	"fmt"                            // Error wrapping

	"github.com/shopspring/decimal" // Exact sums
	"gorm.io/gorm"                  // GORM ORM library
)

// Ledger persists transactions keyed by owning user
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger store backed by db
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Add inserts a transaction and returns its id
func (s *Ledger) Add(ctx context.Context, in domain.NewTransaction) (uint, error) {
	if in.UserID == 0 {
		return 0, errors.New("add transaction: missing user id")
	}
	if err := domain.CheckAmount(in.Amount); err != nil {
		return 0, err
	}
	t := domain.Transaction{
		UserID:      in.UserID,
		Amount:      domain.NewAmount(in.Amount),
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}
	return t.ID, nil
}

// ListByUser returns the user's transactions in insertion order
func (s *Ledger) ListByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	return s.list(ctx, userID, "id asc")
}

// ListByUserByDateDesc returns the user's transactions, most recent date first.
// Transactions sharing a date keep insertion order.
func (s *Ledger) ListByUserByDateDesc(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	return s.list(ctx, userID, "date desc, id asc")
}

func (s *Ledger) list(ctx context.Context, userID uint, order string) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order(order).Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Total sums the amounts of txs
func Total(txs []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Amount.Decimal)
	}
	return sum
}
