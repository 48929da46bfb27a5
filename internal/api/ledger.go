package api

import (
	"budget_tracker/internal/domain"     // Importing domain models
	"budget_tracker/internal/middleware" // Session gate
	"budget_tracker/internal/store"      // Ledger totals
	"context"                            // Store calls
	"errors"                             // Error matching
	"net/http"                           // HTTP status codes
	"time"                               // Form defaults

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// LedgerStore is the ledger as seen by the handlers
type LedgerStore interface {
	Add(ctx context.Context, in domain.NewTransaction) (uint, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
	ListByUserByDateDesc(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

// DashboardView is the data passed to the dashboard template
type DashboardView struct {
	Page
	Transactions []domain.Transaction
	Total        decimal.Decimal
}

// HistoryView is the data passed to the history template
type HistoryView struct {
	Page
	Transactions []domain.Transaction
}

// AddView is the data passed to the add-transaction template
type AddView struct {
	Page
	Today string
}

// DashboardHandler lists the user's transactions in the order they were added
func DashboardHandler(ledger LedgerStore, gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		txs, err := ledger.ListByUser(c.Request.Context(), identity.UserID)
		if err != nil {
			serverError(c, gate, err)
			return
		}
		c.HTML(http.StatusOK, "dashboard.html", DashboardView{
			Page:         newPage(c, gate, "Dashboard"),
			Transactions: txs,
			Total:        store.Total(txs),
		})
	}
}

// AddFormHandler renders the add-transaction form
func AddFormHandler(gate *middleware.Gate, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "add.html", AddView{
			Page:  newPage(c, gate, "Add transaction"),
			Today: now().Format(domain.DateLayout),
		})
	}
}

// AddHandler validates the form and records the transaction
func AddHandler(ledger LedgerStore, gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := addTransaction(c, ledger)
		finish(c, gate, res, err)
	}
}

func addTransaction(c *gin.Context, ledger LedgerStore) (Result, error) {
	identity, _ := middleware.IdentityFrom(c)
	in, err := parseTransaction(c, identity.UserID)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return Result{Redirect: "/add", Advisory: verr.Message}, nil
	}
	if err != nil {
		return Result{}, err
	}
	id, err := ledger.Add(c.Request.Context(), in)
	if err != nil {
		return Result{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":        identity.UserID,    // Owner
		"transaction_id": id,                 // New transaction
		"amount":         in.Amount.String(), // Amount
		"category":       in.Category,        // Category
	}).Info("Transaction added")
	return Result{Redirect: "/dashboard", Advisory: "Transaction added successfully!"}, nil
}

// HistoryHandler lists the user's transactions, most recent date first
func HistoryHandler(ledger LedgerStore, gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		txs, err := ledger.ListByUserByDateDesc(c.Request.Context(), identity.UserID)
		if err != nil {
			serverError(c, gate, err)
			return
		}
		c.HTML(http.StatusOK, "history.html", HistoryView{
			Page:         newPage(c, gate, "History"),
			Transactions: txs,
		})
	}
}
