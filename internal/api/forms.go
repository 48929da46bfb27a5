package api

import (
	"budget_tracker/internal/domain" // Importing domain models
	"strings"                        // Input trimming
	"time"                           // Date parsing

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/gin-gonic/gin/binding" // Form binding
	"github.com/shopspring/decimal"    // Exact amounts
)

const (
	maxCategoryLen    = 100
	maxDescriptionLen = 200
)

// CredentialsForm is the register and login form
type CredentialsForm struct {
	Username string `form:"username"` // Username
	Password string `form:"password"` // Plaintext password, never logged
}

// transactionForm holds the raw add-transaction fields
type transactionForm struct {
	Amount   string `form:"amount"`   // Numeric string
	Category string `form:"category"` // Free-form category
	Date     string `form:"date"`     // YYYY-MM-DD
}

func bindCredentials(c *gin.Context) (CredentialsForm, error) {
	var f CredentialsForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		return CredentialsForm{}, domain.Invalid("form", "Invalid form submission.")
	}
	return f, nil
}

// parseTransaction validates the add-transaction form and builds the typed input.
// Nothing is constructed unless every field is valid.
func parseTransaction(c *gin.Context, userID uint) (domain.NewTransaction, error) {
	var f transactionForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		return domain.NewTransaction{}, domain.Invalid("form", "Invalid form submission.")
	}

	amountStr := strings.TrimSpace(f.Amount)
	if amountStr == "" {
		return domain.NewTransaction{}, domain.Invalid("amount", "Amount is required.")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return domain.NewTransaction{}, domain.Invalid("amount", "Amount must be a number.")
	}
	if err := domain.CheckAmount(amount); err != nil {
		return domain.NewTransaction{}, err
	}

	category := strings.TrimSpace(f.Category)
	switch {
	case category == "":
		return domain.NewTransaction{}, domain.Invalid("category", "Category is required.")
	case len(category) > maxCategoryLen:
		return domain.NewTransaction{}, domain.Invalid("category", "Category must be at most 100 characters.")
	}

	dateStr := strings.TrimSpace(f.Date)
	if dateStr == "" {
		return domain.NewTransaction{}, domain.Invalid("date", "Date is required.")
	}
	date, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		return domain.NewTransaction{}, domain.Invalid("date", "Date must be in YYYY-MM-DD format.")
	}

	// Absent and empty descriptions are kept apart
	var description *string
	if d, ok := c.GetPostForm("description"); ok {
		if len(d) > maxDescriptionLen {
			return domain.NewTransaction{}, domain.Invalid("description", "Description must be at most 200 characters.")
		}
		description = &d
	}

	return domain.NewTransaction{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: description,
	}, nil
}
