package domain

import (
	"time" // Calendar dates

	"github.com/shopspring/decimal" // Exact decimal amounts
)

// DateLayout is the ISO calendar date layout used by forms and views.
const DateLayout = "2006-01-02"

// Transaction Model
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`               // Primary key
	UserID      uint      `gorm:"not null;index"`           // Foreign key to the owning User
	Amount      Amount    `gorm:"not null"`                 // Signed amount, precision preserved
	Category    string    `gorm:"size:100;not null"`        // Free-form category
	Date        time.Time `gorm:"type:date;not null;index"` // Calendar date at UTC midnight
	Description *string   `gorm:"size:200"`                 // nil when the field was not supplied
	CreatedAt   time.Time // Insertion time
}

// NewTransaction carries the validated fields of a transaction before it is stored.
type NewTransaction struct {
	UserID      uint
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description *string
}

// DescriptionText returns the description or "" when none was supplied.
func (t Transaction) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// DateString formats the transaction date for display.
func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}
